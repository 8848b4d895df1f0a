package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mvnresolve/pkg/version"
)

const coordinateUsage = "<groupId:artifactId>"

// releaseCommand creates the "release" command.
func (c *CLI) releaseCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "release " + coordinateUsage,
		Short:   "Print the latest release version",
		Example: "  mvnresolve release org.apache.commons:commons-lang3",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var v version.Version
			err = c.withRetry(ctx, func() (err error) {
				v, err = client.LatestReleaseVersion(ctx)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

// latestCommand creates the "latest" command.
func (c *CLI) latestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "latest " + coordinateUsage,
		Short: "Print the latest version, resolving SNAPSHOTs to their newest build",
		Long: `Print the latest version of an artifact.

If the latest version is a SNAPSHOT, the newest build is resolved from the
snapshot directory and printed as <version>-<timestamp>-<buildNumber>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var v version.Version
			err = c.withRetry(ctx, func() (err error) {
				v, err = client.LatestVersion(ctx)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

// snapshotCommand creates the "snapshot" command.
func (c *CLI) snapshotCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "snapshot " + coordinateUsage + " <snapshot-version>",
		Short:   "Print the newest build of a SNAPSHOT version",
		Example: "  mvnresolve snapshot org.statendee:maven-utils 0.4.5-SNAPSHOT",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var v version.Version
			err = c.withRetry(ctx, func() (err error) {
				v, err = client.LatestSnapshotBuild(ctx, version.New(args[1]))
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

// versionsCommand creates the "versions" command.
func (c *CLI) versionsCommand() *cobra.Command {
	var snapshots bool

	cmd := &cobra.Command{
		Use:   "versions " + coordinateUsage,
		Short: "List published versions in ascending order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var vs []version.Version
			err = c.withRetry(ctx, func() (err error) {
				vs, err = client.Versions(ctx)
				return err
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, v := range vs {
				if v.IsSnapshot() && !snapshots {
					continue
				}
				fmt.Fprintln(out, v)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&snapshots, "snapshots", true, "include SNAPSHOT versions")
	return cmd
}
