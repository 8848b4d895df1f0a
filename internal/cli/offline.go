package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mvnresolve/pkg/version"
)

// urlCommand creates the "url" command. It makes no requests.
func (c *CLI) urlCommand() *cobra.Command {
	var (
		classifier string
		extension  string
	)

	cmd := &cobra.Command{
		Use:   "url " + coordinateUsage + " <version>",
		Short: "Print the download URL of an artifact file",
		Long: `Print the download URL of an artifact file without contacting the repository.

Snapshot builds map to their SNAPSHOT directory:
  mvnresolve url test:test 0.4.5-SNAPSHOT-20211215.173200-4
  → .../test/test/0.4.5-SNAPSHOT/test-0.4.5-20211215.173200-4.jar`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient(args[0])
			if err != nil {
				return err
			}
			url, err := client.ArtifactURL(version.New(args[1]), classifier, extension)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	cmd.Flags().StringVar(&classifier, "classifier", "", "artifact classifier")
	cmd.Flags().StringVar(&extension, "extension", "jar", "artifact file extension")
	return cmd
}

// compareCommand creates the "compare" command.
func (c *CLI) compareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <version-a> <version-b>",
		Short: "Compare two versions and print -1, 0 or 1",
		Long: `Compare two versions with Maven ordering and print -1, 0 or 1.

Two snapshot builds with the same release and timestamp compare equal
whatever their build numbers.`,
		Example: "  mvnresolve compare 1.0-SNAPSHOT 1.0   # -1",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b := version.New(args[0]), version.New(args[1])
			fmt.Fprintln(cmd.OutOrStdout(), version.Compare(a, b))
			return nil
		},
	}
}
