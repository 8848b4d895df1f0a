package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mvnresolve/pkg/errors"
	"github.com/matzehuels/mvnresolve/pkg/version"
)

// downloadCommand creates the "download" command.
func (c *CLI) downloadCommand() *cobra.Command {
	var (
		output     string
		classifier string
		extension  string
		release    bool
	)

	cmd := &cobra.Command{
		Use:   "download " + coordinateUsage + " [version]",
		Short: "Download an artifact file",
		Long: `Download an artifact file to the path given with --output.

Without a version argument the latest version is downloaded (use --release
for the latest release instead). SNAPSHOT versions are resolved to their
newest build first. Parent directories are created and an existing file is
replaced.`,
		Example: `  mvnresolve download org.statendee:maven-utils -o lib/maven-utils.jar
  mvnresolve download org.statendee:maven-utils 0.4.5 --classifier sources -o src.jar`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New(errors.ErrCodeInvalidArgument, "--output is required")
			}
			client, err := c.newClient(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			var v version.Version
			err = c.withRetry(ctx, func() (err error) {
				switch {
				case len(args) == 2 && needsBuild(version.New(args[1])):
					v, err = client.LatestSnapshotBuild(ctx, version.New(args[1]))
				case len(args) == 2:
					v = version.New(args[1])
				case release:
					v, err = client.LatestReleaseVersion(ctx)
				default:
					v, err = client.LatestVersion(ctx)
				}
				return err
			})
			if err != nil {
				return err
			}

			url, err := client.ArtifactURL(v, classifier, extension)
			if err != nil {
				return err
			}
			if _, err := os.Stat(output); err == nil {
				logger.Debug("replacing existing file", "path", output)
			}

			prog := newProgress(logger)
			spinner := newSpinner(ctx, cmd.ErrOrStderr(), "Downloading "+v.String()+"...")
			spinner.Start()
			err = c.withRetry(ctx, func() error {
				return client.Download(ctx, v, classifier, extension, output)
			})
			spinner.Stop()
			if err != nil {
				return err
			}
			prog.done("Downloaded " + client.Coordinates().String() + ":" + v.String())

			out := cmd.OutOrStdout()
			printSuccess(out, "Downloaded %s", StyleHighlight.Render(client.Coordinates().String()))
			printKeyValue(out, "version", v.String())
			printKeyValue(out, "url", url)
			printFile(out, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file (required)")
	cmd.Flags().StringVar(&classifier, "classifier", "", "artifact classifier, e.g. sources or jar-with-dependencies")
	cmd.Flags().StringVar(&extension, "extension", "jar", "artifact file extension")
	cmd.Flags().BoolVar(&release, "release", false, "download the latest release when no version is given")
	return cmd
}

// needsBuild reports whether v is a bare SNAPSHOT that has to be resolved
// to a concrete build before it names a file.
func needsBuild(v version.Version) bool {
	_, status := v.Timestamp()
	return status == version.NoTimestamp
}
