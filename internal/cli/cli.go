// Package cli implements the mvnresolve command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mvnresolve/pkg/buildinfo"
	"github.com/matzehuels/mvnresolve/pkg/httputil"
	"github.com/matzehuels/mvnresolve/pkg/observability"
	"github.com/matzehuels/mvnresolve/pkg/repository"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mvnresolve"

	// configFile is the config file name inside the config directory.
	configFile = "config.toml"

	envUsername = "MVNRESOLVE_USERNAME"
	envToken    = "MVNRESOLVE_TOKEN"

	// defaultRetryDelay is the first backoff step when --retries is set.
	defaultRetryDelay = time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	flags      globalFlags
	settings   settings
	config     *Config
	getenv     func(string) string
	retryDelay time.Duration
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	repo       string
	username   string
	token      string
	config     string
	timeout    time.Duration
	timeoutSet bool
	retries    int
	retriesSet bool
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     newLogger(w, level),
		getenv:     os.Getenv,
		retryDelay: defaultRetryDelay,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "mvnresolve resolves and downloads artifacts from Maven repositories",
		Long: `mvnresolve reads maven-metadata.xml from a Maven repository to find the latest
release, the latest version or the newest build of a SNAPSHOT, and downloads
the matching artifact files.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.repo, "repo", "", "repository URL or name from the config file (default Maven Central)")
	pf.StringVar(&c.flags.username, "username", "", "repository username (env "+envUsername+")")
	pf.StringVar(&c.flags.token, "token", "", "repository token or password (env "+envToken+")")
	pf.StringVar(&c.flags.config, "config", "", "config file (default $XDG_CONFIG_HOME/mvnresolve/config.toml)")
	pf.DurationVar(&c.flags.timeout, "timeout", httputil.DefaultTimeout, "timeout per request")
	pf.IntVar(&c.flags.retries, "retries", 0, "retry transport failures and 5xx responses this many times")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.releaseCommand())
	root.AddCommand(c.latestCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.versionsCommand())
	root.AddCommand(c.downloadCommand())
	root.AddCommand(c.urlCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup runs before every command: it applies --verbose, loads the config
// file and resolves the effective settings.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if c.flags.verbose {
		c.SetLogLevel(LogDebug)
		observability.SetResolveHooks(logHooks{logger: c.Logger})
	}
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))

	flags := cmd.Flags()
	c.flags.timeoutSet = flags.Changed("timeout")
	c.flags.retriesSet = flags.Changed("retries")

	path, explicit := c.flags.config, c.flags.config != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			c.Logger.Debug("no config directory", "err", err)
			c.config = &Config{}
			return c.applySettings()
		}
		path = p
	}
	cfg, err := loadConfig(path, explicit, c.Logger)
	if err != nil {
		return err
	}
	c.config = cfg
	c.Logger.Debug("config loaded", "file", path)
	return c.applySettings()
}

func (c *CLI) applySettings() error {
	s, err := c.config.resolve(c.flags, c.getenv)
	if err != nil {
		return err
	}
	c.settings = s
	c.Logger.Debug("settings",
		"repository", s.Repository,
		"credentials", s.Creds,
		"timeout", s.Timeout,
		"retries", s.Retries)
	return nil
}

// =============================================================================
// Client Factory
// =============================================================================

// newClient creates a repository client for a "groupId:artifactId" argument.
func (c *CLI) newClient(coordinate string) (*repository.Client, error) {
	coords, err := repository.ParseCoordinates(c.settings.Repository, coordinate)
	if err != nil {
		return nil, err
	}
	return repository.NewClient(coords,
		repository.WithCredentials(c.settings.Creds),
		repository.WithHTTPClient(httputil.NewClient(c.settings.Timeout, c.Logger)),
		repository.WithLogger(c.Logger),
	), nil
}

// withRetry runs fn once, or up to 1+retries times when --retries is set.
func (c *CLI) withRetry(ctx context.Context, fn func() error) error {
	if c.settings.Retries <= 0 {
		return fn()
	}
	return httputil.Retry(ctx, c.settings.Retries+1, c.retryDelay, func() error {
		err := fn()
		if err != nil {
			loggerFromContext(ctx).Debug("attempt failed", "err", err)
		}
		return err
	})
}
