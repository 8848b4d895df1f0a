package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mvnresolve/pkg/httputil"
	"github.com/matzehuels/mvnresolve/pkg/repository"
)

// Config is the on-disk configuration, read from
// $XDG_CONFIG_HOME/mvnresolve/config.toml.
//
//	repository = "https://nexus.example.com/repository/maven-public/"
//	username   = "ci"
//	timeout    = "30s"
//	retries    = 2
//
//	[repositories.internal]
//	url      = "https://nexus.example.com/repository/releases/"
//	username = "deploy"
//	token    = "..."
type Config struct {
	Repository   string                      `toml:"repository"`
	Username     string                      `toml:"username"`
	Token        string                      `toml:"token"`
	Timeout      duration                    `toml:"timeout"`
	Retries      int                         `toml:"retries"`
	Repositories map[string]RepositoryConfig `toml:"repositories"`
}

// RepositoryConfig is a named repository, selectable with --repo <name>.
type RepositoryConfig struct {
	URL      string `toml:"url"`
	Username string `toml:"username"`
	Token    string `toml:"token"`
}

// duration decodes TOML strings such as "30s" or "2m".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// configPath returns the config file using XDG standard (~/.config/mvnresolve/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, configFile), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, configFile), nil
}

// loadConfig reads the config file at path. A missing file yields an empty
// Config unless the path was given explicitly. Unknown keys are logged and
// otherwise ignored.
func loadConfig(path string, explicit bool, logger *log.Logger) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		logger.Warn("unknown config keys", "file", path, "keys", strings.Join(keys, ", "))
	}
	if cfg.Retries < 0 {
		return nil, fmt.Errorf("config %s: retries must not be negative", path)
	}
	return &cfg, nil
}

// lookupRepository resolves a --repo value: a name from [repositories] or
// an http(s) URL.
func (cfg *Config) lookupRepository(name string) (RepositoryConfig, error) {
	if rc, ok := cfg.Repositories[name]; ok {
		if rc.URL == "" {
			return RepositoryConfig{}, fmt.Errorf("repository %q has no url", name)
		}
		return rc, nil
	}
	if strings.Contains(name, "://") {
		return RepositoryConfig{URL: name}, nil
	}
	return RepositoryConfig{}, fmt.Errorf("unknown repository %q (known: %s)", name, cfg.repositoryNames())
}

func (cfg *Config) repositoryNames() string {
	if len(cfg.Repositories) == 0 {
		return "none"
	}
	names := make([]string, 0, len(cfg.Repositories))
	for name := range cfg.Repositories {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// settings are the effective connection parameters after merging flags,
// environment and config file.
type settings struct {
	Repository string
	Creds      repository.Credentials
	Timeout    time.Duration
	Retries    int
}

// resolve merges the layers. Precedence: flags > env > named repository >
// config file > defaults.
func (cfg *Config) resolve(flags globalFlags, env func(string) string) (settings, error) {
	s := settings{
		Repository: repository.DefaultRepository,
		Creds:      repository.Credentials{Username: cfg.Username, Token: cfg.Token},
		Timeout:    cfg.Timeout.Duration,
		Retries:    cfg.Retries,
	}
	if cfg.Repository != "" {
		s.Repository = cfg.Repository
	}

	if flags.repo != "" {
		rc, err := cfg.lookupRepository(flags.repo)
		if err != nil {
			return settings{}, err
		}
		s.Repository = rc.URL
		if rc.Username != "" {
			s.Creds.Username = rc.Username
		}
		if rc.Token != "" {
			s.Creds.Token = rc.Token
		}
	}

	if v := env(envUsername); v != "" {
		s.Creds.Username = v
	}
	if v := env(envToken); v != "" {
		s.Creds.Token = v
	}

	if flags.username != "" {
		s.Creds.Username = flags.username
	}
	if flags.token != "" {
		s.Creds.Token = flags.token
	}
	if flags.timeoutSet {
		s.Timeout = flags.timeout
	}
	if flags.retriesSet {
		s.Retries = flags.retries
	}
	if s.Retries < 0 {
		return settings{}, fmt.Errorf("--retries must not be negative")
	}
	return s, nil
}

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.flags.config
			if path == "" {
				p, err := configPath()
				if err != nil {
					return fmt.Errorf("get config path: %w", err)
				}
				path = p
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// configShowCommand creates the "config show" subcommand. Tokens are never printed.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			s := c.settings
			timeout := s.Timeout
			if timeout == 0 {
				timeout = httputil.DefaultTimeout
			}
			printKeyValue(out, "repository", s.Repository)
			printKeyValue(out, "credentials", s.Creds.String())
			printKeyValue(out, "timeout", timeout.String())
			printKeyValue(out, "retries", strconv.Itoa(s.Retries))
			if s.Creds.Username != "" && !s.Creds.Valid() {
				printWarning(out, "username set without token; requests are sent anonymously")
			}
			if len(c.config.Repositories) > 0 {
				printInfo(out, "named repositories: %s", c.config.repositoryNames())
			}
			return nil
		},
	}
}
