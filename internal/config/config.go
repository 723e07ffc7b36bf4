package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides; "__" separates nested keys, so
// JOURNAL__PULL_REQUESTS__ENABLED sets pull_requests.enabled.
const EnvPrefix = "JOURNAL__"

// ConfigPathEnv points at an alternative configuration file.
const ConfigPathEnv = EnvPrefix + "CONFIG"

const maskedSecret = "***"

var secretKeys = []string{
	"pull_requests.auth.personal_access_token",
	"jira.auth.personal_access_token",
}

type Config struct {
	Dir          string             `koanf:"dir"`
	Reminders    ReminderConfig     `koanf:"reminders"`
	Notes        NotesConfig        `koanf:"notes"`
	Todo         TodoConfig         `koanf:"todo"`
	PullRequests PullRequestsConfig `koanf:"pull_requests"`
	Jira         JiraConfig         `koanf:"jira"`

	k *koanf.Koanf
}

type ReminderConfig struct {
	Enabled  bool   `koanf:"enabled"`
	File     string `koanf:"file"` // Relative paths are resolved against dir
	Template string `koanf:"template"`
}

type NotesConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Template string `koanf:"template"`
}

type TodoConfig struct {
	Template string `koanf:"template"`
}

type PullRequestsConfig struct {
	Enabled  bool       `koanf:"enabled"`
	BaseURL  string     `koanf:"base_url"`
	Timeout  int        `koanf:"timeout"` // Seconds for the whole fetch
	Template string     `koanf:"template"`
	Auth     AuthConfig `koanf:"auth"`
	Select   []Selector `koanf:"select"`
}

type AuthConfig struct {
	PersonalAccessToken string `koanf:"personal_access_token"`
}

// JiraConfig selects open issues with a JQL query built from Query, one
// key="value" clause per entry.
type JiraConfig struct {
	Enabled  bool              `koanf:"enabled"`
	BaseURL  string            `koanf:"base_url"` // Search endpoint, e.g. https://x.atlassian.net/rest/api/2/search
	Timeout  int               `koanf:"timeout"`  // Seconds for the whole fetch
	Template string            `koanf:"template"`
	Auth     JiraAuthConfig    `koanf:"auth"`
	Query    map[string]string `koanf:"query"`
}

type JiraAuthConfig struct {
	User                string `koanf:"user"`
	PersonalAccessToken string `koanf:"personal_access_token"`
}

// Selector picks pull requests of one repository, optionally narrowed by
// author and label.
type Selector struct {
	Repo    string   `koanf:"repo"`
	Authors []string `koanf:"authors"`
	Labels  []string `koanf:"labels"`
}

// ResolvePath returns the configuration file location: $JOURNAL__CONFIG or
// ~/.journal.yaml.
func ResolvePath() string {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return expandPath(path)
	}
	return expandPath(GetDefaultConfigPath())
}

func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath = expandPath(configPath)
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("%s does not exist. We need a configuration file to work.\n"+
			"You can either use a '.journal.yaml' file in your HOME directory or configure it with the %s environment variable",
			configPath, ConfigPathEnv)
	}
	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}
	// The config path selector is not a setting.
	k.Delete("config")

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Dir = expandPath(cfg.Dir)
	cfg.k = k

	return &cfg, nil
}

func envKey(s string) string {
	key := strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "__", ".")
}

func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("dir is required (set it in the config file or via %sDIR)", EnvPrefix)
	}

	if c.PullRequests.Enabled {
		if c.PullRequests.Auth.PersonalAccessToken == "" {
			return fmt.Errorf("pull_requests.auth.personal_access_token is required when pull requests are enabled")
		}
		if c.PullRequests.Timeout <= 0 {
			return fmt.Errorf("pull_requests.timeout must be positive")
		}
		for _, sel := range c.PullRequests.Select {
			if _, _, err := sel.OwnerName(); err != nil {
				return err
			}
		}
	}

	if c.Jira.Enabled {
		switch {
		case c.Jira.BaseURL == "":
			return fmt.Errorf("jira.base_url is required when jira is enabled")
		case c.Jira.Auth.User == "" || c.Jira.Auth.PersonalAccessToken == "":
			return fmt.Errorf("jira.auth.user and jira.auth.personal_access_token are required when jira is enabled")
		case len(c.Jira.Query) == 0:
			return fmt.Errorf("jira.query needs at least one field")
		case c.Jira.Timeout <= 0:
			return fmt.Errorf("jira.timeout must be positive")
		}
	}

	return nil
}

// OwnerName splits Repo into its two components.
func (s Selector) OwnerName() (string, string, error) {
	parts := strings.Split(s.Repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%q did not have exactly 2 components", s.Repo)
	}
	return parts[0], parts[1], nil
}

// ReminderPath returns the reminder store location.
func (c *Config) ReminderPath() string {
	path := expandPath(c.Reminders.File)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// FetchTimeout bounds the pull request fetch.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.PullRequests.Timeout) * time.Second
}

// JiraTimeout bounds the Jira search.
func (c *Config) JiraTimeout() time.Duration {
	return time.Duration(c.Jira.Timeout) * time.Second
}

// Show writes the effective configuration as YAML, with secrets masked.
func (c *Config) Show(w io.Writer) error {
	k := c.k
	if k == nil {
		k = koanf.New(".")
	} else {
		k = k.Copy()
	}

	for _, key := range secretKeys {
		if k.String(key) != "" {
			k.Set(key, maskedSecret)
		}
	}
	k.Set("dir", c.Dir)

	data, err := k.Marshal(yaml.Parser())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
