// Package config collects the viewer's settings once at startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/kraitsura/backlog_viewer/pkg/backlog"
	"github.com/kraitsura/backlog_viewer/pkg/selection"
)

// EnvPrefix is prepended to every key when read from the environment:
// space_id is BACKLOG_SPACE_ID.
const EnvPrefix = "BACKLOG"

// DefaultEnvFile is read from the working directory when no config file
// is given.
const DefaultEnvFile = ".env"

// Config holds everything the core needs from the outside world.
type Config struct {
	SpaceID      string        `mapstructure:"space_id"`
	APIKey       string        `mapstructure:"api_key"`
	ProjectID    string        `mapstructure:"project_id"`
	StatusIDList string        `mapstructure:"status_id_list"` // comma separated
	BaseURL      string        `mapstructure:"base_url"`
	PageSize     int           `mapstructure:"page_size"`
	Timeout      time.Duration `mapstructure:"timeout"`
	CursorPolicy string        `mapstructure:"cursor_policy"`
}

var keys = []string{
	"space_id",
	"api_key",
	"project_id",
	"status_id_list",
	"base_url",
	"page_size",
	"timeout",
	"cursor_policy",
}

// Load reads configuration into v and decodes it. Precedence, lowest
// first: defaults, the config file (YAML/TOML/JSON by extension, or a
// dotenv file), BACKLOG_* environment variables, then any flags already
// bound to v.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	v.SetDefault("page_size", backlog.MaxCount)
	v.SetDefault("timeout", backlog.DefaultTimeout.String())
	v.SetDefault("cursor_policy", selection.Wrap.String())

	if err := readFile(v, configFile); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// readFile loads configFile, or ./.env when configFile is empty and the
// file exists.
func readFile(v *viper.Viper, configFile string) error {
	if configFile == "" {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return nil
		}
		configFile = DefaultEnvFile
	}

	if isEnvFile(configFile) {
		return readEnvFile(v, configFile)
	}

	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", configFile, err)
	}
	return nil
}

func isEnvFile(path string) bool {
	base := filepath.Base(path)
	return base == ".env" || strings.HasSuffix(base, ".env")
}

// readEnvFile loads a dotenv file. Its keys carry the BACKLOG_ prefix, so
// they are stripped and installed as defaults, leaving the real
// environment free to override them.
func readEnvFile(v *viper.Viper, path string) error {
	dv := viper.New()
	dv.SetConfigFile(path)
	dv.SetConfigType("env")
	if err := dv.ReadInConfig(); err != nil {
		return fmt.Errorf("read env file %s: %w", path, err)
	}
	prefix := strings.ToLower(EnvPrefix) + "_"
	for _, key := range dv.AllKeys() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		v.SetDefault(strings.TrimPrefix(key, prefix), dv.Get(key))
	}
	return nil
}

// applyDefaults sets default values for unset fields
func applyDefaults(cfg *Config) {
	cfg.SpaceID = strings.TrimSpace(cfg.SpaceID)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.ProjectID = strings.TrimSpace(cfg.ProjectID)

	if cfg.PageSize <= 0 {
		cfg.PageSize = backlog.MaxCount
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = backlog.DefaultTimeout
	}
	if cfg.CursorPolicy == "" {
		cfg.CursorPolicy = selection.Wrap.String()
	}
}

// Validate reports the first missing or malformed setting. Every error
// matches backlog.ErrConfig.
func (c *Config) Validate() error {
	var problems []string
	if c.SpaceID == "" && c.BaseURL == "" {
		problems = append(problems, "BACKLOG_SPACE_ID is required")
	}
	if c.APIKey == "" {
		problems = append(problems, "BACKLOG_API_KEY is required")
	}
	if c.ProjectID == "" {
		problems = append(problems, "BACKLOG_PROJECT_ID is required")
	}
	if len(c.StatusIDs()) == 0 {
		problems = append(problems, "BACKLOG_STATUS_ID_LIST must list at least one status id")
	}
	if c.PageSize > backlog.MaxCount {
		problems = append(problems, fmt.Sprintf("page size %d exceeds the API maximum of %d", c.PageSize, backlog.MaxCount))
	}
	if _, ok := selection.ParsePolicy(c.CursorPolicy); !ok {
		problems = append(problems, fmt.Sprintf("invalid cursor policy %q (must be wrap or clamp)", c.CursorPolicy))
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", backlog.ErrConfig, strings.Join(problems, "; "))
}

// StatusIDs splits StatusIDList.
func (c *Config) StatusIDs() []string {
	return backlog.ParseIDList(c.StatusIDList)
}

// Policy returns the parsed cursor policy, Wrap when invalid.
func (c *Config) Policy() selection.Policy {
	p, _ := selection.ParsePolicy(c.CursorPolicy)
	return p
}

// IssueQuery returns the listing filter described by the configuration.
func (c *Config) IssueQuery() backlog.IssueQuery {
	return backlog.IssueQuery{
		ProjectIDs: []string{c.ProjectID},
		StatusIDs:  c.StatusIDs(),
		Count:      c.PageSize,
		Sort:       backlog.DefaultSort,
	}
}

// ClientOptions returns the options for backlog.NewClient.
func (c *Config) ClientOptions() backlog.Options {
	return backlog.Options{
		SpaceID: c.SpaceID,
		APIKey:  c.APIKey,
		BaseURL: c.BaseURL,
		Timeout: c.Timeout,
	}
}

// IsConfigError reports whether err is a configuration problem.
func IsConfigError(err error) bool {
	return errors.Is(err, backlog.ErrConfig)
}
