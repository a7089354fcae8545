// Package config provides YAML-based configuration loading for sitewatch.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file the CLI reads when --config is not given.
const DefaultPath = "sitewatch.yaml"

// ScheduleParser accepts 5-field cron expressions (minute, hour, dom, month,
// dow) and descriptors such as @weekly. The digest scheduler parses with it
// too, so every schedule that validates here can be run.
var ScheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Config is the top-level sitewatch configuration, loaded from sitewatch.yaml.
type Config struct {
	Project        string          `yaml:"project"`
	Address        string          `yaml:"address"`
	Database       DatabaseConfig  `yaml:"database"`
	Dashboard      DashboardConfig `yaml:"dashboard"`
	ProgressConfig string          `yaml:"progress_config"`
	Slack          SlackConfig     `yaml:"slack"`
	Digest         DigestConfig    `yaml:"digest"`
}

// DatabaseConfig selects and configures the report store.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// DashboardConfig holds the JSON API listener settings.
type DashboardConfig struct {
	Port int `yaml:"port"`
}

// SlackConfig holds credentials for the progress digest.
type SlackConfig struct {
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

// DigestConfig controls when the progress digest is posted.
type DigestConfig struct {
	Schedule string `yaml:"schedule"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config. Secrets may be
// supplied through SITEWATCH_SLACK_BOT_TOKEN and SITEWATCH_DB_PASSWORD.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	envOverride(&cfg.Slack.BotToken, "SITEWATCH_SLACK_BOT_TOKEN")
	envOverride(&cfg.Database.Password, "SITEWATCH_DB_PASSWORD")
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SlackEnabled reports whether the digest has somewhere to post.
func (c *Config) SlackEnabled() bool {
	return c.Slack.BotToken != "" && c.Slack.ChannelID != ""
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			c.Database.Path = "sitewatch.db"
		}
	case "mysql":
		if c.Database.Host == "" {
			c.Database.Host = "127.0.0.1"
		}
		if c.Database.Port == 0 {
			c.Database.Port = 3306
		}
		if c.Database.User == "" {
			c.Database.User = "root"
		}
		if c.Database.Name == "" {
			c.Database.Name = "sitewatch"
		}
	}
	if c.Dashboard.Port == 0 {
		c.Dashboard.Port = 8080
	}
	if c.ProgressConfig == "" {
		c.ProgressConfig = "progress-config.json"
	}
	if c.Digest.Schedule == "" {
		c.Digest.Schedule = "0 7 * * 0"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Project == "" {
		errs = append(errs, "project is required")
	}
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not supported (use sqlite or mysql)", c.Database.Driver))
	}
	if c.Database.Port < 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port %d is out of range", c.Database.Port))
	}
	if c.Dashboard.Port < 1 || c.Dashboard.Port > 65535 {
		errs = append(errs, fmt.Sprintf("dashboard.port %d is out of range", c.Dashboard.Port))
	}
	if _, err := ScheduleParser.Parse(c.Digest.Schedule); err != nil {
		errs = append(errs, fmt.Sprintf("digest.schedule %q is invalid: %v", c.Digest.Schedule, err))
	}
	if c.Slack.BotToken != "" && c.Slack.ChannelID == "" {
		errs = append(errs, "slack.channel_id is required when slack.bot_token is set")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}
