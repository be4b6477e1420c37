// Package config loads server settings from folio.yml, FOLIO_* environment
// variables and the plain variable names older deployments use.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variables. FOLIO_SMTP__HOST sets smtp.host; a double
// underscore separates levels.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("FOLIO_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "FOLIO_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	applyLegacyEnv(cfg)
	return cfg, nil
}

// legacy variable names win over everything else when set
var legacyEnv = []struct {
	name string
	dst  func(*Config) *string
}{
	{"PORT", func(c *Config) *string { return &c.Port }},
	{"GIN_MODE", func(c *Config) *string { return &c.Mode }},
	{"SMTP_HOST", func(c *Config) *string { return &c.SMTP.Host }},
	{"SMTP_PORT", func(c *Config) *string { return &c.SMTP.Port }},
	{"SMTP_USER", func(c *Config) *string { return &c.SMTP.User }},
	{"SMTP_PASS", func(c *Config) *string { return &c.SMTP.Pass }},
	{"TO_EMAIL", func(c *Config) *string { return &c.SMTP.To }},
	{"ADMIN_USERNAME", func(c *Config) *string { return &c.Admin.Username }},
	{"ADMIN_PASSWORD", func(c *Config) *string { return &c.Admin.Password }},
}

func applyLegacyEnv(cfg *Config) {
	for _, e := range legacyEnv {
		if v := os.Getenv(e.name); v != "" {
			*e.dst(cfg) = v
		}
	}
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validModes = map[string]bool{
	"debug":   true,
	"release": true,
	"test":    true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if !validModes[c.Mode] {
		return fmt.Errorf("invalid mode %q: must be one of debug, release, test", c.Mode)
	}
	if c.Theme != "light" && c.Theme != "dark" {
		return fmt.Errorf("invalid theme %q: must be light or dark", c.Theme)
	}
	if c.ScrollThreshold < 0 {
		return fmt.Errorf("scroll_threshold must be non-negative")
	}
	if c.ViewIdleMinutes <= 0 {
		return fmt.Errorf("view_idle_minutes must be positive")
	}
	if c.Database == "" {
		return fmt.Errorf("database is required")
	}
	if c.RetentionMonths <= 0 {
		return fmt.Errorf("retention_months must be positive")
	}
	if c.WatchContent && c.ContentFile == "" {
		return fmt.Errorf("watch_content requires content_file")
	}
	return nil
}

// SMTPConfigured reports whether contact mail can be sent.
func (c *Config) SMTPConfigured() bool {
	return c.SMTP.User != "" && c.SMTP.Pass != ""
}
