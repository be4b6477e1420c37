package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 100.0, cfg.ScrollThreshold)
	assert.Equal(t, 12, cfg.RetentionMonths)
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.SMTPConfigured())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yml")

	original := DefaultConfig()
	original.Port = "9090"
	original.Theme = "light"
	original.ScrollThreshold = 120
	original.ContentFile = "content.yaml"
	original.WatchContent = true
	original.SMTP.User = "me@example.com"

	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", loaded.Port)
	assert.Equal(t, "light", loaded.Theme)
	assert.Equal(t, 120.0, loaded.ScrollThreshold)
	assert.Equal(t, "content.yaml", loaded.ContentFile)
	assert.True(t, loaded.WatchContent)
	assert.Equal(t, "me@example.com", loaded.SMTP.User)
	assert.Equal(t, "587", loaded.SMTP.Port)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Port, cfg.Port)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yml")
	require.NoError(t, os.WriteFile(path, []byte("theme: light\nadmin:\n  username: zach\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "zach", cfg.Admin.Username)
	assert.Equal(t, "admin123", cfg.Admin.Password)
	assert.Equal(t, "folio.db", cfg.Database)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FOLIO_THEME", "light")
	t.Setenv("FOLIO_SCROLL_THRESHOLD", "64")
	t.Setenv("FOLIO_SMTP__HOST", "mail.example.com")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, 64.0, cfg.ScrollThreshold)
	assert.Equal(t, "mail.example.com", cfg.SMTP.Host)
}

func TestLegacyEnv(t *testing.T) {
	t.Setenv("FOLIO_PORT", "7000")
	t.Setenv("PORT", "3000")
	t.Setenv("SMTP_USER", "user")
	t.Setenv("SMTP_PASS", "pass")
	t.Setenv("TO_EMAIL", "inbox@example.com")
	t.Setenv("ADMIN_PASSWORD", "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "inbox@example.com", cfg.SMTP.To)
	assert.Equal(t, "s3cret", cfg.Admin.Password)
	assert.True(t, cfg.SMTPConfigured())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Port = "" }},
		{"bad mode", func(c *Config) { c.Mode = "prod" }},
		{"bad theme", func(c *Config) { c.Theme = "sepia" }},
		{"negative threshold", func(c *Config) { c.ScrollThreshold = -1 }},
		{"zero view idle", func(c *Config) { c.ViewIdleMinutes = 0 }},
		{"no database", func(c *Config) { c.Database = "" }},
		{"zero retention", func(c *Config) { c.RetentionMonths = 0 }},
		{"watch without file", func(c *Config) { c.WatchContent = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
