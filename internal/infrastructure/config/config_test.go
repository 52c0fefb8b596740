package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starfleet-go/internal/infrastructure/config"
)

func TestSetDefaults(t *testing.T) {
	cfg := &config.Config{}

	config.SetDefaults(cfg)

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "starfleet.db", cfg.Database.Path)
	assert.Equal(t, "localhost:8080", cfg.Server.Address)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 21, cfg.Starfield.VisibleWidth)
	assert.Equal(t, 250*time.Millisecond, cfg.Starfield.TickInterval)
	assert.Equal(t, 3*time.Second, cfg.Starfield.Dwell)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	require.NoError(t, config.ValidateConfig(cfg))
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  address: "0.0.0.0:9000"
starfield:
  visible_width: 31
  dwell: 5s
`), 0o644))
	t.Setenv("SF_STARFIELD_TICK_INTERVAL", "100ms")
	t.Setenv("DATABASE_URL", "")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Address)
	assert.Equal(t, 31, cfg.Starfield.VisibleWidth)
	assert.Equal(t, 5*time.Second, cfg.Starfield.Dwell)
	assert.Equal(t, 100*time.Millisecond, cfg.Starfield.TickInterval)
}

func TestLoadConfig_DatabaseURLOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgresql://u:p@db:5432/starfleet")
	t.Setenv("SF_DATABASE_TYPE", "postgres")

	cfg, err := config.LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "postgresql://u:p@db:5432/starfleet", cfg.Database.URL)
}

func TestValidateConfig_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"offset beyond width", func(c *config.Config) { c.Starfield.PlayerOffset = c.Starfield.VisibleWidth }},
		{"tiny window", func(c *config.Config) { c.Starfield.VisibleWidth = 2 }},
		{"unknown database", func(c *config.Config) { c.Database.Type = "mysql" }},
		{"file logging without path", func(c *config.Config) { c.Logging.Output = "file" }},
		{"postgres without host or url", func(c *config.Config) { c.Database.Type = "postgres"; c.Database.Host = "" }},
		{"unknown sql log level", func(c *config.Config) { c.Database.LogLevel = "trace" }},
		{"relative metrics path", func(c *config.Config) { c.Metrics.Path = "metrics" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			config.SetDefaults(cfg)
			tt.mutate(cfg)

			assert.Error(t, config.ValidateConfig(cfg))
		})
	}
}

func TestUserConfigHandler_RoundTrip(t *testing.T) {
	handler, err := config.NewUserConfigHandlerIn(t.TempDir())
	require.NoError(t, err)

	empty, err := handler.Load()
	require.NoError(t, err)
	assert.Empty(t, empty.DefaultEmail)

	require.NoError(t, handler.SetDefaultEmail("pilot@example.com"))
	loaded, err := handler.Load()
	require.NoError(t, err)
	assert.Equal(t, "pilot@example.com", loaded.DefaultEmail)

	require.NoError(t, handler.ClearDefaultEmail())
	loaded, err = handler.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded.DefaultEmail)
}
