package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "static", cfg.Catalog.Driver)
	assert.Equal(t, 30, cfg.Catalog.TimeoutSecs)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.InDelta(t, 20, cfg.Server.RateLimit, 0.001)
	assert.Equal(t, 40, cfg.Server.RateBurst)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 4, cfg.Batch.MaxConcurrentCampaigns)

	assert.InDelta(t, 0.40, cfg.Scorer.FitWeight, 0.001)
	assert.InDelta(t, 0.35, cfg.Scorer.IntentWeight, 0.001)
	assert.InDelta(t, 0.25, cfg.Scorer.ClosingWeight, 0.001)
	assert.InDelta(t, 35, cfg.Scorer.IndustryPoints, 0.001)
	assert.InDelta(t, 45, cfg.Scorer.FirstSignalPoints, 0.001)
	assert.InDelta(t, 0.5, cfg.Scorer.SignalDecay, 0.001)
	assert.Equal(t, 4, cfg.Scorer.MaxRationale)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
catalog:
  driver: sqlite
  dsn: leads.db
log:
  level: debug
  format: console
server:
  port: 9090
scorer:
  fit_weight: 0.5
  intent_weight: 0.3
  closing_weight: 0.2
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Catalog.Driver)
	assert.Equal(t, "leads.db", cfg.Catalog.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.InDelta(t, 0.5, cfg.Scorer.FitWeight, 0.001)
	assert.InDelta(t, 0.3, cfg.Scorer.IntentWeight, 0.001)
	// Defaults still apply for unset values
	assert.InDelta(t, 35, cfg.Scorer.IndustryPoints, 0.001)
	assert.Equal(t, 4, cfg.Batch.MaxConcurrentCampaigns)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
catalog:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("LEADAGENT_CATALOG_DRIVER", "postgres")
	t.Setenv("LEADAGENT_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Catalog.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("LEADAGENT_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Catalog.Driver = "static"
	cfg.Batch.MaxConcurrentCampaigns = 4
	cfg.Server.Port = 8080
	cfg.Server.RateLimit = 20
	cfg.Server.RateBurst = 40
	return cfg
}

func TestValidateServe_ValidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 9090

	assert.NoError(t, cfg.Validate("serve"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateServe_RateBurst(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.RateBurst = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rate_burst")

	cfg.Server.RateLimit = 0
	assert.NoError(t, cfg.Validate("serve"))
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestValidateConcurrencyBounds(t *testing.T) {
	cfg := validDefaults()

	cfg.Batch.MaxConcurrentCampaigns = 0
	err := cfg.Validate("batch")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "max_concurrent_campaigns must be between 1 and 50")

	cfg.Batch.MaxConcurrentCampaigns = 51
	assert.Error(t, cfg.Validate("batch"))

	cfg.Batch.MaxConcurrentCampaigns = 50
	assert.NoError(t, cfg.Validate("batch"))
}

func TestValidateCatalogDrivers(t *testing.T) {
	tests := []struct {
		name    string
		catalog CatalogConfig
		wantErr string
	}{
		{"static", CatalogConfig{Driver: "static"}, ""},
		{"file ok", CatalogConfig{Driver: "file", Path: "leads.json"}, ""},
		{"file missing path", CatalogConfig{Driver: "file"}, "catalog.path is required"},
		{"sqlite missing dsn", CatalogConfig{Driver: "sqlite"}, "catalog.dsn is required for the sqlite driver"},
		{"postgres ok", CatalogConfig{Driver: "postgres", DSN: "postgres://localhost/leads"}, ""},
		{"remote missing url", CatalogConfig{Driver: "remote"}, "catalog.url is required"},
		{"unknown driver", CatalogConfig{Driver: "mongo"}, `catalog.driver "mongo" is not supported`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDefaults()
			cfg.Catalog = tt.catalog
			err := cfg.Validate("prioritize")
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
