package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Scorer  ScorerConfig  `yaml:"scorer" mapstructure:"scorer"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// CatalogConfig selects where the lead catalog is loaded from.
type CatalogConfig struct {
	// Driver is one of static, file, sqlite, postgres, remote.
	Driver string `yaml:"driver" mapstructure:"driver"`
	// Path is the catalog file for the file driver (.json, .yaml, .yml, .csv, .xlsx).
	Path string `yaml:"path" mapstructure:"path"`
	// DSN is the database connection string for the sqlite and postgres drivers.
	DSN string `yaml:"dsn" mapstructure:"dsn"`
	// URL is an http(s) or ftp location for the remote driver.
	URL string `yaml:"url" mapstructure:"url"`
	// Format overrides extension-based format detection (json, yaml, csv, xlsx).
	Format      string `yaml:"format" mapstructure:"format"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// ScorerConfig holds the weights and point values used by the lead scorer.
// Sub-score weights must sum to 1.
type ScorerConfig struct {
	FitWeight     float64 `yaml:"fit_weight" mapstructure:"fit_weight"`
	IntentWeight  float64 `yaml:"intent_weight" mapstructure:"intent_weight"`
	ClosingWeight float64 `yaml:"closing_weight" mapstructure:"closing_weight"`

	// Fit points.
	IndustryPoints       float64 `yaml:"industry_points" mapstructure:"industry_points"`
	SizeInRangePoints    float64 `yaml:"size_in_range_points" mapstructure:"size_in_range_points"`
	SizeNeutralPoints    float64 `yaml:"size_neutral_points" mapstructure:"size_neutral_points"`
	LocationPoints       float64 `yaml:"location_points" mapstructure:"location_points"`
	TechPointsPerOverlap float64 `yaml:"tech_points_per_overlap" mapstructure:"tech_points_per_overlap"`
	TechPointsCap        float64 `yaml:"tech_points_cap" mapstructure:"tech_points_cap"`
	TitlePoints          float64 `yaml:"title_points" mapstructure:"title_points"`

	// Intent points.
	ActivityPointsPerIntent float64 `yaml:"activity_points_per_intent" mapstructure:"activity_points_per_intent"`
	ActivityPointsCap       float64 `yaml:"activity_points_cap" mapstructure:"activity_points_cap"`
	FirstSignalPoints       float64 `yaml:"first_signal_points" mapstructure:"first_signal_points"`
	SignalDecay             float64 `yaml:"signal_decay" mapstructure:"signal_decay"`

	// Closing points.
	UrgencyHighPoints   float64 `yaml:"urgency_high_points" mapstructure:"urgency_high_points"`
	UrgencyMediumPoints float64 `yaml:"urgency_medium_points" mapstructure:"urgency_medium_points"`
	UrgencyLowPoints    float64 `yaml:"urgency_low_points" mapstructure:"urgency_low_points"`
	MomentumPoints      float64 `yaml:"momentum_points" mapstructure:"momentum_points"`
	RevenuePointsMax    float64 `yaml:"revenue_points_max" mapstructure:"revenue_points_max"`

	MaxRationale int `yaml:"max_rationale" mapstructure:"max_rationale"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port             int      `yaml:"port" mapstructure:"port"`
	ReadTimeoutSecs  int      `yaml:"read_timeout_secs" mapstructure:"read_timeout_secs"`
	WriteTimeoutSecs int      `yaml:"write_timeout_secs" mapstructure:"write_timeout_secs"`
	RateLimit        float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst        int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	MaxBodyBytes     int64    `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	AllowedOrigins   []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	MaxConcurrentCampaigns int `yaml:"max_concurrent_campaigns" mapstructure:"max_concurrent_campaigns"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADAGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("catalog.driver", "static")
	v.SetDefault("catalog.timeout_secs", 30)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_secs", 10)
	v.SetDefault("server.write_timeout_secs", 30)
	v.SetDefault("server.rate_limit", 20)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("batch.max_concurrent_campaigns", 4)

	v.SetDefault("scorer.fit_weight", 0.40)
	v.SetDefault("scorer.intent_weight", 0.35)
	v.SetDefault("scorer.closing_weight", 0.25)
	v.SetDefault("scorer.industry_points", 35)
	v.SetDefault("scorer.size_in_range_points", 20)
	v.SetDefault("scorer.size_neutral_points", 10)
	v.SetDefault("scorer.location_points", 15)
	v.SetDefault("scorer.tech_points_per_overlap", 10)
	v.SetDefault("scorer.tech_points_cap", 20)
	v.SetDefault("scorer.title_points", 10)
	v.SetDefault("scorer.activity_points_per_intent", 5)
	v.SetDefault("scorer.activity_points_cap", 20)
	v.SetDefault("scorer.first_signal_points", 45)
	v.SetDefault("scorer.signal_decay", 0.5)
	v.SetDefault("scorer.urgency_high_points", 50)
	v.SetDefault("scorer.urgency_medium_points", 35)
	v.SetDefault("scorer.urgency_low_points", 20)
	v.SetDefault("scorer.momentum_points", 25)
	v.SetDefault("scorer.revenue_points_max", 25)
	v.SetDefault("scorer.max_rationale", 4)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings required by the given command mode
// (serve, prioritize, batch, import, catalog).
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
		if c.Server.RateLimit < 0 {
			errs = append(errs, "server.rate_limit must be >= 0")
		}
		if c.Server.RateLimit > 0 && c.Server.RateBurst <= 0 {
			errs = append(errs, "server.rate_burst must be > 0 when rate_limit is set")
		}
	case "batch":
		if c.Batch.MaxConcurrentCampaigns < 1 || c.Batch.MaxConcurrentCampaigns > 50 {
			errs = append(errs, "batch.max_concurrent_campaigns must be between 1 and 50")
		}
	case "prioritize", "import", "catalog":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	switch c.Catalog.Driver {
	case "static":
	case "file":
		if c.Catalog.Path == "" {
			errs = append(errs, "catalog.path is required for the file driver")
		}
	case "sqlite", "postgres":
		if c.Catalog.DSN == "" {
			errs = append(errs, fmt.Sprintf("catalog.dsn is required for the %s driver", c.Catalog.Driver))
		}
	case "remote":
		if c.Catalog.URL == "" {
			errs = append(errs, "catalog.url is required for the remote driver")
		}
	default:
		errs = append(errs, fmt.Sprintf("catalog.driver %q is not supported", c.Catalog.Driver))
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
