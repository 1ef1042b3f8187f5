package scorer

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-agent/internal/config"
)

func TestDefaultScorerConfig_Valid(t *testing.T) {
	cfg := DefaultScorerConfig()
	require.NoError(t, ValidateConfig(cfg))
	assert.InDelta(t, 1.0, WeightSum(cfg), 0.0001)
}

func TestDefaultScorerConfig_MatchesLoadedDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	loaded, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultScorerConfig(), loaded.Scorer)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.ScorerConfig)
		wantErr string
	}{
		{"negative weight", func(c *config.ScorerConfig) { c.FitWeight = -0.1; c.IntentWeight = 0.85 }, "fit_weight must be >= 0"},
		{"weights off", func(c *config.ScorerConfig) { c.ClosingWeight = 0.5 }, "weights should sum to 1"},
		{"points too large", func(c *config.ScorerConfig) { c.IndustryPoints = 120 }, "industry_points must be between 0 and 100"},
		{"decay out of range", func(c *config.ScorerConfig) { c.SignalDecay = 1 }, "signal_decay"},
		{"urgency order", func(c *config.ScorerConfig) { c.UrgencyLowPoints = 60 }, "low <= medium <= high"},
		{"rationale too short", func(c *config.ScorerConfig) { c.MaxRationale = 1 }, "max_rationale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultScorerConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTotal_UsesConfiguredWeights(t *testing.T) {
	cfg := DefaultScorerConfig()
	cfg.FitWeight = 1
	cfg.IntentWeight = 0
	cfg.ClosingWeight = 0
	s := New(cfg)

	assert.Equal(t, 42, s.Total(42, 100, 100))
	assert.Equal(t, cfg, s.Config())
}
