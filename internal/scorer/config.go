// Package scorer implements multi-factor lead scoring for a campaign.
package scorer

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-agent/internal/config"
)

// DefaultScorerConfig returns a config.ScorerConfig with sensible defaults.
// Sub-score weights sum to 1.
func DefaultScorerConfig() config.ScorerConfig {
	return config.ScorerConfig{
		// Weights (sum = 1).
		FitWeight:     0.40,
		IntentWeight:  0.35,
		ClosingWeight: 0.25,

		// Fit (max 100).
		IndustryPoints:       35,
		SizeInRangePoints:    20,
		SizeNeutralPoints:    10,
		LocationPoints:       15,
		TechPointsPerOverlap: 10,
		TechPointsCap:        20,
		TitlePoints:          10,

		// Intent.
		ActivityPointsPerIntent: 5,
		ActivityPointsCap:       20,
		FirstSignalPoints:       45,
		SignalDecay:             0.5,

		// Closing (max 100).
		UrgencyHighPoints:   50,
		UrgencyMediumPoints: 35,
		UrgencyLowPoints:    20,
		MomentumPoints:      25,
		RevenuePointsMax:    25,

		MaxRationale: 4,
	}
}

// WeightSum returns the sum of the three sub-score weights.
func WeightSum(c config.ScorerConfig) float64 {
	return c.FitWeight + c.IntentWeight + c.ClosingWeight
}

// ValidateConfig checks that a ScorerConfig is internally consistent.
func ValidateConfig(c config.ScorerConfig) error {
	var errs []string

	weights := []struct {
		name  string
		value float64
	}{
		{"fit_weight", c.FitWeight},
		{"intent_weight", c.IntentWeight},
		{"closing_weight", c.ClosingWeight},
	}
	for _, w := range weights {
		if w.value < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", w.name))
		}
	}

	// Allow tolerance for floating-point.
	if sum := WeightSum(c); math.Abs(sum-1) > 0.001 {
		errs = append(errs, fmt.Sprintf("weights should sum to 1, got %.3f", sum))
	}

	points := []struct {
		name  string
		value float64
	}{
		{"industry_points", c.IndustryPoints},
		{"size_in_range_points", c.SizeInRangePoints},
		{"size_neutral_points", c.SizeNeutralPoints},
		{"location_points", c.LocationPoints},
		{"tech_points_per_overlap", c.TechPointsPerOverlap},
		{"tech_points_cap", c.TechPointsCap},
		{"title_points", c.TitlePoints},
		{"activity_points_per_intent", c.ActivityPointsPerIntent},
		{"activity_points_cap", c.ActivityPointsCap},
		{"first_signal_points", c.FirstSignalPoints},
		{"urgency_high_points", c.UrgencyHighPoints},
		{"urgency_medium_points", c.UrgencyMediumPoints},
		{"urgency_low_points", c.UrgencyLowPoints},
		{"momentum_points", c.MomentumPoints},
		{"revenue_points_max", c.RevenuePointsMax},
	}
	for _, p := range points {
		if p.value < 0 || p.value > 100 {
			errs = append(errs, fmt.Sprintf("%s must be between 0 and 100", p.name))
		}
	}

	if c.SignalDecay < 0 || c.SignalDecay >= 1 {
		errs = append(errs, "signal_decay must be in [0, 1)")
	}
	if c.UrgencyLowPoints > c.UrgencyMediumPoints || c.UrgencyMediumPoints > c.UrgencyHighPoints {
		errs = append(errs, "urgency points must satisfy low <= medium <= high")
	}
	if c.MaxRationale < 2 {
		errs = append(errs, "max_rationale must be >= 2")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
