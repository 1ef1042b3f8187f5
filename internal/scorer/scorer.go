package scorer

import (
	"math"

	"github.com/sells-group/lead-agent/internal/config"
	"github.com/sells-group/lead-agent/internal/model"
)

// Scorer computes Fit, Intent, Closing and Total scores for a lead against a
// campaign. A Scorer holds only its config and is safe for concurrent use.
type Scorer struct {
	cfg config.ScorerConfig
}

// New creates a Scorer with the given config.
func New(cfg config.ScorerConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Config returns the scorer's configuration.
func (s *Scorer) Config() config.ScorerConfig {
	return s.cfg
}

// scoreCard accumulates the predicates that fired while scoring one lead.
type scoreCard struct {
	reasons        []reason
	titleMatched   bool
	signalsMatched int
}

// add records a reason worth points on a sub-score with the given weight.
// Reasons that contributed nothing are dropped.
func (sc *scoreCard) add(text string, points, weight float64) {
	if points <= 0 {
		return
	}
	sc.reasons = append(sc.reasons, reason{text: text, impact: points * weight})
}

// Score scores a single lead. It is a pure function of its inputs.
func (s *Scorer) Score(lead model.Lead, c model.Campaign) model.ScoredLead {
	var sc scoreCard

	fit := clampScore(s.fit(lead, c, &sc))
	intent := clampScore(s.intent(lead, c, &sc))
	closing := clampScore(s.closing(lead, c, &sc))

	return model.ScoredLead{
		Lead:             lead,
		FitScore:         fit,
		IntentScore:      intent,
		ClosingScore:     closing,
		TotalScore:       s.Total(fit, intent, closing),
		SuggestedChannel: suggestChannel(lead, c, &sc),
		Rationale:        s.rationale(lead, &sc),
	}
}

// Total combines the three sub-scores using the configured weights, rounded
// to the nearest integer.
func (s *Scorer) Total(fit, intent, closing int) int {
	total := s.cfg.FitWeight*float64(fit) +
		s.cfg.IntentWeight*float64(intent) +
		s.cfg.ClosingWeight*float64(closing)
	return int(math.Round(total))
}

// clampScore rounds v and clamps it to 0-100.
func clampScore(v float64) int {
	return int(math.Round(math.Max(0, math.Min(100, v))))
}
