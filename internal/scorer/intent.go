package scorer

import (
	"fmt"
	"math"
	"strings"

	"github.com/sells-group/lead-agent/internal/match"
	"github.com/sells-group/lead-agent/internal/model"
)

// intent returns the raw Intent points: a small activity baseline for any
// buying signal the lead shows, plus geometrically decaying credit for each
// lead intent that matches a campaign intent signal. A campaign without
// intent signals scores zero here.
func (s *Scorer) intent(lead model.Lead, c model.Campaign, sc *scoreCard) float64 {
	w := s.cfg.IntentWeight

	if len(c.IntentSignals) == 0 {
		return 0
	}

	activity := math.Min(float64(len(lead.Intents))*s.cfg.ActivityPointsPerIntent, s.cfg.ActivityPointsCap)
	points := activity

	matched := matchedIntents(lead.Intents, c.IntentSignals)
	sc.signalsMatched = len(matched)

	credit := s.cfg.FirstSignalPoints
	for _, in := range matched {
		points += credit
		sc.add(fmt.Sprintf("Active signal: %s", in), credit, w)
		credit *= s.cfg.SignalDecay
	}

	if len(matched) == 0 && len(lead.Intents) > 0 {
		sc.add(fmt.Sprintf("Shows %d buying %s", len(lead.Intents), plural(len(lead.Intents), "signal", "signals")), activity, w)
	}

	return points
}

// matchedIntents returns the lead intents, in lead order, that match any of
// the campaign signals. A signal matches when it is a case-insensitive
// substring of the intent, so "hiring" matches "Hiring SDRs" but an intent
// of "AI" does not match "Raising Series B".
func matchedIntents(intents, signals []string) []string {
	var out []string
	for _, in := range intents {
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		for _, sig := range signals {
			sig = strings.TrimSpace(sig)
			if sig == "" {
				continue
			}
			if match.Contains(in, sig) {
				out = append(out, in)
				break
			}
		}
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
