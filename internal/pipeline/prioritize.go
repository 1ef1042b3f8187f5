package pipeline

import (
	"sort"

	"github.com/sells-group/lead-agent/internal/model"
	"github.com/sells-group/lead-agent/internal/scorer"
)

// Prioritize filters leads against the campaign, scores the survivors and
// ranks them by TotalScore, highest first. Ties keep catalog order. When the
// filter removes every lead, the whole catalog is scored instead so a
// non-empty catalog never yields an empty ranking.
func Prioritize(leads []model.Lead, c model.Campaign, s *scorer.Scorer) []model.ScoredLead {
	ranked, _ := prioritize(leads, c, s)
	return ranked
}

// prioritize is Prioritize that also reports whether the fallback was used.
func prioritize(leads []model.Lead, c model.Campaign, s *scorer.Scorer) ([]model.ScoredLead, bool) {
	candidates := Filter(leads, c)
	fallback := false
	if len(candidates) == 0 {
		candidates = leads
		fallback = len(leads) > 0
	}

	ranked := make([]model.ScoredLead, len(candidates))
	for i, lead := range candidates {
		ranked[i] = s.Score(lead, c)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})
	return ranked, fallback
}
