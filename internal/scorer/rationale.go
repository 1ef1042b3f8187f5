package scorer

import (
	"fmt"
	"sort"

	"github.com/sells-group/lead-agent/internal/model"
)

// reason is one explanation for a score, weighted by how much it moved the total.
type reason struct {
	text   string
	impact float64
}

// rationale returns the most impactful reasons first, at most MaxRationale.
// While fewer than two reasons fired it pads with a proof point from the lead
// and then a generic baseline reason, so it is never empty.
func (s *Scorer) rationale(lead model.Lead, sc *scoreCard) []string {
	reasons := make([]reason, len(sc.reasons))
	copy(reasons, sc.reasons)
	sort.SliceStable(reasons, func(i, j int) bool {
		return reasons[i].impact > reasons[j].impact
	})

	limit := s.cfg.MaxRationale
	if limit < 2 {
		limit = 2
	}
	if len(reasons) > limit {
		reasons = reasons[:limit]
	}

	out := make([]string, 0, limit)
	for _, r := range reasons {
		out = append(out, r.text)
	}

	if len(out) < 2 && len(lead.Highlights) > 0 {
		out = append(out, fmt.Sprintf("Proof point: %s", lead.Highlights[0]))
	}
	if len(out) < 2 {
		out = append(out, fmt.Sprintf("Baseline fit for %s outreach", industryLabel(lead.Industry)))
	}
	return out
}

func industryLabel(ind model.Industry) string {
	if ind == "" {
		return "general"
	}
	return string(ind)
}
