package scorer

import (
	"fmt"

	"github.com/sells-group/lead-agent/internal/model"
)

// revenueBand maps annual revenue to a fraction of the revenue points.
type revenueBand struct {
	below    float64 // exclusive upper bound; 0 = unbounded
	fraction float64
	label    string
}

var revenueBands = []revenueBand{
	{1_000_000, 0.2, ""},
	{10_000_000, 0.4, ""},
	{50_000_000, 0.6, ""},
	{250_000_000, 0.8, "Upper mid-market revenue band"},
	{0, 1.0, "Enterprise revenue band"},
}

// closing returns the raw Closing points: campaign urgency, momentum from
// recent initiatives, and a normalized revenue band.
func (s *Scorer) closing(lead model.Lead, c model.Campaign, sc *scoreCard) float64 {
	w := s.cfg.ClosingWeight

	points := s.urgencyPoints(c.Urgency)

	if len(lead.RecentInitiatives) > 0 {
		points += s.cfg.MomentumPoints
		sc.add(fmt.Sprintf("Recent initiative: %s", lead.RecentInitiatives[0]), s.cfg.MomentumPoints, w)
	}

	band := bandFor(lead.AnnualRevenue)
	revPts := band.fraction * s.cfg.RevenuePointsMax
	points += revPts
	if band.label != "" {
		sc.add(band.label, revPts, w)
	}

	return points
}

func (s *Scorer) urgencyPoints(u model.Urgency) float64 {
	switch u {
	case model.UrgencyHigh:
		return s.cfg.UrgencyHighPoints
	case model.UrgencyMedium:
		return s.cfg.UrgencyMediumPoints
	default:
		return s.cfg.UrgencyLowPoints
	}
}

func bandFor(revenue float64) revenueBand {
	if revenue < 0 {
		revenue = 0
	}
	for _, b := range revenueBands {
		if b.below == 0 || revenue < b.below {
			return b
		}
	}
	return revenueBands[len(revenueBands)-1]
}
