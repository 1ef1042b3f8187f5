package scorer

import (
	"fmt"
	"math"
	"strings"

	"github.com/sells-group/lead-agent/internal/match"
	"github.com/sells-group/lead-agent/internal/model"
)

// fit returns the raw Fit points: industry, company size, location,
// technology overlap and decision-maker title overlap.
func (s *Scorer) fit(lead model.Lead, c model.Campaign, sc *scoreCard) float64 {
	w := s.cfg.FitWeight
	var points float64

	if c.HasIndustry(lead.Industry) {
		points += s.cfg.IndustryPoints
		sc.add(fmt.Sprintf("Matches target industry %s", lead.Industry), s.cfg.IndustryPoints, w)
	}

	sizePts, bounded := s.scoreSize(lead.EmployeeRange, c.MinEmployeeRange, c.MaxEmployeeRange)
	points += sizePts
	if bounded {
		sc.add(fmt.Sprintf("Company size %s within target band", lead.EmployeeRange), sizePts, w)
	}

	if loc := matchedLocation(lead.Location, c.Locations); loc != "" {
		points += s.cfg.LocationPoints
		sc.add(fmt.Sprintf("Located in target market %s", loc), s.cfg.LocationPoints, w)
	}

	if overlap := match.Overlap(c.TechnologyStack, lead.Technologies); len(overlap) > 0 {
		techPts := math.Min(float64(len(overlap))*s.cfg.TechPointsPerOverlap, s.cfg.TechPointsCap)
		points += techPts
		sc.add(techReason(overlap), techPts, w)
	}

	if title := matchedTitle(lead.DecisionMakers, c.DecisionMakerTitles); title != "" {
		sc.titleMatched = true
		points += s.cfg.TitlePoints
		sc.add(fmt.Sprintf("Decision-maker match: %s", title), s.cfg.TitlePoints, w)
	}

	return points
}

// scoreSize returns the size points and whether the campaign set any bound.
// A missing bound is treated as unbounded on that side; with no bounds at all
// every lead gets the neutral points.
func (s *Scorer) scoreSize(size, minRange, maxRange model.EmployeeRange) (float64, bool) {
	if minRange == "" && maxRange == "" {
		return s.cfg.SizeNeutralPoints, false
	}

	rank := size.Rank()
	if rank < 0 {
		return 0, true
	}

	lo := 0
	if minRange != "" {
		lo = minRange.Rank()
	}
	hi := len(model.EmployeeRanges) - 1
	if maxRange != "" {
		hi = maxRange.Rank()
	}

	if lo >= 0 && hi >= 0 && rank >= lo && rank <= hi {
		return s.cfg.SizeInRangePoints, true
	}
	return 0, true
}

// matchedLocation returns the first campaign location contained in the
// lead's location, or "".
func matchedLocation(location string, locations []string) string {
	for _, loc := range locations {
		if match.Contains(location, strings.TrimSpace(loc)) {
			return loc
		}
	}
	return ""
}

// matchedTitle returns the title of the first decision maker whose title
// contains one of the wanted titles, or "".
func matchedTitle(contacts []model.DecisionMaker, titles []string) string {
	for _, dm := range contacts {
		for _, t := range titles {
			if match.Contains(dm.Title, strings.TrimSpace(t)) {
				return dm.Title
			}
		}
	}
	return ""
}

func techReason(overlap []string) string {
	noun := "technology overlaps"
	if len(overlap) == 1 {
		noun = "technology overlap"
	}
	return fmt.Sprintf("%d %s: %s", len(overlap), noun, strings.Join(overlap, ", "))
}
