package pipeline

import (
	"github.com/sells-group/lead-agent/internal/match"
	"github.com/sells-group/lead-agent/internal/model"
)

// Filter returns the leads that satisfy every hard-match criterion of the
// campaign, preserving input order. An empty campaign field places no
// constraint. Employee bounds, titles and intent signals are left to scoring.
func Filter(leads []model.Lead, c model.Campaign) []model.Lead {
	out := make([]model.Lead, 0, len(leads))
	for _, lead := range leads {
		if matchesCampaign(lead, c) {
			out = append(out, lead)
		}
	}
	return out
}

func matchesCampaign(lead model.Lead, c model.Campaign) bool {
	return industryMatch(lead, c) &&
		locationMatch(lead, c) &&
		keywordMatch(lead, c) &&
		technologyMatch(lead, c)
}

func industryMatch(lead model.Lead, c model.Campaign) bool {
	return len(c.TargetIndustries) == 0 || c.HasIndustry(lead.Industry)
}

func locationMatch(lead model.Lead, c model.Campaign) bool {
	return len(c.Locations) == 0 || match.ContainsAny(lead.Location, c.Locations...)
}

func keywordMatch(lead model.Lead, c model.Campaign) bool {
	if len(c.Keywords) == 0 {
		return true
	}
	for _, kw := range c.Keywords {
		if match.Contains(lead.CompanyName, kw) ||
			match.Contains(lead.Description, kw) ||
			match.AnyContains(lead.RecentInitiatives, kw) ||
			match.AnyContains(lead.Highlights, kw) {
			return true
		}
	}
	return false
}

func technologyMatch(lead model.Lead, c model.Campaign) bool {
	if len(c.TechnologyStack) == 0 {
		return true
	}
	for _, tech := range c.TechnologyStack {
		if match.HasEqual(lead.Technologies, tech) {
			return true
		}
	}
	return false
}
