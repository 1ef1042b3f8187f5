package pipeline

import (
	"fmt"
	"strings"

	"github.com/sells-group/lead-agent/internal/match"
	"github.com/sells-group/lead-agent/internal/model"
)

const (
	defaultFocus    = "your target"
	defaultPressure = "their most pressing priorities"

	workshopCTA = "Invite them to a micro-workshop sharing best practices with peers tackling the same initiative."
	sessionCTA  = "Suggest a 20-minute working session to map their current process and identify immediate wins."

	aiDifferentiator         = "Highlight AI-driven components with clear outcomes and proof points."
	salesforceDifferentiator = "Mention native alignment with Salesforce processes to reduce switching costs."
	fallbackDifferentiator   = "Lead with quantified impact, then back it up with social proof and customer wins."
)

var followUps = []string{
	"Follow up in 2 days with a one-slide ROI snapshot aligned to their primary KPI.",
	"Share a concise case study highlighting a customer with similar scale and tech stack.",
	"Offer to collaborate on a co-branded session if they drive community initiatives.",
}

var successMetrics = []string{
	"Meetings booked with tier-1 accounts",
	"Pipeline generated within the first 30 days",
	"Conversion rate from initial outreach to discovery call",
	"Engagement rate with the personalized assets you deliver",
}

// Recommend derives campaign-level messaging guidance from the campaign and
// the ranked leads. It is well-formed even when ranked is empty.
func Recommend(c model.Campaign, ranked []model.ScoredLead) model.Recommendation {
	focus := defaultFocus
	if len(c.TargetIndustries) > 0 {
		focus = string(c.TargetIndustries[0])
	}

	summary := fmt.Sprintf(
		"Focus on %s accounts feeling pressure around %s. Anchor messaging around fast wins and social proof.",
		focus, leadingClause(c.ValueProposition),
	)
	summary += " " + strings.Join(differentiators(c), " ")

	return model.Recommendation{
		Summary: summary,
		MessagingHooks: []string{
			fmt.Sprintf("Lead with a %s urgency hook that quantifies the upside for %s teams.",
				urgencyWord(c.Urgency), focus),
			"Reference a recent initiative from the account to show tailored research.",
			"Close with a clear next step offering a tailored audit or playbook download.",
		},
		CallToAction:   callToAction(c, ranked),
		FollowUps:      append([]string(nil), followUps...),
		SuccessMetrics: append([]string(nil), successMetrics...),
	}
}

// differentiators returns the positioning notes for the campaign. Exactly one
// generic note is used when nothing specific applies.
func differentiators(c model.Campaign) []string {
	var out []string
	if match.Contains(c.ValueProposition, "ai") {
		out = append(out, aiDifferentiator)
	}
	if match.AnyContains(c.TechnologyStack, "salesforce") {
		out = append(out, salesforceDifferentiator)
	}
	if len(c.IntentSignals) > 0 {
		signals := c.IntentSignals
		if len(signals) > 2 {
			signals = signals[:2]
		}
		out = append(out, fmt.Sprintf("Use real-time signals like %s to prioritize outreach.",
			strings.Join(signals, ", ")))
	}
	if len(out) == 0 {
		out = append(out, fallbackDifferentiator)
	}
	return out
}

func callToAction(c model.Campaign, ranked []model.ScoredLead) string {
	if c.AllowsChannel(model.ChannelEvents) && len(ranked) > 0 &&
		len(ranked[0].Lead.RecentInitiatives) > 0 {
		return workshopCTA
	}
	return sessionCTA
}

// leadingClause returns the lower-cased text of vp up to its first sentence
// terminator.
func leadingClause(vp string) string {
	if i := strings.IndexAny(vp, ".!?"); i >= 0 {
		vp = vp[:i]
	}
	vp = strings.ToLower(strings.TrimSpace(vp))
	if vp == "" {
		return defaultPressure
	}
	return vp
}

func urgencyWord(u model.Urgency) string {
	if u == "" {
		return "clear"
	}
	return strings.ToLower(string(u))
}
