package model

// ScoredLead wraps a catalog lead with its scores for one campaign.
type ScoredLead struct {
	Lead             Lead     `json:"lead"`
	FitScore         int      `json:"fitScore"`
	IntentScore      int      `json:"intentScore"`
	ClosingScore     int      `json:"closingScore"`
	TotalScore       int      `json:"totalScore"`
	SuggestedChannel Channel  `json:"suggestedChannel"`
	Rationale        []string `json:"rationale"`
}

// Recommendation is campaign-level messaging guidance.
type Recommendation struct {
	Summary        string   `json:"summary"`
	MessagingHooks []string `json:"messagingHooks"`
	CallToAction   string   `json:"callToAction"`
	FollowUps      []string `json:"followUps"`
	SuccessMetrics []string `json:"successMetrics"`
}

// Result is the output of a prioritization run.
type Result struct {
	Leads          []ScoredLead   `json:"leads"`
	Recommendation Recommendation `json:"recommendation"`
}
