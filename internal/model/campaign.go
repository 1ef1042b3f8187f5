package model

// Urgency is how quickly the campaign needs to convert.
type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

// Urgencies lists the urgency levels from lowest to highest.
var Urgencies = []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh}

// Channel is an outreach channel a campaign may use.
type Channel string

const (
	ChannelEmail    Channel = "Email"
	ChannelLinkedIn Channel = "LinkedIn"
	ChannelPhone    Channel = "Phone"
	ChannelEvents   Channel = "Events"
)

// Channels lists every supported outreach channel.
var Channels = []Channel{ChannelEmail, ChannelLinkedIn, ChannelPhone, ChannelEvents}

// Campaign is the validated targeting and messaging configuration for a
// single prioritization run. Optional list fields are empty, never nil, once
// the campaign has passed the input boundary.
type Campaign struct {
	CampaignName        string        `json:"campaignName" yaml:"campaignName"`
	ValueProposition    string        `json:"valueProposition" yaml:"valueProposition"`
	TargetIndustries    []Industry    `json:"targetIndustries" yaml:"targetIndustries"`
	Locations           []string      `json:"locations" yaml:"locations"`
	MinEmployeeRange    EmployeeRange `json:"minEmployeeRange,omitempty" yaml:"minEmployeeRange,omitempty"`
	MaxEmployeeRange    EmployeeRange `json:"maxEmployeeRange,omitempty" yaml:"maxEmployeeRange,omitempty"`
	Keywords            []string      `json:"keywords" yaml:"keywords"`
	TechnologyStack     []string      `json:"technologyStack" yaml:"technologyStack"`
	IntentSignals       []string      `json:"intentSignals" yaml:"intentSignals"`
	DecisionMakerTitles []string      `json:"decisionMakerTitles" yaml:"decisionMakerTitles"`
	Urgency             Urgency       `json:"urgency" yaml:"urgency"`
	OutreachChannels    []Channel     `json:"outreachChannels" yaml:"outreachChannels"`
}

// HasIndustry reports whether ind is one of the campaign's target industries.
func (c Campaign) HasIndustry(ind Industry) bool {
	for _, t := range c.TargetIndustries {
		if t == ind {
			return true
		}
	}
	return false
}

// AllowsChannel reports whether ch is one of the campaign's outreach channels.
func (c Campaign) AllowsChannel(ch Channel) bool {
	for _, allowed := range c.OutreachChannels {
		if allowed == ch {
			return true
		}
	}
	return false
}
