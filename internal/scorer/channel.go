package scorer

import "github.com/sells-group/lead-agent/internal/model"

// suggestChannel picks the allowed channel with the strongest affinity for
// the lead. Ties fall back to the campaign's channel order.
func suggestChannel(lead model.Lead, c model.Campaign, sc *scoreCard) model.Channel {
	switch {
	case c.AllowsChannel(model.ChannelEvents) && len(lead.RecentInitiatives) > 0:
		return model.ChannelEvents
	case c.AllowsChannel(model.ChannelLinkedIn) && sc.titleMatched:
		return model.ChannelLinkedIn
	case c.AllowsChannel(model.ChannelPhone) && c.Urgency == model.UrgencyHigh && sc.signalsMatched > 0:
		return model.ChannelPhone
	}
	if len(c.OutreachChannels) == 0 {
		return ""
	}
	return c.OutreachChannels[0]
}
