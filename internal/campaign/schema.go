package campaign

import "github.com/sells-group/lead-agent/internal/model"

const (
	minNameLength             = 2
	minValuePropositionLength = 10
)

// freeTextLists are optional list fields that default to empty.
var freeTextLists = []string{
	"locations",
	"keywords",
	"technologyStack",
	"intentSignals",
	"decisionMakerTitles",
}

// campaignSchema returns the JSON Schema every campaign payload must satisfy
// after normalization.
func campaignSchema() map[string]any {
	sizes := enumValues(model.EmployeeRanges)
	stringList := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}

	return map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "object",
		"required": []any{
			"campaignName",
			"valueProposition",
			"targetIndustries",
			"urgency",
			"outreachChannels",
		},
		"properties": map[string]any{
			"campaignName": map[string]any{
				"type":      "string",
				"minLength": minNameLength,
			},
			"valueProposition": map[string]any{
				"type":      "string",
				"minLength": minValuePropositionLength,
			},
			"targetIndustries": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "string",
					"enum": enumValues(model.Industries),
				},
			},
			"locations":           stringList,
			"keywords":            stringList,
			"technologyStack":     stringList,
			"intentSignals":       stringList,
			"decisionMakerTitles": stringList,
			"minEmployeeRange": map[string]any{
				"type": "string",
				"enum": sizes,
			},
			"maxEmployeeRange": map[string]any{
				"type": "string",
				"enum": sizes,
			},
			"urgency": map[string]any{
				"type": "string",
				"enum": enumValues(model.Urgencies),
			},
			"outreachChannels": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "string",
					"enum": enumValues(model.Channels),
				},
			},
		},
	}
}

func enumValues[T ~string](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
