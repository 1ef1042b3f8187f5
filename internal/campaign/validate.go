// Package campaign is the input boundary for campaign payloads: it decodes,
// normalizes and validates them into a model.Campaign the pipeline can trust.
package campaign

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/lead-agent/internal/model"
)

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a campaign payload is malformed or
// incomplete. It lists every problem found, sorted by field.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "campaign: invalid input: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: msg}}}
}

// Parse decodes a JSON campaign payload and validates it.
func Parse(data []byte) (model.Campaign, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.Campaign{}, invalid("body", "must be valid JSON: "+err.Error())
	}
	return Validate(raw)
}

// ParseYAML decodes a YAML campaign payload and validates it.
func ParseYAML(data []byte) (model.Campaign, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return model.Campaign{}, invalid("body", "must be valid YAML: "+err.Error())
	}
	return Validate(raw)
}

// Validate normalizes a decoded payload (trimmed strings, empty optional
// lists) and checks it against the campaign schema and cross-field rules.
func Validate(raw any) (model.Campaign, error) {
	doc, ok := raw.(map[string]any)
	if !ok {
		return model.Campaign{}, invalid("body", "must be an object")
	}
	doc = normalize(doc)

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(campaignSchema()),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return model.Campaign{}, eris.Wrap(err, "campaign: run schema validation")
	}
	if !result.Valid() {
		return model.Campaign{}, schemaErrors(result.Errors())
	}

	buf, err := json.Marshal(doc)
	if err != nil {
		return model.Campaign{}, eris.Wrap(err, "campaign: marshal normalized payload")
	}
	var c model.Campaign
	if err := json.Unmarshal(buf, &c); err != nil {
		return model.Campaign{}, eris.Wrap(err, "campaign: decode normalized payload")
	}

	if c.MinEmployeeRange != "" && c.MaxEmployeeRange != "" &&
		c.MinEmployeeRange.Rank() > c.MaxEmployeeRange.Rank() {
		return model.Campaign{}, invalid("minEmployeeRange",
			fmt.Sprintf("%s must not exceed maxEmployeeRange %s", c.MinEmployeeRange, c.MaxEmployeeRange))
	}

	return c, nil
}

// normalize returns a copy of doc with string fields trimmed, empty optional
// bounds removed, and free-text lists defaulted to empty with blank entries dropped.
func normalize(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}

	for _, k := range []string{"campaignName", "valueProposition", "urgency"} {
		if s, ok := out[k].(string); ok {
			out[k] = strings.TrimSpace(s)
		}
	}

	for _, k := range []string{"minEmployeeRange", "maxEmployeeRange"} {
		switch v := out[k].(type) {
		case nil:
			delete(out, k)
		case string:
			if s := strings.TrimSpace(v); s == "" {
				delete(out, k)
			} else {
				out[k] = s
			}
		}
	}

	for _, k := range []string{"targetIndustries", "outreachChannels"} {
		if list, ok := out[k].([]any); ok {
			out[k] = trimList(list, false)
		}
	}

	for _, k := range freeTextLists {
		switch v := out[k].(type) {
		case nil:
			out[k] = []any{}
		case []any:
			out[k] = trimList(v, true)
		}
	}

	return out
}

func trimList(list []any, dropBlank bool) []any {
	out := make([]any, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			out = append(out, item)
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" && dropBlank {
			continue
		}
		out = append(out, s)
	}
	return out
}

// rootContext is the field gojsonschema reports for object-level errors such
// as a missing required property.
const rootContext = "(root)"

func schemaErrors(results []gojsonschema.ResultError) *ValidationError {
	ve := &ValidationError{}
	for _, re := range results {
		field := re.Field()
		if field == rootContext {
			if p, ok := re.Details()["property"].(string); ok {
				field = p
			}
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: re.Description()})
	}
	sort.SliceStable(ve.Errors, func(i, j int) bool {
		if ve.Errors[i].Field != ve.Errors[j].Field {
			return ve.Errors[i].Field < ve.Errors[j].Field
		}
		return ve.Errors[i].Message < ve.Errors[j].Message
	})
	return ve
}
