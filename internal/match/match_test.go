package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	tests := []struct {
		name string
		s    string
		sub  string
		want bool
	}{
		{"exact", "United States", "United States", true},
		{"case insensitive", "Austin, United States", "united states", true},
		{"substring", "Berlin, Germany", "germ", true},
		{"miss", "Berlin, Germany", "France", false},
		{"empty sub", "anything", "", false},
		{"empty s", "", "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(tt.s, tt.sub))
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("Salesforce", "salesforce"))
	assert.True(t, Equal("HubSpot", "HUBSPOT"))
	assert.False(t, Equal("Salesforce", "Sales force"))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("Hiring SDRs in EMEA", "sdr", "series b"))
	assert.False(t, ContainsAny("Hiring SDRs in EMEA", "series b"))
	assert.False(t, ContainsAny("Hiring SDRs"))
}

func TestAnyContains(t *testing.T) {
	texts := []string{"Opened Berlin office", "Launched AI copilot"}
	assert.True(t, AnyContains(texts, "ai copilot"))
	assert.False(t, AnyContains(texts, "series c"))
	assert.False(t, AnyContains(nil, "x"))
}

func TestOverlap(t *testing.T) {
	got := Overlap(
		[]string{"Salesforce", "hubspot", "Snowflake", "SALESFORCE", ""},
		[]string{"HubSpot", "salesforce", "Segment"},
	)
	assert.Equal(t, []string{"Salesforce", "hubspot"}, got)

	assert.Empty(t, Overlap(nil, []string{"a"}))
	assert.Empty(t, Overlap([]string{"a"}, nil))
}
