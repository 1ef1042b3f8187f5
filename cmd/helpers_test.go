package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-agent/internal/catalog"
	"github.com/sells-group/lead-agent/internal/pipeline"
	"github.com/sells-group/lead-agent/internal/scorer"
)

const saasCampaign = `{
	"campaignName": "Q3 SaaS push",
	"valueProposition": "Cut SDR ramp time in half with guided playbooks.",
	"targetIndustries": ["SaaS"],
	"urgency": "Medium",
	"outreachChannels": ["Email"]
}`

const fintechYAML = `campaignName: Fintech events
valueProposition: Close enterprise deals faster with live demos.
targetIndustries: [Fintech]
locations: [Atlantis]
urgency: High
outreachChannels: [Events, Email]
`

func newTestPipeline(t *testing.T) *pipeline.Pipeline {
	t.Helper()
	cat, err := catalog.Load(context.Background(), catalog.Static{})
	require.NoError(t, err)
	return pipeline.New(cat.Leads(), scorer.New(scorer.DefaultScorerConfig()))
}

func writeTestFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}
