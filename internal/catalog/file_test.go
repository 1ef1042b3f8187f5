package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-agent/internal/model"
)

func TestFile_RoundTrip(t *testing.T) {
	want := mustNew(t, sampleLeads()).Leads()

	for _, ext := range []string{".json", ".yaml", ".yml", ".csv", ".xlsx"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "leads"+ext)
			require.NoError(t, WriteFile(path, sampleLeads()))

			got, err := Load(context.Background(), File{Path: path})
			require.NoError(t, err)
			assert.Equal(t, want, got.Leads())
		})
	}
}

func TestFile_FormatOverride(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "leads.csv")
	require.NoError(t, WriteFile(csvPath, sampleLeads()))

	renamed := filepath.Join(dir, "leads.txt")
	require.NoError(t, os.Rename(csvPath, renamed))

	_, err := File{Path: renamed}.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot infer format")

	leads, err := File{Path: renamed, Format: "CSV"}.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, leads, 2)

	_, err = File{Path: renamed, Format: "parquet"}.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestFile_CSV(t *testing.T) {
	body := "id, company ,INDUSTRY,Employee Range,Annual Revenue,Technologies,Decision Makers,Notes\n" +
		"x1,Xylo,Energy,201-500,\"$1,250,000\",AWS; Salesforce ;,Lee Park|CTO|lee@xylo.example,ignored\n" +
		"x2,Yarrow,Logistics,1-50,,,,\n"
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	leads, err := File{Path: path}.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 2)

	assert.Equal(t, model.Lead{
		ID:                "x1",
		CompanyName:       "Xylo",
		Industry:          model.IndustryEnergy,
		EmployeeRange:     model.Employees201To500,
		AnnualRevenue:     1_250_000,
		Technologies:      []string{"AWS", "Salesforce"},
		Intents:           []string{},
		Highlights:        []string{},
		RecentInitiatives: []string{},
		DecisionMakers:    []model.DecisionMaker{{Name: "Lee Park", Title: "CTO", Email: "lee@xylo.example"}},
	}, leads[0])
	assert.Zero(t, leads[1].AnnualRevenue)
}

func TestFile_CSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"missing columns", "ID,Company\na,Acme\n", "header missing columns: Industry, Employee Range"},
		{"bad revenue", "ID,Company,Industry,Employee Range,Annual Revenue\na,Acme,SaaS,1-50,lots\n", "row 2"},
		{"bad decision maker", "ID,Company,Industry,Employee Range,Decision Makers\na,Acme,SaaS,1-50,Ann|CEO\n", "want Name|Title|email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "leads.csv")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := File{Path: path}.Load(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFile_Missing(t *testing.T) {
	_, err := File{Path: filepath.Join(t.TempDir(), "nope.json")}.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog: open")
}

func TestFile_InvalidLeadsRejectedByLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- id: a\n  companyName: Acme\n  industry: Retail\n  employeeRange: 1-50\n"), 0o644))

	_, err := Load(context.Background(), File{Path: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown industry "Retail"`)
}

func TestFormatFor(t *testing.T) {
	tests := map[string]string{
		"a.json": FormatJSON,
		"a.YAML": FormatYAML,
		"a.yml":  FormatYAML,
		"a.csv":  FormatCSV,
		"a.xlsx": FormatXLSX,
	}
	for path, want := range tests {
		got, err := FormatFor(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatFor("a.xls")
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{}, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ;; b ; "))
}
