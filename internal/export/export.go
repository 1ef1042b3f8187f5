// Package export renders ranked leads as CSV or XLSX spreadsheets.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-agent/internal/model"
)

// Supported export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Columns defines the ordered export columns.
var Columns = []string{
	"Company",
	"Industry",
	"Location",
	"Employee Range",
	"Website",
	"Decision Makers",
	"Technologies",
	"Intent Signals",
	"Highlights",
	"Fit Score",
	"Intent Score",
	"Closing Score",
	"Total Score",
	"Suggested Channel",
}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Write renders ranked leads to w in the given format.
func Write(w io.Writer, format string, leads []model.ScoredLead) error {
	switch strings.ToLower(format) {
	case FormatCSV, "":
		return WriteCSV(w, leads)
	case FormatXLSX:
		return WriteXLSX(w, leads)
	default:
		return eris.Errorf("export: unsupported format %q", format)
	}
}

// buildRow maps a scored lead to an export row.
func buildRow(sl model.ScoredLead) []string {
	l := sl.Lead
	return []string{
		l.CompanyName,
		string(l.Industry),
		l.Location,
		string(l.EmployeeRange),
		l.Website,
		formatDecisionMakers(l.DecisionMakers),
		strings.Join(l.Technologies, ", "),
		strings.Join(l.Intents, ", "),
		strings.Join(l.Highlights, ", "),
		strconv.Itoa(sl.FitScore),
		strconv.Itoa(sl.IntentScore),
		strconv.Itoa(sl.ClosingScore),
		strconv.Itoa(sl.TotalScore),
		string(sl.SuggestedChannel),
	}
}

// formatDecisionMakers renders contacts as "Name (Title) - email" joined by "; ".
func formatDecisionMakers(dms []model.DecisionMaker) string {
	parts := make([]string, len(dms))
	for i, dm := range dms {
		parts[i] = fmt.Sprintf("%s (%s) - %s", dm.Name, dm.Title, dm.Email)
	}
	return strings.Join(parts, "; ")
}
