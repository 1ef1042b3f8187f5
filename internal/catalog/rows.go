package catalog

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-agent/internal/match"
	"github.com/sells-group/lead-agent/internal/model"
)

// Columns is the tabular catalog layout used by CSV and XLSX catalogs.
// List cells separate entries with ";". Decision makers are written as
// "Name|Title|email".
var Columns = []string{
	"ID",
	"Company",
	"Industry",
	"Location",
	"Employee Range",
	"Website",
	"Annual Revenue",
	"Description",
	"Technologies",
	"Intents",
	"Highlights",
	"Recent Initiatives",
	"Decision Makers",
}

const (
	listSep = ";"
	dmSep   = "|"
)

// requiredColumns must be present in a tabular catalog header.
var requiredColumns = []string{"ID", "Company", "Industry", "Employee Range"}

// columnIndex maps each known column to its position in header, matching
// names case-insensitively. Unknown columns are ignored.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(Columns))
	for i, h := range header {
		h = strings.TrimSpace(h)
		for _, col := range Columns {
			if match.Equal(h, col) {
				idx[col] = i
			}
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, eris.Errorf("catalog: header missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

// rowsToLeads converts tabular rows into leads. Row numbers in errors are
// 1-based and count the header.
func rowsToLeads(header []string, rows [][]string) ([]model.Lead, error) {
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	leads := make([]model.Lead, 0, len(rows))
	for n, row := range rows {
		cell := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		revenue, err := parseRevenue(cell("Annual Revenue"))
		if err != nil {
			return nil, eris.Wrapf(err, "catalog: row %d", n+2)
		}
		dms, err := parseDecisionMakers(cell("Decision Makers"))
		if err != nil {
			return nil, eris.Wrapf(err, "catalog: row %d", n+2)
		}

		leads = append(leads, model.Lead{
			ID:                cell("ID"),
			CompanyName:       cell("Company"),
			Industry:          model.Industry(cell("Industry")),
			Location:          cell("Location"),
			EmployeeRange:     model.EmployeeRange(cell("Employee Range")),
			Website:           cell("Website"),
			AnnualRevenue:     revenue,
			Description:       cell("Description"),
			Technologies:      splitList(cell("Technologies")),
			Intents:           splitList(cell("Intents")),
			Highlights:        splitList(cell("Highlights")),
			RecentInitiatives: splitList(cell("Recent Initiatives")),
			DecisionMakers:    dms,
		})
	}
	return leads, nil
}

// leadToRow is the inverse of rowsToLeads for a single lead.
func leadToRow(l model.Lead) []string {
	dms := make([]string, len(l.DecisionMakers))
	for i, dm := range l.DecisionMakers {
		dms[i] = strings.Join([]string{dm.Name, dm.Title, dm.Email}, dmSep)
	}
	return []string{
		l.ID,
		l.CompanyName,
		string(l.Industry),
		l.Location,
		string(l.EmployeeRange),
		l.Website,
		strconv.FormatFloat(l.AnnualRevenue, 'f', -1, 64),
		l.Description,
		strings.Join(l.Technologies, listSep),
		strings.Join(l.Intents, listSep),
		strings.Join(l.Highlights, listSep),
		strings.Join(l.RecentInitiatives, listSep),
		strings.Join(dms, listSep),
	}
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, listSep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseRevenue accepts plain numbers with optional "$" and "," separators.
// An empty cell is zero.
func parseRevenue(s string) (float64, error) {
	s = strings.NewReplacer("$", "", ",", "", "_", "").Replace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "parse annual revenue %q", s)
	}
	return v, nil
}

func parseDecisionMakers(s string) ([]model.DecisionMaker, error) {
	out := []model.DecisionMaker{}
	for _, entry := range splitList(s) {
		parts := strings.Split(entry, dmSep)
		if len(parts) != 3 {
			return nil, eris.Errorf("decision maker %q: want Name|Title|email", entry)
		}
		out = append(out, model.DecisionMaker{
			Name:  strings.TrimSpace(parts[0]),
			Title: strings.TrimSpace(parts[1]),
			Email: strings.TrimSpace(parts[2]),
		})
	}
	return out, nil
}
