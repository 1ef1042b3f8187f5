// Package catalog loads the read-only lead catalog the pipeline ranks. Leads
// can come from the embedded seed set, a JSON/YAML/CSV/XLSX file, SQLite,
// Postgres, or a remote HTTP/FTP download.
package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-agent/internal/model"
)

// Source produces leads in a stable order.
type Source interface {
	Load(ctx context.Context) ([]model.Lead, error)
}

// Catalog is a validated, immutable set of leads in catalog order.
type Catalog struct {
	leads []model.Lead
}

// New validates leads and freezes them into a Catalog. Nil list fields are
// replaced with empty lists so every lead serializes the same way.
func New(leads []model.Lead) (*Catalog, error) {
	if err := validate(leads); err != nil {
		return nil, err
	}
	out := make([]model.Lead, len(leads))
	for i, l := range leads {
		out[i] = normalizeLead(l)
	}
	return &Catalog{leads: out}, nil
}

// Load reads all leads from src and builds a Catalog.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	leads, err := src.Load(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: load source")
	}
	return New(leads)
}

// Leads returns a copy of the catalog's leads in catalog order.
func (c *Catalog) Leads() []model.Lead {
	return slices.Clone(c.leads)
}

// Len returns the number of leads.
func (c *Catalog) Len() int {
	return len(c.leads)
}

// IndustryCounts returns the number of leads per industry.
func (c *Catalog) IndustryCounts() map[model.Industry]int {
	counts := make(map[model.Industry]int)
	for _, l := range c.leads {
		counts[l.Industry]++
	}
	return counts
}

func validate(leads []model.Lead) error {
	var errs []string
	seen := make(map[string]int, len(leads))
	for i, l := range leads {
		where := fmt.Sprintf("lead %d", i)
		if l.ID != "" {
			where = fmt.Sprintf("lead %q", l.ID)
		}
		if strings.TrimSpace(l.ID) == "" {
			errs = append(errs, where+": id is required")
		} else if prev, dup := seen[l.ID]; dup {
			errs = append(errs, fmt.Sprintf("%s: duplicate id (first at %d)", where, prev))
		} else {
			seen[l.ID] = i
		}
		if strings.TrimSpace(l.CompanyName) == "" {
			errs = append(errs, where+": companyName is required")
		}
		if !l.Industry.Valid() {
			errs = append(errs, fmt.Sprintf("%s: unknown industry %q", where, l.Industry))
		}
		if !l.EmployeeRange.Valid() {
			errs = append(errs, fmt.Sprintf("%s: unknown employeeRange %q", where, l.EmployeeRange))
		}
		if l.AnnualRevenue < 0 {
			errs = append(errs, where+": annualRevenue must be >= 0")
		}
	}
	if len(errs) > 0 {
		return eris.Errorf("catalog: invalid leads: %s", strings.Join(errs, "; "))
	}
	return nil
}

func normalizeLead(l model.Lead) model.Lead {
	l.Technologies = cloneList(l.Technologies)
	l.Intents = cloneList(l.Intents)
	l.Highlights = cloneList(l.Highlights)
	l.RecentInitiatives = cloneList(l.RecentInitiatives)
	if l.DecisionMakers == nil {
		l.DecisionMakers = []model.DecisionMaker{}
	} else {
		l.DecisionMakers = slices.Clone(l.DecisionMakers)
	}
	return l
}

func cloneList(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
