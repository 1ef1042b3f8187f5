package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/sells-group/lead-agent/internal/model"
)

// SQLite stores a catalog in a SQLite database using modernc.org/sqlite.
// Catalog order is the position column.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database at dsn and configures WAL mode.
func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLite{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS leads (
	position           INTEGER PRIMARY KEY,
	id                 TEXT NOT NULL UNIQUE,
	company_name       TEXT NOT NULL,
	industry           TEXT NOT NULL,
	location           TEXT NOT NULL DEFAULT '',
	employee_range     TEXT NOT NULL,
	website            TEXT NOT NULL DEFAULT '',
	annual_revenue     REAL NOT NULL DEFAULT 0,
	description        TEXT NOT NULL DEFAULT '',
	technologies       TEXT NOT NULL DEFAULT '[]',
	intents            TEXT NOT NULL DEFAULT '[]',
	highlights         TEXT NOT NULL DEFAULT '[]',
	recent_initiatives TEXT NOT NULL DEFAULT '[]',
	decision_makers    TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS catalog_imports (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	lead_count  INTEGER NOT NULL,
	imported_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_leads_industry ON leads(industry);
`

// Migrate creates the catalog tables if they do not exist.
func (s *SQLite) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Load implements Source.
func (s *SQLite) Load(ctx context.Context) ([]model.Lead, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, company_name, industry, location, employee_range,
		website, annual_revenue, description, technologies, intents, highlights,
		recent_initiatives, decision_makers
		FROM leads ORDER BY position`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query leads")
	}
	defer rows.Close() //nolint:errcheck

	leads := []model.Lead{}
	for rows.Next() {
		var (
			l                                       model.Lead
			techs, intents, highlights, inits, dms string
		)
		if err := rows.Scan(&l.ID, &l.CompanyName, &l.Industry, &l.Location, &l.EmployeeRange,
			&l.Website, &l.AnnualRevenue, &l.Description, &techs, &intents, &highlights,
			&inits, &dms); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan lead")
		}
		if err := decodeJSONColumns(&l, []byte(techs), []byte(intents), []byte(highlights), []byte(inits), []byte(dms)); err != nil {
			return nil, eris.Wrapf(err, "sqlite: lead %s", l.ID)
		}
		leads = append(leads, l)
	}
	return leads, eris.Wrap(rows.Err(), "sqlite: iterate leads")
}

// Replace swaps the stored catalog for leads in one transaction and records
// the import. It returns the import id.
func (s *SQLite) Replace(ctx context.Context, source string, leads []model.Lead) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM leads`); err != nil {
		return "", eris.Wrap(err, "sqlite: clear leads")
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO leads (position, id, company_name, industry,
		location, employee_range, website, annual_revenue, description, technologies, intents,
		highlights, recent_initiatives, decision_makers)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close() //nolint:errcheck

	for i, l := range leads {
		cols, err := encodeJSONColumns(l)
		if err != nil {
			return "", eris.Wrapf(err, "sqlite: lead %s", l.ID)
		}
		if _, err := stmt.ExecContext(ctx, i, l.ID, l.CompanyName, string(l.Industry), l.Location,
			string(l.EmployeeRange), l.Website, l.AnnualRevenue, l.Description,
			cols[0], cols[1], cols[2], cols[3], cols[4]); err != nil {
			return "", eris.Wrapf(err, "sqlite: insert lead %s", l.ID)
		}
	}

	id := uuid.New().String()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO catalog_imports (id, source, lead_count, imported_at) VALUES (?, ?, ?, ?)`,
		id, source, len(leads), time.Now().UTC(),
	); err != nil {
		return "", eris.Wrap(err, "sqlite: record import")
	}

	if err := tx.Commit(); err != nil {
		return "", eris.Wrap(err, "sqlite: commit")
	}

	zap.L().Info("sqlite: catalog replaced",
		zap.String("import_id", id),
		zap.String("source", source),
		zap.Int("leads", len(leads)),
	)
	return id, nil
}

// encodeJSONColumns returns the JSON text for the list columns, in table order.
func encodeJSONColumns(l model.Lead) ([5]string, error) {
	var out [5]string
	for i, v := range []any{
		nonNil(l.Technologies),
		nonNil(l.Intents),
		nonNil(l.Highlights),
		nonNil(l.RecentInitiatives),
		nonNilDMs(l.DecisionMakers),
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return out, eris.Wrap(err, "marshal list column")
		}
		out[i] = string(b)
	}
	return out, nil
}

func decodeJSONColumns(l *model.Lead, techs, intents, highlights, inits, dms []byte) error {
	targets := []struct {
		name string
		data []byte
		dst  any
	}{
		{"technologies", techs, &l.Technologies},
		{"intents", intents, &l.Intents},
		{"highlights", highlights, &l.Highlights},
		{"recent_initiatives", inits, &l.RecentInitiatives},
		{"decision_makers", dms, &l.DecisionMakers},
	}
	for _, t := range targets {
		if len(t.data) == 0 {
			continue
		}
		if err := json.Unmarshal(t.data, t.dst); err != nil {
			return eris.Wrapf(err, "decode %s", t.name)
		}
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilDMs(s []model.DecisionMaker) []model.DecisionMaker {
	if s == nil {
		return []model.DecisionMaker{}
	}
	return s
}
