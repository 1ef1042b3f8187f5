package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lead-agent/internal/model"
)

// Pool is the subset of pgxpool.Pool the Postgres catalog uses. It is
// satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// Postgres stores a catalog in PostgreSQL.
type Postgres struct {
	pool Pool
}

// OpenPostgres connects to the database at dsn.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	cfg.MaxConns = 4
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &Postgres{pool: pool}, nil
}

// NewPostgres wraps an existing pool.
func NewPostgres(pool Pool) *Postgres {
	return &Postgres{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS leads (
	position           INTEGER PRIMARY KEY,
	id                 TEXT NOT NULL UNIQUE,
	company_name       TEXT NOT NULL,
	industry           TEXT NOT NULL,
	location           TEXT NOT NULL DEFAULT '',
	employee_range     TEXT NOT NULL,
	website            TEXT NOT NULL DEFAULT '',
	annual_revenue     DOUBLE PRECISION NOT NULL DEFAULT 0,
	description        TEXT NOT NULL DEFAULT '',
	technologies       TEXT[] NOT NULL DEFAULT '{}',
	intents            TEXT[] NOT NULL DEFAULT '{}',
	highlights         TEXT[] NOT NULL DEFAULT '{}',
	recent_initiatives TEXT[] NOT NULL DEFAULT '{}',
	decision_makers    JSONB NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS catalog_imports (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	lead_count  INTEGER NOT NULL,
	imported_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_leads_industry ON leads(industry);
`

// leadColumns is the COPY column order for the leads table.
var leadColumns = []string{
	"position", "id", "company_name", "industry", "location", "employee_range",
	"website", "annual_revenue", "description", "technologies", "intents",
	"highlights", "recent_initiatives", "decision_makers",
}

// Migrate creates the catalog tables if they do not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

// Close releases the pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

// Load implements Source.
func (p *Postgres) Load(ctx context.Context) ([]model.Lead, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, company_name, industry, location, employee_range,
		website, annual_revenue, description, technologies, intents, highlights,
		recent_initiatives, decision_makers
		FROM leads ORDER BY position`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query leads")
	}
	defer rows.Close()

	leads := []model.Lead{}
	for rows.Next() {
		var (
			l                   model.Lead
			industry, empRange string
			dms                 []byte
		)
		if err := rows.Scan(&l.ID, &l.CompanyName, &industry, &l.Location, &empRange,
			&l.Website, &l.AnnualRevenue, &l.Description, &l.Technologies, &l.Intents,
			&l.Highlights, &l.RecentInitiatives, &dms); err != nil {
			return nil, eris.Wrap(err, "postgres: scan lead")
		}
		l.Industry = model.Industry(industry)
		l.EmployeeRange = model.EmployeeRange(empRange)
		if len(dms) > 0 {
			if err := json.Unmarshal(dms, &l.DecisionMakers); err != nil {
				return nil, eris.Wrapf(err, "postgres: decode decision makers for %s", l.ID)
			}
		}
		leads = append(leads, l)
	}
	return leads, eris.Wrap(rows.Err(), "postgres: iterate leads")
}

// Replace swaps the stored catalog for leads in one transaction using COPY
// and records the import. It returns the import id.
func (p *Postgres) Replace(ctx context.Context, source string, leads []model.Lead) (string, error) {
	rows := make([][]any, len(leads))
	for i, l := range leads {
		dms, err := json.Marshal(nonNilDMs(l.DecisionMakers))
		if err != nil {
			return "", eris.Wrapf(err, "postgres: marshal decision makers for %s", l.ID)
		}
		rows[i] = []any{
			i, l.ID, l.CompanyName, string(l.Industry), l.Location, string(l.EmployeeRange),
			l.Website, l.AnnualRevenue, l.Description, nonNil(l.Technologies), nonNil(l.Intents),
			nonNil(l.Highlights), nonNil(l.RecentInitiatives), dms,
		}
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return "", eris.Wrap(err, "postgres: begin")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM leads`); err != nil {
		return "", eris.Wrap(err, "postgres: clear leads")
	}
	if len(rows) > 0 {
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"leads"}, leadColumns, pgx.CopyFromRows(rows)); err != nil {
			return "", eris.Wrap(err, "postgres: COPY INTO leads")
		}
	}

	id := uuid.New().String()
	if _, err := tx.Exec(ctx,
		`INSERT INTO catalog_imports (id, source, lead_count) VALUES ($1, $2, $3)`,
		id, source, len(leads),
	); err != nil {
		return "", eris.Wrap(err, "postgres: record import")
	}

	if err := tx.Commit(ctx); err != nil {
		return "", eris.Wrap(err, "postgres: commit")
	}

	zap.L().Info("postgres: catalog replaced",
		zap.String("import_id", id),
		zap.String("source", source),
		zap.Int("leads", len(leads)),
	)
	return id, nil
}
