package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-agent/internal/model"
)

func newMockPostgres(t *testing.T) (*Postgres, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })
	return NewPostgres(mock), mock
}

var selectLeadsColumns = []string{
	"id", "company_name", "industry", "location", "employee_range", "website",
	"annual_revenue", "description", "technologies", "intents", "highlights",
	"recent_initiatives", "decision_makers",
}

func TestPostgres_Load(t *testing.T) {
	pg, mock := newMockPostgres(t)

	rows := pgxmock.NewRows(selectLeadsColumns).
		AddRow("a", "Acme Cloud", "SaaS", "Austin, United States", "51-200", "https://acme.example",
			12_000_000.0, "Sales tooling", []string{"Salesforce"}, []string{"Hiring SDRs"},
			[]string{}, []string{"EU launch"},
			[]byte(`[{"name":"Ava Chen","title":"VP Sales","email":"ava@acme.example"}]`)).
		AddRow("b", "Beacon Health", "Healthcare", "Berlin", "1000+", "",
			0.0, "", []string{}, []string{}, []string{}, []string{}, []byte(`[]`))
	mock.ExpectQuery(`SELECT id, company_name, industry, .* FROM leads ORDER BY position`).
		WillReturnRows(rows)

	leads, err := pg.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 2)

	assert.Equal(t, model.IndustrySaaS, leads[0].Industry)
	assert.Equal(t, model.Employees51To200, leads[0].EmployeeRange)
	assert.Equal(t, []string{"Salesforce"}, leads[0].Technologies)
	assert.Equal(t, []model.DecisionMaker{{Name: "Ava Chen", Title: "VP Sales", Email: "ava@acme.example"}}, leads[0].DecisionMakers)
	assert.Equal(t, "b", leads[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_LoadErrors(t *testing.T) {
	t.Run("query", func(t *testing.T) {
		pg, mock := newMockPostgres(t)
		mock.ExpectQuery(`FROM leads`).WillReturnError(errors.New("relation does not exist"))

		_, err := pg.Load(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "postgres: query leads")
	})

	t.Run("bad decision makers", func(t *testing.T) {
		pg, mock := newMockPostgres(t)
		rows := pgxmock.NewRows(selectLeadsColumns).
			AddRow("a", "Acme", "SaaS", "", "1-50", "", 0.0, "",
				[]string{}, []string{}, []string{}, []string{}, []byte(`{not json`))
		mock.ExpectQuery(`FROM leads`).WillReturnRows(rows)

		_, err := pg.Load(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode decision makers for a")
	})
}

func TestPostgres_Replace(t *testing.T) {
	pg, mock := newMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM leads`).WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectCopyFrom(pgx.Identifier{"leads"}, leadColumns).WillReturnResult(2)
	mock.ExpectExec(`INSERT INTO catalog_imports`).
		WithArgs(pgxmock.AnyArg(), "leads.xlsx", 2).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	id, err := pg.Replace(context.Background(), "leads.xlsx", sampleLeads())
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ReplaceCopyFails(t *testing.T) {
	pg, mock := newMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM leads`).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"leads"}, leadColumns).WillReturnError(errors.New("copy failed"))
	mock.ExpectRollback()

	_, err := pg.Replace(context.Background(), "leads.csv", sampleLeads())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: COPY INTO leads")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Migrate(t *testing.T) {
	pg, mock := newMockPostgres(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS leads`).WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, pg.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsPostgresDSN(t *testing.T) {
	assert.True(t, isPostgresDSN("postgres://u:p@localhost/leads"))
	assert.True(t, isPostgresDSN("postgresql://localhost/leads"))
	assert.False(t, isPostgresDSN("file:catalog.db"))
	assert.False(t, isPostgresDSN("/tmp/catalog.db"))
}
