package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-agent/internal/catalog"
)

func TestImportCatalog(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	seed, err := catalog.Load(ctx, catalog.Static{})
	require.NoError(t, err)
	src := filepath.Join(dir, "leads.csv")
	require.NoError(t, catalog.WriteFile(src, seed.Leads()))

	dsn := filepath.Join(dir, "catalog.db")
	id, err := importCatalog(ctx, src, "", dsn)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	st, err := catalog.OpenSQLite(dsn)
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck

	imported, err := catalog.Load(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, seed.Leads(), imported.Leads())
}

func TestImportCatalog_InvalidSource(t *testing.T) {
	dir := t.TempDir()
	src := writeTestFile(t, dir, "leads.json", `[{"id":"a","companyName":"Acme","industry":"Retail","employeeRange":"1-50"}]`)

	_, err := importCatalog(context.Background(), src, "", filepath.Join(dir, "catalog.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown industry")
}

func TestPrintCatalogSummary(t *testing.T) {
	c, err := catalog.Load(context.Background(), catalog.Static{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printCatalogSummary(&buf, c))

	out := buf.String()
	assert.Contains(t, out, "INDUSTRY")
	assert.Regexp(t, `SaaS\s+2`, out)
	assert.Regexp(t, `TOTAL\s+12`, out)
}
