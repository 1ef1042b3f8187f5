package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/lead-agent/internal/catalog"
	"github.com/sells-group/lead-agent/internal/model"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and manage the lead catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print lead counts per industry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("catalog"); err != nil {
			return err
		}
		c, err := catalog.Open(cmd.Context(), cfg.Catalog)
		if err != nil {
			return err
		}
		return printCatalogSummary(cmd.OutOrStdout(), c)
	},
}

var (
	importFrom   string
	importTo     string
	importFormat string
)

var catalogImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a JSON/YAML/CSV/XLSX catalog file into a SQLite or Postgres catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := importCatalog(cmd.Context(), importFrom, importFormat, importTo)
		return err
	},
}

var exportTo string

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the configured catalog to a JSON/YAML/CSV/XLSX file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("catalog"); err != nil {
			return err
		}
		c, err := catalog.Open(cmd.Context(), cfg.Catalog)
		if err != nil {
			return err
		}
		if err := catalog.WriteFile(exportTo, c.Leads()); err != nil {
			return err
		}
		zap.L().Info("catalog exported", zap.String("to", exportTo), zap.Int("leads", c.Len()))
		return nil
	},
}

func init() {
	catalogImportCmd.Flags().StringVar(&importFrom, "from", "", "source catalog file")
	catalogImportCmd.Flags().StringVar(&importFormat, "format", "", "source format (default from extension)")
	catalogImportCmd.Flags().StringVar(&importTo, "to", "", "destination DSN (SQLite path or postgres:// URL)")
	_ = catalogImportCmd.MarkFlagRequired("from")
	_ = catalogImportCmd.MarkFlagRequired("to")

	catalogExportCmd.Flags().StringVar(&exportTo, "to", "", "destination file")
	_ = catalogExportCmd.MarkFlagRequired("to")

	catalogCmd.AddCommand(catalogListCmd, catalogImportCmd, catalogExportCmd)
	rootCmd.AddCommand(catalogCmd)
}

// importCatalog validates the leads in a file and replaces the catalog
// stored at dsn with them. It returns the import id.
func importCatalog(ctx context.Context, from, format, dsn string) (string, error) {
	c, err := catalog.Load(ctx, catalog.File{Path: from, Format: format})
	if err != nil {
		return "", err
	}

	st, err := catalog.OpenStore(ctx, dsn)
	if err != nil {
		return "", err
	}
	defer st.Close() //nolint:errcheck

	if err := st.Migrate(ctx); err != nil {
		return "", eris.Wrap(err, "migrate catalog store")
	}
	id, err := st.Replace(ctx, from, c.Leads())
	if err != nil {
		return "", err
	}

	zap.L().Info("catalog imported",
		zap.String("from", from),
		zap.String("import_id", id),
		zap.Int("leads", c.Len()),
	)
	return id, nil
}

// printCatalogSummary writes the lead count and a per-industry table.
func printCatalogSummary(w io.Writer, c *catalog.Catalog) error {
	counts := c.IndustryCounts()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "INDUSTRY\tLEADS\n")
	for _, ind := range model.Industries {
		fmt.Fprintf(tw, "%s\t%d\n", ind, counts[ind])
	}
	fmt.Fprintf(tw, "TOTAL\t%d\n", c.Len())
	return eris.Wrap(tw.Flush(), "catalog: write summary")
}
