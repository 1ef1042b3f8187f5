package catalog

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/lead-agent/internal/fetcher"
	"github.com/sells-group/lead-agent/internal/model"
)

// Supported file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// xlsxSheet is the sheet name used when writing XLSX catalogs.
const xlsxSheet = "Leads"

// FormatFor returns the catalog format for path based on its extension.
func FormatFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", eris.Errorf("catalog: cannot infer format of %q", path)
	}
}

// File reads leads from a local JSON, YAML, CSV or XLSX file.
type File struct {
	Path string
	// Format overrides extension-based detection when set.
	Format string
}

// Load implements Source.
func (f File) Load(ctx context.Context) ([]model.Lead, error) {
	format := strings.ToLower(f.Format)
	if format == "" {
		var err error
		if format, err = FormatFor(f.Path); err != nil {
			return nil, err
		}
	}

	switch format {
	case FormatXLSX:
		header, rows, err := fetcher.ReadXLSX(f.Path, fetcher.XLSXOptions{})
		if err != nil {
			return nil, eris.Wrapf(err, "catalog: read %s", f.Path)
		}
		return rowsToLeads(header, rows)
	case FormatJSON, FormatYAML, FormatCSV:
	default:
		return nil, eris.Errorf("catalog: unsupported format %q", format)
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: open %s", f.Path)
	}
	defer file.Close() //nolint:errcheck

	switch format {
	case FormatJSON:
		leads, err := fetcher.DecodeJSONArray[model.Lead](ctx, file)
		return leads, eris.Wrapf(err, "catalog: decode %s", f.Path)
	case FormatYAML:
		var leads []model.Lead
		if err := yaml.NewDecoder(file).Decode(&leads); err != nil {
			return nil, eris.Wrapf(err, "catalog: decode %s", f.Path)
		}
		return leads, nil
	default:
		header, rows, err := fetcher.ReadCSV(ctx, file, fetcher.CSVOptions{TrimSpace: true})
		if err != nil {
			return nil, eris.Wrapf(err, "catalog: read %s", f.Path)
		}
		return rowsToLeads(header, rows)
	}
}

// WriteFile writes leads to path in the format implied by its extension.
func WriteFile(path string, leads []model.Lead) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatXLSX:
		return writeXLSX(path, leads)
	case FormatJSON:
		data, err := json.MarshalIndent(leads, "", "  ")
		if err != nil {
			return eris.Wrap(err, "catalog: marshal json")
		}
		return eris.Wrapf(os.WriteFile(path, data, 0o644), "catalog: write %s", path)
	case FormatYAML:
		data, err := yaml.Marshal(leads)
		if err != nil {
			return eris.Wrap(err, "catalog: marshal yaml")
		}
		return eris.Wrapf(os.WriteFile(path, data, 0o644), "catalog: write %s", path)
	default:
		return writeCSV(path, leads)
	}
}

func writeCSV(path string, leads []model.Lead) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "catalog: create file")
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return eris.Wrap(err, "catalog: write header")
	}
	for _, l := range leads {
		if err := w.Write(leadToRow(l)); err != nil {
			return eris.Wrap(err, "catalog: write row")
		}
	}
	w.Flush()
	return eris.Wrap(w.Error(), "catalog: flush csv")
}

func writeXLSX(path string, leads []model.Lead) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(xlsxSheet)
	if err != nil {
		return eris.Wrap(err, "catalog: add sheet")
	}
	addRow(sheet, Columns)
	for _, l := range leads {
		addRow(sheet, leadToRow(l))
	}
	return eris.Wrapf(file.Save(path), "catalog: save %s", path)
}

func addRow(sheet *xlsx.Sheet, values []string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
