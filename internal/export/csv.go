package export

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-agent/internal/model"
)

// WriteCSV writes ranked leads as CSV with a header row.
func WriteCSV(w io.Writer, leads []model.ScoredLead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, sl := range leads {
		if err := cw.Write(buildRow(sl)); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

// WriteFile writes ranked leads to path in the given format.
func WriteFile(path, format string, leads []model.ScoredLead) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	if err := Write(f, format, leads); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return eris.Wrap(f.Close(), "export: close file")
}
