package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/lead-agent/internal/model"
)

// sheetName is the worksheet ranked leads are written to.
const sheetName = "Prioritized Leads"

// firstScoreColumn is the index of Fit Score. The four score columns are
// written as numeric cells.
const firstScoreColumn = 9

// WriteXLSX writes ranked leads as a single-sheet workbook.
func WriteXLSX(w io.Writer, leads []model.ScoredLead) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range Columns {
		header.AddCell().SetString(col)
	}

	for _, sl := range leads {
		row := sheet.AddRow()
		for i, v := range buildRow(sl) {
			cell := row.AddCell()
			if i >= firstScoreColumn && i < firstScoreColumn+4 {
				cell.SetInt(scoreAt(sl, i-firstScoreColumn))
				continue
			}
			cell.SetString(v)
		}
	}

	return eris.Wrap(file.Write(w), "export: write xlsx")
}

func scoreAt(sl model.ScoredLead, i int) int {
	return [...]int{sl.FitScore, sl.IntentScore, sl.ClosingScore, sl.TotalScore}[i]
}
