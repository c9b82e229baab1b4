package excel

import (
	"io"

	"github.com/xuri/excelize/v2"

	"concilia/domain/table"
)

// ResultSheet is the single sheet the reconciliation result is written to.
const ResultSheet = "Dados Completos"

// ResultFilename is the attachment name the result is delivered under.
const ResultFilename = "dados_completos.xlsx"

// WriteTable serializes a table as a single-sheet xlsx payload: the table's
// columns as the header row, rows as data rows, missing cells left blank.
func WriteTable(w io.Writer, t *table.Table, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	// Header row
	for i, h := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	// Data rows
	for r, row := range t.Rows {
		rowIdx := r + 2
		for c, col := range t.Columns {
			val := row.Cell(col).Value()
			if val == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}
