package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"concilia/domain/core"
	"concilia/domain/table"
)

// DataReader parses an uploaded Excel or CSV payload into a table
type DataReader struct {
	filename string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader for the named payload. The extension picks
// the parser: .csv goes through encoding/csv, everything else through excelize.
func NewDataReader(filename string) (*DataReader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xls":
		return &DataReader{filename: filename, fileType: "xlsx"}, nil
	case ".csv":
		return &DataReader{filename: filename, fileType: "csv"}, nil
	}
	return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFile, filename)
}

// ReadData parses the payload into a table with typed cells, using the
// first row as column headers.
func (r *DataReader) ReadData(payload io.Reader) (*table.Table, error) {
	log.Printf("[DataReader] Starting to read %s payload: %s", r.fileType, r.filename)

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows(payload)
	default:
		rows, err = r.readExcelRows(payload)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: %s", core.ErrEmptyTable, r.filename)
	}

	return r.processRows(rows)
}

// readExcelRows reads Sheet1 of an xlsx payload via excelize
func (r *DataReader) readExcelRows(payload io.Reader) ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel payload: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("Excel payload has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	log.Printf("[DataReader] Sheet %q read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// readCSVRows reads a CSV payload
func (r *DataReader) readCSVRows(payload io.Reader) ([][]string, error) {
	reader := csv.NewReader(payload)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV payload: %w", err)
	}
	return rows, nil
}

// processRows converts raw string rows into a typed table
func (r *DataReader) processRows(rows [][]string) (*table.Table, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	t := table.New(headers...)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowData := make(table.Row, len(headers))
		for j, header := range headers {
			if j < len(row) {
				rowData[header] = CoerceCell(row[j])
			} else {
				rowData[header] = table.NewMissingCell()
			}
		}
		t.Append(rowData)
	}

	log.Printf("[DataReader] %s payload processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(t.Columns), len(t.Rows))
	return t, nil
}
