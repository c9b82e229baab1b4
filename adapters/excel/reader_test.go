package excel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"concilia/domain/core"
	"concilia/domain/table"
)

// buildXLSX creates an in-memory workbook from string rows
func buildXLSX(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestNewDataReader(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{filename: "cities.xlsx", wantErr: false},
		{filename: "cities.XLSX", wantErr: false},
		{filename: "legacy.xls", wantErr: false},
		{filename: "cities.csv", wantErr: false},
		{filename: "cities.txt", wantErr: true},
		{filename: "cities", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			_, err := NewDataReader(tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrUnsupportedFile)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReadData_XLSX(t *testing.T) {
	payload := buildXLSX(t, [][]interface{}{
		{"City", "Pop", "Founded"},
		{"Lisbon", 500, "2024-03-01"},
		{" porto ", 200, ""},
	})

	reader, err := NewDataReader("cities.xlsx")
	require.NoError(t, err)
	got, err := reader.ReadData(payload)
	require.NoError(t, err)

	assert.Equal(t, []string{"City", "Pop", "Founded"}, got.Columns)
	require.Len(t, got.Rows, 2)

	assert.Equal(t, table.KindString, got.Rows[0].Cell("City").Kind)
	assert.Equal(t, table.KindNumber, got.Rows[0].Cell("Pop").Kind)
	assert.Equal(t, "500", got.Rows[0].Cell("Pop").String())
	assert.Equal(t, table.KindTimestamp, got.Rows[0].Cell("Founded").Kind)
	assert.True(t, got.Rows[1].Cell("Founded").IsMissing())
}

func TestReadData_CSV(t *testing.T) {
	payload := strings.NewReader("City,Pop\nLisbon,500\nPorto,200\n")

	reader, err := NewDataReader("cities.csv")
	require.NoError(t, err)
	got, err := reader.ReadData(payload)
	require.NoError(t, err)

	assert.Equal(t, []string{"City", "Pop"}, got.Columns)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "Lisbon", got.Rows[0].Cell("City").String())
	assert.Equal(t, table.KindNumber, got.Rows[0].Cell("Pop").Kind)
}

func TestReadData_ShortRowsPadWithMissing(t *testing.T) {
	payload := strings.NewReader("City,Pop\nLisbon\n")

	reader, err := NewDataReader("cities.csv")
	require.NoError(t, err)
	got, err := reader.ReadData(payload)
	require.NoError(t, err)

	require.Len(t, got.Rows, 1)
	assert.True(t, got.Rows[0].Cell("Pop").IsMissing())
}

func TestReadData_HeaderOnlyFails(t *testing.T) {
	payload := buildXLSX(t, [][]interface{}{{"City", "Pop"}})

	reader, err := NewDataReader("cities.xlsx")
	require.NoError(t, err)
	_, err = reader.ReadData(payload)
	assert.ErrorIs(t, err, core.ErrEmptyTable)
}

func TestCoerceCell(t *testing.T) {
	tests := []struct {
		raw  string
		kind table.CellKind
		str  string
	}{
		{raw: "Lisbon", kind: table.KindString, str: "Lisbon"},
		{raw: "500", kind: table.KindNumber, str: "500"},
		{raw: " 2.5 ", kind: table.KindNumber, str: "2.5"},
		{raw: "2024-03-01", kind: table.KindTimestamp, str: "2024-03-01T00:00:00Z"},
		{raw: "", kind: table.KindMissing, str: ""},
		{raw: "   ", kind: table.KindMissing, str: ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := CoerceCell(tt.raw)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.str, got.String())
		})
	}
}
