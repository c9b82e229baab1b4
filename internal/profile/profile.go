// Package profile summarizes a parsed table per column: inferred type,
// missing ratio, cardinality, and a numeric summary where one applies.
// It backs the preview endpoint and the CLI preview command.
package profile

import (
	"github.com/montanaflynn/stats"

	"concilia/domain/table"
)

// Thresholds for column type inference, as ratios of non-missing cells.
const (
	numericThreshold     = 0.8
	timestampThreshold   = 0.8
	categoricalMaxUnique = 20
	categoricalMaxRatio  = 0.1
)

// ColumnProfile describes one column of a table
type ColumnProfile struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"` // numeric, timestamp, categorical, string
	MissingRatio float64  `json:"missing_ratio"`
	UniqueCount  int      `json:"unique_count"`
	Mean         *float64 `json:"mean,omitempty"`
	Median       *float64 `json:"median,omitempty"`
	StdDev       *float64 `json:"std_dev,omitempty"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
}

// TableProfile describes a whole table
type TableProfile struct {
	RowCount    int             `json:"row_count"`
	ColumnCount int             `json:"column_count"`
	Columns     []ColumnProfile `json:"columns"`
}

// Analyze profiles every column of the table in header order
func Analyze(t *table.Table) *TableProfile {
	p := &TableProfile{
		RowCount:    len(t.Rows),
		ColumnCount: len(t.Columns),
		Columns:     make([]ColumnProfile, 0, len(t.Columns)),
	}
	for _, col := range t.Columns {
		p.Columns = append(p.Columns, analyzeColumn(t, col))
	}
	return p
}

func analyzeColumn(t *table.Table, col string) ColumnProfile {
	cp := ColumnProfile{Name: col, Type: "string"}
	if len(t.Rows) == 0 {
		return cp
	}

	var numbers []float64
	unique := make(map[string]bool)
	missing := 0
	timestamps := 0

	for _, row := range t.Rows {
		cell := row.Cell(col)
		if cell.IsMissing() {
			missing++
			continue
		}
		unique[cell.String()] = true
		switch cell.Kind {
		case table.KindNumber:
			numbers = append(numbers, *cell.NumberVal)
		case table.KindTimestamp:
			timestamps++
		}
	}

	cp.MissingRatio = float64(missing) / float64(len(t.Rows))
	cp.UniqueCount = len(unique)

	valid := len(t.Rows) - missing
	if valid == 0 {
		return cp
	}

	numericRatio := float64(len(numbers)) / float64(valid)
	timestampRatio := float64(timestamps) / float64(valid)
	uniqueRatio := float64(len(unique)) / float64(valid)

	switch {
	case numericRatio >= numericThreshold:
		cp.Type = "numeric"
		fillNumericSummary(&cp, numbers)
	case timestampRatio >= timestampThreshold:
		cp.Type = "timestamp"
	case uniqueRatio < categoricalMaxRatio && len(unique) <= categoricalMaxUnique:
		cp.Type = "categorical"
	}
	return cp
}

func fillNumericSummary(cp *ColumnProfile, numbers []float64) {
	if len(numbers) == 0 {
		return
	}
	data := stats.Float64Data(numbers)
	if v, err := data.Mean(); err == nil {
		cp.Mean = &v
	}
	if v, err := data.Median(); err == nil {
		cp.Median = &v
	}
	if v, err := data.StandardDeviation(); err == nil {
		cp.StdDev = &v
	}
	if v, err := data.Min(); err == nil {
		cp.Min = &v
	}
	if v, err := data.Max(); err == nil {
		cp.Max = &v
	}
}
