package table

import (
	"strconv"
	"time"
)

// CellKind defines the storage type for cell values
type CellKind string

const (
	KindString    CellKind = "string"
	KindNumber    CellKind = "number"
	KindBool      CellKind = "bool"
	KindTimestamp CellKind = "timestamp"
	KindMissing   CellKind = "missing"
)

// Cell represents a typed spreadsheet value with deterministic conversion
// to its string form. Exactly one of the value fields is set, selected by Kind.
type Cell struct {
	Kind         CellKind   `json:"kind"`
	StringVal    *string    `json:"string_val,omitempty"`
	NumberVal    *float64   `json:"number_val,omitempty"`
	BoolVal      *bool      `json:"bool_val,omitempty"`
	TimestampVal *time.Time `json:"timestamp_val,omitempty"`
}

// NewStringCell creates a string cell; empty strings are missing
func NewStringCell(s string) Cell {
	if s == "" {
		return Cell{Kind: KindMissing}
	}
	return Cell{Kind: KindString, StringVal: &s}
}

// NewNumberCell creates a numeric cell
func NewNumberCell(n float64) Cell {
	return Cell{Kind: KindNumber, NumberVal: &n}
}

// NewBoolCell creates a boolean cell
func NewBoolCell(b bool) Cell {
	return Cell{Kind: KindBool, BoolVal: &b}
}

// NewTimestampCell creates a timestamp cell
func NewTimestampCell(t time.Time) Cell {
	return Cell{Kind: KindTimestamp, TimestampVal: &t}
}

// NewMissingCell creates a missing cell
func NewMissingCell() Cell {
	return Cell{Kind: KindMissing}
}

// IsMissing reports whether the cell holds no value
func (c Cell) IsMissing() bool {
	return c.Kind == KindMissing || c.Kind == ""
}

// String returns the total string conversion of the cell. Numbers render
// without a forced decimal tail so integers round-trip as written, and
// missing cells render empty.
func (c Cell) String() string {
	switch c.Kind {
	case KindString:
		if c.StringVal != nil {
			return *c.StringVal
		}
	case KindNumber:
		if c.NumberVal != nil {
			return strconv.FormatFloat(*c.NumberVal, 'f', -1, 64)
		}
	case KindBool:
		if c.BoolVal != nil {
			return strconv.FormatBool(*c.BoolVal)
		}
	case KindTimestamp:
		if c.TimestampVal != nil {
			return c.TimestampVal.Format(time.RFC3339)
		}
	}
	return ""
}

// Value returns the native value for spreadsheet serialization.
// Missing cells map to nil so the writer leaves them blank.
func (c Cell) Value() interface{} {
	switch c.Kind {
	case KindString:
		if c.StringVal != nil {
			return *c.StringVal
		}
	case KindNumber:
		if c.NumberVal != nil {
			return *c.NumberVal
		}
	case KindBool:
		if c.BoolVal != nil {
			return *c.BoolVal
		}
	case KindTimestamp:
		if c.TimestampVal != nil {
			return *c.TimestampVal
		}
	}
	return nil
}
