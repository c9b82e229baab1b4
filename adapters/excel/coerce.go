package excel

import (
	"math"
	"strconv"
	"strings"
	"time"

	"concilia/domain/table"
)

// timestampFormats are tried in order when coercing a cell to a date.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
}

// CoerceCell deterministically converts a raw spreadsheet string to a typed
// cell. Numbers win over timestamps; anything else stays a string. Empty
// strings are missing.
func CoerceCell(raw string) table.Cell {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return table.NewMissingCell()
	}

	if val, err := strconv.ParseFloat(clean, 64); err == nil {
		if !math.IsInf(val, 0) && !math.IsNaN(val) {
			return table.NewNumberCell(val)
		}
	}

	for _, format := range timestampFormats {
		if t, err := time.Parse(format, clean); err == nil {
			return table.NewTimestampCell(t)
		}
	}

	return table.NewStringCell(clean)
}
