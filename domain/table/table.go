package table

// Row maps a column name to its cell value
type Row map[string]Cell

// Cell returns the row's cell for column, missing if absent
func (r Row) Cell(column string) Cell {
	if c, ok := r[column]; ok {
		return c
	}
	return NewMissingCell()
}

// Table is an ordered row-set: a shared header plus data rows.
// Column order is carried separately because rows are maps.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// New creates a table with the given header and no rows
func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds a row to the table
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// HasColumn reports whether name is part of the table's header
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// RenameColumn renames a header column in place and moves every row's
// cell to the new name. A no-op when from is absent.
func (t *Table) RenameColumn(from, to string) {
	for i, c := range t.Columns {
		if c == from {
			t.Columns[i] = to
		}
	}
	if from == to {
		return
	}
	for _, row := range t.Rows {
		if cell, ok := row[from]; ok {
			delete(row, from)
			row[to] = cell
		}
	}
}

// KeySet returns the distinct non-missing string values of column,
// in order of first appearance.
func (t *Table) KeySet(column string) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, row := range t.Rows {
		cell := row.Cell(column)
		if cell.IsMissing() {
			continue
		}
		key := cell.String()
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}

// Clone returns a deep copy of the table. Transformations operate on
// copies so callers keep the parsed input intact.
func (t *Table) Clone() *Table {
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	out.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		cp := make(Row, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out.Rows[i] = cp
	}
	return out
}
