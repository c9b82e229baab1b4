// Package reconcile implements the data-reconciliation pipeline: key
// normalization, set-based filtering to the second table's keys, and a
// full outer join on the normalized key. All operations are pure and
// work on copies of their inputs.
package reconcile

import (
	"strings"

	"concilia/domain/core"
	"concilia/domain/table"
)

// KeyColumn is the reserved column name both tables share after
// normalization. Inputs must not use it for anything but the chosen key.
const KeyColumn = "comum"

// Suffixes for non-key column name collisions between the two sides.
const (
	leftSuffix  = "_1"
	rightSuffix = "_2"
)

// Normalize renames keyColumn to the reserved key column and rewrites every
// key cell as its uppercase, whitespace-trimmed string form. Missing key
// cells stay missing. The side label only feeds error messages.
func Normalize(t *table.Table, keyColumn, side string) (*table.Table, error) {
	if !t.HasColumn(keyColumn) {
		return nil, core.NewMissingColumnError(keyColumn, side)
	}
	if keyColumn != KeyColumn && t.HasColumn(KeyColumn) {
		return nil, core.NewReservedColumnError(KeyColumn, side)
	}

	out := t.Clone()
	out.RenameColumn(keyColumn, KeyColumn)
	for _, row := range out.Rows {
		cell := row.Cell(KeyColumn)
		if cell.IsMissing() {
			continue
		}
		row[KeyColumn] = table.NewStringCell(strings.ToUpper(strings.TrimSpace(cell.String())))
	}
	return out, nil
}

// RestrictToCommonKeys filters both tables to the common key set,
// preserving row order. The primary keeps only rows whose key appears in
// the secondary; the secondary keeps only rows whose key survived on the
// primary side, so both sides enter the join with the same key set. Only
// an empty filtered primary is fatal.
func RestrictToCommonKeys(primary, secondary *table.Table) (*table.Table, *table.Table, error) {
	secondaryKeys := make(map[string]bool)
	for _, key := range secondary.KeySet(KeyColumn) {
		secondaryKeys[key] = true
	}

	filteredPrimary := filterByKeys(primary, secondaryKeys)
	if len(filteredPrimary.Rows) == 0 {
		return nil, nil, core.ErrEmptyResult
	}

	common := make(map[string]bool)
	for _, key := range filteredPrimary.KeySet(KeyColumn) {
		common[key] = true
	}
	filteredSecondary := filterByKeys(secondary, common)

	return filteredPrimary, filteredSecondary, nil
}

func filterByKeys(t *table.Table, keys map[string]bool) *table.Table {
	out := table.New(append([]string(nil), t.Columns...)...)
	for _, row := range t.Rows {
		cell := row.Cell(KeyColumn)
		if cell.IsMissing() {
			continue
		}
		if keys[cell.String()] {
			out.Append(row)
		}
	}
	return out
}

// OuterJoin performs a full outer join of left and right on key. The result
// carries the key once, then the left columns, then the right columns, with
// non-key name collisions suffixed _1 and _2. Duplicate keys on either side
// produce the cross product of their rows; keys present on one side only get
// missing cells for the other side's columns. Keys are emitted in order of
// first appearance across left then right.
func OuterJoin(left, right *table.Table, key string) *table.Table {
	leftCols := nonKeyColumns(left, key)
	rightCols := nonKeyColumns(right, key)
	leftNames, rightNames := resolveCollisions(leftCols, rightCols)

	columns := make([]string, 0, 1+len(leftCols)+len(rightCols))
	columns = append(columns, key)
	for _, c := range leftCols {
		columns = append(columns, leftNames[c])
	}
	for _, c := range rightCols {
		columns = append(columns, rightNames[c])
	}
	result := table.New(columns...)

	leftGroups, leftOrder := groupByKey(left, key)
	rightGroups, rightOrder := groupByKey(right, key)

	keyOrder := leftOrder
	for _, k := range rightOrder {
		if _, ok := leftGroups[k]; !ok {
			keyOrder = append(keyOrder, k)
		}
	}

	for _, k := range keyOrder {
		leftRows := leftGroups[k]
		rightRows := rightGroups[k]
		if len(leftRows) == 0 {
			leftRows = []table.Row{nil}
		}
		if len(rightRows) == 0 {
			rightRows = []table.Row{nil}
		}
		for _, lr := range leftRows {
			for _, rr := range rightRows {
				out := table.Row{key: table.NewStringCell(k)}
				fillSide(out, lr, leftCols, leftNames)
				fillSide(out, rr, rightCols, rightNames)
				result.Append(out)
			}
		}
	}
	return result
}

func nonKeyColumns(t *table.Table, key string) []string {
	var cols []string
	for _, c := range t.Columns {
		if c != key {
			cols = append(cols, c)
		}
	}
	return cols
}

// resolveCollisions maps each side's column names to their output names,
// suffixing only names present on both sides.
func resolveCollisions(leftCols, rightCols []string) (map[string]string, map[string]string) {
	inRight := make(map[string]bool, len(rightCols))
	for _, c := range rightCols {
		inRight[c] = true
	}

	leftNames := make(map[string]string, len(leftCols))
	rightNames := make(map[string]string, len(rightCols))
	for _, c := range leftCols {
		if inRight[c] {
			leftNames[c] = c + leftSuffix
		} else {
			leftNames[c] = c
		}
	}
	collides := make(map[string]bool, len(leftCols))
	for _, c := range leftCols {
		collides[c] = true
	}
	for _, c := range rightCols {
		if collides[c] {
			rightNames[c] = c + rightSuffix
		} else {
			rightNames[c] = c
		}
	}
	return leftNames, rightNames
}

func groupByKey(t *table.Table, key string) (map[string][]table.Row, []string) {
	groups := make(map[string][]table.Row)
	var order []string
	for _, row := range t.Rows {
		cell := row.Cell(key)
		if cell.IsMissing() {
			continue
		}
		k := cell.String()
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], row)
	}
	return groups, order
}

func fillSide(out, src table.Row, cols []string, names map[string]string) {
	for _, c := range cols {
		if src == nil {
			out[names[c]] = table.NewMissingCell()
			continue
		}
		out[names[c]] = src.Cell(c)
	}
}

// Run executes the whole pipeline: normalize both tables, restrict to the
// second table's key set, outer join. The first table is the primary side
// for the empty-result check.
func Run(first, second *table.Table, key1, key2 string) (*table.Table, error) {
	left, err := Normalize(first, key1, "the first file")
	if err != nil {
		return nil, err
	}
	right, err := Normalize(second, key2, "the second file")
	if err != nil {
		return nil, err
	}
	left, right, err = RestrictToCommonKeys(left, right)
	if err != nil {
		return nil, err
	}
	return OuterJoin(left, right, KeyColumn), nil
}
