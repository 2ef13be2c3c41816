package survey

import (
	"fmt"
	"sort"
	"strconv"
)

// CellKind discriminates the three value shapes a survey cell can hold.
type CellKind int

const (
	// CellBlank marks an empty or unresolvable cell. Blank cells are
	// excluded from every statistic downstream.
	CellBlank CellKind = iota
	// CellText holds a raw categorical or metadata value.
	CellText
	// CellRank holds a resolved numeric Likert rank.
	CellRank
)

// Cell is one table value: raw text, a resolved rank, or blank.
type Cell struct {
	Kind  CellKind
	Text  string
	Value float64
}

// Text returns a text cell; blank strings become blank cells.
func Text(s string) Cell {
	if s == "" {
		return Cell{Kind: CellBlank}
	}
	return Cell{Kind: CellText, Text: s}
}

// Rank returns a rank cell.
func Rank(v float64) Cell {
	return Cell{Kind: CellRank, Value: v}
}

// Blank returns the missing-value cell.
func Blank() Cell {
	return Cell{Kind: CellBlank}
}

// Rank returns the numeric rank and whether the cell holds one.
func (c Cell) Rank() (float64, bool) {
	if c.Kind != CellRank {
		return 0, false
	}
	return c.Value, true
}

// IsBlank reports whether the cell carries no value.
func (c Cell) IsBlank() bool {
	return c.Kind == CellBlank
}

// String renders the cell for output writers.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellRank:
		return strconv.FormatFloat(c.Value, 'f', -1, 64)
	default:
		return ""
	}
}

// Row is one respondent's record keyed by column name.
type Row map[string]Cell

// Table is an ordered-column, row-major survey table. All core
// transforms treat tables as immutable and return copies.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given column order.
func NewTable(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// ColumnIndex returns the position of name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, column); blank when absent.
func (t *Table) Cell(row int, column string) Cell {
	if row < 0 || row >= len(t.Rows) {
		return Blank()
	}
	c, ok := t.Rows[row][column]
	if !ok {
		return Blank()
	}
	return c
}

// Column extracts one column's cells in row order.
func (t *Table) Column(name string) []Cell {
	out := make([]Cell, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Cell(i, name)
	}
	return out
}

// Clone deep-copies the table so transforms never touch the caller's data.
func (t *Table) Clone() *Table {
	nt := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		nr := make(Row, len(r))
		for k, v := range r {
			nr[k] = v
		}
		nt.Rows[i] = nr
	}
	return nt
}

// Append adds a row. Cells for unknown columns are kept but unreachable
// until the column is declared.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// InsertColumnBefore declares a new column immediately before anchor.
// When anchor is absent the column is appended at the end.
func (t *Table) InsertColumnBefore(name, anchor string) {
	ix := t.ColumnIndex(anchor)
	if ix < 0 {
		t.Columns = append(t.Columns, name)
		return
	}
	cols := make([]string, 0, len(t.Columns)+1)
	cols = append(cols, t.Columns[:ix]...)
	cols = append(cols, name)
	cols = append(cols, t.Columns[ix:]...)
	t.Columns = cols
}

// DropColumns removes the named columns and their cells. Unknown names
// are ignored.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := t.Columns[:0:0]
	for _, c := range t.Columns {
		if !drop[c] {
			kept = append(kept, c)
		}
	}
	t.Columns = kept
	for _, r := range t.Rows {
		for n := range drop {
			delete(r, n)
		}
	}
}

// Select returns a copy restricted to the given columns, in that order.
func (t *Table) Select(columns ...string) *Table {
	nt := NewTable(columns...)
	nt.Rows = make([]Row, len(t.Rows))
	for i := range t.Rows {
		nr := make(Row, len(columns))
		for _, c := range columns {
			if v, ok := t.Rows[i][c]; ok {
				nr[c] = v
			}
		}
		nt.Rows[i] = nr
	}
	return nt
}

// RenameColumns maps old column names to new ones, preserving order.
// The rename is applied to a copy.
func (t *Table) RenameColumns(mapping map[string]string) *Table {
	nt := t.Clone()
	for i, c := range nt.Columns {
		if repl, ok := mapping[c]; ok {
			nt.Columns[i] = repl
		}
	}
	for _, r := range nt.Rows {
		for oldName, newName := range mapping {
			if v, ok := r[oldName]; ok {
				delete(r, oldName)
				r[newName] = v
			}
		}
	}
	return nt
}

// SortByColumn returns a copy stably sorted ascending by the text
// rendering of the given column.
func (t *Table) SortByColumn(name string) *Table {
	nt := t.Clone()
	sort.SliceStable(nt.Rows, func(i, j int) bool {
		return nt.Rows[i][name].String() < nt.Rows[j][name].String()
	})
	return nt
}

// Filter returns a copy containing only the rows keep reports true for,
// preserving relative order.
func (t *Table) Filter(keep func(Row) bool) *Table {
	nt := NewTable(t.Columns...)
	for _, r := range t.Rows {
		if keep(r) {
			nr := make(Row, len(r))
			for k, v := range r {
				nr[k] = v
			}
			nt.Rows = append(nt.Rows, nr)
		}
	}
	return nt
}

// Len returns the row count.
func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) String() string {
	return fmt.Sprintf("Table(%d columns, %d rows)", len(t.Columns), len(t.Rows))
}
