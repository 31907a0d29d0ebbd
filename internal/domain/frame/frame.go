// Package frame holds leaderboard rows as an ordered, column-addressable table.
package frame

import (
	"fmt"
	"slices"
	"strconv"
)

// ColumnType is the inferred dtype of a column.
type ColumnType uint8

// Column types.
const (
	// ColObject holds mixed or non-numeric values.
	ColObject ColumnType = iota
	// ColInteger holds only integer numbers.
	ColInteger
	// ColFloat holds numbers with at least one fraction or null.
	ColFloat
)

// Row maps column name to cell. Absent keys read as null.
type Row map[string]Cell

// Frame is a table of rows with an ordered column set.
type Frame struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.Rows) }

// HasColumn reports whether name is one of the columns.
func (f *Frame) HasColumn(name string) bool {
	return slices.Contains(f.Columns, name)
}

// Cell returns the value at row i of column name, or null when absent.
func (f *Frame) Cell(i int, name string) Cell {
	if c, ok := f.Rows[i][name]; ok {
		return c
	}
	return Null()
}

// Drop removes a column from every row. It reports whether the column existed.
func (f *Frame) Drop(name string) bool {
	idx := slices.Index(f.Columns, name)
	if idx < 0 {
		return false
	}
	f.Columns = slices.Delete(f.Columns, idx, idx+1)
	for _, r := range f.Rows {
		delete(r, name)
	}
	return true
}

// Set writes a column. A new column is appended at the end; an existing one
// keeps its position.
func (f *Frame) Set(name string, cells []Cell) error {
	if len(cells) != len(f.Rows) {
		return fmt.Errorf("%w: %s has %d values for %d rows", ErrLength, name, len(cells), len(f.Rows))
	}
	if !f.HasColumn(name) {
		f.Columns = append(f.Columns, name)
	}
	for i, c := range cells {
		f.Rows[i][name] = c
	}
	return nil
}

// Type infers the dtype of a column.
func (f *Frame) Type(name string) ColumnType {
	numbers, nulls := 0, 0
	integer := true
	for i := range f.Rows {
		c := f.Cell(i, name)
		switch c.Kind {
		case KindNumber:
			numbers++
			integer = integer && c.Integer
		case KindNull:
			nulls++
		default:
			return ColObject
		}
	}
	switch {
	case numbers == 0:
		return ColObject
	case integer && nulls == 0:
		return ColInteger
	default:
		return ColFloat
	}
}

// Display formats the cell at row i of column name for the column's dtype.
func (f *Frame) Display(i int, name string) string {
	return f.DisplayAs(i, name, f.Type(name))
}

// DisplayAs formats a cell for an already inferred column type.
func (f *Frame) DisplayAs(i int, name string, t ColumnType) string {
	c := f.Cell(i, name)
	if c.Kind != KindNumber {
		return c.String()
	}
	switch t {
	case ColInteger:
		return strconv.FormatInt(c.Int, 10)
	case ColFloat:
		return FormatNumber(c.Num, false)
	default:
		return c.String()
	}
}

// Floats returns a numeric column. Every row must hold a number.
// integer is true when the column is integer-typed.
func (f *Frame) Floats(name string) (values []float64, integer bool, err error) {
	if !f.HasColumn(name) {
		return nil, false, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}
	values = make([]float64, len(f.Rows))
	integer = true
	for i := range f.Rows {
		c := f.Cell(i, name)
		if c.Kind != KindNumber {
			return nil, false, fmt.Errorf("%w: %s at row %d is %s", ErrNotNumeric, name, i, c.Raw)
		}
		values[i] = c.Num
		integer = integer && c.Integer
	}
	return values, integer, nil
}

// Ints returns an integer-typed column with exact values.
func (f *Frame) Ints(name string) ([]int64, error) {
	if !f.HasColumn(name) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}
	values := make([]int64, len(f.Rows))
	for i := range f.Rows {
		c := f.Cell(i, name)
		if c.Kind != KindNumber || !c.Integer {
			return nil, fmt.Errorf("%w: %s at row %d is %s", ErrNotInteger, name, i, c.Raw)
		}
		values[i] = c.Int
	}
	return values, nil
}

// Strings returns a string column. Every row must hold a string.
func (f *Frame) Strings(name string) ([]string, error) {
	if !f.HasColumn(name) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}
	out := make([]string, len(f.Rows))
	for i := range f.Rows {
		c := f.Cell(i, name)
		if c.Kind != KindString {
			return nil, fmt.Errorf("%w: %s at row %d is %s", ErrNotString, name, i, c.Raw)
		}
		out[i] = c.Str
	}
	return out, nil
}
