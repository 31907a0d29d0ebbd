package api

import (
	"encoding/json"
	"strconv"

	"github.com/okian/minerboard/internal/domain/frame"
)

// tableView is the raw leaderboard table as strings, ready for the page.
type tableView struct {
	Columns []string
	Rows    []tableRow
}

type tableRow struct {
	Index string
	Cells []string
}

func newTableView(f *frame.Frame) tableView {
	types := make([]frame.ColumnType, len(f.Columns))
	for j, name := range f.Columns {
		types[j] = f.Type(name)
	}
	t := tableView{Columns: f.Columns, Rows: make([]tableRow, f.Len())}
	for i := range f.Rows {
		cells := make([]string, len(f.Columns))
		for j, name := range f.Columns {
			cells[j] = f.DisplayAs(i, name, types[j])
		}
		t.Rows[i] = tableRow{Index: strconv.Itoa(i), Cells: cells}
	}
	return t
}

// jsonRows returns the frame rows as positional JSON values.
func jsonRows(f *frame.Frame) [][]any {
	rows := make([][]any, f.Len())
	for i := range f.Rows {
		row := make([]any, len(f.Columns))
		for j, name := range f.Columns {
			row[j] = jsonValue(f.Cell(i, name))
		}
		rows[i] = row
	}
	return rows
}

func jsonValue(c frame.Cell) any {
	switch c.Kind {
	case frame.KindBool:
		return c.Bool
	case frame.KindNumber:
		if c.Integer {
			return c.Int
		}
		return c.Num
	case frame.KindString:
		return c.Str
	case frame.KindJSON:
		return json.RawMessage(c.Raw)
	default:
		return nil
	}
}
