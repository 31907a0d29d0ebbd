package frame

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

// Decode builds a Frame from a JSON array of objects. Columns are the union
// of object keys in first-seen order; a repeated key within an object keeps
// its last value.
func Decode(data []byte) (*Frame, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, ErrNotArray
	}

	f := &Frame{}
	seen := make(map[string]struct{})
	var decodeErr error
	doc.ForEach(func(_, elem gjson.Result) bool {
		if !elem.IsObject() {
			decodeErr = fmt.Errorf("%w: row %d is %s", ErrNotObject, len(f.Rows), elem.Type)
			return false
		}
		row := make(Row)
		elem.ForEach(func(key, value gjson.Result) bool {
			name := key.Str
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				f.Columns = append(f.Columns, name)
			}
			row[name] = cellOf(value)
			return true
		})
		f.Rows = append(f.Rows, row)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return f, nil
}

func cellOf(v gjson.Result) Cell {
	switch v.Type {
	case gjson.Null:
		return Null()
	case gjson.True, gjson.False:
		return Cell{Kind: KindBool, Bool: v.Type == gjson.True, Raw: v.Raw}
	case gjson.Number:
		// Literals such as 1e400 overflow to ±Inf; keep them as raw text.
		if math.IsInf(v.Num, 0) || math.IsNaN(v.Num) {
			return Cell{Kind: KindJSON, Raw: v.Raw}
		}
		c := Cell{Kind: KindNumber, Num: v.Num, Raw: v.Raw}
		if isIntegerLiteral(v.Raw) {
			if n, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
				c.Integer, c.Int = true, n
			}
		}
		return c
	case gjson.String:
		return Cell{Kind: KindString, Str: v.Str, Raw: v.Raw}
	default:
		return Cell{Kind: KindJSON, Raw: v.Raw}
	}
}
