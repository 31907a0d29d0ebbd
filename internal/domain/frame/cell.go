package frame

import (
	"strconv"
	"strings"
)

// Kind is the JSON type of a cell.
type Kind uint8

// Cell kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindJSON
)

// Cell holds one value of a row as it was received.
type Cell struct {
	Kind Kind
	Num  float64
	Str  string
	Bool bool
	// Raw is the JSON text of the value.
	Raw string
	// Integer marks numbers written as integer literals (no fraction or exponent)
	// that fit in an int64. Int then holds the exact value.
	Integer bool
	Int     int64
}

// Null returns an empty cell.
func Null() Cell { return Cell{Kind: KindNull, Raw: "null"} }

// Number returns a numeric cell; Raw is the display form for its dtype.
func Number(v float64, integer bool) Cell {
	c := Cell{Kind: KindNumber, Num: v, Integer: integer, Raw: FormatNumber(v, integer)}
	if integer {
		c.Int = int64(v)
	}
	return c
}

// IntNumber returns an integer-typed numeric cell.
func IntNumber(n int64) Cell {
	return Cell{Kind: KindNumber, Num: float64(n), Int: n, Integer: true, Raw: strconv.FormatInt(n, 10)}
}

// String returns a display form of the cell on its own, ignoring column dtype.
func (c Cell) String() string {
	switch c.Kind {
	case KindNull:
		return "None"
	case KindBool:
		if c.Bool {
			return "True"
		}
		return "False"
	case KindNumber:
		if c.Integer {
			return strconv.FormatInt(c.Int, 10)
		}
		return FormatNumber(c.Num, false)
	case KindString:
		return c.Str
	default:
		return c.Raw
	}
}

// FormatNumber renders integer-typed values without a decimal point and
// float-typed values always with one, e.g. 2 and 2.0.
func FormatNumber(v float64, integer bool) string {
	if integer {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// isIntegerLiteral reports whether a JSON number literal has no fraction or exponent.
func isIntegerLiteral(raw string) bool {
	return !strings.ContainsAny(raw, ".eE")
}
