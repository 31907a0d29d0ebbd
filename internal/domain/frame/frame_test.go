package frame

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDecode(t *testing.T) {
	Convey("Given leaderboard JSON", t, func() {
		Convey("When rows share the same keys", func() {
			f, err := Decode([]byte(`[
				{"wallet_addr":"0xA","blocks_won":2,"crypto_paid":1.5},
				{"wallet_addr":"0xB","blocks_won":0,"crypto_paid":3}
			]`))

			Convey("Then columns keep document order and rows keep source order", func() {
				So(err, ShouldBeNil)
				So(f.Columns, ShouldResemble, []string{"wallet_addr", "blocks_won", "crypto_paid"})
				So(f.Len(), ShouldEqual, 2)
				So(f.Cell(0, "wallet_addr").Str, ShouldEqual, "0xA")
				So(f.Cell(1, "wallet_addr").Str, ShouldEqual, "0xB")
			})

			Convey("And number literals remember whether they were integers", func() {
				So(f.Cell(0, "blocks_won").Integer, ShouldBeTrue)
				So(f.Cell(0, "crypto_paid").Integer, ShouldBeFalse)
				So(f.Cell(1, "crypto_paid").Integer, ShouldBeTrue)
			})
		})

		Convey("When rows have different keys", func() {
			f, err := Decode([]byte(`[{"a":1},{"b":"x","a":2},{"c":null}]`))

			Convey("Then columns are the union in first-seen order and gaps read as null", func() {
				So(err, ShouldBeNil)
				So(f.Columns, ShouldResemble, []string{"a", "b", "c"})
				So(f.Cell(0, "b").Kind, ShouldEqual, KindNull)
				So(f.Cell(2, "a").Kind, ShouldEqual, KindNull)
				So(f.Cell(2, "c").Kind, ShouldEqual, KindNull)
			})
		})

		Convey("When values have every JSON type", func() {
			f, err := Decode([]byte(`[{"b":true,"s":"hi","o":{"k":[1,2]},"n":null,"e":1e3}]`))

			Convey("Then each cell keeps its kind and raw text", func() {
				So(err, ShouldBeNil)
				So(f.Cell(0, "b").Kind, ShouldEqual, KindBool)
				So(f.Cell(0, "b").String(), ShouldEqual, "True")
				So(f.Cell(0, "s").String(), ShouldEqual, "hi")
				So(f.Cell(0, "o").Kind, ShouldEqual, KindJSON)
				So(f.Cell(0, "o").String(), ShouldEqual, `{"k":[1,2]}`)
				So(f.Cell(0, "n").String(), ShouldEqual, "None")
				So(f.Cell(0, "e").Integer, ShouldBeFalse)
				So(f.Cell(0, "e").Num, ShouldEqual, 1000)
			})
		})

		Convey("When a number literal overflows float64", func() {
			f, err := Decode([]byte(`[{"x":1e400,"y":-1e400}]`))

			Convey("Then the cell is kept as raw text and is not numeric", func() {
				So(err, ShouldBeNil)
				So(f.Cell(0, "x").Kind, ShouldEqual, KindJSON)
				So(f.Cell(0, "x").String(), ShouldEqual, "1e400")
				_, _, err := f.Floats("y")
				So(errors.Is(err, ErrNotNumeric), ShouldBeTrue)
			})
		})

		Convey("When an integer exceeds float64 precision", func() {
			f, err := Decode([]byte(`[{"n":9007199254740993,"big":99999999999999999999}]`))

			Convey("Then the exact value is kept", func() {
				So(err, ShouldBeNil)
				So(f.Cell(0, "n").Integer, ShouldBeTrue)
				So(f.Cell(0, "n").Int, ShouldEqual, int64(9007199254740993))
				So(f.Display(0, "n"), ShouldEqual, "9007199254740993")
				ints, err := f.Ints("n")
				So(err, ShouldBeNil)
				So(ints, ShouldResemble, []int64{9007199254740993})
			})

			Convey("And an integer beyond int64 is read as a float", func() {
				So(f.Cell(0, "big").Integer, ShouldBeFalse)
				_, err := f.Ints("big")
				So(errors.Is(err, ErrNotInteger), ShouldBeTrue)
			})
		})

		Convey("When a key repeats inside one object", func() {
			f, err := Decode([]byte(`[{"a":1,"a":2}]`))

			Convey("Then the last value wins and the column appears once", func() {
				So(err, ShouldBeNil)
				So(f.Columns, ShouldResemble, []string{"a"})
				So(f.Cell(0, "a").Num, ShouldEqual, 2)
			})
		})

		Convey("When the array is empty", func() {
			f, err := Decode([]byte(`[]`))

			Convey("Then the frame has no rows and no columns", func() {
				So(err, ShouldBeNil)
				So(f.Len(), ShouldEqual, 0)
				So(f.Columns, ShouldBeEmpty)
			})
		})

		Convey("When the body is not valid JSON", func() {
			_, err := Decode([]byte(`[{"a":1}`))

			Convey("Then ErrInvalidJSON is returned", func() {
				So(errors.Is(err, ErrInvalidJSON), ShouldBeTrue)
			})
		})

		Convey("When the body is a JSON object", func() {
			_, err := Decode([]byte(`{"a":1}`))

			Convey("Then ErrNotArray is returned", func() {
				So(errors.Is(err, ErrNotArray), ShouldBeTrue)
			})
		})

		Convey("When an element is not an object", func() {
			_, err := Decode([]byte(`[{"a":1}, 5]`))

			Convey("Then ErrNotObject names the row", func() {
				So(errors.Is(err, ErrNotObject), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "row 1")
			})
		})
	})
}

func TestFrameColumns(t *testing.T) {
	Convey("Given a decoded frame", t, func() {
		f, err := Decode([]byte(`[
			{"wallet_addr":"0xA","blocks_won":2,"crypto_paid":1.5,"nft_multiplier":1.2},
			{"wallet_addr":"0xB","blocks_won":3,"crypto_paid":2,"note":"x"}
		]`))
		So(err, ShouldBeNil)

		Convey("When a column is dropped", func() {
			dropped := f.Drop("nft_multiplier")

			Convey("Then it disappears from the column set and every row", func() {
				So(dropped, ShouldBeTrue)
				So(f.HasColumn("nft_multiplier"), ShouldBeFalse)
				_, ok := f.Rows[0]["nft_multiplier"]
				So(ok, ShouldBeFalse)
				So(f.Columns, ShouldResemble, []string{"wallet_addr", "blocks_won", "crypto_paid", "note"})
			})

			Convey("And dropping it again reports absence", func() {
				So(f.Drop("nft_multiplier"), ShouldBeFalse)
			})
		})

		Convey("When a column is set", func() {
			err := f.Set("score", []Cell{Number(1, true), Number(2.5, false)})

			Convey("Then it is appended last", func() {
				So(err, ShouldBeNil)
				So(f.Columns[len(f.Columns)-1], ShouldEqual, "score")
				So(f.Cell(1, "score").Num, ShouldEqual, 2.5)
			})

			Convey("And setting it again keeps its position", func() {
				So(f.Set("wallet_addr", []Cell{Null(), Null()}), ShouldBeNil)
				So(f.Columns[0], ShouldEqual, "wallet_addr")
			})
		})

		Convey("When a column of the wrong length is set", func() {
			err := f.Set("score", []Cell{Number(1, true)})

			Convey("Then ErrLength is returned", func() {
				So(errors.Is(err, ErrLength), ShouldBeTrue)
			})
		})

		Convey("When reading numeric columns", func() {
			blocks, blocksInt, err1 := f.Floats("blocks_won")
			paid, paidInt, err2 := f.Floats("crypto_paid")

			Convey("Then values and dtype are returned", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(blocks, ShouldResemble, []float64{2, 3})
				So(blocksInt, ShouldBeTrue)
				So(paid, ShouldResemble, []float64{1.5, 2})
				So(paidInt, ShouldBeFalse)
			})
		})

		Convey("When reading a column with gaps as numbers", func() {
			_, _, err := f.Floats("note")

			Convey("Then ErrNotNumeric is returned", func() {
				So(errors.Is(err, ErrNotNumeric), ShouldBeTrue)
			})
		})

		Convey("When reading an absent column", func() {
			_, _, err := f.Floats("hashes_submitted")
			_, err2 := f.Strings("missing")

			Convey("Then ErrMissingColumn is returned", func() {
				So(errors.Is(err, ErrMissingColumn), ShouldBeTrue)
				So(errors.Is(err2, ErrMissingColumn), ShouldBeTrue)
			})
		})

		Convey("When reading a string column", func() {
			addrs, err := f.Strings("wallet_addr")
			_, err2 := f.Strings("blocks_won")

			Convey("Then strings are returned and numbers rejected", func() {
				So(err, ShouldBeNil)
				So(addrs, ShouldResemble, []string{"0xA", "0xB"})
				So(errors.Is(err2, ErrNotString), ShouldBeTrue)
			})
		})
	})
}

func TestColumnTypes(t *testing.T) {
	Convey("Given columns of different shapes", t, func() {
		f, err := Decode([]byte(`[
			{"i":1,"f":1,"g":2,"o":"x","m":1},
			{"i":2,"f":1.5,"o":3,"m":"y"}
		]`))
		So(err, ShouldBeNil)

		Convey("Then dtypes are inferred like a data frame would", func() {
			So(f.Type("i"), ShouldEqual, ColInteger)
			So(f.Type("f"), ShouldEqual, ColFloat)
			So(f.Type("g"), ShouldEqual, ColFloat) // integer with a gap
			So(f.Type("o"), ShouldEqual, ColObject)
			So(f.Type("m"), ShouldEqual, ColObject)
		})

		Convey("And cells are displayed per column dtype", func() {
			So(f.Display(0, "i"), ShouldEqual, "1")
			So(f.Display(0, "f"), ShouldEqual, "1.0")
			So(f.Display(1, "f"), ShouldEqual, "1.5")
			So(f.Display(0, "g"), ShouldEqual, "2.0")
			So(f.Display(1, "g"), ShouldEqual, "None")
			So(f.Display(1, "o"), ShouldEqual, "3")
		})
	})

	Convey("Given numbers to format", t, func() {
		So(FormatNumber(2, true), ShouldEqual, "2")
		So(FormatNumber(2, false), ShouldEqual, "2.0")
		a, b := 0.1, 0.2
		So(FormatNumber(a+b, false), ShouldEqual, "0.30000000000000004")
		So(FormatNumber(1000, true), ShouldEqual, "1000")
		So(Number(2, false).Raw, ShouldEqual, "2.0")
	})
}
