package chart

import (
	"bytes"
	"testing"

	"github.com/okian/minerboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleChart() model.Chart {
	return model.Chart{
		Column: model.ColBlocksWon,
		Title:  "Blocks Won per Wallet Address",
		XTitle: "Blocks Won",
		YTitle: "Wallet Address",
		Bars: []model.Bar{
			{Label: "0xBBBBB...BBBBB", Value: 9},
			{Label: "0xABCDE...LMNOP", Value: 2},
			{Label: "short", Value: 0},
		},
	}
}

func TestRendererSVG(t *testing.T) {
	Convey("Given a ranked chart", t, func() {
		r := New()

		Convey("When it is rendered", func() {
			svg, err := r.SVG(sampleChart())

			Convey("Then an SVG document with a viewBox is produced", func() {
				So(err, ShouldBeNil)
				So(bytes.HasPrefix(bytes.TrimSpace(svg), []byte("<svg")), ShouldBeTrue)
				So(string(svg), ShouldContainSubstring, `viewBox="0 0 700 300"`)
				So(bytes.Count(svg, []byte("<svg")), ShouldEqual, 1)
			})

			Convey("And every label appears top to bottom in rank order", func() {
				first := bytes.Index(svg, []byte("0xBBBBB...BBBBB"))
				second := bytes.Index(svg, []byte("0xABCDE...LMNOP"))
				third := bytes.Index(svg, []byte(">short<"))
				So(first, ShouldBeGreaterThan, 0)
				So(second, ShouldBeGreaterThan, first)
				So(third, ShouldBeGreaterThan, second)
			})

			Convey("And the axis titles are drawn", func() {
				So(string(svg), ShouldContainSubstring, "Blocks Won")
				So(string(svg), ShouldContainSubstring, "Wallet Address")
			})
		})

		Convey("When a custom size is used", func() {
			r := New(WithSize(900, 400), WithBarColor("#ff0000"))
			svg, err := r.SVG(sampleChart())

			Convey("Then the viewBox follows it", func() {
				So(err, ShouldBeNil)
				So(string(svg), ShouldContainSubstring, `viewBox="0 0 900 400"`)
				w, h := r.Size()
				So(w, ShouldEqual, 900)
				So(h, ShouldEqual, 400)
			})
		})

		Convey("When the chart has no bars or only zeros", func() {
			_, errEmpty := r.SVG(model.Chart{XTitle: "x"})
			_, errZero := r.SVG(model.Chart{Bars: []model.Bar{{Label: "a"}, {Label: "b"}}})

			Convey("Then it still renders", func() {
				So(errEmpty, ShouldBeNil)
				So(errZero, ShouldBeNil)
			})
		})

		Convey("When a label carries markup", func() {
			svg, err := r.SVG(model.Chart{Bars: []model.Bar{{Label: "<b>x</b>", Value: 1}}})

			Convey("Then it is escaped", func() {
				So(err, ShouldBeNil)
				So(string(svg), ShouldNotContainSubstring, "<b>")
			})
		})

		Convey("When an invalid size is requested", func() {
			w, h := New(WithSize(0, -1)).Size()

			Convey("Then the default size is kept", func() {
				So(w, ShouldEqual, 700)
				So(h, ShouldEqual, 300)
			})
		})
	})
}

func TestAxisScale(t *testing.T) {
	Convey("Given bar maxima", t, func() {
		Convey("Then the axis maximum is a rounded multiple of the step", func() {
			maxValue, step := axisScale([]model.Bar{{Value: 9}})
			So(step, ShouldEqual, 2)
			So(maxValue, ShouldEqual, 10)

			maxValue, step = axisScale([]model.Bar{{Value: 1000}, {Value: 10}})
			So(step, ShouldEqual, 200)
			So(maxValue, ShouldEqual, 1000)

			maxValue, step = axisScale([]model.Bar{{Value: 2.0}})
			So(step, ShouldEqual, 0.5)
			So(maxValue, ShouldEqual, 2)
		})

		Convey("And an all-zero chart gets a unit axis", func() {
			maxValue, _ := axisScale([]model.Bar{{Value: 0}})
			So(maxValue, ShouldEqual, 1)
		})

		Convey("And ticks drop needless decimals", func() {
			So(formatTick(0, 200), ShouldEqual, "0")
			So(formatTick(1.5, 0.5), ShouldEqual, "1.5")
			So(formatTick(2, 0.5), ShouldEqual, "2")
			So(formatTick(0.25, 0.05), ShouldEqual, "0.25")
		})
	})
}
