// Package chart draws horizontal bar charts as SVG.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/okian/minerboard/internal/domain/model"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Layout constants in logical pixels.
const (
	padTop        = 10
	padRight      = 24
	padBottom     = 44
	yTitleGutter  = 22
	labelGap      = 6
	barFill       = 0.8
	tickCount     = 5
	fontSize      = 9.0
	titleFontSize = 10.0
)

// ErrRender wraps go-chart renderer failures.
var ErrRender = errors.New("chart render failed")

// Renderer draws model.Chart values at a fixed logical size.
type Renderer struct {
	width     int
	height    int
	barColor  drawing.Color
	gridColor drawing.Color
	textColor drawing.Color
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the logical chart size.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 && height > 0 {
			r.width, r.height = width, height
		}
	}
}

// WithBarColor sets the bar fill from a hex string such as "4c78a8".
func WithBarColor(hex string) Option {
	return func(r *Renderer) {
		if hex != "" {
			r.barColor = drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
		}
	}
}

// New creates a Renderer with a 700x300 default size.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		width:     700,
		height:    300,
		barColor:  drawing.ColorFromHex("4c78a8"),
		gridColor: drawing.ColorFromHex("dddddd"),
		textColor: drawing.ColorFromHex("333333"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Size returns the logical width and height.
func (r *Renderer) Size() (int, int) { return r.width, r.height }

// SVG renders c. Bars are drawn top to bottom in the order given, so callers
// pass an already ranked chart. The SVG carries a viewBox so it scales to
// its container width.
func (r *Renderer) SVG(c model.Chart) ([]byte, error) {
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("%w: font: %w", ErrRender, err)
	}
	rend, err := gochart.SVG(r.width, r.height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	rend.SetFont(font)
	rend.SetFontSize(fontSize)
	rend.SetFontColor(r.textColor)

	labelWidth := 0
	for _, b := range c.Bars {
		if w := rend.MeasureText(b.Label).Width(); w > labelWidth {
			labelWidth = w
		}
	}

	plot := gochart.Box{
		Top:    padTop,
		Left:   yTitleGutter + labelWidth + labelGap,
		Right:  r.width - padRight,
		Bottom: r.height - padBottom,
	}
	if plot.Right <= plot.Left {
		plot.Left = plot.Right - 1
	}

	r.fillRect(rend, gochart.Box{Top: 0, Left: 0, Right: r.width, Bottom: r.height}, drawing.ColorWhite)

	maxValue, step := axisScale(c.Bars)
	r.drawXAxis(rend, plot, maxValue, step)
	r.drawBars(rend, plot, c.Bars, maxValue)
	r.drawTitles(rend, plot, c)

	var buf bytes.Buffer
	if err := rend.Save(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return stretch(buf.Bytes(), r.width, r.height), nil
}

func (r *Renderer) drawBars(rend gochart.Renderer, plot gochart.Box, bars []model.Bar, maxValue float64) {
	if len(bars) == 0 {
		return
	}
	band := float64(plot.Height()) / float64(len(bars))
	inset := band * (1 - barFill) / 2
	for i, b := range bars {
		top := float64(plot.Top) + float64(i)*band
		width := 0.0
		if maxValue > 0 && b.Value > 0 {
			width = b.Value / maxValue * float64(plot.Width())
		}
		r.fillRect(rend, gochart.Box{
			Top:    int(math.Round(top + inset)),
			Left:   plot.Left,
			Right:  plot.Left + int(math.Round(width)),
			Bottom: int(math.Round(top + band - inset)),
		}, r.barColor)

		rend.SetFontSize(fontSize)
		rend.SetFontColor(r.textColor)
		tb := rend.MeasureText(b.Label)
		baseline := int(math.Round(top+band/2)) + tb.Height()/2
		rend.Text(html.EscapeString(b.Label), plot.Left-labelGap-tb.Width(), baseline)
	}
}

func (r *Renderer) drawXAxis(rend gochart.Renderer, plot gochart.Box, maxValue, step float64) {
	rend.SetStrokeColor(r.gridColor)
	rend.SetStrokeWidth(1)
	for v := 0.0; v <= maxValue+step/2; v += step {
		x := plot.Left + int(math.Round(v/maxValue*float64(plot.Width())))
		rend.MoveTo(x, plot.Top)
		rend.LineTo(x, plot.Bottom)
		rend.Stroke()

		label := formatTick(v, step)
		rend.SetFontSize(fontSize)
		rend.SetFontColor(r.textColor)
		tb := rend.MeasureText(label)
		rend.Text(label, x-tb.Width()/2, plot.Bottom+labelGap+tb.Height())
	}

	rend.SetStrokeColor(r.textColor)
	rend.MoveTo(plot.Left, plot.Top)
	rend.LineTo(plot.Left, plot.Bottom)
	rend.Stroke()
}

func (r *Renderer) drawTitles(rend gochart.Renderer, plot gochart.Box, c model.Chart) {
	rend.SetFontSize(titleFontSize)
	rend.SetFontColor(r.textColor)

	if c.XTitle != "" {
		tb := rend.MeasureText(c.XTitle)
		rend.Text(html.EscapeString(c.XTitle), plot.Left+(plot.Width()-tb.Width())/2, r.height-labelGap)
	}
	if c.YTitle != "" {
		tb := rend.MeasureText(c.YTitle)
		rend.SetTextRotation(-math.Pi / 2)
		rend.Text(html.EscapeString(c.YTitle), tb.Height()+2, plot.Top+(plot.Height()+tb.Width())/2)
		rend.ClearTextRotation()
	}
}

func (r *Renderer) fillRect(rend gochart.Renderer, b gochart.Box, c drawing.Color) {
	if b.Right <= b.Left || b.Bottom <= b.Top {
		return
	}
	rend.SetFillColor(c)
	rend.MoveTo(b.Left, b.Top)
	rend.LineTo(b.Right, b.Top)
	rend.LineTo(b.Right, b.Bottom)
	rend.LineTo(b.Left, b.Bottom)
	rend.Close()
	rend.Fill()
}

// axisScale returns a rounded axis maximum and tick step covering the bars.
func axisScale(bars []model.Bar) (float64, float64) {
	maxValue := 0.0
	for _, b := range bars {
		maxValue = math.Max(maxValue, b.Value)
	}
	if maxValue <= 0 {
		return 1, 1.0 / tickCount
	}
	step := niceStep(maxValue / tickCount)
	return math.Ceil(maxValue/step) * step, step
}

// niceStep rounds raw up to 1, 2, 2.5 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)
	frac := raw / base
	switch {
	case frac <= 1:
		return base
	case frac <= 2:
		return 2 * base
	case frac <= 2.5:
		return 2.5 * base
	case frac <= 5:
		return 5 * base
	default:
		return 10 * base
	}
}

// formatTick prints v with only as many decimals as step needs.
func formatTick(v, step float64) string {
	decimals := 0
	if step < 1 {
		decimals = int(math.Ceil(-math.Log10(step))) + 1
	}
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}

// stretch adds a viewBox to the root element so CSS can scale the chart.
func stretch(svg []byte, width, height int) []byte {
	attrs := fmt.Sprintf(`<svg viewBox="0 0 %d %d" preserveAspectRatio="xMinYMin meet" `, width, height)
	return bytes.Replace(svg, []byte("<svg "), []byte(attrs), 1)
}
