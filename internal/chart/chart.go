// Package chart renders the volume-by-symbol bar chart.
//
// Every row becomes its own bar, in storage order. Rows that share a symbol
// are drawn as separate, identically labelled bars rather than summed.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/cdtdelta/stockdbms/internal/model"
	gochart "github.com/wcharczuk/go-chart/v2"
)

// Title is the fixed chart title.
const Title = "Stock Volume"

const (
	xAxisName = "Symbol"
	yAxisName = "Volume"

	xAxisTitleMargin = 10
)

// ErrNoData is returned when there are no rows to plot.
var ErrNoData = errors.New("no data to plot")

// Source is the part of the repository the chart reads from.
type Source interface {
	QuerySymbolVolumes() ([]model.SymbolVolume, error)
}

// Options controls the rendered size in pixels.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions is used for zero-valued Options fields.
var DefaultOptions = Options{Width: 800, Height: 360}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultOptions.Width
	}
	if o.Height <= 0 {
		o.Height = DefaultOptions.Height
	}
	return o
}

// Bars returns one bar per row, labelled with the row's symbol.
func Bars(rows []model.SymbolVolume) []gochart.Value {
	bars := make([]gochart.Value, 0, len(rows))
	for _, r := range rows {
		bars = append(bars, gochart.Value{Label: r.Symbol, Value: float64(r.Volume)})
	}
	return bars
}

// yRange spans zero and every bar so bars grow from a zero baseline.
func yRange(bars []gochart.Value) *gochart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, b := range bars {
		if b.Value < lo {
			lo = b.Value
		}
		if b.Value > hi {
			hi = b.Value
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi}
}

// xAxisTitle draws the x axis name centred under the bar labels. BarChart
// only draws a name for its y axis.
func xAxisTitle(height int) gochart.Renderable {
	return func(r gochart.Renderer, canvasBox gochart.Box, defaults gochart.Style) {
		style := gochart.Style{
			Font:      defaults.Font,
			FontSize:  gochart.DefaultAxisFontSize,
			FontColor: gochart.DefaultTextColor,
		}
		style.WriteTextOptionsToRenderer(r)
		r.ClearTextRotation()

		tb := r.MeasureText(xAxisName)
		x := canvasBox.Left + (canvasBox.Width() >> 1) - (tb.Width() >> 1)
		r.Text(xAxisName, x, height-xAxisTitleMargin)
	}
}

func barWidth(width, count int) int {
	w := (width-120)/count - 10
	switch {
	case w > 60:
		return 60
	case w < 4:
		return 4
	}
	return w
}

// New builds the bar chart for rows. It fails with ErrNoData for an empty slice.
func New(rows []model.SymbolVolume, opts Options) (*gochart.BarChart, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	opts = opts.withDefaults()
	bars := Bars(rows)

	return &gochart.BarChart{
		Title:        Title,
		Width:        opts.Width,
		Height:       opts.Height,
		BarWidth:     barWidth(opts.Width, len(bars)),
		BarSpacing:   10,
		UseBaseValue: true,
		BaseValue:    0,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 10, Right: 10, Bottom: 50},
		},
		XAxis: gochart.Style{},
		YAxis: gochart.YAxis{
			Name:  yAxisName,
			Range: yRange(bars),
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars:     bars,
		Elements: []gochart.Renderable{xAxisTitle(opts.Height)},
	}, nil
}

// Render draws the chart for rows as SVG into w.
func Render(w io.Writer, rows []model.SymbolVolume, opts Options) error {
	bc, err := New(rows, opts)
	if err != nil {
		return err
	}
	if err := bc.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

// Snapshot is one full redraw of the chart surface. An empty SVG means the
// surface should be cleared.
type Snapshot struct {
	SVG   string   `json:"svg"`
	Title string   `json:"title"`
	XAxis string   `json:"xAxis"`
	YAxis string   `json:"yAxis"`
	Bars  []string `json:"bars"`
}

// Refresh re-reads the projection from src and renders a fresh snapshot.
// No rows is not an error: the snapshot comes back with an empty SVG.
func Refresh(src Source, opts Options) (*Snapshot, error) {
	rows, err := src.QuerySymbolVolumes()
	if err != nil {
		return nil, fmt.Errorf("loading volumes: %w", err)
	}

	snap := &Snapshot{Title: Title, XAxis: xAxisName, YAxis: yAxisName, Bars: []string{}}
	for _, r := range rows {
		snap.Bars = append(snap.Bars, r.Symbol)
	}
	if len(rows) == 0 {
		return snap, nil
	}

	var buf bytes.Buffer
	if err := Render(&buf, rows, opts); err != nil {
		return nil, err
	}
	snap.SVG = buf.String()
	return snap, nil
}
