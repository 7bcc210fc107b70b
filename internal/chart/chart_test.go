package chart

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cdtdelta/stockdbms/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	rows []model.SymbolVolume
	err  error
}

func (f *fakeSource) QuerySymbolVolumes() ([]model.SymbolVolume, error) {
	return f.rows, f.err
}

// Duplicate symbols are plotted per row, not aggregated.
func TestBarsDuplicateSymbols(t *testing.T) {
	bars := Bars([]model.SymbolVolume{{Symbol: "A", Volume: 10}, {Symbol: "A", Volume: 5}})

	require.Len(t, bars, 2)
	assert.Equal(t, "A", bars[0].Label)
	assert.Equal(t, 10.0, bars[0].Value)
	assert.Equal(t, "A", bars[1].Label)
	assert.Equal(t, 5.0, bars[1].Value)
}

func TestBarsKeepRowOrder(t *testing.T) {
	bars := Bars([]model.SymbolVolume{{Symbol: "C", Volume: 1}, {Symbol: "A", Volume: 2}, {Symbol: "B", Volume: 3}})

	var labels []string
	for _, b := range bars {
		labels = append(labels, b.Label)
	}
	assert.Equal(t, []string{"C", "A", "B"}, labels)
}

func TestYRange(t *testing.T) {
	r := yRange(Bars([]model.SymbolVolume{{Symbol: "A", Volume: 10}, {Symbol: "B", Volume: 40}}))
	assert.Equal(t, 0.0, r.Min)
	assert.Equal(t, 40.0, r.Max)

	r = yRange(Bars([]model.SymbolVolume{{Symbol: "A", Volume: 0}}))
	assert.Equal(t, 1.0, r.Max, "flat data still needs a non-zero range")
}

func TestNewNoData(t *testing.T) {
	_, err := New(nil, Options{})
	assert.True(t, errors.Is(err, ErrNoData))

	var buf bytes.Buffer
	err = Render(&buf, nil, Options{})
	assert.True(t, errors.Is(err, ErrNoData))
	assert.Zero(t, buf.Len())
}

func TestNewUsesDefaults(t *testing.T) {
	bc, err := New([]model.SymbolVolume{{Symbol: "A", Volume: 1}}, Options{})
	require.NoError(t, err)

	assert.Equal(t, Title, bc.Title)
	assert.Equal(t, DefaultOptions.Width, bc.Width)
	assert.Equal(t, DefaultOptions.Height, bc.Height)
	assert.Equal(t, "Volume", bc.YAxis.Name)
	assert.Len(t, bc.Elements, 1)
}

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, []model.SymbolVolume{{Symbol: "AAPL", Volume: 1000}, {Symbol: "MSFT", Volume: 250}}, Options{})
	require.NoError(t, err)

	svg := buf.String()
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, Title)
	assert.Contains(t, svg, "AAPL")
	assert.Contains(t, svg, "MSFT")
}

func TestRenderSVGAxisNames(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, []model.SymbolVolume{{Symbol: "AAPL", Volume: 1000}}, Options{})
	require.NoError(t, err)

	svg := buf.String()
	assert.Contains(t, svg, ">Symbol</text>")
	assert.Contains(t, svg, ">Volume</text>")
}

func TestRefreshEmptyClearsSurface(t *testing.T) {
	snap, err := Refresh(&fakeSource{}, Options{})
	require.NoError(t, err)

	assert.Empty(t, snap.SVG)
	assert.Empty(t, snap.Bars)
	assert.Equal(t, Title, snap.Title)
}

func TestRefreshDuplicateBars(t *testing.T) {
	snap, err := Refresh(&fakeSource{rows: []model.SymbolVolume{{Symbol: "A", Volume: 10}, {Symbol: "A", Volume: 5}}}, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "A"}, snap.Bars)
	assert.NotEmpty(t, snap.SVG)
}

func TestRefreshError(t *testing.T) {
	boom := errors.New("closed")
	_, err := Refresh(&fakeSource{err: boom}, Options{})
	assert.True(t, errors.Is(err, boom))
}
