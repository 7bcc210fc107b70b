package table

import (
	"errors"
	"testing"

	"github.com/cdtdelta/stockdbms/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	stocks []*model.Stock
	err    error
}

func (f *fakeSource) QueryStocks() ([]*model.Stock, error) {
	return f.stocks, f.err
}

func TestBuild(t *testing.T) {
	g := Build([]*model.Stock{
		{ID: 1, Symbol: "AAPL", CompanyName: "Apple Inc.", Price: decimal.RequireFromString("150.25"), Volume: 1000},
		{ID: 7, Symbol: "AAPL", CompanyName: "Apple Inc.", Price: decimal.RequireFromString("151"), Volume: 5},
	})

	assert.Equal(t, []string{"Symbol", "Company Name", "Price", "Volume"}, g.Columns)
	require.Len(t, g.Rows, 2)
	assert.Equal(t, Row{ID: 1, Cells: []string{"AAPL", "Apple Inc.", "150.25", "1000"}}, g.Rows[0])
	assert.Equal(t, int64(7), g.Rows[1].ID)
}

func TestBuildDoesNotShareColumns(t *testing.T) {
	g := Build(nil)
	g.Columns[0] = "changed"

	assert.Equal(t, "Symbol", model.Columns[0])
}

func TestRefreshEmpty(t *testing.T) {
	g, err := Refresh(&fakeSource{})

	assert.True(t, errors.Is(err, ErrEmpty))
	assert.Equal(t, "No stocks found!", err.Error())
	assert.Empty(t, g.Rows)
	assert.Len(t, g.Columns, 4)
}

func TestRefreshReplacesRows(t *testing.T) {
	src := &fakeSource{stocks: []*model.Stock{{ID: 1, Symbol: "A"}}}
	g, err := Refresh(src)
	require.NoError(t, err)
	require.Len(t, g.Rows, 1)

	src.stocks = []*model.Stock{{ID: 2, Symbol: "B"}, {ID: 3, Symbol: "C"}}
	g, err = Refresh(src)
	require.NoError(t, err)
	require.Len(t, g.Rows, 2)
	assert.Equal(t, "B", g.Rows[0].Cells[0])
}

func TestRefreshError(t *testing.T) {
	boom := errors.New("disk gone")
	_, err := Refresh(&fakeSource{err: boom})

	assert.True(t, errors.Is(err, boom))
	assert.False(t, errors.Is(err, ErrEmpty))
}
