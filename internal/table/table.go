// Package table turns repository rows into the grid shown in the stocks view.
package table

import (
	"errors"
	"fmt"

	"github.com/cdtdelta/stockdbms/internal/model"
)

// ErrEmpty is returned by Refresh when the database has no stocks.
// It is a notice, not a failure: the returned grid is still valid.
var ErrEmpty = errors.New("No stocks found!")

// Source is the part of the repository the table reads from.
type Source interface {
	QueryStocks() ([]*model.Stock, error)
}

// Row is one displayed stock. ID is the rowid, kept only to key the row.
type Row struct {
	ID    int64    `json:"id"`
	Cells []string `json:"cells"`
}

// Grid is a complete snapshot of the table. A new Grid replaces the old one.
type Grid struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Build converts stocks into a grid with the fixed column order.
func Build(stocks []*model.Stock) Grid {
	g := Grid{
		Columns: append([]string(nil), model.Columns...),
		Rows:    make([]Row, 0, len(stocks)),
	}
	for _, s := range stocks {
		g.Rows = append(g.Rows, Row{ID: s.ID, Cells: s.Cells()})
	}
	return g
}

// Refresh re-reads every stock from src and rebuilds the grid.
// When there are no rows it returns the empty grid together with ErrEmpty.
func Refresh(src Source) (Grid, error) {
	stocks, err := src.QueryStocks()
	if err != nil {
		return Build(nil), fmt.Errorf("loading stocks: %w", err)
	}
	g := Build(stocks)
	if len(g.Rows) == 0 {
		return g, ErrEmpty
	}
	return g, nil
}
