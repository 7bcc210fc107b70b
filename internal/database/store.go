package database

import "github.com/cdtdelta/stockdbms/internal/model"

// Store defines the interface for all database operations.
// The shell depends on the interface, not on a concrete database type.
type Store interface {
	// Stock CRUD
	InsertStock(s *model.Stock) error
	InsertStocks(stocks []*model.Stock, onProgress func(int)) (int, error)
	QueryStocks() ([]*model.Stock, error)
	QuerySymbolVolumes() ([]model.SymbolVolume, error)
	CountStocks() (int64, error)

	// Lifecycle
	Close() error
	Path() string
}
