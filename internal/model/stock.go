package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Columns is the fixed display and export column order.
var Columns = []string{"Symbol", "Company Name", "Price", "Volume"}

// Stock is a single row of the stocks table.
// ID is the SQLite rowid and is only used to correlate display rows.
type Stock struct {
	ID          int64           `json:"id" db:"rowid"`
	Symbol      string          `json:"symbol" db:"symbol"`
	CompanyName string          `json:"companyName" db:"company_name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Volume      int64           `json:"volume" db:"volume"`
}

// SymbolVolume is the projection used for charting.
type SymbolVolume struct {
	Symbol string `json:"symbol"`
	Volume int64  `json:"volume"`
}

// StockForm holds the raw text of the entry form.
type StockForm struct {
	Symbol      string `json:"symbol"`
	CompanyName string `json:"companyName"`
	Price       string `json:"price"`
	Volume      string `json:"volume"`
}

// errNotFinite marks a price that parses but is outside the float64 range.
var errNotFinite = errors.New("value out of range")

// ValidationError reports a form field whose text could not be coerced.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if errors.Is(e.Err, errNotFinite) {
		return fmt.Sprintf("Invalid %s: %q is out of range", e.Field, e.Value)
	}
	return fmt.Sprintf("Invalid %s: %q is not a number", e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ParseStock coerces the form text into a Stock. Price must parse as a
// decimal and volume as an integer; symbol and company name are kept as typed.
func ParseStock(f StockForm) (*Stock, error) {
	priceText := strings.TrimSpace(f.Price)
	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return nil, &ValidationError{Field: "price", Value: f.Price, Err: err}
	}
	// Prices are stored as REAL; anything that overflows a float64 cannot be.
	if math.IsInf(price.InexactFloat64(), 0) {
		return nil, &ValidationError{Field: "price", Value: f.Price, Err: errNotFinite}
	}

	volumeText := strings.TrimSpace(f.Volume)
	volume, err := strconv.ParseInt(volumeText, 10, 64)
	if err != nil {
		return nil, &ValidationError{Field: "volume", Value: f.Volume, Err: err}
	}

	return &Stock{
		Symbol:      f.Symbol,
		CompanyName: f.CompanyName,
		Price:       price,
		Volume:      volume,
	}, nil
}

// Cells returns the stock's values as display strings in Columns order.
func (s *Stock) Cells() []string {
	return []string{
		s.Symbol,
		s.CompanyName,
		s.Price.String(),
		strconv.FormatInt(s.Volume, 10),
	}
}
