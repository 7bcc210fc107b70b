package database

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/cdtdelta/stockdbms/internal/model"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"
)

// StocksTable is the single table every database file holds.
const StocksTable = "stocks"

// SQLiteStore manages all SQLite operations for one stock database file.
// It implements the Store interface.
type SQLiteStore struct {
	path    string
	conn    *sql.DB
	dialect Dialect
}

// OpenSQLite opens an existing stock database and makes sure the stocks
// table is present.
func OpenSQLite(path string) (*SQLiteStore, error) {
	d := &SQLiteDialect{}

	conn, err := sql.Open(d.DriverName(), d.DSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One live connection per store.
	conn.SetMaxOpenConns(1)

	// Verify the connection works
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	db := &SQLiteStore{path: path, conn: conn, dialect: d}

	if err := db.createSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return db, nil
}

// CreateSQLite creates a new stock database file with the stocks schema.
// Creating over an existing file is harmless: the DDL is "if not exists".
func CreateSQLite(path string) (*SQLiteStore, error) {
	d := &SQLiteDialect{}

	conn, err := sql.Open(d.DriverName(), d.DSN(path))
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	db := &SQLiteStore{path: path, conn: conn, dialect: d}

	if err := db.createSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *SQLiteStore) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Path returns the file path of the database.
func (db *SQLiteStore) Path() string {
	return db.path
}

// Conn returns the underlying *sql.DB connection.
func (db *SQLiteStore) Conn() *sql.DB {
	return db.conn
}

func (db *SQLiteStore) createSchema() error {
	if _, err := db.conn.Exec(db.dialect.CreateTableSQL()); err != nil {
		return fmt.Errorf("creating %s table: %w", StocksTable, err)
	}
	return nil
}

// Column describes one column of a table as reported by SQLite.
type Column struct {
	Name string
	Type string
}

// TableColumns returns the declared columns of a table in definition order.
func (db *SQLiteStore) TableColumns(table string) ([]Column, error) {
	rows, err := db.conn.Query(db.dialect.TableColumnsSQL(table))
	if err != nil {
		return nil, fmt.Errorf("reading table info: %w", err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var c Column
		if err := rows.Scan(&c.Name, &c.Type); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// InsertStock appends a single stock row. The statement auto-commits.
func (db *SQLiteStore) InsertStock(s *model.Stock) error {
	_, err := db.conn.Exec(db.dialect.InsertStockSQL(),
		s.Symbol, s.CompanyName, s.Price.InexactFloat64(), s.Volume,
	)
	if err != nil {
		return fmt.Errorf("inserting stock: %w", err)
	}
	return nil
}

// InsertStocks inserts a batch of stocks inside a single transaction.
// The onProgress callback is called every 1,000 rows with the current count.
// Pass nil for onProgress if you don't need progress updates.
func (db *SQLiteStore) InsertStocks(stocks []*model.Stock, onProgress func(count int)) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(db.dialect.InsertStockSQL())
	if err != nil {
		return 0, fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, s := range stocks {
		_, err := stmt.Exec(s.Symbol, s.CompanyName, s.Price.InexactFloat64(), s.Volume)
		if err != nil {
			return 0, fmt.Errorf("inserting stock %d: %w", inserted+1, err)
		}
		inserted++
		if onProgress != nil && inserted%1000 == 0 {
			onProgress(inserted)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return inserted, nil
}

// QueryStocks returns every stock row in storage order, each tagged with its rowid.
func (db *SQLiteStore) QueryStocks() ([]*model.Stock, error) {
	rows, err := db.conn.Query(db.dialect.SelectStocksSQL())
	if err != nil {
		return nil, fmt.Errorf("querying stocks: %w", err)
	}
	defer rows.Close()

	return scanStocks(rows)
}

// QuerySymbolVolumes returns the (symbol, volume) projection in storage order.
func (db *SQLiteStore) QuerySymbolVolumes() ([]model.SymbolVolume, error) {
	rows, err := db.conn.Query(db.dialect.SelectSymbolVolumeSQL())
	if err != nil {
		return nil, fmt.Errorf("querying volumes: %w", err)
	}
	defer rows.Close()

	var out []model.SymbolVolume
	for rows.Next() {
		var sv model.SymbolVolume
		var symbol sql.NullString
		var volume sql.NullInt64
		if err := rows.Scan(&symbol, &volume); err != nil {
			return nil, fmt.Errorf("scanning volume row: %w", err)
		}
		sv.Symbol = symbol.String
		sv.Volume = volume.Int64
		out = append(out, sv)
	}
	return out, rows.Err()
}

// CountStocks returns the number of rows in the stocks table.
func (db *SQLiteStore) CountStocks() (int64, error) {
	var count int64
	err := db.conn.QueryRow("SELECT COUNT(" + db.dialect.IDColumn() + ") FROM stocks").Scan(&count)
	return count, err
}

// scanStocks converts sql.Rows into a slice of Stock pointers.
// Columns may hold NULL in files written by other tools; those scan as zero values.
// A non-finite price (Inf or NaN written by another tool) is reported as an error.
func scanStocks(rows *sql.Rows) ([]*model.Stock, error) {
	var stocks []*model.Stock
	for rows.Next() {
		s := &model.Stock{}
		var symbol, company sql.NullString
		var price sql.NullFloat64
		var volume sql.NullInt64
		if err := rows.Scan(&s.ID, &symbol, &company, &price, &volume); err != nil {
			return nil, fmt.Errorf("scanning stock row: %w", err)
		}
		s.Symbol = symbol.String
		s.CompanyName = company.String
		if price.Valid {
			if math.IsInf(price.Float64, 0) || math.IsNaN(price.Float64) {
				return nil, fmt.Errorf("stock row %d: price %v is not a finite number", s.ID, price.Float64)
			}
			s.Price = decimal.NewFromFloat(price.Float64)
		}
		s.Volume = volume.Int64
		stocks = append(stocks, s)
	}
	return stocks, rows.Err()
}
