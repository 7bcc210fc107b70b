package database

import "fmt"

// SQLiteDialect implements the Dialect interface for SQLite databases.
type SQLiteDialect struct{}

func (d *SQLiteDialect) DriverName() string     { return "sqlite" }
func (d *SQLiteDialect) DSN(path string) string { return path }
func (d *SQLiteDialect) IDColumn() string       { return "rowid" }

func (d *SQLiteDialect) TableColumnsSQL(table string) string {
	return fmt.Sprintf("SELECT name, type FROM pragma_table_info('%s') ORDER BY cid", table)
}

func (d *SQLiteDialect) CreateTableSQL() string {
	return `CREATE TABLE IF NOT EXISTS stocks (
		symbol TEXT, company_name TEXT, price REAL, volume INTEGER
	)`
}

func (d *SQLiteDialect) InsertStockSQL() string {
	return "INSERT INTO stocks (symbol, company_name, price, volume) VALUES (?, ?, ?, ?)"
}

func (d *SQLiteDialect) SelectStocksSQL() string {
	return "SELECT " + d.IDColumn() + ", symbol, company_name, price, volume FROM stocks"
}

func (d *SQLiteDialect) SelectSymbolVolumeSQL() string {
	return "SELECT symbol, volume FROM stocks"
}
