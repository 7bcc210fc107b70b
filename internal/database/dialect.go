package database

// Dialect abstracts the SQL text used by the store.
// SQLiteDialect is the only backend; the interface keeps the SQL in one
// place so the store code reads the same as the queries it runs.
type Dialect interface {
	// DriverName returns the database/sql driver name.
	DriverName() string

	// DSN returns the data source name for opening a connection.
	// For SQLite this is the file path.
	DSN(path string) string

	// IDColumn returns the row identifier column name.
	IDColumn() string

	// TableColumnsSQL returns a query listing (name, type) for every column of a table.
	TableColumnsSQL(table string) string

	// CreateTableSQL returns the DDL for the stocks table.
	CreateTableSQL() string

	// InsertStockSQL returns the parameterized INSERT statement for a single stock.
	InsertStockSQL() string

	// SelectStocksSQL returns the SELECT for all stock rows, id first.
	SelectStocksSQL() string

	// SelectSymbolVolumeSQL returns the SELECT for the chart projection.
	SelectSymbolVolumeSQL() string
}
