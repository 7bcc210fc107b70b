package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cdtdelta/stockdbms/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing temp CSV")
	return path
}

func sampleStocks() []*model.Stock {
	return []*model.Stock{
		{ID: 1, Symbol: "AAPL", CompanyName: "Apple Inc.", Price: decimal.RequireFromString("150.25"), Volume: 1000},
		{ID: 2, Symbol: "MSFT", CompanyName: "Microsoft, Corp.", Price: decimal.RequireFromString("310"), Volume: 20},
		{ID: 3, Symbol: "AAPL", CompanyName: "Apple Inc.", Price: decimal.RequireFromString("151.5"), Volume: 7},
	}
}

func readSheet(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	return rows
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename)

	require.NoError(t, WriteXLSX(path, sampleStocks()))

	rows := readSheet(t, path)
	require.Len(t, rows, 4, "header plus one row per stock")
	assert.Equal(t, []string{"Symbol", "Company Name", "Price", "Volume"}, rows[0])
	assert.Equal(t, []string{"AAPL", "Apple Inc.", "150.25", "1000"}, rows[1])
	assert.Equal(t, []string{"MSFT", "Microsoft, Corp.", "310", "20"}, rows[2])
	assert.Len(t, rows[3], 4, "no index column")
}

func TestWriteXLSXEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename)

	require.NoError(t, WriteXLSX(path, nil))

	rows := readSheet(t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, model.Columns, rows[0])
}

func TestWriteXLSXOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename)

	require.NoError(t, WriteXLSX(path, sampleStocks()))
	require.NoError(t, WriteXLSX(path, sampleStocks()[:1]))

	assert.Len(t, readSheet(t, path), 2)
}

func TestWriteXLSXBadPath(t *testing.T) {
	err := WriteXLSX(filepath.Join(t.TempDir(), "missing", "out.xlsx"), sampleStocks())
	assert.Error(t, err)
}

func TestValidateHeader(t *testing.T) {
	path := writeTempCSV(t, "ok.csv", "symbol,company name,price,volume\n")
	assert.NoError(t, ValidateHeader(path))

	path = writeTempCSV(t, "bad.csv", "Ticker,Name,Price,Volume\n")
	assert.Error(t, ValidateHeader(path))

	path = writeTempCSV(t, "short.csv", "Symbol,Company Name\n")
	assert.Error(t, ValidateHeader(path))

	assert.Error(t, ValidateHeader("/nonexistent/path.csv"))
}

func TestCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stocks.csv")
	require.NoError(t, WriteCSV(path, sampleStocks()))

	got, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Microsoft, Corp.", got[1].CompanyName)
	assert.True(t, got[2].Price.Equal(decimal.RequireFromString("151.5")))
	assert.Equal(t, int64(7), got[2].Volume)
	assert.Zero(t, got[0].ID, "rowids are not exported")
}

func TestReadCSVWithBOMAndBlankLines(t *testing.T) {
	content := "\xef\xbb\xbfSymbol,Company Name,Price,Volume\nAAPL,Apple,1.5,10\n,,,\nGOOG,Alphabet,2,3\n"
	path := writeTempCSV(t, "bom.csv", content)

	got, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "AAPL", got[0].Symbol)
	assert.Equal(t, "GOOG", got[1].Symbol)
}

func TestReadCSVBadRow(t *testing.T) {
	content := "Symbol,Company Name,Price,Volume\nAAPL,Apple,1.5,10\nMSFT,Microsoft,cheap,3\n"
	path := writeTempCSV(t, "bad.csv", content)

	_, err := ReadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "price", verr.Field)
}

func TestReadCSVBadHeader(t *testing.T) {
	path := writeTempCSV(t, "bad.csv", "a,b,c,d\n1,2,3,4\n")

	_, err := ReadCSV(path)
	assert.Error(t, err)
}
