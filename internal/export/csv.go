package export

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cdtdelta/stockdbms/internal/model"
)

// utf8BOM is written by spreadsheet programs at the start of saved CSV files.
const utf8BOM = "\xef\xbb\xbf"

// ValidateHeader checks that a CSV file starts with the stock column header.
// Column names are compared case-insensitively.
func ValidateHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(newBOMStripper(f))
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	return checkHeader(header)
}

func checkHeader(header []string) error {
	if len(header) < len(model.Columns) {
		return fmt.Errorf("header too short: got %d columns, expected %d", len(header), len(model.Columns))
	}
	for i, expected := range model.Columns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), expected) {
			return fmt.Errorf("header mismatch at column %d: expected '%s', got '%s'", i+1, expected, header[i])
		}
	}
	return nil
}

// ReadCSV reads every stock from a CSV file written by WriteCSV or by a
// spreadsheet program using the same header. Price and volume are coerced the
// same way the entry form coerces them; the first bad row stops the read.
func ReadCSV(path string) ([]*model.Stock, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(newBOMStripper(f))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}

	var stocks []*model.Stock
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}
		if isBlank(row) {
			continue
		}

		s, err := model.ParseStock(model.StockForm{
			Symbol:      safeIndex(row, 0),
			CompanyName: safeIndex(row, 1),
			Price:       safeIndex(row, 2),
			Volume:      safeIndex(row, 3),
		})
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		stocks = append(stocks, s)
	}

	return stocks, nil
}

// WriteCSV writes stocks to path with the same columns as the workbook export.
func WriteCSV(path string, stocks []*model.Stock) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	if err := writer.Write(model.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, s := range stocks {
		if err := writer.Write(s.Cells()); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return f.Close()
}

func safeIndex(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// newBOMStripper drops a leading UTF-8 byte order mark, if any.
func newBOMStripper(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && string(b) == utf8BOM {
		br.Discard(len(utf8BOM))
	}
	return br
}
