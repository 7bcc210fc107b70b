// Package export writes stock rows to spreadsheet files and reads them back
// from CSV.
package export

import (
	"fmt"

	"github.com/cdtdelta/stockdbms/internal/model"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single sheet written to every workbook.
const SheetName = "Sheet1"

// DefaultFilename is the fixed workbook name used by the Export to Excel action.
const DefaultFilename = "stock_data.xlsx"

// WriteXLSX writes stocks to a new workbook at path, replacing any existing
// file. The sheet has a header row in model.Columns order and one row per
// stock; the rowid is not written.
func WriteXLSX(path string, stocks []*model.Stock) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with one default sheet; make sure it carries our name.
	if first := f.GetSheetName(0); first != SheetName {
		if err := f.SetSheetName(first, SheetName); err != nil {
			return fmt.Errorf("naming sheet: %w", err)
		}
	}

	header := make([]interface{}, len(model.Columns))
	for i, c := range model.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, s := range stocks {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("locating row %d: %w", i+1, err)
		}
		row := []interface{}{
			s.Symbol,
			s.CompanyName,
			s.Price.InexactFloat64(),
			s.Volume,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
