package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"booking-scraper/models"
)

// SheetName is the worksheet holding the hotel table.
const SheetName = "hotels"

// XLSXWriter writes the hotel table to a spreadsheet, replacing any previous file.
type XLSXWriter struct {
	path string
}

// NewXLSXWriter creates an XLSXWriter targeting path.
func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{path: path}
}

// Write streams the header and one row per record into a fresh workbook.
// Prices are stored as numeric cells; null fields are left empty.
func (x *XLSXWriter) Write(records []*models.HotelRecord) error {
	if err := os.MkdirAll(filepath.Dir(x.path), 0755); err != nil {
		return fmt.Errorf("xlsx: create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("xlsx: stream writer: %w", err)
	}
	if err := sw.SetColWidth(1, 1, 48); err != nil {
		return fmt.Errorf("xlsx: column width: %w", err)
	}
	if err := sw.SetColWidth(2, len(Columns), 16); err != nil {
		return fmt.Errorf("xlsx: column width: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("xlsx: write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: cell for row %d: %w", i+1, err)
		}
		if err := sw.SetRow(cell, xlsxRow(r)); err != nil {
			return fmt.Errorf("xlsx: write row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("xlsx: flush: %w", err)
	}

	if err := f.SaveAs(x.path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", x.path, err)
	}
	return nil
}

func xlsxRow(r *models.HotelRecord) []interface{} {
	cells := Row(r)
	row := make([]interface{}, len(cells))
	for i, v := range cells {
		row[i] = v
	}
	if r.Price.Valid {
		row[1] = r.Price.V
	} else {
		row[1] = nil
	}
	return row
}
