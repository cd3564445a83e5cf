package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"booking-scraper/models"
)

// CSVWriter writes the hotel table to a CSV file, replacing any previous file.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a CSVWriter targeting path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Write creates (or truncates) the file and writes the header and one row
// per record. Intermediate directories are created automatically.
func (c *CSVWriter) Write(records []*models.HotelRecord) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", c.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	if err := w.WriteAll(Rows(records)); err != nil {
		return fmt.Errorf("csv: write rows: %w", err)
	}

	return f.Close()
}
