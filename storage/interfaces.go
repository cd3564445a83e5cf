package storage

import "booking-scraper/models"

// TableWriter is the interface any export backend must satisfy.
type TableWriter interface {
	Write(records []*models.HotelRecord) error
}

// RunReader is implemented by backends that can read back the rows they
// stored during the current run.
type RunReader interface {
	FetchRun() ([]*models.HotelRecord, error)
}
