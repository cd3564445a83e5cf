package models

import "database/sql"

// HotelRecord holds one listing card as extracted from a results page.
// Every field is nullable: a missing or malformed sub-element yields an
// invalid value rather than aborting the batch.
type HotelRecord struct {
	Hotel        sql.Null[string]
	Price        sql.Null[float64]
	Score        sql.Null[string]
	AvgReview    sql.Null[string]
	ReviewsCount sql.Null[string]

	// Page and Position locate the card (both 1-based). They are not written
	// to the output files.
	Page     int
	Position int
}

// Nulls returns how many of the five exported fields are null.
func (r *HotelRecord) Nulls() int {
	n := 0
	for _, valid := range []bool{r.Hotel.Valid, r.Price.Valid, r.Score.Valid, r.AvgReview.Valid, r.ReviewsCount.Valid} {
		if !valid {
			n++
		}
	}
	return n
}

// RankedHotel is a record with its price and score coerced to numbers.
type RankedHotel struct {
	Name  string
	Price sql.Null[float64]
	Score sql.Null[float64]
}

// InsightReport holds the computed analytics over the scraped dataset.
type InsightReport struct {
	TotalHotels  int
	PricedHotels int
	ScoredHotels int
	AveragePrice float64
	MinPrice     float64
	MaxPrice     float64
	// TopByPrice and TopByScore are sorted ascending by their metric.
	TopByPrice []*RankedHotel
	TopByScore []*RankedHotel
}

// Valid wraps v as a non-null value.
func Valid[T any](v T) sql.Null[T] {
	return sql.Null[T]{V: v, Valid: true}
}
