package storage

import (
	"database/sql"
	"strconv"

	"booking-scraper/models"
)

// Columns is the header shared by every tabular export, in order.
var Columns = []string{"hotel", "price", "score", "avg review", "reviews count"}

// Row formats a record as its exported cells. Null fields become "".
func Row(r *models.HotelRecord) []string {
	price := ""
	if r.Price.Valid {
		price = strconv.FormatFloat(r.Price.V, 'f', -1, 64)
	}
	return []string{
		text(r.Hotel),
		price,
		text(r.Score),
		text(r.AvgReview),
		text(r.ReviewsCount),
	}
}

func text(s sql.Null[string]) string {
	if !s.Valid {
		return ""
	}
	return s.V
}

// Rows formats all records, preserving order.
func Rows(records []*models.HotelRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, Row(r))
	}
	return rows
}
