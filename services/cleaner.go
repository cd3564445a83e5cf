package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"booking-scraper/models"
	"booking-scraper/utils"
)

// nonNumericRegexp matches runs of characters that cannot be part of a decimal number.
var nonNumericRegexp = regexp.MustCompile(`[^\d.]+`)

// Cleaner coerces scraped records into numeric rows for ranking.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Coerce converts each record's price and score to numbers. Values that do
// not parse become null; the row is kept so totals still count it.
func (c *Cleaner) Coerce(records []*models.HotelRecord) []*models.RankedHotel {
	result := make([]*models.RankedHotel, 0, len(records))
	var badScores int

	for i, r := range records {
		ranked := &models.RankedHotel{
			Name:  hotelName(r, i),
			Price: r.Price,
		}

		if r.Score.Valid {
			score, ok := parseNumber(r.Score.V)
			if ok {
				ranked.Score = models.Valid(score)
			} else {
				badScores++
				c.logger.Debug("[cleaner] Score %q for %s is not numeric", r.Score.V, ranked.Name)
			}
		}

		result = append(result, ranked)
	}

	c.logger.Info("[cleaner] Coerced %d rows (%d non-numeric scores)", len(result), badScores)
	return result
}

// parseNumber replaces non-numeric runs with spaces and parses the first
// remaining token.
//
//	"9.3"        → 9.3
//	"Scored 8.6" → 8.6
//	"8.1 / 10"   → 8.1
//	"New"        → false
func parseNumber(raw string) (float64, bool) {
	fields := strings.Fields(nonNumericRegexp.ReplaceAllString(raw, " "))
	if len(fields) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func hotelName(r *models.HotelRecord, index int) string {
	if r.Hotel.Valid {
		return normaliseText(r.Hotel.V)
	}
	return fmt.Sprintf("(unnamed #%d)", index+1)
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
