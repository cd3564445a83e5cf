package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-scraper/models"
	"booking-scraper/utils"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"9.3", 9.3, true},
		{"10", 10, true},
		{"Scored 8.6", 8.6, true},
		{"8.1 / 10", 8.1, true},
		{"New", 0, false},
		{"", 0, false},
		{".", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseNumber(tt.raw)
		assert.Equal(t, tt.wantOK, ok, "parseNumber(%q) ok", tt.raw)
		assert.Equal(t, tt.want, got, "parseNumber(%q)", tt.raw)
	}
}

func TestCoerce(t *testing.T) {
	c := NewCleaner(utils.NewDiscardLogger())
	records := []*models.HotelRecord{
		{Hotel: models.Valid("  Grand   Hotel "), Price: models.Valid(250.0), Score: models.Valid("8.4")},
		{Hotel: models.Valid("New Place"), Price: models.Valid(90.0), Score: models.Valid("New")},
		{Score: models.Valid("7.0")},
	}

	rows := c.Coerce(records)
	require.Len(t, rows, 3, "rows with bad metrics are kept")

	assert.Equal(t, "Grand Hotel", rows[0].Name)
	assert.Equal(t, 250.0, rows[0].Price.V)
	assert.Equal(t, 8.4, rows[0].Score.V)

	assert.True(t, rows[1].Price.Valid)
	assert.False(t, rows[1].Score.Valid)

	assert.Equal(t, "(unnamed #3)", rows[2].Name)
	assert.False(t, rows[2].Price.Valid)
	assert.True(t, rows[2].Score.Valid)
}
