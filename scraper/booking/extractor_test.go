package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"zł 450", 450, true},
		{"zł 1,250", 1250, true},
		{"zł 480 zł 412", 412, true},
		{"zł412.50", 412.5, true},
		{"Price zł 99 per night", 99, true},
		{"zł 412 2 nights", 412, true},
		{"zł 1 250", 1250, true},
		{"zł 1 250.50", 1250.5, true},
		{"412 zł", 412, true},
		{"zł 480 zł", 480, true},
		{"from 3 nights zł 960", 960, true},
		{"1250", 1250, true},
		{"zł", 0, false},
		{"", 0, false},
		{"Sold out", 0, false},
		{"zł NaN", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParsePrice(tt.raw, "zł")
		assert.Equal(t, tt.wantOK, ok, "ParsePrice(%q) ok", tt.raw)
		assert.Equal(t, tt.want, got, "ParsePrice(%q)", tt.raw)
	}
}

func TestFirstToken(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"1,204 reviews", "1,204", true},
		{"87 reviews", "87", true},
		{"  3   reviews ", "3", true},
		{"", "", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		got, ok := FirstToken(tt.raw)
		assert.Equal(t, tt.wantOK, ok, "FirstToken(%q) ok", tt.raw)
		assert.Equal(t, tt.want, got, "FirstToken(%q)", tt.raw)
	}
}

func TestExtractWellFormedCards(t *testing.T) {
	e := NewExtractor("zł")
	doc := pageHTML(
		fakeCard{Title: "Hotel Le Place d'Armes", Price: "zł 1,480 zł 1,312", Score: "9.3", Label: "Superb", Reviews: "1,204 reviews"},
		fakeCard{Title: "Novotel Luxembourg Kirchberg", Price: "zł 612", Score: "8.1", Label: "Very good", Reviews: "3,118 reviews"},
	)

	records, warnings, err := e.Extract(doc, 1)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Empty(t, warnings)

	first := records[0]
	assert.Equal(t, "Hotel Le Place d'Armes", first.Hotel.V)
	assert.Equal(t, 1312.0, first.Price.V)
	assert.Equal(t, "9.3", first.Score.V)
	assert.Equal(t, "Superb", first.AvgReview.V)
	assert.Equal(t, "1,204", first.ReviewsCount.V)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 1, first.Position)
	assert.Zero(t, first.Nulls())

	assert.Equal(t, 2, records[1].Position)
	assert.Equal(t, 612.0, records[1].Price.V)
}

func TestExtractMissingFieldsBecomeNull(t *testing.T) {
	e := NewExtractor("zł")
	doc := pageHTML(
		fakeCard{Title: "New Hostel", Price: "zł"},
		fakeCard{Title: "Unrated Inn", Price: "Sold out", Score: "9.0", Label: "Wonderful", Reviews: " "},
	)

	records, warnings, err := e.Extract(doc, 2)
	require.NoError(t, err)
	require.Len(t, records, 2, "cards with bad fields are still emitted")

	noReviews := records[0]
	assert.True(t, noReviews.Hotel.Valid)
	assert.False(t, noReviews.Price.Valid)
	assert.False(t, noReviews.Score.Valid)
	assert.False(t, noReviews.AvgReview.Valid)
	assert.False(t, noReviews.ReviewsCount.Valid)
	assert.Equal(t, 4, noReviews.Nulls())

	soldOut := records[1]
	assert.False(t, soldOut.Price.Valid)
	assert.True(t, soldOut.Score.Valid)
	assert.False(t, soldOut.ReviewsCount.Valid)

	fields := map[string]int{}
	for _, w := range warnings {
		assert.Equal(t, 2, w.Page)
		fields[w.Field]++
	}
	assert.Equal(t, 2, fields[FieldPrice])
	assert.Equal(t, 2, fields[FieldReviewsCount])
	assert.Equal(t, 1, fields[FieldScore])
}

func TestExtractNoCards(t *testing.T) {
	records, warnings, err := NewExtractor("zł").Extract(pageHTML(), 1)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, warnings)
}

func TestExtractTextAcrossChildElements(t *testing.T) {
	doc := `<html><body><div data-testid="property-card">
		<div data-testid="title"><span>Grand</span><span>Hotel</span></div>
		<span data-testid="price-and-discounted-price"><s>zł 900</s><span>zł&nbsp;750</span></span>
	</div></body></html>`

	records, _, err := NewExtractor("zł").Extract(doc, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Grand Hotel", records[0].Hotel.V)
	assert.Equal(t, 750.0, records[0].Price.V)
}
