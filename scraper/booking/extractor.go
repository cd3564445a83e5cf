package booking

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"booking-scraper/models"
)

// numberRegexp matches a bare decimal token once separators are removed.
var numberRegexp = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

// thousandsGroupRegexp matches a three-digit group following the leading
// digits of a space-separated amount.
var thousandsGroupRegexp = regexp.MustCompile(`^\d{3}(?:\.\d+)?$`)

// Warning records a card field that was missing or malformed and became null.
type Warning struct {
	Page     int
	Position int
	Field    string
	Reason   string
}

func (w Warning) String() string {
	return fmt.Sprintf("page %d card %d: %s %s", w.Page, w.Position, w.Field, w.Reason)
}

// Extractor turns a rendered results page into hotel records.
type Extractor struct {
	currency string
}

// NewExtractor creates an Extractor that strips the given currency symbol
// from price text.
func NewExtractor(currency string) *Extractor {
	return &Extractor{currency: currency}
}

// Extract parses page HTML and returns one record per listing card in
// document order. Field failures never drop a card; they yield a null field
// and a Warning. An error is returned only when the HTML cannot be parsed.
func (e *Extractor) Extract(pageHTML string, page int) ([]*models.HotelRecord, []Warning, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, nil, fmt.Errorf("extractor: parse page %d: %w", page, err)
	}
	records, warnings := e.extractDocument(doc, page)
	return records, warnings, nil
}

func (e *Extractor) extractDocument(doc *goquery.Document, page int) ([]*models.HotelRecord, []Warning) {
	var (
		records  []*models.HotelRecord
		warnings []Warning
	)

	doc.Find(CardSelector).Each(func(i int, card *goquery.Selection) {
		r := &cardReader{card: card, page: page, position: i + 1, warnings: &warnings}

		records = append(records, &models.HotelRecord{
			Hotel:        readField(r, FieldHotel, TitleSelector, asText),
			Price:        readField(r, FieldPrice, PriceSelector, e.parsePrice),
			Score:        readField(r, FieldScore, ScoreSelector, asText),
			AvgReview:    readField(r, FieldAvgReview, AvgReviewSelector, asText),
			ReviewsCount: readField(r, FieldReviewsCount, ReviewsCountSelector, FirstToken),
			Page:         page,
			Position:     i + 1,
		})
	})

	return records, warnings
}

func (e *Extractor) parsePrice(text string) (float64, bool) {
	return ParsePrice(text, e.currency)
}

type cardReader struct {
	card     *goquery.Selection
	page     int
	position int
	warnings *[]Warning
}

func (r *cardReader) warn(field, reason string) {
	*r.warnings = append(*r.warnings, Warning{
		Page:     r.page,
		Position: r.position,
		Field:    field,
		Reason:   reason,
	})
}

// readField locates selector within the card and parses its text. Any
// failure yields a null value and a warning.
func readField[T any](r *cardReader, field, selector string, parse func(string) (T, bool)) sql.Null[T] {
	sel := r.card.Find(selector).First()
	if sel.Length() == 0 {
		r.warn(field, "element not found")
		return sql.Null[T]{}
	}

	text := innerText(sel)
	if text == "" {
		r.warn(field, "empty text")
		return sql.Null[T]{}
	}

	v, ok := parse(text)
	if !ok {
		r.warn(field, fmt.Sprintf("unparseable text %q", text))
		return sql.Null[T]{}
	}
	return models.Valid(v)
}

// ParsePrice strips thousands separators from raw and parses the amount
// written directly after the last currency marker that is followed by one.
// Without such a marker the last numeric token is used. The second return
// value is false when no amount is found.
//
//	"zł 1,250"        → 1250
//	"zł 1 250"        → 1250
//	"zł 480 zł 412"   → 412 (discounted price comes last)
//	"zł 412 2 nights" → 412
//	"412 zł"          → 412
//	"Sold out"        → false
func ParsePrice(raw, currency string) (float64, bool) {
	raw = strings.ReplaceAll(raw, ",", "")

	if currency != "" && strings.Contains(raw, currency) {
		segments := strings.Split(raw, currency)
		for i := len(segments) - 1; i >= 1; i-- {
			if v, ok := leadingAmount(strings.Fields(segments[i])); ok {
				return v, true
			}
		}
		raw = strings.ReplaceAll(raw, currency, " ")
	}

	fields := strings.Fields(raw)
	for i := len(fields) - 1; i >= 0; i-- {
		if v, ok := parseAmount(fields[i]); ok {
			return v, true
		}
	}
	return 0, false
}

// leadingAmount parses the number at the start of fields, joining
// space-separated thousands groups ("1 250").
func leadingAmount(fields []string) (float64, bool) {
	if len(fields) == 0 || !numberRegexp.MatchString(fields[0]) {
		return 0, false
	}
	amount := fields[0]
	for _, f := range fields[1:] {
		if strings.Contains(amount, ".") || !thousandsGroupRegexp.MatchString(f) {
			break
		}
		amount += f
	}
	return parseAmount(amount)
}

func parseAmount(token string) (float64, bool) {
	if !numberRegexp.MatchString(token) {
		return 0, false
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FirstToken returns the first whitespace-separated token of raw, e.g.
// "1,204 reviews" → "1,204".
func FirstToken(raw string) (string, bool) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

func asText(s string) (string, bool) {
	return s, s != ""
}

// innerText joins the text nodes under sel with spaces and collapses
// whitespace, so text split across child elements stays tokenised.
func innerText(sel *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			parts = append(parts, n.Data)
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
