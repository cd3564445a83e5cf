package booking

import (
	"fmt"
	"strings"
)

type fakeCard struct {
	Title   string
	Price   string
	Score   string
	Label   string
	Reviews string
}

// cardHTML renders a property card shaped like booking.com's markup. Empty
// fields omit the corresponding element.
func cardHTML(c fakeCard) string {
	var b strings.Builder
	b.WriteString(`<div data-testid="property-card"><div class="info">`)
	if c.Title != "" {
		fmt.Fprintf(&b, `<div data-testid="title" class="title">%s</div>`, c.Title)
	}
	if c.Score != "" || c.Label != "" || c.Reviews != "" {
		b.WriteString(`<div data-testid="review-score">`)
		fmt.Fprintf(&b, `<div aria-hidden="true">%s</div>`, c.Score)
		fmt.Fprintf(&b, `<div><div>%s</div><div>%s</div></div>`, c.Label, c.Reviews)
		b.WriteString(`</div>`)
	}
	if c.Price != "" {
		fmt.Fprintf(&b, `<div class="price"><span data-testid="price-and-discounted-price">%s</span></div>`, c.Price)
	}
	b.WriteString(`</div></div>`)
	return b.String()
}

func pageHTML(cards ...fakeCard) string {
	var b strings.Builder
	b.WriteString(`<html><head><title>Results</title></head><body><div id="results">`)
	for _, c := range cards {
		b.WriteString(cardHTML(c))
	}
	b.WriteString(`</div><ol><li data-id="pagination-next"><button>Next</button></li></ol></body></html>`)
	return b.String()
}

// syntheticPage builds n well-formed cards for the given page.
func syntheticPage(page, n int) string {
	cards := make([]fakeCard, n)
	for i := range cards {
		cards[i] = fakeCard{
			Title:   fmt.Sprintf("Hotel P%d-C%d", page, i+1),
			Price:   fmt.Sprintf("zł %d", 300+page*10+i),
			Score:   fmt.Sprintf("%.1f", 7.0+float64(i)*0.3),
			Label:   "Very good",
			Reviews: fmt.Sprintf("%d reviews", 100*(i+1)),
		}
	}
	return pageHTML(cards...)
}

// fakeSession serves a fixed list of pages. The next control is visible on
// every page but the last.
type fakeSession struct {
	pages    []string
	current  int
	opened   []string
	clicks   int
	closed   bool
	openErr  error
	clickErr error
}

func (f *fakeSession) Open(url string) error {
	if f.openErr != nil {
		return f.openErr
	}
	f.opened = append(f.opened, url)
	f.current = 0
	return nil
}

func (f *fakeSession) HTML() (string, error) {
	return f.pages[f.current], nil
}

func (f *fakeSession) NextVisible() (bool, error) {
	return f.current < len(f.pages)-1, nil
}

func (f *fakeSession) ClickNext() error {
	if f.clickErr != nil {
		return f.clickErr
	}
	f.clicks++
	f.current++
	return nil
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}
