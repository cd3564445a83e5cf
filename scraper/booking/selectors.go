package booking

// CSS selectors for the booking.com search results page.
const (
	CardSelector  = `div[data-testid="property-card"]`
	TitleSelector = `div[data-testid="title"]`
	PriceSelector = `span[data-testid="price-and-discounted-price"]`

	// The review-score block holds the numeric score in its first div and a
	// label/count pair in its second.
	ScoreSelector        = `div[data-testid="review-score"] > div:nth-of-type(1)`
	AvgReviewSelector    = `div[data-testid="review-score"] > div:nth-of-type(2) > div:nth-of-type(1)`
	ReviewsCountSelector = `div[data-testid="review-score"] > div:nth-of-type(2) > div:nth-of-type(2)`

	NextPageSelector = `li[data-id="pagination-next"]`
)

// Field names as they appear in warnings and exported column headers.
const (
	FieldHotel        = "hotel"
	FieldPrice        = "price"
	FieldScore        = "score"
	FieldAvgReview    = "avg review"
	FieldReviewsCount = "reviews count"
)

// nextVisibleScript reports whether the next-page control exists and is rendered.
const nextVisibleScript = `
	(function() {
		var el = document.querySelector(%q);
		if (!el) return false;
		var rect = el.getBoundingClientRect();
		var style = window.getComputedStyle(el);
		return rect.width > 0 && rect.height > 0 &&
			style.visibility !== 'hidden' && style.display !== 'none';
	})()
`
