package booking

import (
	"context"
	"fmt"
	"time"

	"booking-scraper/config"
	"booking-scraper/models"
	"booking-scraper/utils"
)

// ScrapeResult is everything collected during one run, in page-then-card order.
type ScrapeResult struct {
	Records      []*models.HotelRecord
	Warnings     []Warning
	PagesVisited int
}

// Scraper drives pagination over the search results and extracts each page.
type Scraper struct {
	cfg        *config.Config
	logger     *utils.Logger
	extractor  *Extractor
	newSession SessionFactory
}

// New creates a Scraper backed by a real Chrome browser.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return NewWithSession(cfg, logger, ChromeSessionFactory(cfg, logger))
}

// NewWithSession creates a Scraper that opens its browser through factory.
func NewWithSession(cfg *config.Config, logger *utils.Logger, factory SessionFactory) *Scraper {
	return &Scraper{
		cfg:        cfg,
		logger:     logger,
		extractor:  NewExtractor(cfg.CurrencySymbol),
		newSession: factory,
	}
}

// Scrape opens the first results page, extracts it, and advances through the
// next-page control until PagesToScrape pages are done or the control is no
// longer visible. On a browser error the records gathered so far are returned
// along with the error.
func (s *Scraper) Scrape(ctx context.Context) (*ScrapeResult, error) {
	result := &ScrapeResult{}
	if s.cfg.PagesToScrape < 1 {
		s.logger.Warn("[booking] PAGES_TO_SCRAPE is %d — nothing to do", s.cfg.PagesToScrape)
		return result, nil
	}

	s.logger.Info("[booking] Starting scrape — %s, %s → %s, target: %d pages",
		s.cfg.Destination, s.cfg.CheckinDate, s.cfg.CheckoutDate, s.cfg.PagesToScrape)

	session, err := s.newSession(ctx)
	if err != nil {
		return result, fmt.Errorf("booking: start browser: %w", err)
	}
	defer session.Close()

	startURL := s.cfg.SearchURL(1)
	s.logger.Info("[booking] Opening %s", startURL)
	if err := session.Open(startURL); err != nil {
		return result, fmt.Errorf("booking: open page 1: %w", err)
	}

	for page := 1; page <= s.cfg.PagesToScrape; page++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		doc, err := session.HTML()
		if err != nil {
			return result, fmt.Errorf("booking: read page %d: %w", page, err)
		}

		records, warnings, err := s.extractor.Extract(doc, page)
		if err != nil {
			return result, err
		}
		for _, w := range warnings {
			s.logger.Warn("[extractor] %s", w)
		}

		result.Records = append(result.Records, records...)
		result.Warnings = append(result.Warnings, warnings...)
		result.PagesVisited = page

		s.logger.Info("[booking] Page %d: there are %d hotels — %d collected so far",
			page, len(records), len(result.Records))

		if page == s.cfg.PagesToScrape {
			break
		}

		visible, err := session.NextVisible()
		if err != nil {
			return result, fmt.Errorf("booking: page %d: %w", page, err)
		}
		if !visible {
			s.logger.Warn("[booking] No visible next-page control after page %d — stopping", page)
			break
		}

		if err := session.ClickNext(); err != nil {
			return result, fmt.Errorf("booking: advance from page %d: %w", page, err)
		}
		if err := sleep(ctx, s.cfg.PageDelay()); err != nil {
			return result, err
		}
	}

	s.logger.Info("[booking] Scrape complete — %d pages, %d hotels, %d field warnings",
		result.PagesVisited, len(result.Records), len(result.Warnings))
	return result, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
