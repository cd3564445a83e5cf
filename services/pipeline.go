package services

import (
	"context"
	"errors"
	"fmt"

	"booking-scraper/config"
	"booking-scraper/models"
	"booking-scraper/scraper/booking"
	"booking-scraper/storage"
	"booking-scraper/utils"
)

// ErrNoRecords is returned when scraping produced nothing to export.
var ErrNoRecords = errors.New("no hotels were scraped")

// Summary describes what a pipeline run produced.
type Summary struct {
	Records  []*models.HotelRecord
	Warnings int
	Report   *models.InsightReport
	// ScrapeErr is a navigation failure that cut pagination short. The
	// records gathered before it were still exported.
	ScrapeErr error
}

type Pipeline struct {
	cfg      *config.Config
	logger   *utils.Logger
	scraper  *booking.Scraper
	writers  []storage.TableWriter
	insights *InsightService
	plotter  *Plotter
}

// NewPipeline wires the scraper, CSV and XLSX exporters, insights and plotter.
func NewPipeline(cfg *config.Config, logger *utils.Logger, s *booking.Scraper) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		logger:  logger,
		scraper: s,
		writers: []storage.TableWriter{
			storage.NewXLSXWriter(cfg.XLSXOutputPath),
			storage.NewCSVWriter(cfg.CSVOutputPath),
		},
		insights: NewInsightService(logger),
		plotter:  NewPlotter(logger, cfg.CurrencySymbol),
	}
}

// AddWriter registers an extra export backend, run after the file exports.
func (p *Pipeline) AddWriter(w storage.TableWriter) {
	p.writers = append(p.writers, w)
}

// Execute runs the complete pipeline: scrape, export, analyse, plot.
func (p *Pipeline) Execute(ctx context.Context) (*Summary, error) {
	p.logger.Info("=== STEP 1: SCRAPING ===")
	result, scrapeErr := p.scraper.Scrape(ctx)
	if scrapeErr != nil {
		p.logger.Error("Scrape stopped early: %v", scrapeErr)
	}
	if result == nil || len(result.Records) == 0 {
		if scrapeErr != nil {
			return nil, fmt.Errorf("pipeline: %w: %w", ErrNoRecords, scrapeErr)
		}
		return nil, ErrNoRecords
	}

	summary := &Summary{
		Records:   result.Records,
		Warnings:  len(result.Warnings),
		ScrapeErr: scrapeErr,
	}

	p.logger.Info("=== STEP 2: EXPORTING %d ROWS ===", len(result.Records))
	for _, w := range p.writers {
		if err := w.Write(result.Records); err != nil {
			return summary, fmt.Errorf("pipeline: export: %w", err)
		}
	}
	p.logger.Info("Saved %s and %s", p.cfg.XLSXOutputPath, p.cfg.CSVOutputPath)

	p.logger.Info("=== STEP 3: ANALYSING ===")
	rows := NewCleaner(p.logger).Coerce(p.analysisSource(result.Records))
	summary.Report = p.insights.Generate(rows)
	p.insights.Print(summary.Report)

	p.logger.Info("=== STEP 4: PLOTTING ===")
	if err := p.plotter.RenderFile(summary.Report, p.cfg.ChartOutputPath); err != nil {
		return summary, fmt.Errorf("pipeline: %w", err)
	}
	p.logger.Info("Chart saved to %s", p.cfg.ChartOutputPath)

	return summary, nil
}

// analysisSource returns the rows read back from the first registered
// RunReader, or scraped when there is none or the read fails.
func (p *Pipeline) analysisSource(scraped []*models.HotelRecord) []*models.HotelRecord {
	for _, w := range p.writers {
		reader, ok := w.(storage.RunReader)
		if !ok {
			continue
		}
		stored, err := reader.FetchRun()
		if err != nil {
			p.logger.Error("Failed to read stored rows back for insights: %v", err)
			return scraped
		}
		if len(stored) != len(scraped) {
			p.logger.Warn("Stored run has %d rows but %d were scraped; using scraped rows", len(stored), len(scraped))
			return scraped
		}
		p.logger.Info("Analysing %d rows read back from storage", len(stored))
		return stored
	}
	return scraped
}
