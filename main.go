package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"booking-scraper/config"
	"booking-scraper/scraper/booking"
	"booking-scraper/services"
	"booking-scraper/storage"
	"booking-scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	if err := run(logger); err != nil {
		if errors.Is(err, services.ErrNoRecords) {
			logger.Error("No hotels were scraped (%v). Exiting.", err)
		} else {
			logger.Error("%v", err)
		}
		os.Exit(1)
	}
}

// run wires and executes the pipeline. Deferred cleanup completes before
// main decides the exit code.
func run(logger *utils.Logger) error {
	cfg := config.Load()

	logger.Info("=== Hotel Search Scraper starting ===")
	logger.Info("Config: %s | %s → %s | pages: %d | headless: %t",
		cfg.Destination, cfg.CheckinDate, cfg.CheckoutDate, cfg.PagesToScrape, cfg.Headless)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pipeline := services.NewPipeline(cfg, logger, booking.New(cfg, logger))

	if cfg.PostgresEnabled {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), logger)
		if err != nil {
			return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		defer pgWriter.Close()
		logger.Info("PostgreSQL enabled, run id %s", pgWriter.RunID())
		pipeline.AddWriter(pgWriter)
	}

	summary, err := pipeline.Execute(ctx)
	if err != nil {
		if errors.Is(err, services.ErrNoRecords) {
			return err
		}
		return fmt.Errorf("pipeline failed: %w", err)
	}

	if summary.ScrapeErr != nil {
		logger.Warn("Results are partial: pagination stopped early")
	}

	if summary.Warnings > 0 {
		logger.Warn("%d card fields were missing or malformed and exported as empty", summary.Warnings)
	}

	fmt.Printf("  Done. %d hotels → %s | %s | chart → %s\n\n",
		len(summary.Records), cfg.XLSXOutputPath, cfg.CSVOutputPath, cfg.ChartOutputPath)
	return nil
}
