package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"booking-scraper/models"
	"booking-scraper/utils"
)

const insertColumns = 8

var (
	_ TableWriter = (*PostgresWriter)(nil)
	_ RunReader   = (*PostgresWriter)(nil)
)

// PostgresWriter persists scraped hotel records to PostgreSQL, one run per
// call to Write, tagged with the writer's run id.
type PostgresWriter struct {
	db    *sql.DB
	runID uuid.UUID
}

// NewPostgresWriter opens a connection to PostgreSQL, waits for the server to
// answer, runs schema migrations, and returns a ready-to-use PostgresWriter
// with a fresh run id.
func NewPostgresWriter(dsn string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{
		MaxAttempts: 10,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    4 * time.Second,
		Logger:      logger,
	}
	if err := retry.Do("postgres ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db, runID: uuid.New()}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

// RunID identifies the rows this writer inserts.
func (pw *PostgresWriter) RunID() uuid.UUID {
	return pw.runID
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS hotel_listings (
			id            SERIAL PRIMARY KEY,
			run_id        UUID          NOT NULL,
			position      INTEGER       NOT NULL,
			hotel         TEXT,
			price         NUMERIC(12,2),
			score         TEXT,
			avg_review    TEXT,
			reviews_count TEXT,
			scraped_at    TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_hotel_listings_run   ON hotel_listings(run_id);
		CREATE INDEX IF NOT EXISTS idx_hotel_listings_price ON hotel_listings(price);
	`)
	return err
}

// Write batch-inserts records in order under the writer's run id.
func (pw *PostgresWriter) Write(records []*models.HotelRecord) error {
	const batchSize = 50
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := pw.insertBatch(i, records[i:end]); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(offset int, batch []*models.HotelRecord) error {
	valueArgs := make([]interface{}, 0, len(batch)*insertColumns)
	for idx, r := range batch {
		valueArgs = append(valueArgs,
			pw.runID.String(), offset+idx+1, r.Hotel, r.Price, r.Score, r.AvgReview, r.ReviewsCount, time.Now())
	}

	query := fmt.Sprintf(`
		INSERT INTO hotel_listings (run_id, position, hotel, price, score, avg_review, reviews_count, scraped_at)
		VALUES %s
	`, placeholders(len(batch), insertColumns))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

// placeholders renders "($1,$2),($3,$4)" style groups for a multi-row insert.
func placeholders(rows, cols int) string {
	groups := make([]string, 0, rows)
	for r := 0; r < rows; r++ {
		params := make([]string, cols)
		for c := 0; c < cols; c++ {
			params[c] = fmt.Sprintf("$%d", r*cols+c+1)
		}
		groups = append(groups, "("+strings.Join(params, ",")+")")
	}
	return strings.Join(groups, ",")
}

// FetchRun retrieves the records stored for this writer's run, in insert order.
// Page is not stored; Position is the 1-based row within the run.
func (pw *PostgresWriter) FetchRun() ([]*models.HotelRecord, error) {
	rows, err := pw.db.Query(`
		SELECT position, hotel, price::float8, score, avg_review, reviews_count
		FROM hotel_listings
		WHERE run_id = $1
		ORDER BY position
	`, pw.runID.String())
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch run: %w", err)
	}
	defer rows.Close()

	var records []*models.HotelRecord
	for rows.Next() {
		r := &models.HotelRecord{}
		if err := rows.Scan(&r.Position, &r.Hotel, &r.Price, &r.Score, &r.AvgReview, &r.ReviewsCount); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
