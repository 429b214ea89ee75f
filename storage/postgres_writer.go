package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"airbnb-analytics/models"
	"airbnb-analytics/utils"

	_ "github.com/lib/pq"
)

// PostgresWriter loads raw listings and hosts into PostgreSQL
type PostgresWriter struct {
	db        *sql.DB
	batchSize int
	logger    *utils.Logger
}

// NewPostgresWriter opens the DB and pings it, retrying with backoff
func NewPostgresWriter(ctx context.Context, connStr string, batchSize, maxRetries int, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Minute * 5)

	err = utils.RetryWithBackoff(ctx, maxRetries, func() error {
		return db.PingContext(ctx)
	}, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.Info("Connected to PostgreSQL successfully")
	return newPostgresWriter(db, batchSize, logger), nil
}

func newPostgresWriter(db *sql.DB, batchSize int, logger *utils.Logger) *PostgresWriter {
	if batchSize < 1 {
		batchSize = 1
	}
	return &PostgresWriter{db: db, batchSize: batchSize, logger: logger}
}

// CreateTables creates the listings and hosts tables if they don't exist
func (w *PostgresWriter) CreateTables(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS listings (
		id                      BIGINT PRIMARY KEY,
		name                    TEXT,
		host_id                 BIGINT,
		neighbourhood_cleansed  TEXT NOT NULL,
		room_type               TEXT NOT NULL,
		price                   TEXT,
		accommodates            NUMERIC,
		bedrooms                NUMERIC,
		bathrooms               NUMERIC,
		beds                    NUMERIC,
		minimum_nights          NUMERIC,
		maximum_nights          NUMERIC,
		availability_365        NUMERIC,
		review_scores_rating    NUMERIC,
		estimated_revenue_l365d NUMERIC
	);

	CREATE TABLE IF NOT EXISTS hosts (
		id             BIGINT PRIMARY KEY,
		name           TEXT,
		since          TEXT,
		is_superhost   BOOLEAN NOT NULL DEFAULT FALSE,
		listings_count NUMERIC
	);

	CREATE INDEX IF NOT EXISTS idx_listings_neighbourhood ON listings (neighbourhood_cleansed);
	CREATE INDEX IF NOT EXISTS idx_listings_room_type     ON listings (room_type);
	CREATE INDEX IF NOT EXISTS idx_listings_host          ON listings (host_id);
	`
	if _, err := w.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	w.logger.Info("Tables 'listings' and 'hosts' are ready")
	return nil
}

// Truncate clears both tables before a reload
func (w *PostgresWriter) Truncate(ctx context.Context) error {
	if _, err := w.db.ExecContext(ctx, `TRUNCATE TABLE listings, hosts`); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

// InsertListings inserts listings in batches, one transaction per batch.
// Rows whose id already exists are skipped.
func (w *PostgresWriter) InsertListings(ctx context.Context, listings []models.ListingRecord) error {
	const query = `
		INSERT INTO listings (id, name, host_id, neighbourhood_cleansed, room_type, price,
			accommodates, bedrooms, bathrooms, beds, minimum_nights, maximum_nights,
			availability_365, review_scores_rating, estimated_revenue_l365d)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO NOTHING
	`
	for i, batch := range Batches(listings, w.batchSize) {
		err := w.execBatch(ctx, query, len(batch), func(stmt *sql.Stmt) error {
			for _, l := range batch {
				_, err := stmt.ExecContext(ctx,
					l.ID,
					nullable(l.Name),
					nullable(l.HostID),
					l.NeighbourhoodCleansed,
					l.RoomType,
					l.Price,
					nullable(l.Accommodates),
					nullable(l.Bedrooms),
					nullable(l.Bathrooms),
					nullable(l.Beds),
					nullable(l.MinimumNights),
					nullable(l.MaximumNights),
					nullable(l.Availability365),
					nullable(l.ReviewScoresRating),
					nullable(l.EstimatedRevenueL365d),
				)
				if err != nil {
					return fmt.Errorf("listing %d: %w", l.ID, err)
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("listings batch %d: %w", i+1, err)
		}
		w.logger.Info("Inserted listings batch %d (%d rows)", i+1, len(batch))
	}
	return nil
}

// InsertHosts inserts unique hosts in batches
func (w *PostgresWriter) InsertHosts(ctx context.Context, hosts []models.Host) error {
	const query = `
		INSERT INTO hosts (id, name, since, is_superhost, listings_count)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	for i, batch := range Batches(hosts, w.batchSize) {
		err := w.execBatch(ctx, query, len(batch), func(stmt *sql.Stmt) error {
			for _, h := range batch {
				_, err := stmt.ExecContext(ctx, h.ID, h.Name, h.Since, h.IsSuperhost, nullable(h.ListingsCount))
				if err != nil {
					return fmt.Errorf("host %d: %w", h.ID, err)
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("hosts batch %d: %w", i+1, err)
		}
		w.logger.Info("Inserted hosts batch %d (%d rows)", i+1, len(batch))
	}
	return nil
}

func (w *PostgresWriter) execBatch(ctx context.Context, query string, rows int, fn func(stmt *sql.Stmt) error) (err error) {
	if rows == 0 {
		return nil
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	if err = fn(stmt); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close closes the database connection
func (w *PostgresWriter) Close() {
	if w.db != nil {
		_ = w.db.Close()
	}
}

// Batches splits items into consecutive chunks of at most size elements
func Batches[T any](items []T, size int) [][]T {
	if size < 1 {
		size = 1
	}
	var out [][]T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end])
	}
	return out
}

// nullable maps an absent optional to SQL NULL
func nullable[T any](o models.Optional[T]) interface{} {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	return v
}
