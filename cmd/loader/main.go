package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"airbnb-analytics/config"
	"airbnb-analytics/services"
	"airbnb-analytics/storage"
	"airbnb-analytics/utils"
)

// loader truncates and reloads the listings and hosts tables from listings.csv
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := utils.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Load failed: %v", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("Listings and hosts loaded successfully!")
}

func run(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	// =================== PostgreSQL Setup ========================================
	pgWriter, err := storage.NewPostgresWriter(ctx, cfg.DatabaseURL, cfg.InsertBatchSize, cfg.MaxRetries, logger)
	if err != nil {
		return fmt.Errorf("cannot connect to PostgreSQL: %w", err)
	}
	defer pgWriter.Close()

	if err := pgWriter.CreateTables(ctx); err != nil {
		return err
	}

	// =================== Read CSV ========================================
	listings, err := storage.NewCSVReader(cfg.ListingsPath, cfg.CalendarPath, logger).LoadListings()
	if err != nil {
		return err
	}
	hosts := services.ExtractHosts(listings)
	logger.Info("CSV parsed: %d listings, %d unique hosts", len(listings), len(hosts))

	// =================== Reload ========================================
	if err := pgWriter.Truncate(ctx); err != nil {
		return err
	}
	if err := pgWriter.InsertListings(ctx, listings); err != nil {
		return err
	}
	return pgWriter.InsertHosts(ctx, hosts)
}
