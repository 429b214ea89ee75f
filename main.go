package main

import (
	"fmt"
	"os"

	"airbnb-analytics/config"
	"airbnb-analytics/services"
	"airbnb-analytics/storage"
	"airbnb-analytics/utils"
)

func main() {
	// ================== Bootstrap ====================
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := utils.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("Short-term rental analytics batch")
	logger.Info("Listings: %s | Calendar: %s | Output: %s", cfg.ListingsPath, cfg.CalendarPath, cfg.OutputPath)

	// =================== Run ========================================
	source := storage.NewCSVReader(cfg.ListingsPath, cfg.CalendarPath, logger)
	sink := storage.NewJSONWriter(cfg.OutputPath, logger)
	pipeline := services.NewPipeline(source, sink, logger, nil)

	report, err := pipeline.Run()
	if err != nil {
		logger.Error("Analytics run failed: %v", err)
		logger.Sync()
		os.Exit(1)
	}

	// ==== Report ============================
	services.PrintInsightReport(os.Stdout, report)
	logger.Info("Analysis complete! Results saved to %s", cfg.OutputPath)
}
