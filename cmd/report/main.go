package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"airbnb-analytics/config"
	"airbnb-analytics/report"
	"airbnb-analytics/storage"
	"airbnb-analytics/utils"
)

// report renders the last analytics results into a PDF dashboard
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := utils.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	data, err := storage.NewJSONWriter(cfg.OutputPath, logger).ReadResults()
	if err != nil {
		logger.Error("No analytics results to render: %v", err)
		os.Exit(1)
	}
	results, err := report.DecodeResults(data)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	html, err := report.RenderHTML(results, time.Now())
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	pdf, err := report.NewPDFRenderer(logger).Render(context.Background(), html)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	if err := os.WriteFile(cfg.ReportPath, pdf, 0644); err != nil {
		logger.Error("Failed to write report: %v", err)
		os.Exit(1)
	}
	logger.Info("Report written to %s (%d bytes)", cfg.ReportPath, len(pdf))
}
