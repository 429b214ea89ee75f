package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"airbnb-analytics/config"
	"airbnb-analytics/metrics"
	"airbnb-analytics/server"
	"airbnb-analytics/services"
	"airbnb-analytics/storage"
	"airbnb-analytics/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := utils.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	source := storage.NewCSVReader(cfg.ListingsPath, cfg.CalendarPath, logger)
	var results storage.ResultStore = storage.NewJSONWriter(cfg.OutputPath, logger)
	pipeline := services.NewPipeline(source, results, logger, metrics.New(reg))

	handler := server.New(
		pipeline,
		results,
		services.NewListingCatalog(source, logger),
		utils.NewRateLimiter(cfg.RunsPerMinute),
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		logger,
	)

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Analytics API listening on %s", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
		os.Exit(1)
	}
}
