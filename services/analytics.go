package services

import (
	"fmt"
	"time"

	"airbnb-analytics/metrics"
	"airbnb-analytics/models"
	"airbnb-analytics/storage"
	"airbnb-analytics/utils"

	"github.com/google/uuid"
)

// RunReport describes one completed pipeline run
type RunReport struct {
	RunID           string
	RawListings     int
	RawCalendar     int
	CleanedListings int
	CleanedCalendar int
	Elapsed         time.Duration
	Results         *models.AnalyticsResults
}

// Pipeline runs load → clean → analyze → write as one synchronous batch
type Pipeline struct {
	source  storage.DatasetSource
	sink    storage.ResultSink
	logger  *utils.Logger
	metrics *metrics.Metrics
}

// NewPipeline creates a new Pipeline. m may be nil.
func NewPipeline(source storage.DatasetSource, sink storage.ResultSink, logger *utils.Logger, m *metrics.Metrics) *Pipeline {
	return &Pipeline{source: source, sink: sink, logger: logger, metrics: m}
}

// Run executes one batch. Any load, decode or write failure aborts the run and
// nothing is written.
func (p *Pipeline) Run() (*RunReport, error) {
	start := time.Now()
	report, err := p.run(uuid.NewString())
	elapsed := time.Since(start)
	p.metrics.ObserveRun(elapsed, err)
	if err != nil {
		return nil, err
	}
	report.Elapsed = elapsed
	p.metrics.SetCleaned(report.CleanedListings, report.CleanedCalendar)
	return report, nil
}

func (p *Pipeline) run(runID string) (*RunReport, error) {
	logger := p.logger.With("run_id", runID)

	logger.Info("Loading data...")
	listings, err := p.source.LoadListings()
	if err != nil {
		return nil, fmt.Errorf("load listings: %w", err)
	}
	calendar, err := p.source.LoadCalendar()
	if err != nil {
		return nil, fmt.Errorf("load calendar: %w", err)
	}

	logger.Info("Preprocessing data...")
	cleaner := NewDataCleaner(logger)
	cleanedListings := cleaner.CleanListings(listings)
	cleanedCalendar := cleaner.CleanCalendar(calendar)

	logger.Info("Performing analysis...")
	results := Analyze(cleanedListings, NewInsightService(logger))

	if err := p.sink.WriteResults(results); err != nil {
		return nil, fmt.Errorf("write results: %w", err)
	}

	return &RunReport{
		RunID:           runID,
		RawListings:     len(listings),
		RawCalendar:     len(calendar),
		CleanedListings: len(cleanedListings),
		CleanedCalendar: len(cleanedCalendar),
		Results:         results,
	}, nil
}

// Analyze computes every output section from the cleaned listings. The
// sections are independent reads of the same slice.
func Analyze(cleaned []models.ListingRecord, insights *InsightService) *models.AnalyticsResults {
	return &models.AnalyticsResults{
		Summary:               insights.Summary(cleaned),
		NeighbourhoodAnalysis: insights.NeighbourhoodAnalysis(cleaned),
		RoomTypeAnalysis:      insights.RoomTypeAnalysis(cleaned),
		TopRevenueListings:    TopRevenueListings(cleaned),
		SampleListings:        SampleListings(cleaned),
	}
}
