package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes pipeline run counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	runs            *prometheus.CounterVec
	runDuration     prometheus.Histogram
	cleanedListings prometheus.Gauge
	cleanedCalendar prometheus.Gauge
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airbnb_analytics",
			Name:      "runs_total",
			Help:      "Analytics pipeline runs by outcome.",
		}, []string{"outcome"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "airbnb_analytics",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a full analytics run.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		cleanedListings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "airbnb_analytics",
			Name:      "cleaned_listings",
			Help:      "Listings remaining after cleaning in the last successful run.",
		}),
		cleanedCalendar: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "airbnb_analytics",
			Name:      "cleaned_calendar_entries",
			Help:      "Calendar entries remaining after cleaning in the last successful run.",
		}),
	}
	reg.MustRegister(m.runs, m.runDuration, m.cleanedListings, m.cleanedCalendar)
	return m
}

// ObserveRun records one finished run
func (m *Metrics) ObserveRun(elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.runs.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(elapsed.Seconds())
}

// SetCleaned records the cleaned set sizes
func (m *Metrics) SetCleaned(listings, calendar int) {
	if m == nil {
		return
	}
	m.cleanedListings.Set(float64(listings))
	m.cleanedCalendar.Set(float64(calendar))
}
