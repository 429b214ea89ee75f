package storage

import (
	"time"

	"airbnb-analytics/models"
)

// DatasetSource loads the raw listing and calendar rows
type DatasetSource interface {
	LoadListings() ([]models.ListingRecord, error)
	LoadCalendar() ([]models.CalendarEntry, error)
}

// ResultSink stores the analytics result object
type ResultSink interface {
	WriteResults(results *models.AnalyticsResults) error
}

// ResultStore is a ResultSink that can also return what it last stored
type ResultStore interface {
	ResultSink
	ReadResults() ([]byte, error)
}

// ListingSource loads raw listings and reports when they last changed
type ListingSource interface {
	LoadListings() ([]models.ListingRecord, error)
	ListingsModTime() (time.Time, error)
}
