package services

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"airbnb-analytics/models"
	"airbnb-analytics/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	listings    []models.ListingRecord
	calendar    []models.CalendarEntry
	listingsErr error
	calendarErr error
}

func (f *fakeSource) LoadListings() ([]models.ListingRecord, error) {
	return f.listings, f.listingsErr
}

func (f *fakeSource) LoadCalendar() ([]models.CalendarEntry, error) {
	return f.calendar, f.calendarErr
}

type fakeSink struct {
	written *models.AnalyticsResults
	calls   int
	err     error
}

func (f *fakeSink) WriteResults(r *models.AnalyticsResults) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.written = r
	return nil
}

func sampleDataset() *fakeSource {
	var listings []models.ListingRecord
	for i := 1; i <= 12; i++ {
		l := validListingRecord(int64(i), fmt.Sprintf("%d", 90+i))
		l.EstimatedRevenueL365d = models.Some(float64(i) * 500)
		l.Accommodates = models.Some(float64(i%4 + 1))
		listings = append(listings, l)
	}
	listings = append(listings, validListingRecord(3, "95"))   // duplicate id
	listings = append(listings, validListingRecord(99, "0"))   // invalid
	listings = append(listings, validListingRecord(98, "900")) // outlier

	calendar := []models.CalendarEntry{
		calendarEntry(1, "2025-01-01", "100", "100"),
		calendarEntry(1, "2025-01-01", "100", "100"),
		calendarEntry(2, "2025-01-01", "110", "110"),
	}
	return &fakeSource{listings: listings, calendar: calendar}
}

func TestPipeline_Run(t *testing.T) {
	source := sampleDataset()
	sink := &fakeSink{}

	report, err := NewPipeline(source, sink, utils.NewNopLogger(), nil).Run()

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 15, report.RawListings)
	assert.Equal(t, 12, report.CleanedListings)
	assert.Equal(t, 3, report.RawCalendar)
	assert.Equal(t, 2, report.CleanedCalendar)

	require.Equal(t, 1, sink.calls)
	assert.Same(t, report.Results, sink.written)

	results := sink.written
	assert.Equal(t, 12, results.Summary.TotalListings)
	assert.Equal(t, 12, results.Summary.CleanedListings)
	require.Len(t, results.NeighbourhoodAnalysis, 1)
	assert.Equal(t, "Centro", results.NeighbourhoodAnalysis[0].Neighbourhood)
	assert.Len(t, results.RoomTypeAnalysis, 1)
	assert.Len(t, results.TopRevenueListings, 10)
	assert.Equal(t, int64(12), results.TopRevenueListings[0].ID)
	assert.Len(t, results.SampleListings, 12)
}

func TestPipeline_RunIsDeterministic(t *testing.T) {
	first := &fakeSink{}
	second := &fakeSink{}

	_, err := NewPipeline(sampleDataset(), first, utils.NewNopLogger(), nil).Run()
	require.NoError(t, err)
	_, err = NewPipeline(sampleDataset(), second, utils.NewNopLogger(), nil).Run()
	require.NoError(t, err)

	assert.Equal(t, first.written, second.written)
}

func TestPipeline_LoadFailureWritesNothing(t *testing.T) {
	loadErr := errors.New("missing file")
	tests := []struct {
		name   string
		source *fakeSource
		prefix string
	}{
		{"listings", &fakeSource{listingsErr: loadErr}, "load listings"},
		{"calendar", &fakeSource{calendarErr: loadErr}, "load calendar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &fakeSink{}
			report, err := NewPipeline(tt.source, sink, utils.NewNopLogger(), nil).Run()

			require.Error(t, err)
			assert.ErrorIs(t, err, loadErr)
			assert.Contains(t, err.Error(), tt.prefix)
			assert.Nil(t, report)
			assert.Zero(t, sink.calls)
		})
	}
}

func TestPipeline_WriteFailure(t *testing.T) {
	sink := &fakeSink{err: errors.New("disk full")}

	_, err := NewPipeline(sampleDataset(), sink, utils.NewNopLogger(), nil).Run()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "write results")
}

func TestPrintInsightReport(t *testing.T) {
	sink := &fakeSink{}
	report, err := NewPipeline(sampleDataset(), sink, utils.NewNopLogger(), nil).Run()
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintInsightReport(&buf, report)

	out := buf.String()
	assert.Contains(t, out, report.RunID)
	assert.Contains(t, out, "Centro")
	assert.Contains(t, out, "Entire home/apt")
	assert.Contains(t, out, "TOP 10 LISTINGS BY REVENUE")
}
