package services

import (
	"fmt"
	"testing"

	"airbnb-analytics/models"
	"airbnb-analytics/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCleanListings_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *models.ListingRecord)
		keep   bool
	}{
		{"valid", func(l *models.ListingRecord) {}, true},
		{"zero price", func(l *models.ListingRecord) { l.Price = "0" }, false},
		{"negative price", func(l *models.ListingRecord) { l.Price = "-5" }, false},
		{"unparseable price", func(l *models.ListingRecord) { l.Price = "call us" }, false},
		{"missing accommodates", func(l *models.ListingRecord) { l.Accommodates = models.None[float64]() }, false},
		{"zero accommodates", func(l *models.ListingRecord) { l.Accommodates = models.Some(0.0) }, false},
		{"missing bedrooms", func(l *models.ListingRecord) { l.Bedrooms = models.None[float64]() }, false},
		{"zero bedrooms is present", func(l *models.ListingRecord) { l.Bedrooms = models.Some(0.0) }, true},
		{"missing bathrooms", func(l *models.ListingRecord) { l.Bathrooms = models.None[float64]() }, false},
		{"missing minimum nights", func(l *models.ListingRecord) { l.MinimumNights = models.None[float64]() }, false},
		{"minimum nights below one", func(l *models.ListingRecord) { l.MinimumNights = models.Some(0.5) }, false},
		{"missing maximum nights", func(l *models.ListingRecord) { l.MaximumNights = models.None[float64]() }, false},
		{"maximum nights 365", func(l *models.ListingRecord) { l.MaximumNights = models.Some(365.0) }, true},
		{"maximum nights 366", func(l *models.ListingRecord) { l.MaximumNights = models.Some(366.0) }, false},
	}

	cleaner := NewDataCleaner(utils.NewNopLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validListingRecord(1, "100")
			tt.mutate(&l)
			got := cleaner.CleanListings([]models.ListingRecord{l})
			if tt.keep {
				assert.Len(t, got, 1)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestCleanListings_KeepsFirstOccurrence(t *testing.T) {
	first := validListingRecord(7, "100")
	first.Name = models.Some("first")
	second := validListingRecord(7, "100")
	second.Name = models.Some("second")
	invalidFirst := validListingRecord(8, "0")
	validLater := validListingRecord(8, "100")

	got := NewDataCleaner(utils.NewNopLogger()).CleanListings(
		[]models.ListingRecord{first, invalidFirst, second, validLater})

	require.Len(t, got, 2)
	assert.Equal(t, int64(7), got[0].ID)
	assert.Equal(t, "first", got[0].Name.OrElse(""))
	// an invalid row never claims the id
	assert.Equal(t, int64(8), got[1].ID)
}

func TestCleanListings_RemovesPriceOutliers(t *testing.T) {
	var raw []models.ListingRecord
	for i := 0; i < 10; i++ {
		raw = append(raw, validListingRecord(int64(i+1), fmt.Sprintf("%d", 100+10*i)))
	}
	raw = append(raw, validListingRecord(99, "5000"))

	got := NewDataCleaner(utils.NewNopLogger()).CleanListings(raw)

	require.Len(t, got, 10)
	ids := make(map[int64]bool)
	for _, l := range got {
		p, ok := utils.ParseAmount(l.Price)
		require.True(t, ok)
		assert.Greater(t, p, 0.0)
		assert.LessOrEqual(t, p, 190.0)
		assert.False(t, ids[l.ID], "duplicate id %d", l.ID)
		ids[l.ID] = true
	}
	assert.False(t, ids[99])
}

func TestCleanListings_PreservesOrderAndInput(t *testing.T) {
	raw := []models.ListingRecord{
		validListingRecord(3, "120"),
		validListingRecord(1, "100"),
		validListingRecord(2, "110"),
	}
	got := NewDataCleaner(utils.NewNopLogger()).CleanListings(raw)

	require.Len(t, got, 3)
	assert.Equal(t, []int64{3, 1, 2}, []int64{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, int64(3), raw[0].ID)
}

func TestCleanListings_EmptyInput(t *testing.T) {
	got := NewDataCleaner(utils.NewNopLogger()).CleanListings(nil)
	assert.Empty(t, got)
}

func TestCleanCalendar_ValidationAndDedup(t *testing.T) {
	raw := []models.CalendarEntry{
		calendarEntry(1, "2025-01-01", "100", "100"),
		calendarEntry(1, "2025-01-01", "105", "105"), // duplicate pair
		calendarEntry(1, "2025-01-02", "0", "100"),   // zero price
		calendarEntry(1, "2025-01-03", "100", "abc"), // bad adjusted price
		calendarEntry(2, "2025-01-01", "110", "110"),
		calendarEntry(1, "2025-01-04", "90", "95"),
	}

	got := NewDataCleaner(utils.NewNopLogger()).CleanCalendar(raw)

	require.Len(t, got, 3)
	assert.Equal(t, "100", got[0].Price)
	assert.Equal(t, int64(2), got[1].ListingID)
	assert.Equal(t, "2025-01-04", got[2].Date)

	type key struct {
		id   int64
		date string
	}
	seen := make(map[key]bool)
	for _, e := range got {
		k := key{e.ListingID, e.Date}
		assert.False(t, seen[k])
		seen[k] = true
	}
}

func TestCleanCalendar_AdjustedPriceUsesPriceColumnRange(t *testing.T) {
	var raw []models.CalendarEntry
	for i := 1; i <= 8; i++ {
		p := fmt.Sprintf("%d", i*10)
		raw = append(raw, calendarEntry(int64(i), "2025-01-01", p, p))
	}
	// price 50 is fine but the adjusted price sits above the largest retained price (80)
	raw = append(raw, calendarEntry(20, "2025-01-01", "50", "90"))
	// far outlier in the price column itself
	raw = append(raw, calendarEntry(21, "2025-01-01", "5000", "50"))

	got := NewDataCleaner(utils.NewNopLogger()).CleanCalendar(raw)

	require.Len(t, got, 8)
	for _, e := range got {
		assert.NotEqual(t, int64(20), e.ListingID)
		assert.NotEqual(t, int64(21), e.ListingID)
	}
}

func TestCleanCalendar_Empty(t *testing.T) {
	got := NewDataCleaner(utils.NewNopLogger()).CleanCalendar([]models.CalendarEntry{
		calendarEntry(1, "2025-01-01", "0", "0"),
	})
	assert.Empty(t, got)
}

func TestCleanListings_LogsDistinctIDCount(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cleaner := NewDataCleaner(utils.NewLoggerWithCore(core))

	cleaner.CleanListings([]models.ListingRecord{
		validListingRecord(1, "100"),
		validListingRecord(1, "100"),
		validListingRecord(2, "110"),
		validListingRecord(3, "0"),
	})

	entries := logs.FilterMessageSnippet("Cleaned").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Cleaned 2 listings from 4 raw records (3 valid, 2 unique ids)", entries[0].Message)
}
