package services

import (
	"airbnb-analytics/models"
	"airbnb-analytics/utils"
)

const (
	missingMinimumNights = 0.0
	missingMaximumNights = 366.0
	maxStayNights        = 365.0
)

type calendarKey struct {
	listingID int64
	date      string
}

// DataCleaner drops invalid, duplicate and outlier records
type DataCleaner struct {
	logger *utils.Logger
}

// NewDataCleaner creates a new DataCleaner
func NewDataCleaner(logger *utils.Logger) *DataCleaner {
	return &DataCleaner{logger: logger}
}

// CleanListings validates, deduplicates and price-filters listings.
// The input is left untouched; a new slice is returned.
func (c *DataCleaner) CleanListings(raw []models.ListingRecord) []models.ListingRecord {
	valid := make([]models.ListingRecord, 0, len(raw))
	for _, l := range raw {
		if validListing(l) {
			valid = append(valid, l)
		}
	}

	seen := utils.NewKeyTracker[int64]()
	unique := make([]models.ListingRecord, 0, len(valid))
	for _, l := range valid {
		if !seen.Add(l.ID) {
			c.logger.Debug("Skipping duplicate listing %d", l.ID)
			continue
		}
		unique = append(unique, l)
	}

	prices := make([]float64, 0, len(unique))
	for _, l := range unique {
		if p, ok := utils.ParseAmount(l.Price); ok {
			prices = append(prices, p)
		}
	}
	priceRange := RetainedRange(prices)

	cleaned := make([]models.ListingRecord, 0, len(unique))
	for _, l := range unique {
		p, ok := utils.ParseAmount(l.Price)
		if ok && priceRange.Contains(p) {
			cleaned = append(cleaned, l)
		}
	}

	c.logger.Info("Cleaned %d listings from %d raw records (%d valid, %d unique ids)",
		len(cleaned), len(raw), len(valid), seen.Count())
	return cleaned
}

// CleanCalendar validates, deduplicates and price-filters calendar entries.
// Both price and adjusted price must fall within the range derived from the
// price column.
func (c *DataCleaner) CleanCalendar(raw []models.CalendarEntry) []models.CalendarEntry {
	seen := utils.NewKeyTracker[calendarKey]()
	unique := make([]models.CalendarEntry, 0, len(raw))
	for _, e := range raw {
		if !positiveAmount(e.Price) || !positiveAmount(e.AdjustedPrice) {
			continue
		}
		if !seen.Add(calendarKey{listingID: e.ListingID, date: e.Date}) {
			continue
		}
		unique = append(unique, e)
	}

	prices := make([]float64, 0, len(unique))
	for _, e := range unique {
		if p, ok := utils.ParseAmount(e.Price); ok {
			prices = append(prices, p)
		}
	}
	priceRange := RetainedRange(prices)

	cleaned := make([]models.CalendarEntry, 0, len(unique))
	for _, e := range unique {
		price, ok := utils.ParseAmount(e.Price)
		if !ok {
			continue
		}
		adjusted, ok := utils.ParseAmount(e.AdjustedPrice)
		if !ok {
			continue
		}
		if priceRange.Contains(price) && priceRange.Contains(adjusted) {
			cleaned = append(cleaned, e)
		}
	}

	c.logger.Info("Cleaned %d calendar entries from %d raw records (%d unique listing-days)",
		len(cleaned), len(raw), seen.Count())
	return cleaned
}

func validListing(l models.ListingRecord) bool {
	return positiveAmount(l.Price) &&
		l.Accommodates.OrElse(0) > 0 &&
		l.Bedrooms.Present() &&
		l.Bathrooms.Present() &&
		l.MinimumNights.OrElse(missingMinimumNights) >= 1 &&
		l.MaximumNights.OrElse(missingMaximumNights) <= maxStayNights
}

// positiveAmount treats an unparseable amount as zero
func positiveAmount(s string) bool {
	v, ok := utils.ParseAmount(s)
	return ok && v > 0
}
