package services

import (
	"fmt"
	"sync"
	"time"

	"airbnb-analytics/models"
	"airbnb-analytics/storage"
	"airbnb-analytics/utils"
)

// ListingCatalog serves cleaned listings to the browse API. The cleaned set
// is cached and rebuilt when the listings file changes.
type ListingCatalog struct {
	source  storage.ListingSource
	cleaner *DataCleaner
	logger  *utils.Logger

	mu       sync.Mutex
	loaded   bool
	modTime  time.Time
	listings []models.ListingRecord
}

// NewListingCatalog creates a new ListingCatalog
func NewListingCatalog(source storage.ListingSource, logger *utils.Logger) *ListingCatalog {
	return &ListingCatalog{
		source:  source,
		cleaner: NewDataCleaner(logger),
		logger:  logger,
	}
}

// Listings returns the cleaned listings. Callers must not modify the slice.
func (c *ListingCatalog) Listings() ([]models.ListingRecord, error) {
	modTime, err := c.source.ListingsModTime()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && modTime.Equal(c.modTime) {
		return c.listings, nil
	}

	raw, err := c.source.LoadListings()
	if err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}
	c.listings = c.cleaner.CleanListings(raw)
	c.modTime = modTime
	c.loaded = true
	c.logger.Info("Listing catalog loaded %d cleaned listings", len(c.listings))
	return c.listings, nil
}
