package services

import (
	"fmt"

	"airbnb-analytics/models"
)

// validListingRecord returns a listing that passes every validity rule
func validListingRecord(id int64, price string) models.ListingRecord {
	return models.ListingRecord{
		ID:                    id,
		Name:                  models.Some(fmt.Sprintf("Listing %d", id)),
		NeighbourhoodCleansed: "Centro",
		RoomType:              "Entire home/apt",
		Price:                 price,
		Accommodates:          models.Some(2.0),
		Bedrooms:              models.Some(1.0),
		Bathrooms:             models.Some(1.0),
		MinimumNights:         models.Some(1.0),
		MaximumNights:         models.Some(30.0),
	}
}

func withNeighbourhood(l models.ListingRecord, name string) models.ListingRecord {
	l.NeighbourhoodCleansed = name
	return l
}

func calendarEntry(listingID int64, date, price, adjusted string) models.CalendarEntry {
	return models.CalendarEntry{
		ListingID:     listingID,
		Date:          date,
		Available:     "t",
		Price:         price,
		AdjustedPrice: adjusted,
	}
}
