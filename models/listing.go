package models

// ListingRecord is one row of listings.csv after currency normalization
type ListingRecord struct {
	ID                    int64
	Name                  Optional[string]
	NeighbourhoodCleansed string
	RoomType              string
	Price                 string // canonical numeric string, e.g. "150" or "1234.5"
	Accommodates          Optional[float64]
	Bedrooms              Optional[float64]
	Bathrooms             Optional[float64]
	Beds                  Optional[float64]
	MinimumNights         Optional[float64]
	MaximumNights         Optional[float64]
	Availability365       Optional[float64]
	ReviewScoresRating    Optional[float64]
	HostIsSuperhost       Optional[string]
	EstimatedRevenueL365d Optional[float64]
	Latitude              Optional[float64]
	Longitude             Optional[float64]

	// Host columns, only consumed by the Postgres loader
	HostID            Optional[int64]
	HostName          Optional[string]
	HostSince         Optional[string]
	HostListingsCount Optional[float64]
}

// CalendarEntry is one row of calendar.csv after currency normalization
type CalendarEntry struct {
	ListingID     int64
	Date          string
	Available     string
	Price         string
	AdjustedPrice string
	MinimumNights Optional[float64]
	MaximumNights Optional[float64]
}

// Host is a unique host extracted from the listing rows
type Host struct {
	ID            int64
	Name          string
	Since         string
	IsSuperhost   bool
	ListingsCount Optional[float64]
}
