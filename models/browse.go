package models

import "math"

// ListingView is a cleaned listing as returned by the browse API.
// Absent numeric columns are written as null.
type ListingView struct {
	ID                    int64  `json:"id"`
	Name                  string `json:"name"`
	Neighbourhood         string `json:"neighbourhood_cleansed"`
	RoomType              string `json:"room_type"`
	Price                 Float  `json:"price"`
	Accommodates          Float  `json:"accommodates"`
	Bedrooms              Float  `json:"bedrooms"`
	Bathrooms             Float  `json:"bathrooms"`
	MinimumNights         Float  `json:"minimum_nights"`
	Availability365       Float  `json:"availability_365"`
	ReviewScoresRating    Float  `json:"review_scores_rating"`
	EstimatedRevenueL365d Float  `json:"estimated_revenue_l365d"`
	HostIsSuperhost       bool   `json:"host_is_superhost"`
}

// ListingPage is one page of a filtered, sorted listing query
type ListingPage struct {
	Data       []ListingView `json:"data"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// MapPoint is the minimal projection used to plot listings
type MapPoint struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Neighbourhood string `json:"neighbourhood_cleansed"`
	RoomType      string `json:"room_type"`
	Price         Float  `json:"price"`
	Latitude      Float  `json:"latitude"`
	Longitude     Float  `json:"longitude"`
}

// FilterOptions describes the values a client can filter listings by
type FilterOptions struct {
	Neighbourhoods             []string         `json:"neighbourhoods"`
	RoomTypes                  []string         `json:"room_types"`
	MinPrice                   Float            `json:"min_price"`
	MaxPrice                   Float            `json:"max_price"`
	MinAccommodates            Float            `json:"min_accommodates"`
	MaxAccommodates            Float            `json:"max_accommodates"`
	MinBedrooms                Float            `json:"min_bedrooms"`
	MaxBedrooms                Float            `json:"max_bedrooms"`
	MinReviewScore             Float            `json:"min_review_score"`
	MaxReviewScore             Float            `json:"max_review_score"`
	NeighbourhoodAveragePrices map[string]Float `json:"neighbourhood_average_prices"`
}

// FloatOf converts an optional number to a Float, NaN when absent
func FloatOf(o Optional[float64]) Float {
	return Float(o.OrElse(math.NaN()))
}
