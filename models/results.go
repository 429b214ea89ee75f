package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// Float is a float64 that serializes NaN and ±Inf as JSON null. Every number
// in the results document uses it, since inputs such as "inf" parse as floats.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(v, 'f', -1, 64)), nil
}

func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Float(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// AnalyticsSummary holds the headline statistics and the pricing model
type AnalyticsSummary struct {
	TotalListings     int     `json:"total_listings"`
	CleanedListings   int     `json:"cleaned_listings"`
	AvgPrice          Float   `json:"avg_price"`
	MedianPrice       Float   `json:"median_price"`
	ModelCoefficients []Float `json:"model_coefficients"`
	ModelIntercept    Float   `json:"model_intercept"`
}

// NeighbourhoodAnalysis is the price breakdown of one neighbourhood
type NeighbourhoodAnalysis struct {
	Neighbourhood string `json:"neighbourhood"`
	AvgPrice      Float  `json:"avg_price"`
	Count         int    `json:"count"`
	MinPrice      Float  `json:"min_price"`
	MaxPrice      Float  `json:"max_price"`
}

// RoomTypeAnalysis is the price breakdown of one room type
type RoomTypeAnalysis struct {
	RoomType string `json:"room_type"`
	AvgPrice Float  `json:"avg_price"`
	Count    int    `json:"count"`
}

// TopRevenueListing ranks a listing by its trailing-year revenue
type TopRevenueListing struct {
	ID            int64 `json:"id"`
	OccupancyRate Float `json:"occupancy_rate"`
	AvgPrice      Float `json:"avg_price"`
	AnnualRevenue Float `json:"annual_revenue"`
}

// SampleListing is a preview row of the cleaned dataset
type SampleListing struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Neighbourhood string `json:"neighbourhood"`
	Price         Float  `json:"price"`
	Accommodates  Float  `json:"accommodates"`
	RoomType      string `json:"room_type"`
}

// AnalyticsResults is the single object written to the results file
type AnalyticsResults struct {
	Summary               AnalyticsSummary        `json:"summary"`
	NeighbourhoodAnalysis []NeighbourhoodAnalysis `json:"neighbourhood_analysis"`
	RoomTypeAnalysis      []RoomTypeAnalysis      `json:"room_type_analysis"`
	TopRevenueListings    []TopRevenueListing     `json:"top_revenue_listings"`
	SampleListings        []SampleListing         `json:"sample_listings"`
}
