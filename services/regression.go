package services

import (
	"airbnb-analytics/models"
	"airbnb-analytics/utils"
)

// Pair is one (feature, target) observation
type Pair struct {
	X float64
	Y float64
}

// CapacityPricePairs extracts (accommodates, price) from every listing that has
// both, in a single pass so the two values always belong to the same listing.
func CapacityPricePairs(listings []models.ListingRecord) []Pair {
	pairs := make([]Pair, 0, len(listings))
	for _, l := range listings {
		capacity, ok := l.Accommodates.Get()
		if !ok {
			continue
		}
		price, ok := utils.ParseAmount(l.Price)
		if !ok {
			continue
		}
		pairs = append(pairs, Pair{X: capacity, Y: price})
	}
	return pairs
}

// LinearRegression fits y = slope*x + intercept by ordinary least squares.
// A zero denominator (no pairs, or every x equal) is not guarded: the result is
// NaN or ±Inf and is serialized as null.
func LinearRegression(pairs []Pair) (slope, intercept float64) {
	n := float64(len(pairs))
	var sumX, sumY, sumXY, sumX2 float64
	for _, p := range pairs {
		sumX += p.X
		sumY += p.Y
		sumXY += p.X * p.Y
		sumX2 += p.X * p.X
	}

	slope = (n*sumXY - sumX*sumY) / (n*sumX2 - sumX*sumX)
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
