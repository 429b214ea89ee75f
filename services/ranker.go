package services

import (
	"math"
	"sort"

	"airbnb-analytics/models"
	"airbnb-analytics/utils"
)

const (
	topRevenueLimit  = 10
	sampleScanLimit  = 100
	daysPerYear      = 365.0
	unknownName      = "Unknown"
	maxOccupancyRate = 1.0
)

// TopRevenueListings ranks listings that report a trailing-year revenue by that
// revenue, highest first, and keeps the first ten.
func TopRevenueListings(listings []models.ListingRecord) []models.TopRevenueListing {
	ranked := make([]models.TopRevenueListing, 0, len(listings))
	for _, l := range listings {
		revenue, ok := l.EstimatedRevenueL365d.Get()
		if !ok {
			continue
		}
		price, ok := utils.ParseAmount(l.Price)
		if !ok {
			continue
		}

		occupancy := math.Min(maxOccupancyRate, revenue/(price*daysPerYear))
		ranked = append(ranked, models.TopRevenueListing{
			ID:            l.ID,
			OccupancyRate: models.Float(round4(occupancy)),
			AvgPrice:      models.Float(price),
			AnnualRevenue: models.Float(round2(revenue)),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AnnualRevenue > ranked[j].AnnualRevenue
	})
	if len(ranked) > topRevenueLimit {
		ranked = ranked[:topRevenueLimit]
	}
	return ranked
}

// SampleListings scans the first hundred listings in order and previews those
// with a price and a capacity. Order is never changed.
func SampleListings(listings []models.ListingRecord) []models.SampleListing {
	scan := listings
	if len(scan) > sampleScanLimit {
		scan = scan[:sampleScanLimit]
	}

	sample := make([]models.SampleListing, 0, len(scan))
	for _, l := range scan {
		price, ok := utils.ParseAmount(l.Price)
		if !ok {
			continue
		}
		accommodates, ok := l.Accommodates.Get()
		if !ok {
			continue
		}
		sample = append(sample, models.SampleListing{
			ID:            l.ID,
			Name:          l.Name.OrElse(unknownName),
			Neighbourhood: l.NeighbourhoodCleansed,
			Price:         models.Float(math.Round(price)),
			Accommodates:  models.Float(math.Round(accommodates)),
			RoomType:      l.RoomType,
		})
	}
	return sample
}
