package services

import (
	"math"
	"sort"

	"airbnb-analytics/models"
	"airbnb-analytics/utils"
)

// minNeighbourhoodListings is exclusive: a neighbourhood needs more listings than this
const minNeighbourhoodListings = 10

// InsightService computes summary statistics and grouped breakdowns
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates a new InsightService
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Summary computes counts, average and median price, and the capacity→price model
func (s *InsightService) Summary(listings []models.ListingRecord) models.AnalyticsSummary {
	prices := listingPrices(listings)
	if len(prices) == 0 {
		s.logger.Warn("No listings to generate insights from")
	}

	slope, intercept := LinearRegression(CapacityPricePairs(listings))

	return models.AnalyticsSummary{
		TotalListings:     len(listings),
		CleanedListings:   len(listings),
		AvgPrice:          models.Float(round2(mean(prices))),
		MedianPrice:       models.Float(math.Round(upperMedian(prices))),
		ModelCoefficients: []models.Float{models.Float(slope)},
		ModelIntercept:    models.Float(round2(intercept)),
	}
}

// NeighbourhoodAnalysis groups listings by neighbourhood, keeps groups with more
// than ten members and sorts them by average price, highest first.
func (s *InsightService) NeighbourhoodAnalysis(listings []models.ListingRecord) []models.NeighbourhoodAnalysis {
	groups := groupPrices(listings, func(l models.ListingRecord) string { return l.NeighbourhoodCleansed })

	analysis := make([]models.NeighbourhoodAnalysis, 0, len(groups))
	for _, name := range sortedKeys(groups) {
		prices := groups[name]
		if len(prices) <= minNeighbourhoodListings {
			continue
		}
		lo, hi := minMax(prices)
		analysis = append(analysis, models.NeighbourhoodAnalysis{
			Neighbourhood: name,
			AvgPrice:      models.Float(round2(mean(prices))),
			Count:         len(prices),
			MinPrice:      models.Float(math.Round(lo)),
			MaxPrice:      models.Float(math.Round(hi)),
		})
	}

	sort.SliceStable(analysis, func(i, j int) bool {
		return analysis[i].AvgPrice > analysis[j].AvgPrice
	})

	s.logger.Debug("Neighbourhood analysis: %d of %d neighbourhoods qualify", len(analysis), len(groups))
	return analysis
}

// RoomTypeAnalysis groups listings by room type. Output is ordered by room type
// label so repeated runs are byte-identical.
func (s *InsightService) RoomTypeAnalysis(listings []models.ListingRecord) []models.RoomTypeAnalysis {
	groups := groupPrices(listings, func(l models.ListingRecord) string { return l.RoomType })

	analysis := make([]models.RoomTypeAnalysis, 0, len(groups))
	for _, roomType := range sortedKeys(groups) {
		prices := groups[roomType]
		analysis = append(analysis, models.RoomTypeAnalysis{
			RoomType: roomType,
			AvgPrice: models.Float(round2(mean(prices))),
			Count:    len(prices),
		})
	}
	return analysis
}

func groupPrices(listings []models.ListingRecord, key func(models.ListingRecord) string) map[string][]float64 {
	groups := make(map[string][]float64)
	for _, l := range listings {
		if p, ok := utils.ParseAmount(l.Price); ok {
			k := key(l)
			groups[k] = append(groups[k], p)
		}
	}
	return groups
}

func sortedKeys(m map[string][]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func listingPrices(listings []models.ListingRecord) []float64 {
	prices := make([]float64, 0, len(listings))
	for _, l := range listings {
		if p, ok := utils.ParseAmount(l.Price); ok {
			prices = append(prices, p)
		}
	}
	return prices
}

// mean is NaN for an empty slice
func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// upperMedian returns the element at index n/2 of the sorted values, which is
// the upper-middle element for even n. NaN for an empty slice.
func upperMedian(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}

func minMax(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
