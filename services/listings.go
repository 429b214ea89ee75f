package services

import (
	"math"
	"sort"
	"strings"

	"airbnb-analytics/models"
	"airbnb-analytics/utils"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
	defaultSortBy   = "name"
)

// ListingFilters narrows a set of cleaned listings. Empty lists and absent
// bounds match everything; bounds are inclusive.
type ListingFilters struct {
	Neighbourhoods  []string
	RoomTypes       []string
	MinPrice        models.Optional[float64]
	MaxPrice        models.Optional[float64]
	MinAccommodates models.Optional[float64]
	MaxAccommodates models.Optional[float64]
	MinBedrooms     models.Optional[float64]
	MaxBedrooms     models.Optional[float64]
	MinReviewScore  models.Optional[float64]
	MaxReviewScore  models.Optional[float64]
	SuperhostOnly   bool
}

// ListingQuery is a filtered, searched, sorted and paginated listing request
type ListingQuery struct {
	Filters   ListingFilters
	Search    string
	SortBy    string
	SortOrder string // "asc" or "desc"
	Page      int
	PageSize  int
}

// FilterListings returns the listings matching the filters whose name
// contains search, ignoring case. Order is preserved.
func FilterListings(listings []models.ListingRecord, f ListingFilters, search string) []models.ListingRecord {
	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.ListingRecord, 0, len(listings))
	for _, l := range listings {
		if term != "" && !strings.Contains(strings.ToLower(l.Name.OrElse("")), term) {
			continue
		}
		if len(f.Neighbourhoods) > 0 && !contains(f.Neighbourhoods, l.NeighbourhoodCleansed) {
			continue
		}
		if len(f.RoomTypes) > 0 && !contains(f.RoomTypes, l.RoomType) {
			continue
		}
		if !inRange(listingPrice(l), f.MinPrice, f.MaxPrice) ||
			!inRange(l.Accommodates, f.MinAccommodates, f.MaxAccommodates) ||
			!inRange(l.Bedrooms, f.MinBedrooms, f.MaxBedrooms) ||
			!inRange(l.ReviewScoresRating, f.MinReviewScore, f.MaxReviewScore) {
			continue
		}
		if f.SuperhostOnly && l.HostIsSuperhost.OrElse("") != "t" {
			continue
		}
		out = append(out, l)
	}
	return out
}

// QueryListings filters, sorts and pages listings. Listings missing the
// sort column always come last, whatever the order.
func QueryListings(listings []models.ListingRecord, q ListingQuery) models.ListingPage {
	matched := FilterListings(listings, q.Filters, q.Search)
	SortListings(matched, q.SortBy, q.SortOrder)

	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	start := (page - 1) * size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}

	data := make([]models.ListingView, 0, end-start)
	for _, l := range matched[start:end] {
		data = append(data, listingView(l))
	}

	return models.ListingPage{
		Data:       data,
		Total:      len(matched),
		Page:       page,
		PageSize:   size,
		TotalPages: (len(matched) + size - 1) / size,
	}
}

// SortListings sorts in place by a listing column. Unknown columns sort
// by name. The sort is stable.
func SortListings(listings []models.ListingRecord, sortBy, sortOrder string) {
	desc := strings.EqualFold(sortOrder, "desc")

	num, numeric := numericColumns[sortBy]
	if !numeric {
		text, ok := textColumns[sortBy]
		if !ok {
			text = textColumns[defaultSortBy]
		}
		sort.SliceStable(listings, func(i, j int) bool {
			a, aok := text(listings[i])
			b, bok := text(listings[j])
			if !aok || !bok {
				return aok && !bok
			}
			a, b = strings.ToLower(a), strings.ToLower(b)
			if desc {
				return a > b
			}
			return a < b
		})
		return
	}

	sort.SliceStable(listings, func(i, j int) bool {
		a, aok := num(listings[i]).Get()
		b, bok := num(listings[j]).Get()
		if !aok || !bok {
			return aok && !bok
		}
		if desc {
			return a > b
		}
		return a < b
	})
}

// ListingFilterOptions lists the values the listings can be filtered by.
// Average prices per neighbourhood honour the room type and price filters.
func ListingFilterOptions(listings []models.ListingRecord, f ListingFilters) models.FilterOptions {
	opts := models.FilterOptions{
		Neighbourhoods:             distinct(listings, func(l models.ListingRecord) string { return l.NeighbourhoodCleansed }),
		RoomTypes:                  distinct(listings, func(l models.ListingRecord) string { return l.RoomType }),
		NeighbourhoodAveragePrices: make(map[string]models.Float),
	}

	lo, hi := columnRange(listings, listingPrice)
	opts.MinPrice, opts.MaxPrice = models.Float(math.Floor(lo)), models.Float(math.Ceil(hi))
	lo, hi = columnRange(listings, func(l models.ListingRecord) models.Optional[float64] { return l.Accommodates })
	opts.MinAccommodates, opts.MaxAccommodates = models.Float(lo), models.Float(hi)
	lo, hi = columnRange(listings, func(l models.ListingRecord) models.Optional[float64] { return l.Bedrooms })
	opts.MinBedrooms, opts.MaxBedrooms = models.Float(lo), models.Float(hi)
	lo, hi = columnRange(listings, func(l models.ListingRecord) models.Optional[float64] { return l.ReviewScoresRating })
	opts.MinReviewScore, opts.MaxReviewScore = models.Float(lo), models.Float(hi)

	priced := FilterListings(listings, ListingFilters{
		RoomTypes: f.RoomTypes,
		MinPrice:  f.MinPrice,
		MaxPrice:  f.MaxPrice,
	}, "")
	for name, prices := range groupPrices(priced, func(l models.ListingRecord) string { return l.NeighbourhoodCleansed }) {
		opts.NeighbourhoodAveragePrices[name] = models.Float(math.Round(mean(prices)))
	}
	return opts
}

// MapPoints projects the filtered listings onto their coordinates
func MapPoints(listings []models.ListingRecord, f ListingFilters, search string) []models.MapPoint {
	matched := FilterListings(listings, f, search)
	points := make([]models.MapPoint, 0, len(matched))
	for _, l := range matched {
		points = append(points, models.MapPoint{
			ID:            l.ID,
			Name:          l.Name.OrElse(""),
			Neighbourhood: l.NeighbourhoodCleansed,
			RoomType:      l.RoomType,
			Price:         models.FloatOf(listingPrice(l)),
			Latitude:      models.FloatOf(l.Latitude),
			Longitude:     models.FloatOf(l.Longitude),
		})
	}
	return points
}

var textColumns = map[string]func(models.ListingRecord) (string, bool){
	"name":                   func(l models.ListingRecord) (string, bool) { return l.Name.Get() },
	"neighbourhood_cleansed": func(l models.ListingRecord) (string, bool) { return l.NeighbourhoodCleansed, true },
	"room_type":              func(l models.ListingRecord) (string, bool) { return l.RoomType, true },
}

var numericColumns = map[string]func(models.ListingRecord) models.Optional[float64]{
	"id":                      func(l models.ListingRecord) models.Optional[float64] { return models.Some(float64(l.ID)) },
	"price":                   listingPrice,
	"accommodates":            func(l models.ListingRecord) models.Optional[float64] { return l.Accommodates },
	"bedrooms":                func(l models.ListingRecord) models.Optional[float64] { return l.Bedrooms },
	"bathrooms":               func(l models.ListingRecord) models.Optional[float64] { return l.Bathrooms },
	"minimum_nights":          func(l models.ListingRecord) models.Optional[float64] { return l.MinimumNights },
	"availability_365":        func(l models.ListingRecord) models.Optional[float64] { return l.Availability365 },
	"review_scores_rating":    func(l models.ListingRecord) models.Optional[float64] { return l.ReviewScoresRating },
	"estimated_revenue_l365d": func(l models.ListingRecord) models.Optional[float64] { return l.EstimatedRevenueL365d },
}

func listingPrice(l models.ListingRecord) models.Optional[float64] {
	if p, ok := utils.ParseAmount(l.Price); ok {
		return models.Some(p)
	}
	return models.None[float64]()
}

func listingView(l models.ListingRecord) models.ListingView {
	return models.ListingView{
		ID:                    l.ID,
		Name:                  l.Name.OrElse(""),
		Neighbourhood:         l.NeighbourhoodCleansed,
		RoomType:              l.RoomType,
		Price:                 models.FloatOf(listingPrice(l)),
		Accommodates:          models.FloatOf(l.Accommodates),
		Bedrooms:              models.FloatOf(l.Bedrooms),
		Bathrooms:             models.FloatOf(l.Bathrooms),
		MinimumNights:         models.FloatOf(l.MinimumNights),
		Availability365:       models.FloatOf(l.Availability365),
		ReviewScoresRating:    models.FloatOf(l.ReviewScoresRating),
		EstimatedRevenueL365d: models.FloatOf(l.EstimatedRevenueL365d),
		HostIsSuperhost:       l.HostIsSuperhost.OrElse("") == "t",
	}
}

// inRange fails a missing value whenever a bound is set
func inRange(v, lo, hi models.Optional[float64]) bool {
	if !lo.Present() && !hi.Present() {
		return true
	}
	x, ok := v.Get()
	if !ok {
		return false
	}
	if bound, ok := lo.Get(); ok && x < bound {
		return false
	}
	if bound, ok := hi.Get(); ok && x > bound {
		return false
	}
	return true
}

// columnRange returns NaN bounds when no listing has the column
func columnRange(listings []models.ListingRecord, col func(models.ListingRecord) models.Optional[float64]) (float64, float64) {
	var values []float64
	for _, l := range listings {
		if v, ok := col(l).Get(); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return math.NaN(), math.NaN()
	}
	return minMax(values)
}

func distinct(listings []models.ListingRecord, key func(models.ListingRecord) string) []string {
	seen := utils.NewKeyTracker[string]()
	out := []string{}
	for _, l := range listings {
		if k := key(l); k != "" && seen.Add(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
