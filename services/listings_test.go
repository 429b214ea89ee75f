package services

import (
	"math"
	"testing"

	"airbnb-analytics/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listingIDs(listings []models.ListingRecord) []int64 {
	ids := make([]int64, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.ID)
	}
	return ids
}

func TestFilterListings(t *testing.T) {
	rated := validListingRecord(1, "100")
	rated.ReviewScoresRating = models.Some(4.5)
	unrated := validListingRecord(2, "150")
	private := withNeighbourhood(validListingRecord(3, "60"), "Sol")
	private.RoomType = "Private room"
	private.HostIsSuperhost = models.Some("t")
	listings := []models.ListingRecord{rated, unrated, private}

	tests := []struct {
		name    string
		filters ListingFilters
		search  string
		want    []int64
	}{
		{"no filters", ListingFilters{}, "", []int64{1, 2, 3}},
		{"neighbourhood", ListingFilters{Neighbourhoods: []string{"Sol"}}, "", []int64{3}},
		{"room type", ListingFilters{RoomTypes: []string{"Entire home/apt"}}, "", []int64{1, 2}},
		{"inclusive price bounds", ListingFilters{MinPrice: models.Some(60.0), MaxPrice: models.Some(100.0)}, "", []int64{1, 3}},
		{"bound drops missing values", ListingFilters{MaxReviewScore: models.Some(5.0)}, "", []int64{1}},
		{"superhost", ListingFilters{SuperhostOnly: true}, "", []int64{3}},
		{"search", ListingFilters{}, "  listing 2 ", []int64{2}},
		{"nothing matches", ListingFilters{MinBedrooms: models.Some(3.0)}, "", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, listingIDs(FilterListings(listings, tt.filters, tt.search)))
		})
	}
}

func TestSortListings_IsStable(t *testing.T) {
	listings := []models.ListingRecord{
		validListingRecord(1, "100"),
		validListingRecord(2, "50"),
		validListingRecord(3, "100"),
	}

	SortListings(listings, "price", "desc")
	assert.Equal(t, []int64{1, 3, 2}, listingIDs(listings))

	SortListings(listings, "price", "ASC")
	assert.Equal(t, []int64{2, 1, 3}, listingIDs(listings))
}

func TestSortListings_MissingNamesLast(t *testing.T) {
	nameless := validListingRecord(1, "100")
	nameless.Name = models.None[string]()
	listings := []models.ListingRecord{nameless, validListingRecord(2, "100")}

	SortListings(listings, "name", "desc")
	assert.Equal(t, []int64{2, 1}, listingIDs(listings))
}

func TestQueryListings_ClampsPaging(t *testing.T) {
	var listings []models.ListingRecord
	for i := 1; i <= 3; i++ {
		listings = append(listings, validListingRecord(int64(i), "100"))
	}

	page := QueryListings(listings, ListingQuery{Page: -1, PageSize: 10000})
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, MaxPageSize, page.PageSize)
	assert.Len(t, page.Data, 3)

	page = QueryListings(listings, ListingQuery{})
	assert.Equal(t, DefaultPageSize, page.PageSize)
}

func TestQueryListings_DoesNotReorderInput(t *testing.T) {
	listings := []models.ListingRecord{validListingRecord(2, "100"), validListingRecord(1, "100")}

	QueryListings(listings, ListingQuery{SortBy: "id"})
	assert.Equal(t, []int64{2, 1}, listingIDs(listings))
}

func TestListingFilterOptions_Empty(t *testing.T) {
	opts := ListingFilterOptions(nil, ListingFilters{})

	assert.NotNil(t, opts.Neighbourhoods)
	assert.Empty(t, opts.Neighbourhoods)
	assert.Empty(t, opts.RoomTypes)
	assert.True(t, math.IsNaN(float64(opts.MinPrice)))
	assert.True(t, math.IsNaN(float64(opts.MaxReviewScore)))
	assert.Empty(t, opts.NeighbourhoodAveragePrices)
}

func TestMapPoints(t *testing.T) {
	placed := validListingRecord(1, "99.5")
	placed.Latitude, placed.Longitude = models.Some(40.4), models.Some(-3.7)

	points := MapPoints([]models.ListingRecord{placed, validListingRecord(2, "100")}, ListingFilters{}, "")

	require.Len(t, points, 2)
	assert.Equal(t, models.Float(40.4), points[0].Latitude)
	assert.Equal(t, models.Float(99.5), points[0].Price)
	assert.True(t, math.IsNaN(float64(points[1].Longitude)))
}
