package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"airbnb-analytics/models"
	"airbnb-analytics/services"

	"github.com/go-chi/render"
)

// getListings handles GET /api/listings
func (s *Server) getListings(w http.ResponseWriter, r *http.Request) {
	listings, ok := s.loadListings(w, r, "Failed to load listings")
	if !ok {
		return
	}

	q := r.URL.Query()
	page := services.QueryListings(listings, services.ListingQuery{
		Filters:   parseListingFilters(q),
		Search:    q.Get("search"),
		SortBy:    firstParam(q, "sort_by", "sortBy"),
		SortOrder: firstParam(q, "sort_order", "sortOrder"),
		Page:      intParam(q, 1, "page"),
		PageSize:  intParam(q, services.DefaultPageSize, "page_size", "pageSize"),
	})
	render.JSON(w, r, page)
}

// getListingFilters handles GET /api/listings/filters
func (s *Server) getListingFilters(w http.ResponseWriter, r *http.Request) {
	listings, ok := s.loadListings(w, r, "Failed to load filter options")
	if !ok {
		return
	}
	render.JSON(w, r, services.ListingFilterOptions(listings, parseListingFilters(r.URL.Query())))
}

// getListingMap handles GET /api/listings/map
func (s *Server) getListingMap(w http.ResponseWriter, r *http.Request) {
	listings, ok := s.loadListings(w, r, "Failed to load map listings")
	if !ok {
		return
	}
	q := r.URL.Query()
	render.JSON(w, r, services.MapPoints(listings, parseListingFilters(q), q.Get("search")))
}

func (s *Server) loadListings(w http.ResponseWriter, r *http.Request, failure string) ([]models.ListingRecord, bool) {
	listings, err := s.listings.Listings()
	if err != nil {
		s.logger.Error("Error loading listings: %v", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": failure})
		return nil, false
	}
	return listings, true
}

// parseListingFilters reads the filter parameters. Malformed numbers are
// ignored rather than rejected.
func parseListingFilters(q url.Values) services.ListingFilters {
	return services.ListingFilters{
		Neighbourhoods:  listParam(q, "neighbourhood", "zip"),
		RoomTypes:       listParam(q, "room_type", "roomType"),
		MinPrice:        floatParam(q, "min_price", "minPrice"),
		MaxPrice:        floatParam(q, "max_price", "maxPrice"),
		MinAccommodates: floatParam(q, "min_accommodates", "minAccommodates"),
		MaxAccommodates: floatParam(q, "max_accommodates", "maxAccommodates"),
		MinBedrooms:     floatParam(q, "min_bedrooms", "minBedrooms"),
		MaxBedrooms:     floatParam(q, "max_bedrooms", "maxBedrooms"),
		MinReviewScore:  floatParam(q, "min_review_score", "minReviewScore"),
		MaxReviewScore:  floatParam(q, "max_review_score", "maxReviewScore"),
		SuperhostOnly:   firstParam(q, "host_is_superhost", "hostIsSuperhost") == "true",
	}
}

// firstParam returns the first non-empty value among the given names
func firstParam(q url.Values, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(q.Get(name)); v != "" {
			return v
		}
	}
	return ""
}

// listParam splits a comma separated parameter, dropping empty items
func listParam(q url.Values, names ...string) []string {
	raw := firstParam(q, names...)
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func floatParam(q url.Values, names ...string) models.Optional[float64] {
	v, err := strconv.ParseFloat(firstParam(q, names...), 64)
	if err != nil {
		return models.None[float64]()
	}
	return models.Some(v)
}

func intParam(q url.Values, def int, names ...string) int {
	v, err := strconv.Atoi(firstParam(q, names...))
	if err != nil {
		return def
	}
	return v
}
