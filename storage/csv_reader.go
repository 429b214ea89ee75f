package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"airbnb-analytics/models"
	"airbnb-analytics/utils"
)

var (
	// ErrMissingColumn is returned when a required header is absent
	ErrMissingColumn = errors.New("missing required column")
	// ErrRowDecode is returned when a row cannot be decoded; the whole load fails
	ErrRowDecode = errors.New("row decode failed")
)

var (
	listingRequiredColumns  = []string{"id", "neighbourhood_cleansed", "room_type", "price"}
	calendarRequiredColumns = []string{"listing_id", "date", "available", "price", "adjusted_price"}
)

// CSVReader loads listings.csv and calendar.csv from disk
type CSVReader struct {
	listingsPath string
	calendarPath string
	logger       *utils.Logger
}

// NewCSVReader creates a new CSVReader
func NewCSVReader(listingsPath, calendarPath string, logger *utils.Logger) *CSVReader {
	return &CSVReader{listingsPath: listingsPath, calendarPath: calendarPath, logger: logger}
}

// LoadListings reads and decodes the listings file
func (r *CSVReader) LoadListings() ([]models.ListingRecord, error) {
	file, err := os.Open(r.listingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open listings file: %w", err)
	}
	defer file.Close()

	listings, err := DecodeListings(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.listingsPath, err)
	}
	r.logger.Info("Loaded %d listings from %s", len(listings), r.listingsPath)
	return listings, nil
}

// ListingsModTime reports when the listings file was last modified
func (r *CSVReader) ListingsModTime() (time.Time, error) {
	info, err := os.Stat(r.listingsPath)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to stat listings file: %w", err)
	}
	return info.ModTime(), nil
}

// LoadCalendar reads and decodes the calendar file
func (r *CSVReader) LoadCalendar() ([]models.CalendarEntry, error) {
	file, err := os.Open(r.calendarPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer file.Close()

	entries, err := DecodeCalendar(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.calendarPath, err)
	}
	r.logger.Info("Loaded %d calendar entries from %s", len(entries), r.calendarPath)
	return entries, nil
}

// DecodeListings decodes listing rows by header name and normalizes the price
func DecodeListings(in io.Reader) ([]models.ListingRecord, error) {
	var listings []models.ListingRecord
	err := decodeRows(in, listingRequiredColumns, func(row *csvRow) {
		l := models.ListingRecord{
			ID:                    row.requiredInt("id"),
			Name:                  row.optString("name"),
			NeighbourhoodCleansed: row.requiredString("neighbourhood_cleansed"),
			RoomType:              row.requiredString("room_type"),
			Price:                 normalizedPrice(row.requiredString("price")),
			Accommodates:          row.optFloat("accommodates"),
			Bedrooms:              row.optFloat("bedrooms"),
			Bathrooms:             row.optFloat("bathrooms"),
			Beds:                  row.optFloat("beds"),
			MinimumNights:         row.optFloat("minimum_nights"),
			MaximumNights:         row.optFloat("maximum_nights"),
			Availability365:       row.optFloat("availability_365"),
			ReviewScoresRating:    row.optFloat("review_scores_rating"),
			HostIsSuperhost:       row.optString("host_is_superhost"),
			EstimatedRevenueL365d: row.optFloat("estimated_revenue_l365d"),
			Latitude:              row.optFloat("latitude"),
			Longitude:             row.optFloat("longitude"),
			HostID:                row.lenientInt("host_id"),
			HostName:              row.optString("host_name"),
			HostSince:             row.optString("host_since"),
			HostListingsCount:     row.lenientFloat("host_listings_count"),
		}
		listings = append(listings, l)
	})
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// DecodeCalendar decodes calendar rows by header name and normalizes both prices
func DecodeCalendar(in io.Reader) ([]models.CalendarEntry, error) {
	var entries []models.CalendarEntry
	err := decodeRows(in, calendarRequiredColumns, func(row *csvRow) {
		e := models.CalendarEntry{
			ListingID:     row.requiredInt("listing_id"),
			Date:          row.requiredString("date"),
			Available:     row.requiredString("available"),
			Price:         normalizedPrice(row.requiredString("price")),
			AdjustedPrice: normalizedPrice(row.requiredString("adjusted_price")),
			MinimumNights: row.optFloat("minimum_nights"),
			MaximumNights: row.optFloat("maximum_nights"),
		}
		entries = append(entries, e)
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func normalizedPrice(raw string) string {
	if clean, ok := utils.NormalizePrice(raw); ok {
		return clean
	}
	return raw
}

// decodeRows reads the header, checks required columns and calls fn for every
// record. The first row that fails to decode aborts the whole read.
func decodeRows(in io.Reader, required []string, fn func(row *csvRow)) error {
	reader := csv.NewReader(in)

	header, err := reader.Read()
	if err == io.EOF {
		return fmt.Errorf("%w: %s (empty file)", ErrMissingColumn, strings.Join(required, ", "))
	}
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRowDecode, err)
		}

		line, _ := reader.FieldPos(0)
		row := &csvRow{index: index, record: record, line: line}
		fn(row)
		if row.err != nil {
			return row.err
		}
	}
}

// csvRow decodes fields of one record, remembering the first failure
type csvRow struct {
	index  map[string]int
	record []string
	line   int
	err    error
}

func (r *csvRow) field(col string) (string, bool) {
	i, ok := r.index[col]
	if !ok || i >= len(r.record) {
		return "", false
	}
	return r.record[i], true
}

func (r *csvRow) fail(col string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: line %d, column %q: %v", ErrRowDecode, r.line, col, err)
	}
}

func (r *csvRow) requiredString(col string) string {
	v, _ := r.field(col)
	return v
}

func (r *csvRow) requiredInt(col string) int64 {
	v, _ := r.field(col)
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		r.fail(col, err)
		return 0
	}
	return n
}

func (r *csvRow) optString(col string) models.Optional[string] {
	v, ok := r.field(col)
	if !ok || v == "" {
		return models.None[string]()
	}
	return models.Some(v)
}

func (r *csvRow) optFloat(col string) models.Optional[float64] {
	v, ok := r.field(col)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return models.None[float64]()
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(col, err)
		return models.None[float64]()
	}
	return models.Some(f)
}

// lenientFloat treats an unparseable value as absent
func (r *csvRow) lenientFloat(col string) models.Optional[float64] {
	v, ok := r.field(col)
	if !ok {
		return models.None[float64]()
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return models.None[float64]()
	}
	return models.Some(f)
}

// lenientInt treats an unparseable value as absent
func (r *csvRow) lenientInt(col string) models.Optional[int64] {
	v, ok := r.field(col)
	if !ok {
		return models.None[int64]()
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return models.None[int64]()
	}
	return models.Some(n)
}
