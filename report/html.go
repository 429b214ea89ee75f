package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"time"

	"airbnb-analytics/models"
)

var dashboardTemplate = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"money":   money,
	"percent": func(v models.Float) string { return fmt.Sprintf("%.1f%%", float64(v)*100) },
	"inc":     func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Short-term rental analytics</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 32px; color: #1f2933; }
h1 { font-size: 22px; margin-bottom: 4px; }
h2 { font-size: 16px; margin-top: 28px; border-bottom: 1px solid #cbd2d9; padding-bottom: 4px; }
.muted { color: #7b8794; font-size: 12px; }
.cards { display: flex; gap: 12px; margin-top: 16px; }
.card { border: 1px solid #e4e7eb; border-radius: 6px; padding: 10px 14px; flex: 1; }
.card .label { font-size: 11px; color: #7b8794; text-transform: uppercase; }
.card .value { font-size: 20px; font-weight: bold; }
table { border-collapse: collapse; width: 100%; font-size: 12px; margin-top: 8px; }
th, td { text-align: left; padding: 4px 6px; border-bottom: 1px solid #f0f4f8; }
td.num, th.num { text-align: right; }
</style>
</head>
<body>
<h1>Short-term rental analytics</h1>
<div class="muted">Generated {{.GeneratedAt}}</div>

<div class="cards">
  <div class="card"><div class="label">Cleaned listings</div><div class="value">{{.Results.Summary.CleanedListings}}</div></div>
  <div class="card"><div class="label">Average price</div><div class="value">{{money .Results.Summary.AvgPrice}}</div></div>
  <div class="card"><div class="label">Median price</div><div class="value">{{money .Results.Summary.MedianPrice}}</div></div>
  <div class="card"><div class="label">Price per extra guest</div><div class="value">{{money .Slope}}</div></div>
</div>

<h2>Neighbourhoods</h2>
<table>
<tr><th>Neighbourhood</th><th class="num">Listings</th><th class="num">Average</th><th class="num">Min</th><th class="num">Max</th></tr>
{{range .Results.NeighbourhoodAnalysis}}<tr><td>{{.Neighbourhood}}</td><td class="num">{{.Count}}</td><td class="num">{{money .AvgPrice}}</td><td class="num">{{money .MinPrice}}</td><td class="num">{{money .MaxPrice}}</td></tr>
{{end}}</table>

<h2>Room types</h2>
<table>
<tr><th>Room type</th><th class="num">Listings</th><th class="num">Average</th></tr>
{{range .Results.RoomTypeAnalysis}}<tr><td>{{.RoomType}}</td><td class="num">{{.Count}}</td><td class="num">{{money .AvgPrice}}</td></tr>
{{end}}</table>

<h2>Top listings by revenue</h2>
<table>
<tr><th>#</th><th>Listing</th><th class="num">Nightly price</th><th class="num">Occupancy</th><th class="num">Annual revenue</th></tr>
{{range $i, $t := .Results.TopRevenueListings}}<tr><td>{{inc $i}}</td><td>{{$t.ID}}</td><td class="num">{{money $t.AvgPrice}}</td><td class="num">{{percent $t.OccupancyRate}}</td><td class="num">{{money $t.AnnualRevenue}}</td></tr>
{{end}}</table>

<h2>Sample listings</h2>
<table>
<tr><th>Name</th><th>Neighbourhood</th><th>Room type</th><th class="num">Guests</th><th class="num">Price</th></tr>
{{range .Results.SampleListings}}<tr><td>{{.Name}}</td><td>{{.Neighbourhood}}</td><td>{{.RoomType}}</td><td class="num">{{.Accommodates}}</td><td class="num">{{money .Price}}</td></tr>
{{end}}</table>
</body>
</html>
`))

type dashboardData struct {
	Results     *models.AnalyticsResults
	GeneratedAt string
	Slope       models.Float
}

// DecodeResults parses a results document as written by the analytics batch
func DecodeResults(data []byte) (*models.AnalyticsResults, error) {
	var results models.AnalyticsResults
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	return &results, nil
}

// RenderHTML renders the results as a standalone HTML dashboard
func RenderHTML(results *models.AnalyticsResults, generatedAt time.Time) (string, error) {
	data := dashboardData{
		Results:     results,
		GeneratedAt: generatedAt.Format("2006-01-02 15:04"),
		Slope:       models.Float(math.NaN()),
	}
	if len(results.Summary.ModelCoefficients) > 0 {
		data.Slope = results.Summary.ModelCoefficients[0]
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render dashboard: %w", err)
	}
	return buf.String(), nil
}

func money(v models.Float) string {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "n/a"
	}
	return fmt.Sprintf("$%.2f", f)
}
