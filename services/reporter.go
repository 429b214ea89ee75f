package services

import (
	"fmt"
	"io"
	"strings"
)

// PrintInsightReport formats the run report for the terminal
func PrintInsightReport(w io.Writer, report *RunReport) {
	border := strings.Repeat("═", 55)
	thin := strings.Repeat("─", 55)
	results := report.Results
	summary := results.Summary

	fmt.Fprintf(w, "\n╔%s╗\n", border)
	fmt.Fprintf(w, "║%s║\n", center("SHORT-TERM RENTAL MARKET ANALYTICS", 55))
	fmt.Fprintf(w, "╚%s╝\n", border)

	fmt.Fprintf(w, "\n OVERVIEW\n%s\n", thin)
	fmt.Fprintf(w, "  Run ID                  : %s\n", report.RunID)
	fmt.Fprintf(w, "  Listings (raw/cleaned)  : %d / %d\n", report.RawListings, report.CleanedListings)
	fmt.Fprintf(w, "  Calendar (raw/cleaned)  : %d / %d\n", report.RawCalendar, report.CleanedCalendar)
	fmt.Fprintf(w, "  Average Price/Night     : $%.2f\n", float64(summary.AvgPrice))
	fmt.Fprintf(w, "  Median Price/Night      : $%.0f\n", float64(summary.MedianPrice))
	if len(summary.ModelCoefficients) > 0 {
		fmt.Fprintf(w, "  Price model             : %.2f × guests + %.2f\n",
			float64(summary.ModelCoefficients[0]), float64(summary.ModelIntercept))
	}

	if len(results.NeighbourhoodAnalysis) > 0 {
		fmt.Fprintf(w, "\n PRICIEST NEIGHBOURHOODS\n%s\n", thin)
		for i, n := range results.NeighbourhoodAnalysis {
			if i == 10 {
				break
			}
			fmt.Fprintf(w, "  %-28s $%8.2f  (%d listings)\n", truncate(n.Neighbourhood, 28)+":", n.AvgPrice, n.Count)
		}
	}

	if len(results.RoomTypeAnalysis) > 0 {
		fmt.Fprintf(w, "\n ROOM TYPES\n%s\n", thin)
		for _, r := range results.RoomTypeAnalysis {
			fmt.Fprintf(w, "  %-28s $%8.2f  (%d listings)\n", truncate(r.RoomType, 28)+":", r.AvgPrice, r.Count)
		}
	}

	if len(results.TopRevenueListings) > 0 {
		fmt.Fprintf(w, "\n TOP %d LISTINGS BY REVENUE\n%s\n", len(results.TopRevenueListings), thin)
		for i, t := range results.TopRevenueListings {
			fmt.Fprintf(w, "  %2d. #%-20d $%12.2f  %5.1f%% occupied\n", i+1, t.ID, t.AnnualRevenue, t.OccupancyRate*100)
		}
	}

	fmt.Fprintf(w, "\n%s\n\n", border)
}

func center(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	pad := (width - len(runes)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(runes)-pad)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
