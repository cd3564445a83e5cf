package services

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"booking-scraper/models"
	"booking-scraper/utils"
)

// TopN is how many hotels each ranking keeps.
const TopN = 10

type InsightService struct {
	logger *utils.Logger
	out    io.Writer
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger, out: os.Stdout}
}

// Generate computes price statistics and the top hotels by price and by
// score. Rows whose metric is null never appear in that metric's ranking.
func (s *InsightService) Generate(rows []*models.RankedHotel) *models.InsightReport {
	report := &models.InsightReport{TotalHotels: len(rows)}
	if len(rows) == 0 {
		return report
	}

	var priced, scored []*models.RankedHotel
	for _, r := range rows {
		if r.Price.Valid {
			priced = append(priced, r)
		}
		if r.Score.Valid {
			scored = append(scored, r)
		}
	}
	report.PricedHotels = len(priced)
	report.ScoredHotels = len(scored)

	if len(priced) > 0 {
		report.MinPrice = priced[0].Price.V
		report.MaxPrice = priced[0].Price.V
		var total float64
		for _, r := range priced {
			total += r.Price.V
			if r.Price.V < report.MinPrice {
				report.MinPrice = r.Price.V
			}
			if r.Price.V > report.MaxPrice {
				report.MaxPrice = r.Price.V
			}
		}
		report.AveragePrice = round2(total / float64(len(priced)))
	}

	report.TopByPrice = topAscending(priced, func(r *models.RankedHotel) float64 { return r.Price.V })
	report.TopByScore = topAscending(scored, func(r *models.RankedHotel) float64 { return r.Score.V })

	s.logger.Debug("[insights] %d priced, %d scored of %d hotels",
		report.PricedHotels, report.ScoredHotels, report.TotalHotels)
	return report
}

// topAscending keeps the TopN largest rows by metric, ties resolved by
// original order, and returns them sorted ascending.
func topAscending(rows []*models.RankedHotel, metric func(*models.RankedHotel) float64) []*models.RankedHotel {
	sorted := make([]*models.RankedHotel, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return metric(sorted[i]) > metric(sorted[j])
	})
	if len(sorted) > TopN {
		sorted = sorted[:TopN]
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return metric(sorted[i]) < metric(sorted[j])
	})
	return sorted
}

func (s *InsightService) Print(r *models.InsightReport) {
	title := color.New(color.FgMagenta, color.Bold)
	heading := color.New(color.FgYellow, color.Bold)
	value := color.New(color.FgGreen, color.Bold)

	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	title.Fprintf(s.out, "\n%s\n", sep)
	title.Fprintf(s.out, "  HOTEL SEARCH INSIGHTS\n")
	title.Fprintf(s.out, "%s\n\n", sep)

	heading.Fprintf(s.out, "  Overview\n")
	fmt.Fprintf(s.out, "  %s\n", thin)
	fmt.Fprintf(s.out, "  Hotels scraped    : %s\n", value.Sprint(r.TotalHotels))
	fmt.Fprintf(s.out, "  With a price      : %s\n", value.Sprint(r.PricedHotels))
	fmt.Fprintf(s.out, "  With a score      : %s\n\n", value.Sprint(r.ScoredHotels))

	heading.Fprintf(s.out, "  Price Statistics\n")
	fmt.Fprintf(s.out, "  %s\n", thin)
	if r.PricedHotels > 0 {
		fmt.Fprintf(s.out, "  Average price : %s\n", value.Sprintf("%.2f", r.AveragePrice))
		fmt.Fprintf(s.out, "  Minimum price : %s\n", value.Sprintf("%.2f", r.MinPrice))
		fmt.Fprintf(s.out, "  Maximum price : %s\n", value.Sprintf("%.2f", r.MaxPrice))
	} else {
		fmt.Fprintf(s.out, "  No price data available\n")
	}
	fmt.Fprintln(s.out)

	s.printRanking(heading, thin, "Top 10 Hotel Prices", r.TopByPrice, func(h *models.RankedHotel) string {
		return fmt.Sprintf("%.2f", h.Price.V)
	})
	s.printRanking(heading, thin, "Top 10 Hotel Scores", r.TopByScore, func(h *models.RankedHotel) string {
		return fmt.Sprintf("%.1f", h.Score.V)
	})

	title.Fprintf(s.out, "%s\n\n", sep)
}

func (s *InsightService) printRanking(heading *color.Color, thin, label string, rows []*models.RankedHotel, metric func(*models.RankedHotel) string) {
	heading.Fprintf(s.out, "  %s\n", label)
	fmt.Fprintf(s.out, "  %s\n", thin)
	if len(rows) == 0 {
		fmt.Fprintf(s.out, "  No data\n\n")
		return
	}
	for i, h := range rows {
		fmt.Fprintf(s.out, "  %2d. %-40s %s\n", i+1, truncate(h.Name, 38), metric(h))
	}
	fmt.Fprintln(s.out)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
