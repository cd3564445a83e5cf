package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"booking-scraper/models"
	"booking-scraper/utils"
)

// Plotter renders the top-10 rankings as two side-by-side bar charts.
type Plotter struct {
	logger   *utils.Logger
	currency string
}

func NewPlotter(logger *utils.Logger, currency string) *Plotter {
	return &Plotter{logger: logger, currency: currency}
}

// RenderFile writes the chart page to path, replacing any previous file.
func (p *Plotter) RenderFile(report *models.InsightReport, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("plot: create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plot: create file %q: %w", path, err)
	}
	defer f.Close()

	if err := p.Render(report, f); err != nil {
		return err
	}
	return f.Close()
}

// Render writes an HTML page with the price chart on the left and the score
// chart on the right.
func (p *Plotter) Render(report *models.InsightReport, w io.Writer) error {
	priceLabel := "Price"
	if p.currency != "" {
		priceLabel = fmt.Sprintf("Price (%s)", p.currency)
	}

	prices := barChart("Top 10 Hotel Prices", priceLabel, "blue", report.TopByPrice,
		func(h *models.RankedHotel) float64 { return h.Price.V })
	scores := barChart("Top 10 Hotel Scores", "Score", "green", report.TopByScore,
		func(h *models.RankedHotel) float64 { return h.Score.V })

	page := components.NewPage()
	page.PageTitle = "Hotel search results"
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(prices, scores)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("plot: render: %w", err)
	}
	p.logger.Debug("[plot] Rendered %d price bars, %d score bars", len(report.TopByPrice), len(report.TopByScore))
	return nil
}

func barChart(title, yName, colour string, rows []*models.RankedHotel, metric func(*models.RankedHotel) float64) *charts.Bar {
	names := make([]string, 0, len(rows))
	data := make([]opts.BarData, 0, len(rows))
	for _, h := range rows {
		names = append(names, h.Name)
		data = append(data, opts.BarData{Name: h.Name, Value: metric(h)})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "600px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Hotel", AxisLabel: &opts.AxisLabel{Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
		charts.WithGridOpts(opts.Grid{Bottom: "35%"}),
	)
	bar.SetXAxis(names).AddSeries(yName, data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colour}))
	return bar
}
