package services

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-scraper/models"
	"booking-scraper/utils"
)

func TestPlotterRendersBothCharts(t *testing.T) {
	report := newTestInsights().Generate(sampleRows())

	var buf bytes.Buffer
	require.NoError(t, NewPlotter(utils.NewDiscardLogger(), "zł").Render(report, &buf))

	html := buf.String()
	assert.Contains(t, html, "Top 10 Hotel Prices")
	assert.Contains(t, html, "Top 10 Hotel Scores")
	assert.Contains(t, html, "Price (zł)")
	assert.Contains(t, html, "Villa A")
}

func TestPlotterEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPlotter(utils.NewDiscardLogger(), "zł").Render(&models.InsightReport{}, &buf))
	assert.Contains(t, buf.String(), "Top 10 Hotel Scores")
}

func TestPlotterRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "hotels_chart.html")
	report := newTestInsights().Generate(sampleRows())

	require.NoError(t, NewPlotter(utils.NewDiscardLogger(), "zł").RenderFile(report, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
