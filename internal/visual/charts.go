package visual

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	apperrors "blightcli/internal/errors"
)

// DefaultBins is the bin count of frequency distributions
const DefaultBins = 40

var steelBlue = color.RGBA{R: 70, G: 130, B: 180, A: 255}

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
)

// BarPlot draws one bar per label and saves the chart to path. The image
// format follows the file extension.
func BarPlot(path, title string, labels []string, values []float64) error {
	if len(values) == 0 || len(labels) != len(values) {
		return apperrors.NewValidationError(fmt.Sprintf("bar plot %q needs one label per value, got %d labels and %d values", title, len(labels), len(values)))
	}

	p := newPlot(title)
	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(20))
	if err != nil {
		return fmt.Errorf("bar plot %q: %w", title, err)
	}
	bars.Color = steelBlue
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	p.NominalX(labels...)
	if len(labels) > 4 {
		p.X.Tick.Label.Rotation = math.Pi / 3
		p.X.Tick.Label.YAlign = draw.YCenter
		p.X.Tick.Label.XAlign = draw.XRight
	}
	p.Y.Label.Text = "Count"
	return save(p, path)
}

// Histogram bins values and saves the chart to path. NaN values are
// skipped.
func Histogram(path, title string, values []float64, bins int) error {
	finite := make(plotter.Values, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return apperrors.NewValidationError(fmt.Sprintf("histogram %q has no values", title))
	}
	if bins < 1 {
		bins = DefaultBins
	}

	p := newPlot(title)
	h, err := plotter.NewHist(finite, bins)
	if err != nil {
		return fmt.Errorf("histogram %q: %w", title, err)
	}
	h.FillColor = steelBlue
	h.LineStyle.Width = vg.Length(0)
	p.Add(h)
	p.Y.Label.Text = "Frequency"
	return save(p, path)
}

// FreqDist plots how group sizes are distributed, for example how many
// inspectors wrote a given number of tickets
func FreqDist(path, title string, counts []float64) error {
	return Histogram(path, title, counts, DefaultBins)
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Add(plotter.NewGrid())
	return p
}

func save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.NewStorageError("failed to create figure directory", err)
	}
	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to save figure %s", path), err)
	}
	return nil
}
