// Package charts renders the analysis views (histogram comparison, statistics comparison,
// image properties and intensity distribution) to raster images.
package charts

import (
	"fmt"
	"image"
	"image/color"

	"imagelab/internal/models"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const dpi = 96

var (
	originalColor  = color.RGBA{R: 0x66, G: 0x7e, B: 0xea, A: 0xff}
	processedColor = color.RGBA{R: 0x76, G: 0x4b, B: 0xa2, A: 0xff}
	originalFill   = color.RGBA{R: 0x66, G: 0x7e, B: 0xea, A: 0x40}
	processedFill  = color.RGBA{R: 0x76, G: 0x4b, B: 0xa2, A: 0x40}
)

// Size is a raster size in pixels.
type Size struct {
	Width  int
	Height int
}

var DefaultSize = Size{Width: 720, Height: 420}

// Render rasterizes p.
func Render(p *plot.Plot, size Size) (image.Image, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", size.Width, size.Height)
	}

	w := vg.Length(size.Width) * vg.Inch / dpi
	h := vg.Length(size.Height) * vg.Inch / dpi
	canvas := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
	p.Draw(draw.New(canvas))

	return canvas.Image(), nil
}

// Histogram overlays the 256-bin intensity histograms of both images.
func Histogram(original, processed []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Pixel Intensity Histogram Comparison"
	p.X.Label.Text = "Pixel Intensity (0-255)"
	p.Y.Label.Text = "Frequency"
	p.X.Min = 0
	p.X.Max = 255
	p.Legend.Top = true

	series := []struct {
		name   string
		counts []float64
		stroke color.Color
		fill   color.Color
	}{
		{"Original", original, originalColor, originalFill},
		{"Processed", processed, processedColor, processedFill},
	}

	for _, s := range series {
		xys := make(plotter.XYs, len(s.counts))
		for i, c := range s.counts {
			xys[i].X = float64(i)
			xys[i].Y = c
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("%s histogram line: %w", s.name, err)
		}
		line.LineStyle.Color = s.stroke
		line.LineStyle.Width = vg.Points(2)
		line.FillColor = s.fill

		p.Add(line)
		p.Legend.Add(s.name, line)
	}

	return p, nil
}

// StatisticsComparison draws grouped bars of mean, std, min and max brightness.
func StatisticsComparison(original, processed models.Statistics) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Intensity Statistics Comparison"
	p.Y.Label.Text = "Value"
	p.Legend.Top = true

	values := func(s models.Statistics) plotter.Values {
		return plotter.Values{s.MeanBrightness, s.StdBrightness, float64(s.MinIntensity), float64(s.MaxIntensity)}
	}

	width := vg.Points(24)
	if err := addGroupedBars(p, width, []barSeries{
		{name: "Original", values: values(original), color: originalColor},
		{name: "Processed", values: values(processed), color: processedColor},
	}); err != nil {
		return nil, err
	}

	p.NominalX("Mean", "Standard Deviation", "Minimum", "Maximum")
	return p, nil
}

// Properties draws the width, height and pixel count of an image. The axis stays linear
// because bars are anchored at zero.
func Properties(stats models.Statistics) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Image Properties"

	bars, err := plotter.NewBarChart(plotter.Values{
		float64(stats.Width), float64(stats.Height), float64(stats.TotalPixels),
	}, vg.Points(40))
	if err != nil {
		return nil, fmt.Errorf("properties bars: %w", err)
	}
	bars.Color = originalColor
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalX("Width", "Height", "Total Pixels")
	p.Y.Label.Text = "Pixels"
	p.Y.Min = 0

	return p, nil
}

// IntensityDistribution draws the pixel counts per intensity band for both images.
func IntensityDistribution(original, processed []int) (*plot.Plot, error) {
	if len(original) != len(models.IntensityBands) || len(processed) != len(models.IntensityBands) {
		return nil, fmt.Errorf("expected %d intensity bands, got %d and %d",
			len(models.IntensityBands), len(original), len(processed))
	}

	p := plot.New()
	p.Title.Text = "Intensity Distribution"
	p.Y.Label.Text = "Pixels"
	p.Legend.Top = true

	toValues := func(counts []int) plotter.Values {
		vs := make(plotter.Values, len(counts))
		for i, c := range counts {
			vs[i] = float64(c)
		}
		return vs
	}

	if err := addGroupedBars(p, vg.Points(24), []barSeries{
		{name: "Original", values: toValues(original), color: originalColor},
		{name: "Processed", values: toValues(processed), color: processedColor},
	}); err != nil {
		return nil, err
	}

	labels := make([]string, len(models.IntensityBands))
	for i, band := range models.IntensityBands {
		labels[i] = band.Label
	}
	p.NominalX(labels...)

	return p, nil
}

type barSeries struct {
	name   string
	values plotter.Values
	color  color.Color
}

func addGroupedBars(p *plot.Plot, width vg.Length, series []barSeries) error {
	offset := -width * vg.Length(len(series)-1) / 2
	for _, s := range series {
		bars, err := plotter.NewBarChart(s.values, width)
		if err != nil {
			return fmt.Errorf("%s bars: %w", s.name, err)
		}
		bars.Color = s.color
		bars.LineStyle.Width = 0
		bars.Offset = offset
		offset += width

		p.Add(bars)
		p.Legend.Add(s.name, bars)
	}
	return nil
}
