package components

import (
	"fmt"

	"imagelab/internal/charts"
	"imagelab/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"gonum.org/v1/plot"
)

// AnalysisTabs shows the comparison charts of a processing result.
type AnalysisTabs struct {
	tabs *container.AppTabs

	histogram           *canvas.Image
	statistics          *canvas.Image
	originalProperties  *canvas.Image
	processedProperties *canvas.Image
	distribution        *canvas.Image

	bandLabels []*widget.Label
}

func NewAnalysisTabs() *AnalysisTabs {
	at := &AnalysisTabs{
		histogram:           newChartImage(charts.DefaultSize),
		statistics:          newChartImage(charts.DefaultSize),
		originalProperties:  newChartImage(charts.Size{Width: 360, Height: 300}),
		processedProperties: newChartImage(charts.Size{Width: 360, Height: 300}),
		distribution:        newChartImage(charts.DefaultSize),
	}

	bandTable := container.NewGridWithColumns(3,
		widget.NewLabelWithStyle("Range", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Original", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Processed", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, band := range models.IntensityBands {
		original := widget.NewLabel("--")
		processed := widget.NewLabel("--")
		at.bandLabels = append(at.bandLabels, original, processed)
		bandTable.Add(widget.NewLabel(band.Label))
		bandTable.Add(original)
		bandTable.Add(processed)
	}

	at.tabs = container.NewAppTabs(
		container.NewTabItem("Histogram Analysis", at.histogram),
		container.NewTabItem("Statistical Comparison", container.NewVBox(
			at.statistics,
			container.NewGridWithColumns(2,
				widget.NewCard("", "Original", at.originalProperties),
				widget.NewCard("", "Processed", at.processedProperties),
			),
		)),
		container.NewTabItem("Intensity Distribution", container.NewVBox(
			at.distribution,
			bandTable,
		)),
	)

	return at
}

// SetResult renders every chart of result.
func (at *AnalysisTabs) SetResult(result *models.ProcessingResult) error {
	histogramPlot, err := charts.Histogram(result.OriginalHistogram, result.ProcessedHistogram)
	if err != nil {
		return err
	}
	statsPlot, err := charts.StatisticsComparison(result.OriginalStats, result.ProcessedStats)
	if err != nil {
		return err
	}
	originalProps, err := charts.Properties(result.OriginalStats)
	if err != nil {
		return err
	}
	processedProps, err := charts.Properties(result.ProcessedStats)
	if err != nil {
		return err
	}
	distributionPlot, err := charts.IntensityDistribution(result.OriginalRanges, result.ProcessedRanges)
	if err != nil {
		return err
	}

	for _, c := range []struct {
		target *canvas.Image
		plot   *plot.Plot
	}{
		{at.histogram, histogramPlot},
		{at.statistics, statsPlot},
		{at.originalProperties, originalProps},
		{at.processedProperties, processedProps},
		{at.distribution, distributionPlot},
	} {
		if err := renderInto(c.target, c.plot); err != nil {
			return err
		}
	}

	for i := range models.IntensityBands {
		at.bandLabels[2*i].SetText(fmt.Sprintf("%d", result.OriginalRanges[i]))
		at.bandLabels[2*i+1].SetText(fmt.Sprintf("%d", result.ProcessedRanges[i]))
	}

	return nil
}

func (at *AnalysisTabs) Clear() {
	for _, img := range []*canvas.Image{at.histogram, at.statistics, at.originalProperties, at.processedProperties, at.distribution} {
		img.Image = nil
		img.Refresh()
	}
	for _, label := range at.bandLabels {
		label.SetText("--")
	}
}

func (at *AnalysisTabs) GetContainer() fyne.CanvasObject {
	return at.tabs
}

func newChartImage(size charts.Size) *canvas.Image {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(float32(size.Width), float32(size.Height)))
	return img
}

func renderInto(target *canvas.Image, p *plot.Plot) error {
	size := target.MinSize()
	img, err := charts.Render(p, charts.Size{Width: int(size.Width), Height: int(size.Height)})
	if err != nil {
		return err
	}
	target.Image = img
	target.Refresh()
	return nil
}
