package components

import (
	"fmt"
	"math"
	"strconv"

	"imagelab/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ParameterPanel edits a models.Parameters value. Every change reports the full parameter
// set; fields of disabled stages are reported with their defaults.
type ParameterPanel struct {
	container *fyne.Container

	grayscaleCheck *widget.Check
	blurSlider     *widget.Slider
	blurLabel      *widget.Label
	brightSlider   *widget.Slider
	brightLabel    *widget.Label
	contrastSlider *widget.Slider
	contrastLabel  *widget.Label

	edgeCheck       *widget.Check
	cannyLowSlider  *widget.Slider
	cannyLowLabel   *widget.Label
	cannyHighSlider *widget.Slider
	cannyHighLabel  *widget.Label
	edgeSection     *fyne.Container

	morphSelect  *widget.Select
	kernelSlider *widget.Slider
	kernelLabel  *widget.Label
	kernelRow    *fyne.Container

	params   models.Parameters
	updating bool

	parameterChangeHandler func(models.Parameters)
}

func NewParameterPanel() *ParameterPanel {
	panel := &ParameterPanel{params: models.DefaultParameters()}
	panel.createComponents()
	panel.buildLayout()
	panel.SetParameters(panel.params)
	return panel
}

func (pp *ParameterPanel) createComponents() {
	pp.grayscaleCheck = widget.NewCheck("Convert to Grayscale", func(checked bool) {
		pp.params.Grayscale = checked
		pp.notify()
	})

	pp.blurLabel = widget.NewLabel("")
	pp.blurSlider = widget.NewSlider(models.MinBlurRadius, models.MaxBlurRadius)
	pp.blurSlider.Step = 1
	pp.blurSlider.OnChanged = func(value float64) {
		pp.params.BlurRadius = int(value)
		pp.blurLabel.SetText("Blur Radius: " + strconv.Itoa(pp.params.BlurRadius))
		pp.notify()
	}

	pp.brightLabel = widget.NewLabel("")
	pp.brightSlider = widget.NewSlider(models.MinBrightness, models.MaxBrightness)
	pp.brightSlider.Step = 1
	pp.brightSlider.OnChanged = func(value float64) {
		pp.params.Brightness = int(value)
		pp.brightLabel.SetText("Brightness: " + strconv.Itoa(pp.params.Brightness))
		pp.notify()
	}

	pp.contrastLabel = widget.NewLabel("")
	pp.contrastSlider = widget.NewSlider(models.MinContrast, models.MaxContrast)
	pp.contrastSlider.Step = models.ContrastStep
	pp.contrastSlider.OnChanged = func(value float64) {
		pp.params.Contrast = math.Round(value*10) / 10
		pp.contrastLabel.SetText("Contrast: " + strconv.FormatFloat(pp.params.Contrast, 'f', 1, 64))
		pp.notify()
	}

	pp.edgeCheck = widget.NewCheck("Edge Detection", func(checked bool) {
		pp.params.EdgeDetection = checked
		pp.refreshSections()
		pp.notify()
	})

	pp.cannyLowLabel = widget.NewLabel("")
	pp.cannyLowSlider = widget.NewSlider(models.MinCannyThreshold, models.MaxCannyThreshold)
	pp.cannyLowSlider.Step = 1
	pp.cannyLowSlider.OnChanged = func(value float64) {
		pp.params.CannyLow = int(value)
		pp.cannyLowLabel.SetText("Canny Low Threshold: " + strconv.Itoa(pp.params.CannyLow))
		pp.notify()
	}

	pp.cannyHighLabel = widget.NewLabel("")
	pp.cannyHighSlider = widget.NewSlider(models.MinCannyThreshold, models.MaxCannyThreshold)
	pp.cannyHighSlider.Step = 1
	pp.cannyHighSlider.OnChanged = func(value float64) {
		pp.params.CannyHigh = int(value)
		pp.cannyHighLabel.SetText("Canny High Threshold: " + strconv.Itoa(pp.params.CannyHigh))
		pp.notify()
	}

	ops := models.MorphologyOps()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.String()
	}
	pp.morphSelect = widget.NewSelect(names, func(value string) {
		pp.params.Morphology = models.ParseMorphologyOp(value)
		pp.refreshSections()
		pp.notify()
	})

	pp.kernelLabel = widget.NewLabel("")
	pp.kernelSlider = widget.NewSlider(models.MinKernelSize, models.MaxKernelSize)
	pp.kernelSlider.Step = models.KernelSizeStep
	pp.kernelSlider.OnChanged = func(value float64) {
		size := int(value)
		if size%2 == 0 {
			size++
		}
		pp.params.KernelSize = size
		pp.kernelLabel.SetText("Kernel Size: " + strconv.Itoa(size))
		pp.notify()
	}
}

func (pp *ParameterPanel) buildLayout() {
	pp.edgeSection = container.NewVBox(
		pp.cannyLowLabel, pp.cannyLowSlider,
		pp.cannyHighLabel, pp.cannyHighSlider,
	)
	pp.kernelRow = container.NewVBox(pp.kernelLabel, pp.kernelSlider)

	pp.container = container.NewVBox(
		widget.NewRichTextFromMarkdown("### Basic Adjustments"),
		pp.grayscaleCheck,
		pp.blurLabel, pp.blurSlider,
		pp.brightLabel, pp.brightSlider,
		pp.contrastLabel, pp.contrastSlider,
		widget.NewSeparator(),
		widget.NewRichTextFromMarkdown("### Advanced Filters"),
		pp.edgeCheck,
		pp.edgeSection,
		widget.NewLabel("Morphological Operation"),
		pp.morphSelect,
		pp.kernelRow,
	)
}

// SetParameters loads p into the controls without reporting a change.
func (pp *ParameterPanel) SetParameters(p models.Parameters) {
	pp.updating = true
	defer func() { pp.updating = false }()

	pp.params = p
	pp.grayscaleCheck.SetChecked(p.Grayscale)
	pp.blurSlider.SetValue(float64(p.BlurRadius))
	pp.brightSlider.SetValue(float64(p.Brightness))
	pp.contrastSlider.SetValue(p.Contrast)
	pp.edgeCheck.SetChecked(p.EdgeDetection)
	pp.cannyLowSlider.SetValue(float64(p.CannyLow))
	pp.cannyHighSlider.SetValue(float64(p.CannyHigh))
	pp.morphSelect.SetSelected(p.Morphology.String())
	pp.kernelSlider.SetValue(float64(p.KernelSize))

	// SetValue skips OnChanged when the value is unchanged
	pp.blurLabel.SetText("Blur Radius: " + strconv.Itoa(p.BlurRadius))
	pp.brightLabel.SetText("Brightness: " + strconv.Itoa(p.Brightness))
	pp.contrastLabel.SetText(fmt.Sprintf("Contrast: %.1f", p.Contrast))
	pp.cannyLowLabel.SetText("Canny Low Threshold: " + strconv.Itoa(p.CannyLow))
	pp.cannyHighLabel.SetText("Canny High Threshold: " + strconv.Itoa(p.CannyHigh))
	pp.kernelLabel.SetText("Kernel Size: " + strconv.Itoa(p.KernelSize))

	pp.refreshSections()
}

// Parameters returns the current values, with defaults for the fields of disabled stages.
func (pp *ParameterPanel) Parameters() models.Parameters {
	return pp.params.Normalize()
}

func (pp *ParameterPanel) SetParameterChangeHandler(handler func(models.Parameters)) {
	pp.parameterChangeHandler = handler
}

func (pp *ParameterPanel) refreshSections() {
	if pp.params.EdgeDetection {
		pp.edgeSection.Show()
	} else {
		pp.edgeSection.Hide()
	}

	if pp.params.Morphology != models.MorphologyNone {
		pp.kernelRow.Show()
	} else {
		pp.kernelRow.Hide()
	}
}

func (pp *ParameterPanel) notify() {
	if pp.updating || pp.parameterChangeHandler == nil {
		return
	}
	pp.parameterChangeHandler(pp.Parameters())
}

func (pp *ParameterPanel) GetContainer() *fyne.Container {
	return pp.container
}
