package components

import (
	"imagelab/internal/samples"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the image source and export actions.
type Toolbar struct {
	container       *fyne.Container
	uploadButton    *widget.Button
	cameraButton    *widget.Button
	sampleSelect    *widget.Select
	sampleButton    *widget.Button
	resetButton     *widget.Button
	saveButton      *widget.Button
	saveStatsButton *widget.Button

	uploadHandler    func()
	cameraHandler    func()
	sampleHandler    func(samples.Kind)
	resetHandler     func()
	saveHandler      func()
	saveStatsHandler func()

	sampleKinds map[string]samples.Kind
}

func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	toolbar.setupEventHandlers()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.uploadButton = widget.NewButton("Upload Image", nil)
	t.uploadButton.Importance = widget.HighImportance

	t.cameraButton = widget.NewButton("Take Photo", nil)

	t.sampleKinds = make(map[string]samples.Kind)
	names := make([]string, 0, len(samples.Kinds()))
	for _, kind := range samples.Kinds() {
		t.sampleKinds[kind.DisplayName()] = kind
		names = append(names, kind.DisplayName())
	}
	t.sampleSelect = widget.NewSelect(names, nil)
	t.sampleSelect.SetSelected(names[0])

	t.sampleButton = widget.NewButton("Load Sample", nil)

	t.resetButton = widget.NewButton("Load New Image", nil)
	t.resetButton.Disable()

	t.saveButton = widget.NewButton("Download Processed Image", nil)
	t.saveButton.Importance = widget.HighImportance
	t.saveButton.Disable()

	t.saveStatsButton = widget.NewButton("Download Statistics (CSV)", nil)
	t.saveStatsButton.Disable()
}

func (t *Toolbar) buildLayout() {
	sourceSection := container.NewHBox(
		t.uploadButton,
		t.cameraButton,
		widget.NewSeparator(),
		widget.NewLabel("Sample"),
		t.sampleSelect,
		t.sampleButton,
	)

	exportSection := container.NewHBox(
		t.resetButton,
		widget.NewSeparator(),
		t.saveButton,
		t.saveStatsButton,
	)

	t.container = container.NewHBox(
		sourceSection,
		widget.NewSeparator(),
		exportSection,
	)
}

func (t *Toolbar) setupEventHandlers() {
	t.uploadButton.OnTapped = func() {
		if t.uploadHandler != nil {
			t.uploadHandler()
		}
	}

	t.cameraButton.OnTapped = func() {
		if t.cameraHandler != nil {
			t.cameraHandler()
		}
	}

	t.sampleButton.OnTapped = func() {
		kind, ok := t.sampleKinds[t.sampleSelect.Selected]
		if ok && t.sampleHandler != nil {
			t.sampleHandler(kind)
		}
	}

	t.resetButton.OnTapped = func() {
		if t.resetHandler != nil {
			t.resetHandler()
		}
	}

	t.saveButton.OnTapped = func() {
		if t.saveHandler != nil {
			t.saveHandler()
		}
	}

	t.saveStatsButton.OnTapped = func() {
		if t.saveStatsHandler != nil {
			t.saveStatsHandler()
		}
	}
}

func (t *Toolbar) SetUploadHandler(handler func()) {
	t.uploadHandler = handler
}

func (t *Toolbar) SetCameraHandler(handler func()) {
	t.cameraHandler = handler
}

func (t *Toolbar) SetSampleHandler(handler func(samples.Kind)) {
	t.sampleHandler = handler
}

func (t *Toolbar) SetResetHandler(handler func()) {
	t.resetHandler = handler
}

func (t *Toolbar) SetSaveHandler(handler func()) {
	t.saveHandler = handler
}

func (t *Toolbar) SetSaveStatisticsHandler(handler func()) {
	t.saveStatsHandler = handler
}

// EnableImageOperations toggles the actions that need a loaded image.
func (t *Toolbar) EnableImageOperations(enabled bool) {
	for _, button := range []*widget.Button{t.resetButton, t.saveButton, t.saveStatsButton} {
		if enabled {
			button.Enable()
		} else {
			button.Disable()
		}
	}
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
