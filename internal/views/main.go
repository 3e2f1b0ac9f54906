package views

import (
	"image"

	"imagelab/internal/models"
	"imagelab/internal/samples"
	"imagelab/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// MainView lays out the toolbar, the parameter sidebar, the image panes and the analysis
// tabs. It holds no application state; the controller drives it.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	toolbar       *components.Toolbar
	imageDisplay  *components.ImageDisplay
	paramPanel    *components.ParameterPanel
	analysis      *components.AnalysisTabs
	statusBar     *components.StatusBar
	welcome       *fyne.Container
}

func NewMainView(window fyne.Window) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents()
	view.buildLayout()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.toolbar = components.NewToolbar()
	mv.imageDisplay = components.NewImageDisplay()
	mv.paramPanel = components.NewParameterPanel()
	mv.analysis = components.NewAnalysisTabs()
	mv.statusBar = components.NewStatusBar()

	mv.welcome = container.NewVBox(
		widget.NewRichTextFromMarkdown("## Image Processing & Statistics"),
		widget.NewLabel("Upload a PNG or JPEG image, take a photo or load a sample to start."),
		widget.NewLabel("Adjust the controls on the left; every change reprocesses the image."),
	)
}

func (mv *MainView) buildLayout() {
	sidebar := container.NewVScroll(mv.paramPanel.GetContainer())
	sidebar.SetMinSize(fyne.NewSize(280, 0))

	analysis := mv.analysis.GetContainer()
	analysis.Hide()

	content := container.NewVScroll(container.NewVBox(
		mv.welcome,
		mv.imageDisplay.GetContainer(),
		widget.NewSeparator(),
		analysis,
	))

	mv.mainContainer = container.NewBorder(
		mv.toolbar.GetContainer(),
		mv.statusBar.GetContainer(),
		sidebar,
		nil,
		content,
	)

	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) SetUploadHandler(handler func()) {
	mv.toolbar.SetUploadHandler(handler)
}

func (mv *MainView) SetCameraHandler(handler func()) {
	mv.toolbar.SetCameraHandler(handler)
}

func (mv *MainView) SetSampleHandler(handler func(samples.Kind)) {
	mv.toolbar.SetSampleHandler(handler)
}

func (mv *MainView) SetResetHandler(handler func()) {
	mv.toolbar.SetResetHandler(handler)
}

func (mv *MainView) SetSaveImageHandler(handler func()) {
	mv.toolbar.SetSaveHandler(handler)
}

func (mv *MainView) SetSaveStatisticsHandler(handler func()) {
	mv.toolbar.SetSaveStatisticsHandler(handler)
}

func (mv *MainView) SetParameterChangeHandler(handler func(models.Parameters)) {
	mv.paramPanel.SetParameterChangeHandler(handler)
}

func (mv *MainView) SetParameters(params models.Parameters) {
	mv.paramPanel.SetParameters(params)
}

func (mv *MainView) Parameters() models.Parameters {
	return mv.paramPanel.Parameters()
}

// ShowResult displays both images, their statistics and the analysis charts.
func (mv *MainView) ShowResult(original, processed image.Image, result *models.ProcessingResult) error {
	mv.welcome.Hide()
	mv.imageDisplay.SetOriginal(original, result.OriginalStats)
	mv.imageDisplay.SetProcessed(processed, result.ProcessedStats)
	mv.toolbar.EnableImageOperations(true)
	mv.statusBar.SetTiming(result.ProcessTime)

	if err := mv.analysis.SetResult(result); err != nil {
		return err
	}
	mv.analysis.GetContainer().Show()
	return nil
}

func (mv *MainView) SetImageInfo(img *models.ImageData) {
	mv.statusBar.SetImageInfo(img.Name, img.Width, img.Height, img.Channels)
}

func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

// ResetView returns to the welcome state.
func (mv *MainView) ResetView() {
	mv.imageDisplay.Clear()
	mv.analysis.Clear()
	mv.analysis.GetContainer().Hide()
	mv.toolbar.EnableImageOperations(false)
	mv.statusBar.Reset()
	mv.welcome.Show()
}

func (mv *MainView) ShowError(err error) {
	dialog.ShowError(err, mv.window)
}

// ShowOpenDialog asks for a PNG or JPEG file.
func (mv *MainView) ShowOpenDialog(callback func(fyne.URIReadCloser, error)) {
	open := dialog.NewFileOpen(callback, mv.window)
	open.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"}))
	open.Show()
}

// ShowSaveDialog asks for a destination, proposing fileName.
func (mv *MainView) ShowSaveDialog(fileName string, callback func(fyne.URIWriteCloser, error)) {
	save := dialog.NewFileSave(callback, mv.window)
	save.SetFileName(fileName)
	save.Show()
}

func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}

func (mv *MainView) GetContainer() *fyne.Container {
	return mv.mainContainer
}
