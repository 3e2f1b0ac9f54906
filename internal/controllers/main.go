package controllers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"imagelab/internal/export"
	"imagelab/internal/logger"
	"imagelab/internal/models"
	"imagelab/internal/opencv/conversion"
	"imagelab/internal/samples"
	"imagelab/internal/services"
	"imagelab/internal/views"

	"fyne.io/fyne/v2"
)

const (
	loadTimeout    = 30 * time.Second
	captureTimeout = 10 * time.Second
)

// MainController wires the view to the services. Every user action runs the whole
// load or process, analyse and render cycle before returning.
type MainController struct {
	imageService      *services.ImageService
	processingService *services.ProcessingService
	logger            logger.Logger

	mainView *views.MainView

	mu            sync.Mutex
	result        *models.ProcessingResult
	cameraDevice  int
	imageFileName string
	statsFileName string
}

func NewMainController(
	imageService *services.ImageService,
	processingService *services.ProcessingService,
	log logger.Logger,
) *MainController {
	return &MainController{
		imageService:      imageService,
		processingService: processingService,
		logger:            log,
		imageFileName:     export.ProcessedImageName,
		statsFileName:     export.StatisticsName,
	}
}

// SetCameraDevice selects the device index used by the camera action.
func (mc *MainController) SetCameraDevice(device int) {
	mc.cameraDevice = device
}

// SetExportNames sets the file names proposed by the download actions.
func (mc *MainController) SetExportNames(imageName, statsName string) {
	mc.imageFileName = imageName
	mc.statsFileName = statsName
}

// SetMainView associates the main view with this controller
func (mc *MainController) SetMainView(view *views.MainView) {
	mc.mainView = view
	mc.setupViewEventHandlers()
}

func (mc *MainController) setupViewEventHandlers() {
	mc.mainView.SetUploadHandler(mc.UploadImage)
	mc.mainView.SetCameraHandler(mc.CaptureImage)
	mc.mainView.SetSampleHandler(mc.LoadSample)
	mc.mainView.SetResetHandler(mc.Reset)
	mc.mainView.SetSaveImageHandler(mc.SaveImage)
	mc.mainView.SetSaveStatisticsHandler(mc.SaveStatistics)
	mc.mainView.SetParameterChangeHandler(mc.UpdateParameters)
}

// UploadImage asks for a file and loads it.
func (mc *MainController) UploadImage() {
	mc.mainView.ShowOpenDialog(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mc.handleError("File selection failed", err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		mc.mainView.UpdateStatus("Loading image...")
		imageData, err := mc.imageService.LoadFromReader(ctx, reader, reader.URI().Name())
		if err != nil {
			mc.handleError("Image load failed", err)
			return
		}
		mc.onImageLoaded(imageData)
	})
}

// CaptureImage grabs a photo from the configured camera.
func (mc *MainController) CaptureImage() {
	ctx, cancel := context.WithTimeout(context.Background(), captureTimeout)
	defer cancel()

	mc.mainView.UpdateStatus("Capturing photo...")
	imageData, err := mc.imageService.Capture(ctx, mc.cameraDevice)
	if err != nil {
		mc.handleError("Camera capture failed", err)
		return
	}
	mc.onImageLoaded(imageData)
}

func (mc *MainController) LoadSample(kind samples.Kind) {
	imageData, err := mc.imageService.LoadSample(context.Background(), kind)
	if err != nil {
		mc.handleError("Sample generation failed", err)
		return
	}
	mc.onImageLoaded(imageData)
}

// Reset discards the current image and returns to the welcome screen.
func (mc *MainController) Reset() {
	mc.imageService.Reset()
	mc.replaceResult(nil)
	mc.mainView.ResetView()
}

// UpdateParameters reprocesses the current image with params.
func (mc *MainController) UpdateParameters(params models.Parameters) {
	if mc.imageService.Current() == nil {
		return
	}
	mc.process(params)
}

// SaveImage exports the processed image as PNG.
func (mc *MainController) SaveImage() {
	mc.save(mc.imageFileName, "Processed image saved", func(w fyne.URIWriteCloser, result *models.ProcessingResult) error {
		return mc.imageService.ExportPNG(w, result)
	})
}

// SaveStatistics exports both statistics bundles as CSV.
func (mc *MainController) SaveStatistics() {
	mc.save(mc.statsFileName, "Statistics saved", func(w fyne.URIWriteCloser, result *models.ProcessingResult) error {
		return mc.imageService.ExportStatistics(w, result)
	})
}

func (mc *MainController) save(fileName, done string, write func(fyne.URIWriteCloser, *models.ProcessingResult) error) {
	mc.mu.Lock()
	hasResult := mc.result != nil
	mc.mu.Unlock()
	if !hasResult {
		mc.handleError("Save failed", fmt.Errorf("no processed image available"))
		return
	}

	mc.mainView.ShowSaveDialog(fileName, func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mc.handleError("File selection failed", err)
			return
		}
		if writer == nil {
			return
		}

		mc.mu.Lock()
		err = write(writer, mc.result)
		mc.mu.Unlock()

		if closeErr := writer.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			mc.handleError("Save failed", err)
			return
		}
		mc.mainView.UpdateStatus(done)
	})
}

func (mc *MainController) onImageLoaded(imageData *models.ImageData) {
	mc.mainView.SetImageInfo(imageData)
	mc.process(mc.mainView.Parameters())
}

func (mc *MainController) process(params models.Parameters) {
	current := mc.imageService.Current()
	if current == nil {
		return
	}

	result, err := mc.processingService.Process(context.Background(), params)
	if err != nil {
		mc.handleError("Processing failed", err)
		return
	}

	original, err := conversion.MatToImage(current.Mat)
	if err != nil {
		result.Close()
		mc.handleError("Display failed", err)
		return
	}
	processed, err := conversion.MatToImage(result.Processed)
	if err != nil {
		result.Close()
		mc.handleError("Display failed", err)
		return
	}

	mc.replaceResult(result)

	if err := mc.mainView.ShowResult(original, processed, result); err != nil {
		mc.handleError("Chart rendering failed", err)
		return
	}
	mc.mainView.UpdateStatus("Processing completed")
}

func (mc *MainController) replaceResult(result *models.ProcessingResult) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.result != nil {
		mc.result.Close()
	}
	mc.result = result
}

func (mc *MainController) handleError(title string, err error) {
	mc.logger.Error("MainController", err, map[string]interface{}{"action": title})
	mc.mainView.UpdateStatus(title)
	mc.mainView.ShowError(fmt.Errorf("%s: %w", title, err))
}

// Shutdown releases the last processing result.
func (mc *MainController) Shutdown() {
	mc.replaceResult(nil)
}
