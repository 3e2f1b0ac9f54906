package app

import (
	"runtime"

	"imagelab/internal/config"
	"imagelab/internal/controllers"
	"imagelab/internal/logger"
	"imagelab/internal/models"
	"imagelab/internal/services"
	"imagelab/internal/shutdown"
	"imagelab/internal/views"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
)

const (
	AppName    = "Image Processing & Statistics"
	AppID      = "com.imageprocessing.imagelab"
	AppVersion = "1.0.0"
)

// Application owns the desktop window and the session behind it.
type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	logger     logger.Logger
	session    *models.Session
	controller *controllers.MainController
	view       *views.MainView
	shutdown   *shutdown.Manager
}

func NewApplication(cfg config.Config, log logger.Logger) *Application {
	fyneApp := fyneapp.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()
	window.SetMaster()

	session := models.NewSession()

	log.Info("Application", "starting application", map[string]interface{}{
		"version":    AppVersion,
		"session":    session.ID(),
		"go_version": runtime.Version(),
		"window":     []float32{cfg.Window.Width, cfg.Window.Height},
	})

	imageService := services.NewImageService(session, log)
	processingService := services.NewProcessingService(session, log)

	controller := controllers.NewMainController(imageService, processingService, log)
	controller.SetCameraDevice(cfg.Camera.Device)
	controller.SetExportNames(cfg.Export.ImageName, cfg.Export.StatisticsName)

	view := views.NewMainView(window)
	view.SetParameters(cfg.Defaults)
	controller.SetMainView(view)

	manager := shutdown.NewManager(log)
	manager.Register("fyne", shutdown.Func(func() {
		fyne.Do(fyneApp.Quit)
	}))
	manager.Register("session", session)
	manager.Register("processing", processingService)
	manager.Register("controller", controller)

	return &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     log,
		session:    session,
		controller: controller,
		view:       view,
		shutdown:   manager,
	}
}

// Run shows the window and blocks until the application quits.
func (a *Application) Run() error {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.shutdown.Shutdown()
		a.window.Close()
	})

	a.shutdown.Listen()
	a.window.Show()

	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.shutdown.Shutdown()
	return nil
}
