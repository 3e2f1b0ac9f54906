package services

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"imagelab/internal/capture"
	"imagelab/internal/export"
	"imagelab/internal/logger"
	"imagelab/internal/models"
	"imagelab/internal/opencv/safe"
	"imagelab/internal/samples"
)

// CaptureFunc grabs one RGB frame from a camera device.
type CaptureFunc func(ctx context.Context, device int) (*safe.Mat, error)

// ImageService fills the session's image slot from uploads, cameras and samples, and writes
// export artifacts.
type ImageService struct {
	session *models.Session
	logger  logger.Logger
	capture CaptureFunc
}

func NewImageService(session *models.Session, log logger.Logger) *ImageService {
	return &ImageService{
		session: session,
		logger:  log,
		capture: capture.Capture,
	}
}

// WithCapture replaces the camera backend.
func (is *ImageService) WithCapture(fn CaptureFunc) *ImageService {
	is.capture = fn
	return is
}

// LoadFromReader decodes an uploaded PNG or JPEG and makes it the current image.
func (is *ImageService) LoadFromReader(ctx context.Context, reader io.Reader, name string) (*models.ImageData, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	startTime := time.Now()

	mat, err := export.DecodeImage(bufio.NewReader(reader))
	if err != nil {
		is.logger.Error("ImageService", err, map[string]interface{}{"name": name})
		return nil, err
	}

	return is.store(mat, name, models.SourceUpload, startTime)
}

// LoadSample generates a sample image and makes it the current image.
func (is *ImageService) LoadSample(ctx context.Context, kind samples.Kind) (*models.ImageData, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	startTime := time.Now()

	mat, err := samples.Generate(kind)
	if err != nil {
		is.logger.Error("ImageService", err, map[string]interface{}{"sample": string(kind)})
		return nil, fmt.Errorf("sample generation failed: %w", err)
	}

	return is.store(mat, kind.DisplayName(), models.SourceSample, startTime)
}

// Capture grabs a camera frame and makes it the current image.
func (is *ImageService) Capture(ctx context.Context, device int) (*models.ImageData, error) {
	startTime := time.Now()

	mat, err := is.capture(ctx, device)
	if err != nil {
		is.logger.Error("ImageService", err, map[string]interface{}{"device": device})
		return nil, fmt.Errorf("camera capture failed: %w", err)
	}

	return is.store(mat, fmt.Sprintf("camera %d", device), models.SourceCamera, startTime)
}

// Reset clears the session's current image.
func (is *ImageService) Reset() {
	is.session.Reset()
	is.logger.Info("ImageService", "session image cleared", map[string]interface{}{
		"session": is.session.ID(),
	})
}

func (is *ImageService) Current() *models.ImageData {
	return is.session.Current()
}

// ExportPNG writes the processed image of result.
func (is *ImageService) ExportPNG(w io.Writer, result *models.ProcessingResult) error {
	if result == nil || result.Processed == nil {
		return fmt.Errorf("no processed image to export")
	}

	if err := export.EncodePNG(w, result.Processed); err != nil {
		is.logger.Error("ImageService", err, nil)
		return err
	}

	is.logger.Info("ImageService", "processed image exported", map[string]interface{}{
		"width":  result.ProcessedStats.Width,
		"height": result.ProcessedStats.Height,
	})
	return nil
}

// ExportStatistics writes both statistics bundles of result as CSV.
func (is *ImageService) ExportStatistics(w io.Writer, result *models.ProcessingResult) error {
	if result == nil {
		return fmt.Errorf("no statistics to export")
	}

	if err := export.WriteStatisticsCSV(w, result.OriginalStats, result.ProcessedStats); err != nil {
		is.logger.Error("ImageService", err, nil)
		return err
	}

	is.logger.Info("ImageService", "statistics exported", nil)
	return nil
}

func (is *ImageService) store(mat *safe.Mat, name string, source models.SourceKind, startTime time.Time) (*models.ImageData, error) {
	if err := safe.RequireImage8U(mat, "session load"); err != nil {
		mat.Close()
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidShape, err)
	}

	imageData := models.NewImageData(mat, name, source)
	is.session.Load(imageData)

	is.logger.Info("ImageService", "image loaded", map[string]interface{}{
		"session":  is.session.ID(),
		"source":   string(source),
		"name":     name,
		"width":    imageData.Width,
		"height":   imageData.Height,
		"channels": imageData.Channels,
		"duration": time.Since(startTime).String(),
	})

	return imageData, nil
}
