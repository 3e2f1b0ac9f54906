package services

import (
	"context"
	"fmt"
	"time"

	"imagelab/internal/debug/timing"
	"imagelab/internal/logger"
	"imagelab/internal/models"
	"imagelab/internal/opencv/safe"
	"imagelab/internal/pipeline"
	"imagelab/internal/processing/histogram"
	"imagelab/internal/processing/statistics"
)

// ProcessingService runs the pipeline on the session's source image and analyses both the
// source and the result. Each call is synchronous and independent.
type ProcessingService struct {
	session   *models.Session
	processor *pipeline.Processor
	timings   *timing.Tracker
	logger    logger.Logger
}

func NewProcessingService(session *models.Session, log logger.Logger) *ProcessingService {
	timings := timing.NewTracker()
	processor := pipeline.NewProcessor()
	processor.Observe(timings.Record)

	return &ProcessingService{
		session:   session,
		processor: processor,
		timings:   timings,
		logger:    log,
	}
}

// Process runs one interaction: normalize params, process the unmodified source, compute
// statistics, histograms and intensity bands for both images.
func (ps *ProcessingService) Process(ctx context.Context, params models.Parameters) (*models.ProcessingResult, error) {
	current := ps.session.Current()
	if current == nil {
		return nil, models.ErrNoImage
	}

	return ps.ProcessImage(ctx, current.Mat, params)
}

// ProcessImage is Process for an image outside the session.
func (ps *ProcessingService) ProcessImage(ctx context.Context, src *safe.Mat, params models.Parameters) (*models.ProcessingResult, error) {
	params = params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()

	processed, err := ps.processor.Process(ctx, src, params)
	if err != nil {
		ps.logger.Error("ProcessingService", err, params.AsMap())
		return nil, err
	}

	result := &models.ProcessingResult{
		Processed:  processed,
		Parameters: params,
	}

	if err := ps.timings.Time("analysis", func() error { return ps.analyse(src, result) }); err != nil {
		result.Close()
		ps.logger.Error("ProcessingService", err, params.AsMap())
		return nil, err
	}

	result.ProcessTime = time.Since(startTime)
	ps.timings.Record("total", result.ProcessTime)

	fields := params.AsMap()
	fields["stages"] = ps.processor.Stages(params)
	fields["duration"] = result.ProcessTime.String()
	fields["processed_mean"] = result.ProcessedStats.MeanBrightness
	ps.logger.Debug("ProcessingService", "image processed", fields)

	return result, nil
}

func (ps *ProcessingService) analyse(src *safe.Mat, result *models.ProcessingResult) error {
	var err error

	result.OriginalStats, result.OriginalGray, err = statistics.Compute(src)
	if err != nil {
		return fmt.Errorf("original statistics failed: %w", err)
	}

	result.ProcessedStats, result.ProcessedGray, err = statistics.Compute(result.Processed)
	if err != nil {
		return fmt.Errorf("processed statistics failed: %w", err)
	}

	result.OriginalHistogram, err = histogram.Intensity(result.OriginalGray)
	if err != nil {
		return fmt.Errorf("original histogram failed: %w", err)
	}

	result.ProcessedHistogram, err = histogram.Intensity(result.ProcessedGray)
	if err != nil {
		return fmt.Errorf("processed histogram failed: %w", err)
	}

	result.OriginalRanges = histogram.RangesFromHistogram(result.OriginalHistogram)
	result.ProcessedRanges = histogram.RangesFromHistogram(result.ProcessedHistogram)

	return nil
}

// Timings summarizes the recorded stage, analysis and total durations.
func (ps *ProcessingService) Timings() []timing.Summary {
	return ps.timings.Summaries()
}

// Shutdown logs the timing summaries.
func (ps *ProcessingService) Shutdown() {
	for _, s := range ps.timings.Summaries() {
		ps.logger.Info("ProcessingService", "timing summary", map[string]interface{}{
			"operation": s.Operation,
			"count":     s.Count,
			"average":   s.Average.String(),
			"max":       s.Max.String(),
		})
	}
}
