// Package pipeline runs the fixed image processing sequence
// grayscale → blur → brightness → contrast → edge detection → morphology.
//
// Every stage is a no-op at its neutral parameter value, the source image is never modified,
// and each stage returns an image with the source's channel count. Edge detection and
// morphology always work on a luma intermediate, so enabling morphology after edge detection
// operates on the edge map.
package pipeline

import (
	"context"
	"fmt"

	"imagelab/internal/models"
	"imagelab/internal/opencv/safe"
	"imagelab/internal/processing/chain"
	"imagelab/internal/processing/filters"
)

// Processor owns the stage chain. It holds no per-image state and is safe for concurrent use.
type Processor struct {
	chain *chain.ProcessingChain
}

func NewProcessor() *Processor {
	return &Processor{
		chain: chain.NewProcessingChain([]chain.ProcessingStep{
			filters.NewGrayscaleConverter(),
			filters.NewGaussianFilter(),
			filters.NewBrightnessAdjuster(),
			filters.NewContrastAdjuster(),
			filters.NewEdgeDetector(),
			filters.NewMorphologyFilter(),
		}),
	}
}

// Observe reports per-stage durations to obs. It must be called before the Processor is used.
func (p *Processor) Observe(obs chain.StageObserver) {
	p.chain.SetObserver(obs)
}

var defaultProcessor = NewProcessor()

// Process applies params to src and returns a new image. src is left untouched.
func Process(ctx context.Context, src *safe.Mat, params models.Parameters) (*safe.Mat, error) {
	return defaultProcessor.Process(ctx, src, params)
}

func (p *Processor) Process(ctx context.Context, src *safe.Mat, params models.Parameters) (*safe.Mat, error) {
	if err := ValidateSource(src); err != nil {
		return nil, err
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	result, err := p.chain.Execute(ctx, src, params)
	if err != nil {
		return nil, fmt.Errorf("pipeline failed: %w", err)
	}

	return result, nil
}

// Stages lists the stage names that run for params.
func (p *Processor) Stages(params models.Parameters) []string {
	return p.chain.Executed(params)
}

// ValidateSource rejects images the pipeline cannot process. Only gray and RGB sources are
// accepted, so every result survives a PNG export and re-import unchanged.
func ValidateSource(src *safe.Mat) error {
	if err := safe.RequireImage8U(src, "pipeline"); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidShape, err)
	}
	if channels := src.Channels(); channels != 1 && channels != 3 {
		return fmt.Errorf("%w: pipeline accepts 1 or 3 channels, got %d", models.ErrInvalidShape, channels)
	}
	return nil
}

// EdgeMap returns the single-channel Canny output for src.
func EdgeMap(src *safe.Mat, low, high int) (*safe.Mat, error) {
	if err := ValidateSource(src); err != nil {
		return nil, err
	}
	return filters.EdgeMap(src, low, high)
}
