package filters

import (
	"context"
	"fmt"

	"imagelab/internal/models"
	"imagelab/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// BrightnessAdjuster adds a signed offset to every sample, saturating at 0 and 255.
type BrightnessAdjuster struct{}

func NewBrightnessAdjuster() *BrightnessAdjuster {
	return &BrightnessAdjuster{}
}

func (b *BrightnessAdjuster) Name() string {
	return "brightness_adjuster"
}

func (b *BrightnessAdjuster) ShouldExecute(params models.Parameters) bool {
	return params.Brightness != 0
}

func (b *BrightnessAdjuster) Apply(ctx context.Context, input *safe.Mat, params models.Parameters) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return scaleSaturating(input, 1, float32(params.Brightness))
}

// ContrastAdjuster multiplies every sample by a gain, saturating at 255.
type ContrastAdjuster struct{}

func NewContrastAdjuster() *ContrastAdjuster {
	return &ContrastAdjuster{}
}

func (c *ContrastAdjuster) Name() string {
	return "contrast_adjuster"
}

func (c *ContrastAdjuster) ShouldExecute(params models.Parameters) bool {
	return params.Contrast != models.DefaultContrast
}

func (c *ContrastAdjuster) Apply(ctx context.Context, input *safe.Mat, params models.Parameters) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if params.Contrast < 0 {
		return nil, fmt.Errorf("%w: negative contrast %.2f", models.ErrInvalidParameter, params.Contrast)
	}

	return scaleSaturating(input, float32(params.Contrast), 0)
}

// scaleSaturating computes saturate(alpha*x + beta) per sample. Values below zero clip to 0
// rather than being mirrored.
func scaleSaturating(src *safe.Mat, alpha, beta float32) (*safe.Mat, error) {
	matType := src.Type()
	dst, err := safe.NewMat(src.Rows(), src.Cols(), matType)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination Mat: %w", err)
	}

	err = safe.Transform(src, dst, func(in gocv.Mat, out *gocv.Mat) {
		in.ConvertToWithParams(out, matType, alpha, beta)
	})
	if err != nil {
		dst.Close()
		return nil, fmt.Errorf("scale: %w", err)
	}

	return dst, nil
}
