package filters

import (
	"context"
	"fmt"

	"imagelab/internal/models"
	"imagelab/internal/opencv/conversion"
	"imagelab/internal/opencv/safe"
)

// GrayscaleConverter replaces every channel with the luma value while keeping the input's
// channel count.
type GrayscaleConverter struct{}

func NewGrayscaleConverter() *GrayscaleConverter {
	return &GrayscaleConverter{}
}

func (g *GrayscaleConverter) Name() string {
	return "grayscale_converter"
}

func (g *GrayscaleConverter) ShouldExecute(params models.Parameters) bool {
	return params.Grayscale
}

func (g *GrayscaleConverter) Apply(ctx context.Context, input *safe.Mat, params models.Parameters) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if input.Channels() == 1 {
		return input.Clone()
	}

	return reduceAndExpand(input, func(gray *safe.Mat) (*safe.Mat, error) {
		return gray.Clone()
	})
}

// reduceAndExpand converts src to gray, runs op on the gray view and expands the result back
// to src's channel count.
func reduceAndExpand(src *safe.Mat, op func(gray *safe.Mat) (*safe.Mat, error)) (*safe.Mat, error) {
	gray, err := conversion.ToGray(src)
	if err != nil {
		return nil, fmt.Errorf("grayscale reduction failed: %w", err)
	}
	defer gray.Close()

	processed, err := op(gray)
	if err != nil {
		return nil, err
	}
	defer processed.Close()

	expanded, err := conversion.ExpandGray(processed, src.Channels())
	if err != nil {
		return nil, fmt.Errorf("channel expansion failed: %w", err)
	}

	return expanded, nil
}
