package filters

import (
	"context"
	"fmt"

	"imagelab/internal/models"
	"imagelab/internal/opencv/conversion"
	"imagelab/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// EdgeDetector replaces the working image with a Canny edge map. Color input is reduced to
// luma first, whatever the grayscale flag says.
type EdgeDetector struct{}

func NewEdgeDetector() *EdgeDetector {
	return &EdgeDetector{}
}

func (e *EdgeDetector) Name() string {
	return "edge_detector"
}

func (e *EdgeDetector) ShouldExecute(params models.Parameters) bool {
	return params.EdgeDetection
}

func (e *EdgeDetector) Apply(ctx context.Context, input *safe.Mat, params models.Parameters) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return reduceAndExpand(input, func(gray *safe.Mat) (*safe.Mat, error) {
		return Canny(gray, params.CannyLow, params.CannyHigh)
	})
}

// Canny returns the binary (0 or 255) edge map of a single-channel image.
func Canny(gray *safe.Mat, low, high int) (*safe.Mat, error) {
	if err := safe.RequireUsable(gray, "Canny"); err != nil {
		return nil, err
	}
	if gray.Channels() != 1 {
		return nil, fmt.Errorf("Canny requires 1 channel, got %d", gray.Channels())
	}

	edges, err := safe.NewMat(gray.Rows(), gray.Cols(), gocv.MatTypeCV8UC1)
	if err != nil {
		return nil, fmt.Errorf("failed to create edge Mat: %w", err)
	}

	err = safe.Transform(gray, edges, func(in gocv.Mat, out *gocv.Mat) {
		gocv.Canny(in, out, float32(low), float32(high))
	})
	if err != nil {
		edges.Close()
		return nil, fmt.Errorf("Canny: %w", err)
	}

	return edges, nil
}

// EdgeMap runs luma reduction and Canny without re-expansion.
func EdgeMap(src *safe.Mat, low, high int) (*safe.Mat, error) {
	gray, err := conversion.ToGray(src)
	if err != nil {
		return nil, fmt.Errorf("grayscale reduction failed: %w", err)
	}
	defer gray.Close()

	return Canny(gray, low, high)
}
