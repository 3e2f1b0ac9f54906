package filters

import (
	"context"
	"fmt"
	"image"

	"imagelab/internal/models"
	"imagelab/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// MorphologyFilter applies one iteration of erosion, dilation, opening or closing with a
// square all-ones structuring element on the luma view.
type MorphologyFilter struct{}

func NewMorphologyFilter() *MorphologyFilter {
	return &MorphologyFilter{}
}

func (m *MorphologyFilter) Name() string {
	return "morphology_filter"
}

// ShouldExecute treats selectors outside the closed set as None.
func (m *MorphologyFilter) ShouldExecute(params models.Parameters) bool {
	return params.Morphology != models.MorphologyNone && params.Morphology.Valid()
}

func (m *MorphologyFilter) Apply(ctx context.Context, input *safe.Mat, params models.Parameters) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if params.KernelSize < 1 || params.KernelSize%2 == 0 {
		return nil, fmt.Errorf("%w: structuring element size %d must be odd and positive",
			models.ErrInvalidParameter, params.KernelSize)
	}

	return reduceAndExpand(input, func(gray *safe.Mat) (*safe.Mat, error) {
		return Morph(gray, params.Morphology, params.KernelSize)
	})
}

// Morph applies op to a single-channel image.
func Morph(gray *safe.Mat, op models.MorphologyOp, kernelSize int) (*safe.Mat, error) {
	if err := safe.RequireUsable(gray, "morphology"); err != nil {
		return nil, err
	}

	dst, err := safe.NewMat(gray.Rows(), gray.Cols(), gray.Type())
	if err != nil {
		return nil, fmt.Errorf("failed to create result Mat: %w", err)
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: kernelSize, Y: kernelSize})
	defer kernel.Close()

	err = safe.Transform(gray, dst, func(src gocv.Mat, out *gocv.Mat) {
		switch op {
		case models.MorphologyErosion:
			gocv.Erode(src, out, kernel)
		case models.MorphologyDilation:
			gocv.Dilate(src, out, kernel)
		case models.MorphologyOpening:
			gocv.MorphologyEx(src, out, gocv.MorphOpen, kernel)
		case models.MorphologyClosing:
			gocv.MorphologyEx(src, out, gocv.MorphClose, kernel)
		default:
			src.CopyTo(out)
		}
	})
	if err != nil {
		dst.Close()
		return nil, fmt.Errorf("morphology: %w", err)
	}

	return dst, nil
}
