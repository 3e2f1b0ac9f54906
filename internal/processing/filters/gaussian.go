package filters

import (
	"context"
	"fmt"
	"image"

	"imagelab/internal/models"
	"imagelab/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// GaussianFilter smooths every channel with a square Gaussian kernel of side 2r+1.
type GaussianFilter struct{}

func NewGaussianFilter() *GaussianFilter {
	return &GaussianFilter{}
}

func (g *GaussianFilter) Name() string {
	return "gaussian_filter"
}

func (g *GaussianFilter) ShouldExecute(params models.Parameters) bool {
	return params.BlurRadius > 0
}

func (g *GaussianFilter) Apply(ctx context.Context, input *safe.Mat, params models.Parameters) (*safe.Mat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Blur(input, params.BlurRadius)
}

// Blur returns a blurred copy of src. Radius 0 copies; sigma is derived from the kernel size.
func Blur(src *safe.Mat, radius int) (*safe.Mat, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: negative blur radius %d", models.ErrInvalidParameter, radius)
	}
	if radius == 0 {
		return src.Clone()
	}

	ksize := models.BlurKernelSize(radius)
	dst, err := safe.NewMat(src.Rows(), src.Cols(), src.Type())
	if err != nil {
		return nil, fmt.Errorf("blur destination: %w", err)
	}

	err = safe.Transform(src, dst, func(in gocv.Mat, out *gocv.Mat) {
		gocv.GaussianBlur(in, out, image.Pt(ksize, ksize), 0, 0, gocv.BorderReflect101)
	})
	if err != nil {
		dst.Close()
		return nil, fmt.Errorf("blur: %w", err)
	}

	return dst, nil
}
