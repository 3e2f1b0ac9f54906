package statistics

import (
	"fmt"

	"imagelab/internal/models"
	"imagelab/internal/opencv/conversion"
	"imagelab/internal/opencv/safe"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

// Compute returns the statistics bundle of img together with its single-channel luma view.
// The caller owns the returned view.
func Compute(img *safe.Mat) (models.Statistics, *safe.Mat, error) {
	if err := safe.RequireImage8U(img, "statistics"); err != nil {
		return models.Statistics{}, nil, fmt.Errorf("%w: %v", models.ErrInvalidShape, err)
	}

	gray, err := conversion.ToGray(img)
	if err != nil {
		return models.Statistics{}, nil, fmt.Errorf("luma view failed: %w", err)
	}

	samples, err := gray.Bytes()
	if err != nil {
		gray.Close()
		return models.Statistics{}, nil, fmt.Errorf("sample access failed: %w", err)
	}

	values := make([]float64, len(samples))
	for i, v := range samples {
		values[i] = float64(v)
	}
	mean, std := stat.PopMeanStdDev(values, nil)

	var minVal, maxVal float32
	if err := gray.View(func(m gocv.Mat) { minVal, maxVal, _, _ = gocv.MinMaxLoc(m) }); err != nil {
		gray.Close()
		return models.Statistics{}, nil, fmt.Errorf("intensity range failed: %w", err)
	}

	width, height := img.Cols(), img.Rows()
	stats := models.Statistics{
		Width:          width,
		Height:         height,
		Channels:       img.Channels(),
		MeanBrightness: mean,
		StdBrightness:  std,
		MinIntensity:   uint8(minVal),
		MaxIntensity:   uint8(maxVal),
		TotalPixels:    width * height,
	}

	return stats, gray, nil
}
