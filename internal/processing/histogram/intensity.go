package histogram

import (
	"fmt"

	"imagelab/internal/models"
	"imagelab/internal/opencv/safe"

	"gocv.io/x/gocv"
)

const Bins = 256

// Intensity returns the 256-bin histogram of a single-channel image.
func Intensity(gray *safe.Mat) ([]float64, error) {
	if err := safe.RequireUsable(gray, "intensity histogram"); err != nil {
		return nil, err
	}
	if gray.Channels() != 1 {
		return nil, fmt.Errorf("intensity histogram requires 1 channel, got %d", gray.Channels())
	}

	mask := gocv.NewMat()
	defer mask.Close()

	hist := gocv.NewMat()
	defer hist.Close()

	err := gray.View(func(src gocv.Mat) {
		gocv.CalcHist([]gocv.Mat{src}, []int{0}, mask, &hist, []int{Bins}, []float64{0, Bins}, false)
	})
	if err != nil {
		return nil, fmt.Errorf("intensity histogram: %w", err)
	}

	if hist.Rows()*hist.Cols() != Bins {
		return nil, fmt.Errorf("unexpected histogram size %dx%d", hist.Cols(), hist.Rows())
	}

	counts := make([]float64, Bins)
	for i := range counts {
		counts[i] = float64(hist.GetFloatAt(i, 0))
	}

	return counts, nil
}

// Ranges counts the pixels of a single-channel image falling into each intensity band.
func Ranges(gray *safe.Mat) ([]int, error) {
	counts, err := Intensity(gray)
	if err != nil {
		return nil, err
	}
	return RangesFromHistogram(counts), nil
}

// RangesFromHistogram folds a 256-bin histogram into models.IntensityBands.
func RangesFromHistogram(counts []float64) []int {
	ranges := make([]int, len(models.IntensityBands))
	for i, band := range models.IntensityBands {
		var total float64
		for level := int(band.Low); level <= int(band.High) && level < len(counts); level++ {
			total += counts[level]
		}
		ranges[i] = int(total)
	}
	return ranges
}
