package models

import (
	"time"

	"imagelab/internal/opencv/safe"
)

// SourceKind records how the current image entered the session.
type SourceKind string

const (
	SourceUpload SourceKind = "upload"
	SourceCamera SourceKind = "camera"
	SourceSample SourceKind = "sample"
)

// ImageData is an image owned by a session. Pixels are 8-bit, RGB ordered.
type ImageData struct {
	Mat      *safe.Mat
	Name     string
	Source   SourceKind
	Width    int
	Height   int
	Channels int
	LoadTime time.Time
}

// NewImageData takes ownership of mat.
func NewImageData(mat *safe.Mat, name string, source SourceKind) *ImageData {
	return &ImageData{
		Mat:      mat,
		Name:     name,
		Source:   source,
		Width:    mat.Cols(),
		Height:   mat.Rows(),
		Channels: mat.Channels(),
		LoadTime: time.Now(),
	}
}

func (d *ImageData) Close() {
	if d != nil && d.Mat != nil {
		d.Mat.Close()
	}
}

// ProcessingResult bundles one pipeline run with the analysis of both images. It owns its
// Mats; the session's source image is not part of it.
type ProcessingResult struct {
	Processed     *safe.Mat
	OriginalGray  *safe.Mat
	ProcessedGray *safe.Mat

	OriginalStats  Statistics
	ProcessedStats Statistics

	OriginalHistogram  []float64
	ProcessedHistogram []float64
	OriginalRanges     []int
	ProcessedRanges    []int

	Parameters  Parameters
	ProcessTime time.Duration
}

func (r *ProcessingResult) Close() {
	if r == nil {
		return
	}
	for _, m := range []*safe.Mat{r.Processed, r.OriginalGray, r.ProcessedGray} {
		if m != nil {
			m.Close()
		}
	}
}
