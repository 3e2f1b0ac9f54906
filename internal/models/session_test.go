package models

import (
	"testing"

	"imagelab/internal/opencv/safe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func newImage(t *testing.T, name string) *ImageData {
	t.Helper()

	mat, err := safe.NewMat(4, 6, gocv.MatTypeCV8UC3)
	require.NoError(t, err)
	return NewImageData(mat, name, SourceSample)
}

func TestSessionLifecycle(t *testing.T) {
	s := NewSession()
	assert.False(t, s.HasImage())
	assert.Nil(t, s.Current())

	first := newImage(t, "first")
	assert.Equal(t, 6, first.Width)
	assert.Equal(t, 4, first.Height)
	assert.Equal(t, 3, first.Channels)

	s.Load(first)
	require.True(t, s.HasImage())
	assert.Same(t, first, s.Current())

	second := newImage(t, "second")
	s.Load(second)
	assert.Same(t, second, s.Current())
	assert.False(t, first.Mat.IsValid(), "replaced image is released")
	assert.True(t, second.Mat.IsValid())

	s.Reset()
	assert.False(t, s.HasImage())
	assert.False(t, second.Mat.IsValid())
}

func TestSessionReloadSameImage(t *testing.T) {
	s := NewSession()
	img := newImage(t, "same")

	s.Load(img)
	s.Load(img)
	assert.True(t, img.Mat.IsValid())

	s.Shutdown()
	assert.Nil(t, s.Current())
}

func TestSessionIDsAreUnique(t *testing.T) {
	a, b := NewSession(), NewSession()
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestStatisticsFields(t *testing.T) {
	s := Statistics{
		Width: 10, Height: 20, Channels: 3,
		MeanBrightness: 12.5, StdBrightness: 1.25,
		MinIntensity: 3, MaxIntensity: 250, TotalPixels: 200,
	}

	fields := s.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{
		"Width", "Height", "Channels", "Mean Brightness", "Std Brightness",
		"Min Intensity", "Max Intensity", "Total Pixels",
	}, names)
	assert.Equal(t, 12.5, fields[3].Value)
	assert.False(t, fields[3].Integral)
	assert.True(t, fields[7].Integral)
}

func TestIntensityBandsCoverScale(t *testing.T) {
	next := 0
	for _, band := range IntensityBands {
		assert.Equal(t, next, int(band.Low))
		next = int(band.High) + 1
	}
	assert.Equal(t, 256, next)
}
