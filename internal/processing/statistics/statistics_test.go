package statistics

import (
	"bytes"
	"errors"
	"testing"

	"imagelab/internal/models"
	"imagelab/internal/opencv/safe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformImage(t *testing.T) {
	img, err := safe.NewMatFromBytes(10, 10, 3, bytes.Repeat([]byte{148}, 300))
	require.NoError(t, err)
	defer img.Close()

	stats, gray, err := Compute(img)
	require.NoError(t, err)
	defer gray.Close()

	assert.Equal(t, 10, stats.Width)
	assert.Equal(t, 10, stats.Height)
	assert.Equal(t, 3, stats.Channels)
	assert.Equal(t, 100, stats.TotalPixels)
	assert.InDelta(t, 148.0, stats.MeanBrightness, 1e-9)
	assert.InDelta(t, 0.0, stats.StdBrightness, 1e-9)
	assert.Equal(t, uint8(148), stats.MinIntensity)
	assert.Equal(t, uint8(148), stats.MaxIntensity)
	assert.Equal(t, 1, gray.Channels())
}

func TestPopulationStatistics(t *testing.T) {
	img, err := safe.NewMatFromBytes(1, 4, 1, []byte{0, 0, 100, 100})
	require.NoError(t, err)
	defer img.Close()

	stats, gray, err := Compute(img)
	require.NoError(t, err)
	defer gray.Close()

	assert.Equal(t, 4, stats.Width)
	assert.Equal(t, 1, stats.Height)
	assert.Equal(t, 1, stats.Channels)
	assert.InDelta(t, 50.0, stats.MeanBrightness, 1e-9)
	assert.InDelta(t, 50.0, stats.StdBrightness, 1e-9)
	assert.Equal(t, uint8(0), stats.MinIntensity)
	assert.Equal(t, uint8(100), stats.MaxIntensity)
}

func TestMeanWithinRange(t *testing.T) {
	data := make([]byte, 16*16*3)
	for i := range data {
		data[i] = byte(i * 7)
	}
	img, err := safe.NewMatFromBytes(16, 16, 3, data)
	require.NoError(t, err)
	defer img.Close()

	stats, gray, err := Compute(img)
	require.NoError(t, err)
	defer gray.Close()

	assert.LessOrEqual(t, float64(stats.MinIntensity), stats.MeanBrightness)
	assert.LessOrEqual(t, stats.MeanBrightness, float64(stats.MaxIntensity))
	assert.GreaterOrEqual(t, stats.StdBrightness, 0.0)
	assert.Equal(t, stats.Width*stats.Height, stats.TotalPixels)
}

func TestInvalidImage(t *testing.T) {
	_, _, err := Compute(nil)
	assert.True(t, errors.Is(err, models.ErrInvalidShape))
}
