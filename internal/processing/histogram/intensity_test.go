package histogram

import (
	"testing"

	"imagelab/internal/models"
	"imagelab/internal/opencv/safe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntensity(t *testing.T) {
	data := make([]byte, 256*2)
	for i := range data {
		data[i] = byte(i % 256)
	}
	gray, err := safe.NewMatFromBytes(2, 256, 1, data)
	require.NoError(t, err)
	defer gray.Close()

	counts, err := Intensity(gray)
	require.NoError(t, err)
	require.Len(t, counts, Bins)

	var total float64
	for _, c := range counts {
		assert.Equal(t, 2.0, c)
		total += c
	}
	assert.Equal(t, float64(len(data)), total)
}

func TestRanges(t *testing.T) {
	gray, err := safe.NewMatFromBytes(1, 6, 1, []byte{0, 63, 64, 128, 200, 255})
	require.NoError(t, err)
	defer gray.Close()

	ranges, err := Ranges(gray)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 1, 2}, ranges)
}

func TestRangesFromHistogram(t *testing.T) {
	counts := make([]float64, Bins)
	for i := range counts {
		counts[i] = 1
	}

	ranges := RangesFromHistogram(counts)
	require.Len(t, ranges, len(models.IntensityBands))
	for _, r := range ranges {
		assert.Equal(t, 64, r)
	}
}

func TestIntensityRequiresSingleChannel(t *testing.T) {
	rgb, err := safe.NewMatFromBytes(1, 1, 3, []byte{1, 2, 3})
	require.NoError(t, err)
	defer rgb.Close()

	_, err = Intensity(rgb)
	assert.Error(t, err)
}
