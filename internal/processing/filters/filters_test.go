package filters

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"imagelab/internal/models"
	"imagelab/internal/opencv/safe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(t *testing.T, rows, cols, channels int, value byte) *safe.Mat {
	t.Helper()
	mat, err := safe.NewMatFromBytes(rows, cols, channels, bytes.Repeat([]byte{value}, rows*cols*channels))
	require.NoError(t, err)
	t.Cleanup(mat.Close)
	return mat
}

// square returns a size x size single-channel image with a bright block at the center.
func square(t *testing.T, size, block int) *safe.Mat {
	t.Helper()
	data := make([]byte, size*size)
	start := (size - block) / 2
	for y := start; y < start+block; y++ {
		for x := start; x < start+block; x++ {
			data[y*size+x] = 255
		}
	}
	mat, err := safe.NewMatFromBytes(size, size, 1, data)
	require.NoError(t, err)
	t.Cleanup(mat.Close)
	return mat
}

func samples(t *testing.T, mat *safe.Mat) []byte {
	t.Helper()
	data, err := mat.Bytes()
	require.NoError(t, err)
	return data
}

func assertAll(t *testing.T, mat *safe.Mat, want byte) {
	t.Helper()
	for i, v := range samples(t, mat) {
		if !assert.Equal(t, want, v, "sample %d", i) {
			return
		}
	}
}

func countValue(data []byte, value byte) int {
	n := 0
	for _, v := range data {
		if v == value {
			n++
		}
	}
	return n
}

func TestBrightnessOffset(t *testing.T) {
	params := models.DefaultParameters()
	params.Brightness = 20

	adj := NewBrightnessAdjuster()
	require.True(t, adj.ShouldExecute(params))

	out, err := adj.Apply(context.Background(), uniform(t, 10, 10, 3, 128), params)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, 3, out.Channels())
	assertAll(t, out, 148)
}

func TestBrightnessSaturates(t *testing.T) {
	adj := NewBrightnessAdjuster()
	params := models.DefaultParameters()

	params.Brightness = 100
	bright, err := adj.Apply(context.Background(), uniform(t, 4, 4, 3, 200), params)
	require.NoError(t, err)
	defer bright.Close()
	assertAll(t, bright, 255)

	params.Brightness = -100
	dark, err := adj.Apply(context.Background(), uniform(t, 4, 4, 3, 30), params)
	require.NoError(t, err)
	defer dark.Close()
	assertAll(t, dark, 0)
}

func TestContrastGain(t *testing.T) {
	adj := NewContrastAdjuster()
	params := models.DefaultParameters()
	assert.False(t, adj.ShouldExecute(params))

	params.Contrast = 2.0
	require.True(t, adj.ShouldExecute(params))

	out, err := adj.Apply(context.Background(), uniform(t, 10, 10, 3, 128), params)
	require.NoError(t, err)
	defer out.Close()
	assertAll(t, out, 255)

	params.Contrast = 0.5
	half, err := adj.Apply(context.Background(), uniform(t, 2, 2, 1, 100), params)
	require.NoError(t, err)
	defer half.Close()
	assertAll(t, half, 50)
}

func TestContrastRejectsNegativeGain(t *testing.T) {
	params := models.DefaultParameters()
	params.Contrast = -1

	_, err := NewContrastAdjuster().Apply(context.Background(), uniform(t, 2, 2, 3, 1), params)
	assert.True(t, errors.Is(err, models.ErrInvalidParameter))
}

func TestGrayscaleKeepsChannelCount(t *testing.T) {
	src, err := safe.NewMatFromBytes(1, 2, 3, []byte{200, 10, 10, 10, 200, 10})
	require.NoError(t, err)
	defer src.Close()

	params := models.DefaultParameters()
	params.Grayscale = true

	conv := NewGrayscaleConverter()
	once, err := conv.Apply(context.Background(), src, params)
	require.NoError(t, err)
	defer once.Close()
	assert.Equal(t, 3, once.Channels())

	data := samples(t, once)
	for px := 0; px < 2; px++ {
		assert.Equal(t, data[px*3], data[px*3+1])
		assert.Equal(t, data[px*3], data[px*3+2])
	}

	twice, err := conv.Apply(context.Background(), once, params)
	require.NoError(t, err)
	defer twice.Close()
	assert.Equal(t, data, samples(t, twice))

	srcData := samples(t, src)
	assert.Equal(t, byte(200), srcData[0])
}

func TestGrayscaleSingleChannelIsCopied(t *testing.T) {
	src := uniform(t, 3, 3, 1, 42)
	params := models.DefaultParameters()
	params.Grayscale = true

	out, err := NewGrayscaleConverter().Apply(context.Background(), src, params)
	require.NoError(t, err)
	defer out.Close()

	assert.NotEqual(t, src.ID(), out.ID())
	assertAll(t, out, 42)
}

func TestGaussian(t *testing.T) {
	g := NewGaussianFilter()
	params := models.DefaultParameters()
	assert.False(t, g.ShouldExecute(params))

	params.BlurRadius = 2
	require.True(t, g.ShouldExecute(params))

	src := uniform(t, 8, 8, 3, 90)
	out, err := g.Apply(context.Background(), src, params)
	require.NoError(t, err)
	defer out.Close()
	assertAll(t, out, 90)

	params.BlurRadius = -1
	_, err = g.Apply(context.Background(), src, params)
	assert.True(t, errors.Is(err, models.ErrInvalidParameter))
}

func TestGaussianSmoothsStep(t *testing.T) {
	params := models.DefaultParameters()
	params.BlurRadius = 3

	src := square(t, 15, 5)
	out, err := NewGaussianFilter().Apply(context.Background(), src, params)
	require.NoError(t, err)
	defer out.Close()

	center, err := out.GetUCharAt(7, 7)
	require.NoError(t, err)
	edge, err := out.GetUCharAt(7, 5)
	require.NoError(t, err)
	assert.Less(t, edge, center)
	assert.Greater(t, edge, uint8(0))
}

func TestCannyProducesBinaryMap(t *testing.T) {
	edges, err := Canny(square(t, 20, 8), 50, 150)
	require.NoError(t, err)
	defer edges.Close()

	data := samples(t, edges)
	assert.Equal(t, len(data), countValue(data, 0)+countValue(data, 255))
	assert.Greater(t, countValue(data, 255), 0)

	flat, err := Canny(uniform(t, 10, 10, 1, 128), 50, 150)
	require.NoError(t, err)
	defer flat.Close()
	assertAll(t, flat, 0)

	_, err = Canny(uniform(t, 4, 4, 3, 0), 50, 150)
	assert.Error(t, err)
}

func TestEdgeDetectorKeepsChannelCount(t *testing.T) {
	params := models.DefaultParameters()
	params.EdgeDetection = true

	out, err := NewEdgeDetector().Apply(context.Background(), uniform(t, 6, 6, 4, 10), params)
	require.NoError(t, err)
	defer out.Close()
	assert.Equal(t, 4, out.Channels())

	edges, err := EdgeMap(uniform(t, 6, 6, 3, 10), 50, 150)
	require.NoError(t, err)
	defer edges.Close()
	assert.Equal(t, 1, edges.Channels())
}

func TestMorphologyOnSquare(t *testing.T) {
	tests := []struct {
		op    models.MorphologyOp
		block int
		want  int
	}{
		{models.MorphologyErosion, 5, 9},
		{models.MorphologyDilation, 3, 25},
		{models.MorphologyOpening, 5, 25},
		{models.MorphologyOpening, 1, 0},
		{models.MorphologyClosing, 3, 9},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			out, err := Morph(square(t, 11, tt.block), tt.op, 3)
			require.NoError(t, err)
			defer out.Close()
			assert.Equal(t, tt.want, countValue(samples(t, out), 255))
		})
	}
}

func TestMorphologyFilter(t *testing.T) {
	m := NewMorphologyFilter()
	params := models.DefaultParameters()
	assert.False(t, m.ShouldExecute(params))

	params.Morphology = models.MorphologyOp(99)
	assert.False(t, m.ShouldExecute(params))

	params.Morphology = models.MorphologyDilation
	params.KernelSize = 3
	require.True(t, m.ShouldExecute(params))

	out, err := m.Apply(context.Background(), uniform(t, 5, 5, 3, 60), params)
	require.NoError(t, err)
	defer out.Close()
	assert.Equal(t, 3, out.Channels())
	assertAll(t, out, 60)

	params.KernelSize = 4
	_, err = m.Apply(context.Background(), uniform(t, 5, 5, 3, 60), params)
	assert.True(t, errors.Is(err, models.ErrInvalidParameter))
}

func TestFiltersHonourCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	params := models.DefaultParameters()
	src := uniform(t, 2, 2, 3, 0)
	steps := []interface {
		Apply(context.Context, *safe.Mat, models.Parameters) (*safe.Mat, error)
	}{
		NewGrayscaleConverter(), NewGaussianFilter(), NewBrightnessAdjuster(),
		NewContrastAdjuster(), NewEdgeDetector(), NewMorphologyFilter(),
	}
	for _, step := range steps {
		_, err := step.Apply(ctx, src, params)
		assert.ErrorIs(t, err, context.Canceled)
	}
}
