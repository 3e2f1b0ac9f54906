package main

import (
	"encoding/csv"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := newRootCommand()
	root.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.toml"), "--log-level", "error"))
	return root.Execute()
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func TestSampleThenProcess(t *testing.T) {
	dir := t.TempDir()
	samplePath := filepath.Join(dir, "checkerboard.png")
	outPath := filepath.Join(dir, "processed.png")
	statsPath := filepath.Join(dir, "stats.csv")

	require.NoError(t, execute(t, "sample", "--kind", "checkerboard", "--output", samplePath))
	assert.Equal(t, image.Rect(0, 0, 400, 400), decodePNG(t, samplePath).Bounds())

	require.NoError(t, execute(t, "process",
		"--input", samplePath,
		"--output", outPath,
		"--stats", statsPath,
		"--grayscale",
		"--morphology", "Opening",
		"--kernel-size", "3",
	))

	out := decodePNG(t, outPath)
	bounds := out.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 7 {
		for x := bounds.Min.X; x < bounds.Max.X; x += 7 {
			r, g, b, _ := out.At(x, y).RGBA()
			v := r >> 8
			require.Equal(t, r, g)
			require.Equal(t, r, b)
			require.True(t, v == 40 || v == 240, "pixel (%d,%d) = %d", x, y, v)
		}
	}

	f, err := os.Open(statsPath)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Original_Width", records[0][0])
	assert.Equal(t, "400", records[1][0])
}

func TestProcessRejectsInvalidFlags(t *testing.T) {
	dir := t.TempDir()
	samplePath := filepath.Join(dir, "gradient.png")
	require.NoError(t, execute(t, "sample", "-k", "gradient", "-o", samplePath))

	err := execute(t, "process", "-i", samplePath, "-o", filepath.Join(dir, "out.png"), "--brightness", "500")
	assert.Error(t, err)

	err = execute(t, "process", "-i", filepath.Join(dir, "missing.png"), "-o", filepath.Join(dir, "out.png"))
	assert.Error(t, err)
}

func TestSampleRejectsUnknownKind(t *testing.T) {
	err := execute(t, "sample", "--kind", "spiral", "--output", filepath.Join(t.TempDir(), "x.png"))
	assert.Error(t, err)
}
