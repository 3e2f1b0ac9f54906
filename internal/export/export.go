// Package export handles the load and export boundaries: decoding uploads into Mats,
// PNG encoding of processed images and CSV rendering of statistics.
package export

import (
	"encoding/csv"
	"fmt"
	"image/png"
	"io"
	"strconv"

	"imagelab/internal/models"
	"imagelab/internal/opencv/conversion"
	"imagelab/internal/opencv/safe"

	"github.com/disintegration/imaging"
)

const (
	ProcessedImageName = "processed_image.png"
	StatisticsName     = "image_statistics.csv"

	PNGMimeType = "image/png"
	CSVMimeType = "text/csv"
)

// DecodeImage reads a PNG or JPEG stream, applies its EXIF orientation and returns an 8-bit
// Mat in RGB order (or single-channel for gray sources).
func DecodeImage(r io.Reader) (*safe.Mat, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	mat, err := conversion.ImageToMat(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidShape, err)
	}

	return mat, nil
}

// EncodePNG writes mat as a lossless PNG.
func EncodePNG(w io.Writer, mat *safe.Mat) error {
	img, err := conversion.MatToImage(mat)
	if err != nil {
		return fmt.Errorf("Mat to image conversion failed: %w", err)
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("png encoding failed: %w", err)
	}

	return nil
}

// StatisticsHeader lists the CSV columns: every statistic prefixed with Original_, then with
// Processed_.
func StatisticsHeader() []string {
	fields := models.Statistics{}.Fields()
	header := make([]string, 0, 2*len(fields))
	for _, prefix := range []string{"Original_", "Processed_"} {
		for _, f := range fields {
			header = append(header, prefix+f.Name)
		}
	}
	return header
}

// WriteStatisticsCSV writes a header row and one value row.
func WriteStatisticsCSV(w io.Writer, original, processed models.Statistics) error {
	row := make([]string, 0, len(StatisticsHeader()))
	for _, s := range []models.Statistics{original, processed} {
		for _, f := range s.Fields() {
			row = append(row, FormatField(f))
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(StatisticsHeader()); err != nil {
		return fmt.Errorf("csv header write failed: %w", err)
	}
	if err := cw.Write(row); err != nil {
		return fmt.Errorf("csv row write failed: %w", err)
	}
	cw.Flush()

	return cw.Error()
}

// FormatField renders a statistic for tables and CSV.
func FormatField(f models.Field) string {
	if f.Integral {
		return strconv.FormatInt(int64(f.Value), 10)
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}
