package safe

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// MaxDimension bounds both sides of any image accepted by the module.
const MaxDimension = 32768

// ErrClosed is returned when a Mat is used after Close.
var ErrClosed = errors.New("mat is closed")

// UsageError explains why a Mat cannot take part in an operation.
type UsageError struct {
	Operation string
	Reason    string
	Err       error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Reason)
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func unusable(operation string, cause error, format string, args ...interface{}) error {
	return &UsageError{Operation: operation, Reason: fmt.Sprintf(format, args...), Err: cause}
}

// RequireUsable fails for nil, closed or empty Mats.
func RequireUsable(mat *Mat, operation string) error {
	switch {
	case mat == nil:
		return unusable(operation, nil, "no image")
	case !mat.IsValid():
		return unusable(operation, ErrClosed, "image already released")
	case mat.Empty() || mat.Rows() <= 0 || mat.Cols() <= 0:
		return unusable(operation, nil, "image has no pixels")
	}
	return nil
}

// RequireImage8U accepts usable 8-bit images with 1, 3 or 4 channels.
func RequireImage8U(mat *Mat, operation string) error {
	if err := RequireUsable(mat, operation); err != nil {
		return err
	}

	switch mat.Type() {
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV8UC3, gocv.MatTypeCV8UC4:
		return nil
	}
	return unusable(operation, nil, "expected 8-bit samples with 1, 3 or 4 channels, got type %d", int(mat.Type()))
}

// RequireConversion checks that src has the channel count code expects.
func RequireConversion(src *Mat, code gocv.ColorConversionCode) error {
	if err := RequireUsable(src, "color conversion"); err != nil {
		return err
	}

	want := 0
	switch code {
	case gocv.ColorRGBToGray, gocv.ColorBGRToGray, gocv.ColorBGRToRGB:
		want = 3
	case gocv.ColorRGBAToGray:
		want = 4
	case gocv.ColorGrayToBGR, gocv.ColorGrayToBGRA:
		want = 1
	}

	if want != 0 && src.Channels() != want {
		return unusable("color conversion", nil, "code %d needs %d channels, got %d", int(code), want, src.Channels())
	}
	return nil
}

// RequireDimensions rejects empty or oversized image sizes.
func RequireDimensions(width, height int, operation string) error {
	if width <= 0 || height <= 0 {
		return unusable(operation, nil, "invalid size %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return unusable(operation, nil, "size %dx%d exceeds %d pixels per side", width, height, MaxDimension)
	}
	return nil
}

func inBounds(row, col, channel, rows, cols, channels int) error {
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return fmt.Errorf("pixel (%d,%d) outside %dx%d image", row, col, cols, rows)
	}
	if channel < 0 || channel >= channels {
		return fmt.Errorf("channel %d outside [0,%d)", channel, channels)
	}
	return nil
}
