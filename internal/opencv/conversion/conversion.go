package conversion

import (
	"fmt"
	"image"
	"image/color"

	"imagelab/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// Mats in this module keep samples in R, G, B(, A) order. Gray expansion replicates the
// single channel, so the BGR-named OpenCV codes produce the same result for RGB.

// ToGray returns the luma view of src. Single-channel input is cloned.
func ToGray(src *safe.Mat) (*safe.Mat, error) {
	if err := safe.RequireUsable(src, "grayscale conversion"); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var code gocv.ColorConversionCode
	switch src.Channels() {
	case 1:
		return src.Clone()
	case 3:
		code = gocv.ColorRGBToGray
	case 4:
		code = gocv.ColorRGBAToGray
	default:
		return nil, fmt.Errorf("unsupported channel count: %d", src.Channels())
	}

	if err := safe.RequireConversion(src, code); err != nil {
		return nil, err
	}

	dst, err := safe.NewMat(src.Rows(), src.Cols(), gocv.MatTypeCV8UC1)
	if err != nil {
		return nil, fmt.Errorf("destination Mat creation failed: %w", err)
	}

	return convert(src, dst, code)
}

// ExpandGray replicates a single-channel image into the requested channel count. Four
// channel output gets an opaque alpha channel.
func ExpandGray(gray *safe.Mat, channels int) (*safe.Mat, error) {
	if err := safe.RequireUsable(gray, "gray expansion"); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if gray.Channels() != 1 {
		return nil, fmt.Errorf("gray expansion requires 1 channel, got %d", gray.Channels())
	}

	var code gocv.ColorConversionCode
	switch channels {
	case 1:
		return gray.Clone()
	case 3:
		code = gocv.ColorGrayToBGR
	case 4:
		code = gocv.ColorGrayToBGRA
	default:
		return nil, fmt.Errorf("unsupported channel count: %d", channels)
	}

	matType, err := safe.MatTypeForChannels(channels)
	if err != nil {
		return nil, err
	}

	dst, err := safe.NewMat(gray.Rows(), gray.Cols(), matType)
	if err != nil {
		return nil, fmt.Errorf("destination Mat creation failed: %w", err)
	}

	return convert(gray, dst, code)
}

// BGRToRGB reorders frames coming from OpenCV capture devices.
func BGRToRGB(src *safe.Mat) (*safe.Mat, error) {
	if err := safe.RequireConversion(src, gocv.ColorBGRToRGB); err != nil {
		return nil, err
	}

	dst, err := safe.NewMat(src.Rows(), src.Cols(), gocv.MatTypeCV8UC3)
	if err != nil {
		return nil, fmt.Errorf("destination Mat creation failed: %w", err)
	}

	return convert(src, dst, gocv.ColorBGRToRGB)
}

// convert fills dst from src and hands dst to the caller. dst is closed on failure.
func convert(src, dst *safe.Mat, code gocv.ColorConversionCode) (*safe.Mat, error) {
	err := safe.Transform(src, dst, func(s gocv.Mat, d *gocv.Mat) {
		gocv.CvtColor(s, d, code)
	})
	if err != nil {
		dst.Close()
		return nil, fmt.Errorf("color conversion: %w", err)
	}
	return dst, nil
}

// MatToImage converts an 8-bit Mat to a standard Go image.
func MatToImage(src *safe.Mat) (image.Image, error) {
	if err := safe.RequireImage8U(src, "Mat to image conversion"); err != nil {
		return nil, err
	}

	rows := src.Rows()
	cols := src.Cols()
	data, err := src.Bytes()
	if err != nil {
		return nil, fmt.Errorf("sample access failed: %w", err)
	}

	switch src.Channels() {
	case 1:
		img := image.NewGray(image.Rect(0, 0, cols, rows))
		for y := 0; y < rows; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+cols], data[y*cols:(y+1)*cols])
		}
		return img, nil
	case 3:
		img := image.NewRGBA(image.Rect(0, 0, cols, rows))
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				i := (y*cols + x) * 3
				img.SetRGBA(x, y, color.RGBA{R: data[i], G: data[i+1], B: data[i+2], A: 255})
			}
		}
		return img, nil
	case 4:
		img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
		for y := 0; y < rows; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+cols*4], data[y*cols*4:(y+1)*cols*4])
		}
		return img, nil
	default:
		return nil, fmt.Errorf("unsupported channel count: %d", src.Channels())
	}
}

// ImageToMat converts a decoded image to a Mat. 8 and 16-bit gray images stay single-channel,
// every other model is flattened to 3-channel RGB with alpha discarded.
func ImageToMat(img image.Image) (*safe.Mat, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if err := safe.RequireDimensions(width, height, "image to Mat conversion"); err != nil {
		return nil, err
	}

	switch src := img.(type) {
	case *image.Gray:
		data := make([]byte, 0, width*height)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			start := src.PixOffset(bounds.Min.X, y)
			data = append(data, src.Pix[start:start+width]...)
		}
		return safe.NewMatFromBytes(height, width, 1, data)
	case *image.Gray16:
		data := make([]byte, 0, width*height)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				data = append(data, color.GrayModel.Convert(src.Gray16At(x, y)).(color.Gray).Y)
			}
		}
		return safe.NewMatFromBytes(height, width, 1, data)
	}

	data := make([]byte, 0, width*height*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			data = append(data, c.R, c.G, c.B)
		}
	}

	return safe.NewMatFromBytes(height, width, 3, data)
}
