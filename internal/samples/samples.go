// Package samples draws the built-in demo images. All of them are deterministic except Noise,
// which is drawn fresh on every call.
package samples

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"imagelab/internal/opencv/safe"

	"gocv.io/x/gocv"
)

type Kind string

const (
	Portrait     Kind = "portrait"
	Checkerboard Kind = "checkerboard"
	Noise        Kind = "noise"
	Gradient     Kind = "gradient"
	Shapes       Kind = "shapes"
)

var displayNames = map[Kind]string{
	Portrait:     "Portrait Style",
	Checkerboard: "Checkerboard Pattern",
	Noise:        "Random Noise",
	Gradient:     "Color Gradient",
	Shapes:       "Geometric Shapes",
}

// Kinds lists the samples in menu order.
func Kinds() []Kind {
	return []Kind{Portrait, Checkerboard, Noise, Gradient, Shapes}
}

func (k Kind) DisplayName() string {
	if name, ok := displayNames[k]; ok {
		return name
	}
	return string(k)
}

// ParseKind accepts either the short name or the display name.
func ParseKind(name string) (Kind, error) {
	name = strings.TrimSpace(name)
	for _, k := range Kinds() {
		if strings.EqualFold(name, string(k)) || strings.EqualFold(name, displayNames[k]) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sample %q", name)
}

const (
	portraitSize = 512
	patternSize  = 400

	checkerCells = 8
	checkerLight = 240
	checkerDark  = 40

	shapesBackground = 245
)

// Generate draws the requested sample as a 3-channel RGB image.
func Generate(kind Kind) (*safe.Mat, error) {
	switch kind {
	case Portrait:
		return portrait()
	case Checkerboard:
		return checkerboard()
	case Noise:
		return noise()
	case Gradient:
		return gradient()
	case Shapes:
		return shapes()
	default:
		return nil, fmt.Errorf("unknown sample %q", kind)
	}
}

// rgb builds a drawing color for an RGB-ordered Mat. gocv writes color.RGBA as a BGR scalar,
// so the red and blue components are swapped here.
func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: b, G: g, B: r, A: 255}
}

func filled(rows, cols int, value float64) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(value, value, value, 0), rows, cols, gocv.MatTypeCV8UC3)
}

func portrait() (*safe.Mat, error) {
	img := filled(portraitSize, portraitSize, 0)

	gocv.Circle(&img, image.Pt(256, 256), 200, rgb(255, 220, 177), -1)
	gocv.Circle(&img, image.Pt(200, 200), 30, rgb(255, 255, 255), -1)
	gocv.Circle(&img, image.Pt(312, 200), 30, rgb(255, 255, 255), -1)
	gocv.Circle(&img, image.Pt(200, 200), 15, rgb(50, 50, 150), -1)
	gocv.Circle(&img, image.Pt(312, 200), 15, rgb(50, 50, 150), -1)
	gocv.Ellipse(&img, image.Pt(256, 320), image.Pt(60, 30), 0, 0, 180, rgb(200, 100, 100), -1)

	return safe.Adopt(img)
}

func checkerboard() (*safe.Mat, error) {
	img := filled(patternSize, patternSize, checkerDark)

	cell := patternSize / checkerCells
	light := rgb(checkerLight, checkerLight, checkerLight)
	for i := 0; i < checkerCells; i++ {
		for j := 0; j < checkerCells; j++ {
			if (i+j)%2 != 0 {
				continue
			}
			gocv.Rectangle(&img, image.Rect(j*cell, i*cell, (j+1)*cell, (i+1)*cell), light, -1)
		}
	}

	return safe.Adopt(img)
}

func noise() (*safe.Mat, error) {
	img := gocv.NewMatWithSize(patternSize, patternSize, gocv.MatTypeCV8UC3)
	gocv.RandU(&img, gocv.NewScalar(0, 0, 0, 0), gocv.NewScalar(255, 255, 255, 0))
	return safe.Adopt(img)
}

func gradient() (*safe.Mat, error) {
	data := make([]byte, 0, patternSize*patternSize*3)
	for i := 0; i < patternSize; i++ {
		r := byte(i * 255 / patternSize)
		g := byte((patternSize - i) * 255 / patternSize)
		for j := 0; j < patternSize; j++ {
			data = append(data, r, g, 128)
		}
	}
	return safe.NewMatFromBytes(patternSize, patternSize, 3, data)
}

func shapes() (*safe.Mat, error) {
	img := filled(patternSize, patternSize, shapesBackground)

	gocv.Rectangle(&img, image.Rect(50, 50, 150, 150), rgb(220, 50, 50), -1)
	gocv.Circle(&img, image.Pt(300, 100), 50, rgb(50, 220, 50), -1)

	triangle := gocv.NewPointsVectorFromPoints([][]image.Point{{
		image.Pt(200, 200), image.Pt(300, 300), image.Pt(100, 300),
	}})
	defer triangle.Close()
	gocv.FillPoly(&img, triangle, rgb(50, 50, 220))

	return safe.Adopt(img)
}
