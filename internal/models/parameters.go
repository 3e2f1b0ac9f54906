package models

import (
	"fmt"
	"math"
	"strings"
)

// MorphologyOp selects the structuring-element operation of the last pipeline stage.
type MorphologyOp int

const (
	MorphologyNone MorphologyOp = iota
	MorphologyErosion
	MorphologyDilation
	MorphologyOpening
	MorphologyClosing
)

var morphologyNames = map[MorphologyOp]string{
	MorphologyNone:     "None",
	MorphologyErosion:  "Erosion",
	MorphologyDilation: "Dilation",
	MorphologyOpening:  "Opening",
	MorphologyClosing:  "Closing",
}

// MorphologyOps lists the selectable operations in display order.
func MorphologyOps() []MorphologyOp {
	return []MorphologyOp{MorphologyNone, MorphologyErosion, MorphologyDilation, MorphologyOpening, MorphologyClosing}
}

func (m MorphologyOp) String() string {
	if name, ok := morphologyNames[m]; ok {
		return name
	}
	return morphologyNames[MorphologyNone]
}

// Valid reports whether m is one of the closed set of operations.
func (m MorphologyOp) Valid() bool {
	_, ok := morphologyNames[m]
	return ok
}

// ParseMorphologyOp maps a display name to an operation. Unknown names select None.
func ParseMorphologyOp(name string) MorphologyOp {
	for op, opName := range morphologyNames {
		if strings.EqualFold(opName, strings.TrimSpace(name)) {
			return op
		}
	}
	return MorphologyNone
}

func (m MorphologyOp) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MorphologyOp) UnmarshalText(text []byte) error {
	*m = ParseMorphologyOp(string(text))
	return nil
}

// Parameter bounds exposed by the controls.
const (
	MinBlurRadius = 0
	MaxBlurRadius = 10

	MinBrightness = -100
	MaxBrightness = 100

	MinContrast  = 0.1
	MaxContrast  = 3.0
	ContrastStep = 0.1

	MinCannyThreshold = 0
	MaxCannyThreshold = 255

	MinKernelSize  = 3
	MaxKernelSize  = 15
	KernelSizeStep = 2

	DefaultCannyLow   = 50
	DefaultCannyHigh  = 150
	DefaultKernelSize = 5
	DefaultContrast   = 1.0

	// slider steps of 0.1 accumulate rounding error
	contrastTolerance = 1e-9
)

// Parameters is the complete, fixed-shape input of the processing pipeline. Fields that are
// governed by a disabled flag still carry their defaults.
type Parameters struct {
	Grayscale     bool         `toml:"grayscale"`
	BlurRadius    int          `toml:"blur_radius"`
	Brightness    int          `toml:"brightness"`
	Contrast      float64      `toml:"contrast"`
	EdgeDetection bool         `toml:"edge_detection"`
	CannyLow      int          `toml:"canny_low"`
	CannyHigh     int          `toml:"canny_high"`
	Morphology    MorphologyOp `toml:"morphology"`
	KernelSize    int          `toml:"kernel_size"`
}

// DefaultParameters returns the neutral record: every stage is a no-op.
func DefaultParameters() Parameters {
	return Parameters{
		Contrast:   DefaultContrast,
		CannyLow:   DefaultCannyLow,
		CannyHigh:  DefaultCannyHigh,
		Morphology: MorphologyNone,
		KernelSize: DefaultKernelSize,
	}
}

// Normalize resets fields whose governing flag or selector is off to their defaults.
func (p Parameters) Normalize() Parameters {
	if !p.Morphology.Valid() {
		p.Morphology = MorphologyNone
	}
	if !p.EdgeDetection {
		p.CannyLow = DefaultCannyLow
		p.CannyHigh = DefaultCannyHigh
	}
	if p.Morphology == MorphologyNone {
		p.KernelSize = DefaultKernelSize
	}
	return p
}

// Validate checks every field the pipeline will read.
func (p Parameters) Validate() error {
	if p.BlurRadius < MinBlurRadius {
		return fmt.Errorf("%w: blur radius %d is negative", ErrInvalidParameter, p.BlurRadius)
	}
	if ksize := BlurKernelSize(p.BlurRadius); ksize%2 == 0 {
		return fmt.Errorf("%w: blur kernel size %d is not odd", ErrInvalidParameter, ksize)
	}
	if p.Brightness < MinBrightness || p.Brightness > MaxBrightness {
		return fmt.Errorf("%w: brightness %d outside [%d, %d]",
			ErrInvalidParameter, p.Brightness, MinBrightness, MaxBrightness)
	}
	if math.IsNaN(p.Contrast) || p.Contrast < MinContrast-contrastTolerance || p.Contrast > MaxContrast+contrastTolerance {
		return fmt.Errorf("%w: contrast %.2f outside [%.1f, %.1f]",
			ErrInvalidParameter, p.Contrast, MinContrast, MaxContrast)
	}

	if p.EdgeDetection {
		if err := checkThreshold("low", p.CannyLow); err != nil {
			return err
		}
		if err := checkThreshold("high", p.CannyHigh); err != nil {
			return err
		}
	}

	if p.Morphology != MorphologyNone && p.Morphology.Valid() {
		if p.KernelSize < MinKernelSize || p.KernelSize > MaxKernelSize || p.KernelSize%2 == 0 {
			return fmt.Errorf("%w: kernel size %d must be odd in [%d, %d]",
				ErrInvalidParameter, p.KernelSize, MinKernelSize, MaxKernelSize)
		}
	}

	return nil
}

func checkThreshold(name string, v int) error {
	if v < MinCannyThreshold || v > MaxCannyThreshold {
		return fmt.Errorf("%w: canny %s threshold %d outside [%d, %d]",
			ErrInvalidParameter, name, v, MinCannyThreshold, MaxCannyThreshold)
	}
	return nil
}

// IsNeutral reports whether processing with p returns the source unchanged.
func (p Parameters) IsNeutral() bool {
	return !p.Grayscale &&
		p.BlurRadius == 0 &&
		p.Brightness == 0 &&
		p.Contrast == DefaultContrast &&
		!p.EdgeDetection &&
		(p.Morphology == MorphologyNone || !p.Morphology.Valid())
}

// BlurKernelSize is the Gaussian kernel edge length for a blur radius.
func BlurKernelSize(radius int) int {
	return 2*radius + 1
}

// AsMap flattens the record for structured logs.
func (p Parameters) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"grayscale":      p.Grayscale,
		"blur":           p.BlurRadius,
		"brightness":     p.Brightness,
		"contrast":       p.Contrast,
		"edge_detection": p.EdgeDetection,
		"canny_low":      p.CannyLow,
		"canny_high":     p.CannyHigh,
		"morphology":     p.Morphology.String(),
		"kernel_size":    p.KernelSize,
	}
}
