package models

// Statistics is a read-only snapshot of one image. Brightness figures are measured on the
// luma view, not on the raw channels.
type Statistics struct {
	Width          int
	Height         int
	Channels       int
	MeanBrightness float64
	StdBrightness  float64
	MinIntensity   uint8
	MaxIntensity   uint8
	TotalPixels    int
}

// Field is one named statistic.
type Field struct {
	Name  string
	Value float64
	// Integral fields are rendered without a fractional part.
	Integral bool
}

// Fields returns the eight statistics in their canonical order and naming.
func (s Statistics) Fields() []Field {
	return []Field{
		{Name: "Width", Value: float64(s.Width), Integral: true},
		{Name: "Height", Value: float64(s.Height), Integral: true},
		{Name: "Channels", Value: float64(s.Channels), Integral: true},
		{Name: "Mean Brightness", Value: s.MeanBrightness},
		{Name: "Std Brightness", Value: s.StdBrightness},
		{Name: "Min Intensity", Value: float64(s.MinIntensity), Integral: true},
		{Name: "Max Intensity", Value: float64(s.MaxIntensity), Integral: true},
		{Name: "Total Pixels", Value: float64(s.TotalPixels), Integral: true},
	}
}

// IntensityBand is a closed range of gray levels used by the distribution charts.
type IntensityBand struct {
	Label string
	Low   uint8
	High  uint8
}

// IntensityBands are the four quarter ranges of the 8-bit scale.
var IntensityBands = []IntensityBand{
	{Label: "Very Dark (0-63)", Low: 0, High: 63},
	{Label: "Dark (64-127)", Low: 64, High: 127},
	{Label: "Bright (128-191)", Low: 128, High: 191},
	{Label: "Very Bright (192-255)", Low: 192, High: 255},
}
