package components

import (
	"image"
	"image/color"

	"imagelab/internal/export"
	"imagelab/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 520
	ImageAreaHeight = 400
)

// ImageDisplay shows the original and processed images side by side, each above its
// statistics table.
type ImageDisplay struct {
	container *container.Split
	original  *imagePane
	processed *imagePane
}

func NewImageDisplay() *ImageDisplay {
	display := &ImageDisplay{
		original:  newImagePane("**Original Image**", "Upload an image, take a photo or load a sample"),
		processed: newImagePane("**Processed Image**", "The processed result appears here"),
	}
	display.container = container.NewHSplit(display.original.container, display.processed.container)
	display.container.SetOffset(0.5)
	return display
}

func (id *ImageDisplay) SetOriginal(img image.Image, stats models.Statistics) {
	id.original.set(img, stats)
}

func (id *ImageDisplay) SetProcessed(img image.Image, stats models.Statistics) {
	id.processed.set(img, stats)
}

func (id *ImageDisplay) Clear() {
	id.original.clear()
	id.processed.clear()
}

func (id *ImageDisplay) HasOriginalImage() bool {
	return id.original.hasImage
}

func (id *ImageDisplay) GetContainer() fyne.CanvasObject {
	return id.container
}

type imagePane struct {
	container   *fyne.Container
	image       *canvas.Image
	placeholder image.Image
	hint        *widget.Label
	values      []*widget.Label
	hasImage    bool
}

func newImagePane(title, hint string) *imagePane {
	pane := &imagePane{placeholder: placeholderImage()}

	pane.image = canvas.NewImageFromImage(pane.placeholder)
	pane.image.FillMode = canvas.ImageFillContain
	pane.image.ScaleMode = canvas.ImageScaleSmooth
	pane.image.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))

	pane.hint = widget.NewLabel(hint)
	pane.hint.Alignment = fyne.TextAlignCenter

	table := container.NewGridWithColumns(2)
	for _, field := range (models.Statistics{}).Fields() {
		value := widget.NewLabel("--")
		pane.values = append(pane.values, value)
		table.Add(widget.NewLabel(field.Name))
		table.Add(value)
	}

	pane.container = container.NewBorder(
		widget.NewRichTextFromMarkdown(title),
		widget.NewCard("", "Image Statistics", table),
		nil, nil,
		container.NewStack(
			canvas.NewRectangle(color.RGBA{R: 252, G: 252, B: 252, A: 255}),
			pane.image,
			container.NewCenter(pane.hint),
		),
	)

	return pane
}

func (p *imagePane) set(img image.Image, stats models.Statistics) {
	if img == nil {
		p.clear()
		return
	}

	p.image.Image = img
	p.image.Refresh()
	p.hasImage = true

	for i, field := range stats.Fields() {
		p.values[i].SetText(export.FormatField(field))
	}
	p.hint.Hide()
}

func (p *imagePane) clear() {
	p.image.Image = p.placeholder
	p.image.Refresh()
	p.hasImage = false

	for _, value := range p.values {
		value.SetText("--")
	}
	p.hint.Show()
}

func placeholderImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, ImageAreaWidth, ImageAreaHeight))

	background := color.RGBA{R: 240, G: 240, B: 240, A: 255}
	border := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	for y := 0; y < ImageAreaHeight; y++ {
		for x := 0; x < ImageAreaWidth; x++ {
			if x == 0 || y == 0 || x == ImageAreaWidth-1 || y == ImageAreaHeight-1 {
				img.Set(x, y, border)
			} else {
				img.Set(x, y, background)
			}
		}
	}

	return img
}
