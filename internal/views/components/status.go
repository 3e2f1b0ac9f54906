package components

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const (
	idleStatus = "Ready"
	noImage    = "No image loaded"
)

// StatusBar shows the last action, the current source image and the last processing time.
type StatusBar struct {
	box    *fyne.Container
	action *widget.Label
	source *widget.Label
	timing *widget.Label
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{
		action: widget.NewLabel(idleStatus),
		source: widget.NewLabel(noImage),
		timing: widget.NewLabelWithStyle("", fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true}),
	}
	sb.box = container.NewHBox(sb.action, widget.NewSeparator(), sb.source, layout.NewSpacer(), sb.timing)
	return sb
}

func (sb *StatusBar) SetStatus(status string) {
	sb.action.SetText(status)
}

func (sb *StatusBar) SetImageInfo(name string, width, height, channels int) {
	sb.source.SetText(fmt.Sprintf("%s: %dx%d, %d channels", name, width, height, channels))
}

// SetTiming shows the duration of the last process and analyse cycle.
func (sb *StatusBar) SetTiming(d time.Duration) {
	sb.timing.SetText(fmt.Sprintf("processed in %.1f ms", float64(d.Microseconds())/1000))
}

func (sb *StatusBar) Reset() {
	sb.action.SetText(idleStatus)
	sb.source.SetText(noImage)
	sb.timing.SetText("")
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.box
}
