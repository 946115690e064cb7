package components

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

var pillGray = color.NRGBA{R: 96, G: 96, B: 96, A: 200}

// Pill is a small rounded badge.
type Pill struct {
	widget.BaseWidget

	text      *canvas.Text
	rectangle *canvas.Rectangle
}

func NewPill(text string) *Pill {
	r := canvas.NewRectangle(pillGray)
	r.CornerRadius = 10
	p := &Pill{
		text:      canvas.NewText(text, color.White),
		rectangle: r,
	}
	p.text.TextSize = 11
	p.ExtendBaseWidget(p)

	p.resize()
	return p
}

func (p *Pill) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewPadded(container.NewCenter(p.rectangle, p.text)))
}

func (p *Pill) SetText(text string) {
	if p.text.Text == text {
		return
	}
	p.text.Text = text
	p.resize()

	p.Refresh()
}

// SetColor changes the background. Nil restores the default gray.
func (p *Pill) SetColor(c color.Color) {
	if c == nil {
		c = pillGray
	}
	p.rectangle.FillColor = c
	p.rectangle.Refresh()
}

func (p *Pill) resize() {
	ms := p.text.MinSize()
	p.rectangle.SetMinSize(fyne.NewSize(ms.Width+12, ms.Height+4))
}

func (p *Pill) Refresh() {
	p.BaseWidget.Refresh()
	p.text.Refresh()
	p.rectangle.Refresh()
}
