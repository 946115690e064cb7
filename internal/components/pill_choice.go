package components

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// PillChoice is a pill that toggles when tapped.
type PillChoice struct {
	widget.BaseWidget

	text      *canvas.Text
	rectangle *canvas.Rectangle
	selected  bool
	color     color.Color

	OnSelected func(bool) `json:"-"`
}

func NewPillChoice(text string, selected bool) *PillChoice {
	p := &PillChoice{
		text:      canvas.NewText(text, nil),
		rectangle: canvas.NewRectangle(color.Transparent),
		selected:  selected,
	}
	p.ExtendBaseWidget(p)

	p.updateSelection()
	return p
}

// NewColoredPillChoice uses c instead of the primary color when selected.
func NewColoredPillChoice(text string, selected bool, c color.Color) *PillChoice {
	p := NewPillChoice(text, selected)
	p.color = c
	p.updateSelection()
	return p
}

func (p *PillChoice) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewCenter(p.rectangle, p.text))
}

func (p *PillChoice) Text() string {
	return p.text.Text
}

// SetSelect changes the selection without calling OnSelected.
func (p *PillChoice) SetSelect(selected bool) {
	if p.selected == selected {
		return
	}
	p.selected = selected
	p.updateSelection()

	p.Refresh()
}

func (p *PillChoice) Selected() bool {
	return p.selected
}

func (p *PillChoice) Tapped(_ *fyne.PointEvent) {
	p.selected = !p.selected
	p.updateSelection()
	p.rectangle.Refresh()

	if p.OnSelected != nil {
		p.OnSelected(p.selected)
	}
}

func (p *PillChoice) updateSelection() {
	c := theme.Color(theme.ColorNameDisabled)
	if p.selected {
		c = theme.Color(theme.ColorNamePrimary)
		if p.color != nil {
			c = p.color
		}
	}
	p.rectangle.CornerRadius = 10
	p.rectangle.StrokeColor = c
	p.rectangle.StrokeWidth = 1
	p.rectangle.FillColor = c

	ms := p.text.MinSize()
	p.rectangle.SetMinSize(fyne.NewSize(ms.Width+16, ms.Height+6))
}

func (p *PillChoice) Refresh() {
	p.BaseWidget.Refresh()
	p.text.Refresh()
	p.rectangle.Refresh()
}
