package components

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Stepper edits an integer with minus and plus buttons. OnChanged receives
// the requested value, the caller decides whether to accept it with
// SetValue.
type Stepper struct {
	widget.BaseWidget

	value int
	label *widget.Label
	minus *widget.Button
	plus  *widget.Button

	OnChanged func(int) `json:"-"`
}

func NewStepper(value int) *Stepper {
	s := &Stepper{
		value: value,
		label: widget.NewLabel(strconv.Itoa(value)),
	}
	s.label.Alignment = fyne.TextAlignCenter
	s.minus = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() {
		s.request(s.value - 1)
	})
	s.plus = widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		s.request(s.value + 1)
	})
	s.ExtendBaseWidget(s)
	return s
}

func (s *Stepper) Value() int {
	return s.value
}

func (s *Stepper) SetValue(v int) {
	s.value = v
	s.label.SetText(strconv.Itoa(v))
}

func (s *Stepper) request(v int) {
	if s.OnChanged != nil {
		s.OnChanged(v)
	}
}

func (s *Stepper) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewHBox(s.minus, NewMinSizeWrapper(s.label, fyne.NewSize(40, 36)), s.plus))
}
