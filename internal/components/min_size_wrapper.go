package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// MinSizeWrapper makes the wrapped object at least minSize big, never
// smaller than what the object itself needs.
type MinSizeWrapper struct {
	widget.BaseWidget
	wrapped fyne.CanvasObject
	minSize fyne.Size
}

func NewMinSizeWrapper(object fyne.CanvasObject, minSize fyne.Size) *MinSizeWrapper {
	wrapper := &MinSizeWrapper{
		wrapped: object,
		minSize: minSize,
	}
	wrapper.ExtendBaseWidget(wrapper)
	return wrapper
}

func (m *MinSizeWrapper) MinSize() fyne.Size {
	return m.minSize.Max(m.wrapped.MinSize())
}

func (m *MinSizeWrapper) SetMinSize(size fyne.Size) {
	m.minSize = size
	m.Refresh()
}

func (m *MinSizeWrapper) Resize(size fyne.Size) {
	m.wrapped.Resize(size)
	m.BaseWidget.Resize(size)
}

func (m *MinSizeWrapper) Refresh() {
	m.wrapped.Refresh()
	m.BaseWidget.Refresh()
}

func (m *MinSizeWrapper) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(m.wrapped)
}
