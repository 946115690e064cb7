package navigation

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
)

// ViewFactory builds a screen. The returned close function is called with
// true when the screen is left with Back and false when it is discarded by
// Reset.
type ViewFactory func() (screen fyne.CanvasObject, close func(bool))

type page struct {
	screen fyne.CanvasObject
	close  func(bool)
}

// Navigator shows one screen at a time inside a container. Screens are kept
// in a stack so that Back returns to the previous screen as it was left.
// It must be used from the UI goroutine.
type Navigator struct {
	container *fyne.Container
	stack     []page
	Factory   func(any) ViewFactory
}

func New(container *fyne.Container) *Navigator {
	return &Navigator{container: container}
}

// To builds the screen for the given params and pushes it.
func (n *Navigator) To(to any) {
	if n.Factory == nil {
		slog.Error("Navigator Factory is nil")
		return
	}

	view := n.Factory(to)
	if view == nil {
		slog.Error("Navigator Factory returned nil view", "to", fmt.Sprintf("%T", to))
		return
	}

	screen, close := view()
	n.stack = append(n.stack, page{screen: screen, close: close})
	n.show(screen)
}

// Reset discards every screen and shows the one for the given params.
func (n *Navigator) Reset(to any) {
	for i := len(n.stack) - 1; i >= 0; i-- {
		if c := n.stack[i].close; c != nil {
			c(false)
		}
	}
	n.stack = nil
	n.To(to)
}

// Back closes the current screen and shows the previous one. The first
// screen is never closed.
func (n *Navigator) Back() {
	if len(n.stack) < 2 {
		return
	}

	last := n.stack[len(n.stack)-1]
	n.stack = n.stack[:len(n.stack)-1]
	if last.close != nil {
		last.close(true)
	}

	n.show(n.stack[len(n.stack)-1].screen)
}

func (n *Navigator) Depth() int {
	return len(n.stack)
}

func (n *Navigator) show(screen fyne.CanvasObject) {
	n.container.Objects = []fyne.CanvasObject{screen}
	n.container.Refresh()
}

// Container is where the screens are shown.
func (n *Navigator) Container() *fyne.Container {
	return n.container
}
