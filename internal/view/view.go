package view

import (
	"fyne.io/fyne/v2"
	"github.com/quintans/wallfetch/internal/app"
	"github.com/quintans/wallfetch/internal/lib/navigation"
	"github.com/quintans/wallfetch/internal/viewmodel"
)

// onUI wraps a binding listener so that it runs on the UI goroutine.
// View model bindings fire on whatever goroutine changed them.
func onUI[T any](fn func(T)) func(T) {
	return func(v T) {
		fyne.Do(func() {
			fn(v)
		})
	}
}

// Factory maps navigation params to the screen that shows them.
func Factory(vm *viewmodel.ViewModel) func(any) navigation.ViewFactory {
	return func(to any) navigation.ViewFactory {
		switch p := to.(type) {
		case app.SearchParams:
			return func() (fyne.CanvasObject, func(bool)) {
				return Search(vm)
			}
		case app.PreviewParams:
			return func() (fyne.CanvasObject, func(bool)) {
				return Preview(vm.NewPreview(p))
			}
		default:
			return nil
		}
	}
}
