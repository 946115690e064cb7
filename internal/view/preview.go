package view

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/quintans/wallfetch/internal/lib/text"
	"github.com/quintans/wallfetch/internal/viewmodel"
)

// Preview shows the thumbnail stretched to the window until the full size
// image arrives.
func Preview(vm *viewmodel.Preview) (fyne.CanvasObject, func(bool)) {
	w := vm.Wallpaper()

	img := canvas.NewImageFromResource(theme.BrokenImageIcon())
	if thumb := vm.Thumbnail(); len(thumb) > 0 {
		img.Resource = fyne.NewStaticResource(w.ID+"-thumb", thumb)
	}
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleFastest

	info := widget.NewLabel(fmt.Sprintf("%s  %s  %s  %s", w.Resolution, text.Size(w.FileSize), w.FileType, w.Category))
	status := widget.NewLabel("")
	progress := widget.NewProgressBarInfinite()

	cancel := widget.NewButtonWithIcon("Cancel", theme.CancelIcon(), vm.Cancel)
	back := widget.NewButtonWithIcon("Back", theme.NavigateBackIcon(), vm.Back)
	back.Importance = widget.HighImportance

	vm.Image.Listen(onUI(func(b []byte) {
		img.Resource = fyne.NewStaticResource(w.Filename(), b)
		img.ScaleMode = canvas.ImageScaleSmooth
		img.Refresh()
	}))
	vm.Status.Bind(onUI(func(s viewmodel.PreviewStatus) {
		switch s {
		case viewmodel.PreviewLoading:
			status.SetText("Loading full size image...")
			progress.Start()
			progress.Show()
			cancel.Enable()
			return
		case viewmodel.PreviewLoaded:
			status.SetText("")
		case viewmodel.PreviewFailed:
			status.SetText("Preview failed")
		case viewmodel.PreviewCancelled:
			status.SetText("Preview cancelled")
		}
		progress.Stop()
		progress.Hide()
		cancel.Disable()
	}))

	go vm.Load()

	top := container.NewHBox(back, widget.NewLabel(w.ID), layout.NewSpacer(), info)
	bottom := container.NewBorder(nil, nil, nil, cancel, container.NewVBox(status, progress))

	return container.NewBorder(top, bottom, nil, nil, img), func(bool) {
		progress.Stop()
		vm.Unmount()
	}
}
