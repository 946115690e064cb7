package view

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/quintans/wallfetch/internal/components"
	"github.com/quintans/wallfetch/internal/viewmodel"
)

func Settings(vm *viewmodel.App, w fyne.Window) (fyne.CanvasObject, func(bool)) {
	sections := container.NewVBox()

	unbindStorage := settingsAddStorageSection(sections, vm, w)
	unbindAPIKey := settingsAddAPIKeySection(sections, vm)
	unbindDownloads := settingsAddDownloadsSection(sections, vm)

	return sections, func(bool) {
		unbindStorage()
		unbindAPIKey()
		unbindDownloads()
	}
}

func settingsHeader(sections *fyne.Container, title string) {
	sections.Add(widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	sections.Add(canvas.NewLine(color.Gray{128}))
}

func settingsAddStorageSection(sections *fyne.Container, vm *viewmodel.App, w fyne.Window) func() {
	settingsHeader(sections, "Storage")

	dir := widget.NewLabel("")
	dir.Truncation = fyne.TextTruncateEllipsis
	unbindDir := vm.SaveDir.Bind(onUI(dir.SetText))

	size := widget.NewLabel("")
	unbindSize := vm.LibrarySize.Bind(onUI(func(n int) {
		size.SetText(fmt.Sprintf("%d images", n))
	}))

	change := widget.NewButtonWithIcon("Change", theme.FolderOpenIcon(), func() {
		d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if uri == nil {
				return
			}
			go vm.SetSaveDir(uri.Path())
		}, w)
		if current, err := storage.ListerForURI(storage.NewFileURI(vm.SaveDir.Get())); err == nil {
			d.SetLocation(current)
		}
		d.Show()
	})
	change.Importance = widget.HighImportance

	sections.Add(container.NewBorder(nil, nil, nil, container.NewHBox(size, change), dir))
	sections.Add(widget.NewSeparator())

	return func() {
		unbindDir()
		unbindSize()
	}
}

func settingsAddAPIKeySection(sections *fyne.Container, vm *viewmodel.App) func() {
	settingsHeader(sections, "wallhaven.cc")

	key := widget.NewPasswordEntry()
	key.SetPlaceHolder("API key, needed for NSFW results")
	unbindKey := vm.APIKey.Bind(onUI(key.SetText))

	hint := widget.NewLabel("The API key is set by WALLFETCH_API_KEY")
	hint.Importance = widget.WarningImportance
	hint.Hide()

	save := widget.NewButton("Save", func() {
		go vm.SetAPIKey(key.Text)
	})
	save.Importance = widget.HighImportance

	unbindEnv := vm.APIKeyFromEnv.Bind(onUI(func(fromEnv bool) {
		if fromEnv {
			key.Disable()
			save.Disable()
			hint.Show()
			return
		}
		key.Enable()
		save.Enable()
		hint.Hide()
	}))

	sections.Add(container.NewHBox(
		widget.NewForm(
			widget.NewFormItem("API key", components.NewMinSizeWrapper(key, fyne.NewSize(300, 40))),
		),
		layout.NewSpacer(),
	))
	sections.Add(hint)
	sections.Add(container.NewHBox(save, layout.NewSpacer()))
	sections.Add(widget.NewSeparator())

	return func() {
		unbindKey()
		unbindEnv()
	}
}

func settingsAddDownloadsSection(sections *fyne.Container, vm *viewmodel.App) func() {
	settingsHeader(sections, "Downloads")

	ignore := widget.NewCheck("Hide wallpapers already in the storage directory", nil)
	unbindIgnore := vm.IgnoreDownloaded.Bind(onUI(ignore.SetChecked))
	ignore.OnChanged = func(checked bool) {
		if checked != vm.IgnoreDownloaded.Get() {
			go vm.SetIgnoreDownloaded(checked)
		}
	}

	similar := widget.NewCheck("Also match similar images (slower)", nil)
	unbindSimilar := vm.MatchSimilar.Bind(onUI(similar.SetChecked))
	similar.OnChanged = func(checked bool) {
		if checked != vm.MatchSimilar.Get() {
			go vm.SetMatchSimilar(checked)
		}
	}

	stepper := components.NewStepper(vm.ConcurrentDownloads.Get())
	unbindConcurrency := vm.ConcurrentDownloads.Bind(onUI(stepper.SetValue))
	stepper.OnChanged = func(n int) {
		go vm.SetConcurrentDownloads(n)
	}

	sections.Add(ignore)
	sections.Add(similar)
	sections.Add(container.NewHBox(widget.NewLabel("Simultaneous downloads"), stepper, layout.NewSpacer()))

	return func() {
		unbindIgnore()
		unbindSimilar()
		unbindConcurrency()
	}
}
