package view

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/quintans/wallfetch/internal/app"
	"github.com/quintans/wallfetch/internal/lib/bind"
	"github.com/quintans/wallfetch/internal/lib/navigation"
	"github.com/quintans/wallfetch/internal/mycontainer"
	"github.com/quintans/wallfetch/internal/viewmodel"
)

// App is the main window content: the search and settings tabs with the
// notifications and the loading indicator on top.
func App(vm *viewmodel.ViewModel, nav *navigation.Navigator, w fyne.Window) (fyne.CanvasObject, func(bool)) {
	settings, closeSettings := Settings(vm.App, w)

	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Search", theme.SearchIcon(), nav.Container()),
		container.NewTabItemWithIcon("Settings", theme.SettingsIcon(), container.NewVScroll(settings)),
	)
	tabs.SetTabLocation(container.TabLocationLeading)

	notification := mycontainer.NewNotification()
	unbindNotifications := vm.Shared.ShowNotification.Listen(onUI(showNotification(notification)))

	loading, unbindLoading := loadingIndicator(vm.App.Loading)

	margin := float32(10)
	anchor := mycontainer.NewAnchor()
	anchor.Add(tabs, mycontainer.FillConstraint)
	anchor.Add(loading, mycontainer.AnchorConstraints{Bottom: &margin, Right: &margin})
	anchor.Add(notification.Container(), mycontainer.AnchorConstraints{Top: &margin, Right: &margin})

	vm.Mount()
	nav.Reset(app.SearchParams{})

	return anchor.Container, func(bool) {
		// the main screen lives as long as the window
		unbindNotifications()
		unbindLoading()
		closeSettings(false)
	}
}

func loadingIndicator(loading bind.Notifier[app.Loading]) (fyne.CanvasObject, func()) {
	activity := widget.NewActivity()
	label := widget.NewLabel("")
	box := container.NewHBox(activity, label)
	box.Hide()

	unbind := loading.Listen(onUI(func(l app.Loading) {
		if l.Text != "" {
			label.SetText(l.Text)
		}
		if l.Show {
			activity.Start()
			box.Show()
			return
		}
		if l.Text == "" {
			activity.Stop()
			box.Hide()
		}
	}))

	return box, unbind
}

func showNotification(notification *mycontainer.NotificationContainer) func(evt app.Notify) {
	return func(evt app.Notify) {
		switch evt.Type {
		case app.NotifyError:
			notification.ShowError(evt.Message)
		case app.NotifyWarn:
			notification.ShowWarning(evt.Message)
		case app.NotifyInfo:
			notification.ShowInfo(evt.Message)
		case app.NotifySuccess:
			notification.ShowSuccess(evt.Message)
		}
	}
}
