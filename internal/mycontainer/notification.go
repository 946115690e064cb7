package mycontainer

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"github.com/quintans/wallfetch/internal/components"
)

const (
	// maxCards is how many notifications are stacked before the oldest is
	// dropped.
	maxCards = 4
	fadeOut  = 300 * time.Millisecond
)

type options struct {
	timeout time.Duration
}

type Option func(*options)

// Timeout closes the notification after d. Zero keeps it until it is
// dismissed.
func Timeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

type level struct {
	title   string
	bg      color.Color
	fg      color.Color
	timeout time.Duration
}

var (
	levelSuccess = level{"Success", color.NRGBA{R: 0, G: 160, B: 160, A: 224}, color.Black, 3 * time.Second}
	levelInfo    = level{"Information", color.NRGBA{R: 240, G: 220, B: 60, A: 224}, color.Black, 3 * time.Second}
	levelWarning = level{"Warning", color.NRGBA{R: 255, G: 150, B: 0, A: 224}, color.Black, 5 * time.Second}
	levelError   = level{"Error", color.NRGBA{R: 200, G: 30, B: 30, A: 224}, color.White, 0}
)

// NotificationContainer stacks notification cards. Its methods must be
// called from the UI goroutine.
type NotificationContainer struct {
	container *fyne.Container
}

func NewNotification() *NotificationContainer {
	return &NotificationContainer{
		container: container.NewVBox(),
	}
}

func (nc *NotificationContainer) Container() *fyne.Container {
	return nc.container
}

func (nc *NotificationContainer) ShowSuccess(message string, opts ...Option) {
	nc.show(levelSuccess, message, opts)
}

func (nc *NotificationContainer) ShowInfo(message string, opts ...Option) {
	nc.show(levelInfo, message, opts)
}

func (nc *NotificationContainer) ShowWarning(message string, opts ...Option) {
	nc.show(levelWarning, message, opts)
}

// ShowError stays until dismissed unless a Timeout is given.
func (nc *NotificationContainer) ShowError(message string, opts ...Option) {
	nc.show(levelError, message, opts)
}

// Clear removes every notification.
func (nc *NotificationContainer) Clear() {
	nc.container.RemoveAll()
}

// Len is the number of visible notifications.
func (nc *NotificationContainer) Len() int {
	return len(nc.container.Objects)
}

func (nc *NotificationContainer) show(lvl level, message string, opts []Option) {
	o := options{timeout: lvl.timeout}
	for _, opt := range opts {
		opt(&o)
	}

	title, fadeTitle := newText(lvl.title, lvl.fg, fyne.TextStyle{Bold: true})
	closer, fadeCloser := newText("x", lvl.fg, fyne.TextStyle{Bold: true})
	body, fadeBody := newText(message, lvl.fg, fyne.TextStyle{})

	bg := canvas.NewRectangle(lvl.bg)
	bg.CornerRadius = 5

	tap := NewTappable(closer)
	card := container.NewStack(
		bg,
		container.NewBorder(
			container.NewHBox(title, layout.NewSpacer(), tap),
			nil,
			nil,
			nil,
			body,
		),
	)

	if nc.Len() >= maxCards {
		nc.container.Remove(nc.container.Objects[0])
	}
	nc.container.Add(card)
	nc.container.Refresh()

	remove := func() {
		nc.container.Remove(card)
		nc.container.Refresh()
	}
	tap.OnTapped = remove

	if o.timeout <= 0 {
		return
	}

	fades := []func(float32){
		fadeTitle,
		fadeCloser,
		fadeBody,
		fade(lvl.bg, func(c color.Color) {
			bg.FillColor = c
			bg.Refresh()
		}),
	}
	time.AfterFunc(max(o.timeout-fadeOut, 0), func() {
		fyne.Do(func() {
			fyne.NewAnimation(fadeOut, func(p float32) {
				for _, f := range fades {
					f(p)
				}
				if p == 1 {
					remove()
				}
			}).Start()
		})
	})
}

func newText(txt string, c color.Color, style fyne.TextStyle) (fyne.CanvasObject, func(float32)) {
	label := components.NewCustomLabel(txt, c)
	label.WrapWidth = 300
	label.MaxLines = 6
	label.TextStyle = style
	label.Alignment = fyne.TextAlignLeading

	return container.NewPadded(label), fade(c, func(c color.Color) {
		label.Color = c
		label.Refresh()
	})
}

// fade returns an animation step that takes c from its alpha to transparent.
func fade(c color.Color, set func(color.Color)) func(float32) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	alpha := float32(n.A)
	return func(done float32) {
		n.A = uint8(alpha * (1 - done))
		set(n)
	}
}
