package viewmodel

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/quintans/wallfetch/internal/app"
	"github.com/quintans/wallfetch/internal/lib/bind"
	"github.com/quintans/wallfetch/internal/lib/bus"
	"github.com/quintans/wallfetch/internal/lib/navigation"
	"github.com/quintans/wallfetch/internal/lib/text"
	"github.com/quintans/wallfetch/internal/lib/timers"
	"github.com/quintans/wallfetch/internal/lib/values"
)

// spinnerDelay avoids flashing the loading indicator on fast operations.
const spinnerDelay = time.Second

type Shared struct {
	Navigate         *navigation.Navigator
	ShowNotification bind.Notifier[app.Notify]
	Publish          func(msg bus.Message)
}

func (s *Shared) Error(err error, msg string, args ...any) {
	if err == nil {
		return
	}

	mm := msg
	if len(args) > 0 {
		m := values.ToMap(args)
		mm = fmt.Sprintf("%s %s", msg, values.ToStr(m))
	}

	s.ShowNotification.Notify(app.NewNotifyError("%s: %s", mm, err))
	slog.Error(msg, append(args, "error", err)...)
}

func (s *Shared) Warn(msg string, args ...any) {
	slog.Warn(text.Fmt(msg, args...))
	s.ShowNotification.Notify(app.NewNotifyWarn(msg, args...))
}

func (s *Shared) Info(msg string, args ...any) {
	s.ShowNotification.Notify(app.NewNotifyInfo(msg, args...))
}

func (s *Shared) Success(msg string, args ...any) {
	s.ShowNotification.Notify(app.NewNotifySuccess(msg, args...))
}

// Loading shows the loading indicator with label if the returned function is
// not called within spinnerDelay. Calling it hides the indicator.
func (s *Shared) Loading(label string) func() {
	if s.Publish == nil {
		return func() {}
	}

	t := timers.After(spinnerDelay, func() {
		s.Publish(app.Loading{
			Text: label,
			Show: true,
		})
	})

	return func() {
		if t.Stop() {
			s.Publish(app.Loading{}) // hide spinner
		}
	}
}
