package eventbus

import (
	"log/slog"

	"github.com/quintans/wallfetch/internal/app"
	"github.com/quintans/wallfetch/internal/lib/bus"
)

// EventBus turns the download service notifications into bus messages.
type EventBus struct {
	bus *bus.Bus
}

func New(bus *bus.Bus) *EventBus {
	return &EventBus{
		bus: bus,
	}
}

// DownloadProgress publishes the percentage of id received so far, kept
// within 0 and 100.
func (e *EventBus) DownloadProgress(id string, percent float64) {
	e.publish(app.DownloadProgress{ID: id, Percent: min(max(percent, 0), 100)})
}

func (e *EventBus) DownloadFinished(id, filename string) {
	e.publish(app.DownloadFinished{ID: id, Filename: filename})
}

func (e *EventBus) DownloadFailed(id string, err error) {
	e.publish(app.DownloadFailed{ID: id, Err: err})
}

func (e *EventBus) DownloadCounters(counters app.DownloadCounters) {
	e.publish(counters)
}

func (e *EventBus) publish(msg app.Message) {
	slog.Debug("Publishing", "kind", msg.Kind())
	e.bus.Publish(msg)
}
