package eventbus

import (
	"errors"
	"testing"

	"github.com/quintans/wallfetch/internal/app"
	"github.com/quintans/wallfetch/internal/lib/bus"
	"github.com/stretchr/testify/assert"
)

func TestDownloadEvents(t *testing.T) {
	b := bus.New()
	var (
		progress []app.DownloadProgress
		finished []app.DownloadFinished
		failed   []app.DownloadFailed
		counters []app.DownloadCounters
	)
	bus.Register(b, func(m app.DownloadProgress) { progress = append(progress, m) })
	bus.Register(b, func(m app.DownloadFinished) { finished = append(finished, m) })
	bus.Register(b, func(m app.DownloadFailed) { failed = append(failed, m) })
	bus.Register(b, func(m app.DownloadCounters) { counters = append(counters, m) })

	e := New(b)
	e.DownloadProgress("1", 42)
	e.DownloadFinished("1", "wallhaven-1.jpg")
	errGone := errors.New("gone")
	e.DownloadFailed("2", errGone)
	e.DownloadCounters(app.DownloadCounters{BatchID: "b", Queued: 1, Finished: 1, Failed: 1})

	assert.Equal(t, []app.DownloadProgress{{ID: "1", Percent: 42}}, progress)
	assert.Equal(t, []app.DownloadFinished{{ID: "1", Filename: "wallhaven-1.jpg"}}, finished)
	assert.Equal(t, []app.DownloadFailed{{ID: "2", Err: errGone}}, failed)
	assert.Equal(t, []app.DownloadCounters{{BatchID: "b", Queued: 1, Finished: 1, Failed: 1}}, counters)
}

func TestDownloadProgress_Clamped(t *testing.T) {
	b := bus.New()
	var got []float64
	bus.Register(b, func(m app.DownloadProgress) { got = append(got, m.Percent) })

	e := New(b)
	e.DownloadProgress("1", -5)
	e.DownloadProgress("1", 130)

	assert.Equal(t, []float64{0, 100}, got)
}
