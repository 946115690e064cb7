package timers

import (
	"sync"
	"time"
)

// Delayed runs a function after a delay unless it is stopped first.
type Delayed struct {
	mu    sync.Mutex
	timer *time.Timer
	fired bool
}

func After(delay time.Duration, fn func()) *Delayed {
	d := &Delayed{}
	d.timer = time.AfterFunc(delay, func() {
		d.mu.Lock()
		d.fired = true
		d.mu.Unlock()

		fn()
	})
	return d
}

// Stop cancels the call. It reports whether the function already ran, or
// is running.
func (d *Delayed) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.timer.Stop()
	return d.fired
}
