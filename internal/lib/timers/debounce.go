package timers

import (
	"sync"
	"time"
)

// Debounce calls fn once Trigger stops being called for the given delay.
// It can be triggered again after fn runs.
type Debounce struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	timer   *time.Timer
	stopped bool
}

func NewDebounce(delay time.Duration, fn func()) *Debounce {
	return &Debounce{
		delay: delay,
		fn:    fn,
	}
}

// Trigger (re)starts the countdown.
func (d *Debounce) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

// Stop cancels a pending call and ignores future triggers.
func (d *Debounce) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
