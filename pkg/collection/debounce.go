package collection

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Debouncer holds raw query input and only issues the search once the input
// has been stable for the quiet interval. A newer Update supersedes a pending
// one: the timer restarts and no request is sent for the superseded value.
// Emptying the input clears results immediately, without waiting.
type Debouncer struct {
	delay  time.Duration
	search func(ctx context.Context, query string)
	clear  func()

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewDebouncer creates a debouncer with the given quiet interval. search runs
// for the latest stable query; clear runs when the input empties.
func NewDebouncer(delay time.Duration, search func(ctx context.Context, query string), clear func()) *Debouncer {
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	return &Debouncer{delay: delay, search: search, clear: clear}
}

// Update feeds the current input text
func (d *Debouncer) Update(ctx context.Context, text string) {
	d.mu.Lock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++

	if strings.TrimSpace(text) == "" {
		d.mu.Unlock()
		if d.clear != nil {
			d.clear()
		}
		return
	}

	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		stale := d.seq != seq
		d.mu.Unlock()
		if stale {
			return
		}
		d.search(ctx, text)
	})
	d.mu.Unlock()
}

// Cancel discards any pending search
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}
