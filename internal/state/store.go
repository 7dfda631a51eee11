// Package state implements the client-side entity stores. Each store owns
// one entity collection, mirrors it from the backend through the service
// layer, and reconciles local state after every mutation using the
// server-returned entity. Stores are safe for concurrent use.
package state

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/THANGADHIWAN/focal/internal/logging"
)

// DefaultDebounce is the quiet period applied to filter-driven refreshes
// so a burst of filter changes issues a single request.
const DefaultDebounce = 300 * time.Millisecond

// requestSeq issues monotonically increasing request tokens. A response is
// applied only when its token is still the newest issued; anything older
// is a stale response from a superseded refresh and is discarded.
type requestSeq struct {
	n atomic.Uint64
}

func (s *requestSeq) next() uint64 {
	return s.n.Add(1)
}

func (s *requestSeq) isLatest(token uint64) bool {
	return s.n.Load() == token
}

// debouncer coalesces rapid triggers into one callback after a quiet
// period. Each trigger restarts the timer.
type debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &debouncer{delay: delay}
}

// Trigger schedules fn after the quiet period, cancelling any pending
// callback from an earlier trigger.
func (d *debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending callback.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func storeLogger(name string) *slog.Logger {
	if l := logging.ForService(name); l != nil {
		return l
	}
	return slog.Default().With("service", name)
}
