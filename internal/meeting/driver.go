package meeting

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"roundtable/internal/domain"
	"roundtable/pkg/logger"
)

// DefaultTickInterval is the cadence of the clock source.
const DefaultTickInterval = time.Second

// Driver is the effectful shell around the state machine: it subscribes to
// the clock while the timer is running and feeds TICK actions into the
// store. Only one subscription exists at a time. Pausing or ending the
// meeting stops the loop entirely, so wall-clock time spent paused is never
// counted; if the underlying ticker coalesces deliveries (process suspend,
// scheduling delay), the missed whole seconds arrive as one batched tick.
type Driver struct {
	store    *Store
	clock    Clock
	interval time.Duration
	log      *logger.Logger

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewDriver creates a driver ticking at DefaultTickInterval.
func NewDriver(store *Store, clock Clock, log *logger.Logger) *Driver {
	if clock == nil {
		clock = SystemClock
	}
	return &Driver{
		store:    store,
		clock:    clock,
		interval: DefaultTickInterval,
		log:      log,
	}
}

// Start begins consuming clock notifications. No-op when already running.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}
	d.running = true
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	go d.run(d.stop, d.done)
	d.log.Debug("timer driver started")
}

// Stop halts the tick loop and waits for it to exit. Safe to call when not
// running or after the loop stopped itself.
func (d *Driver) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	stop, done := d.stop, d.done
	d.mu.Unlock()

	close(stop)
	<-done
	d.log.Debug("timer driver stopped")
}

// Running reports whether the loop is active.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

func (d *Driver) run(stop, done chan struct{}) {
	defer close(done)
	defer d.markStopped(stop)

	ticker := d.clock.NewTicker(d.interval)
	defer ticker.Stop()

	// Accounting baseline: elapsed seconds are measured against the last
	// second already delivered, so coalesced ticks don't lose time.
	last := d.clock.Now()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C():
			elapsed := int(now.Sub(last) / time.Second)
			if elapsed < 1 {
				elapsed = 1
			}
			last = last.Add(time.Duration(elapsed) * time.Second)

			if elapsed > 1 {
				d.log.Debug("coalesced tick", zap.Int("elapsed_seconds", elapsed))
			}
			d.store.Dispatch(Tick(elapsed))

			state := d.store.State()
			if d.shouldStop(state) {
				return
			}
		}
	}
}

// shouldStop detects convergence on a state that no longer wants ticks.
func (d *Driver) shouldStop(s *domain.MeetingState) bool {
	if !s.IsMeetingActive {
		return true
	}
	switch s.TimerStatus {
	case domain.TimerStatusFinished, domain.TimerStatusPaused, domain.TimerStatusIdle:
		return true
	}
	return false
}

// markStopped clears the running flag when the loop exits on its own, but
// only if it has not been superseded by a newer Start.
func (d *Driver) markStopped(stop chan struct{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop == stop {
		d.running = false
	}
}
