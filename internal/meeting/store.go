package meeting

import (
	"sync"

	"go.uber.org/zap"

	"roundtable/internal/domain"
	"roundtable/pkg/logger"
)

// Listener is called with the new state after every applied action.
type Listener func(*domain.MeetingState)

// Store owns the canonical MeetingState and serializes every mutation.
// All reducer transitions run to completion under one lock, so there is a
// single logical timeline: ticks and manual actions can never interleave.
type Store struct {
	mu        sync.Mutex
	notifyMu  sync.Mutex
	state     *domain.MeetingState
	listeners []Listener
	log       *logger.Logger
}

// NewStore creates a store holding the all-default state.
func NewStore(log *logger.Logger) *Store {
	return &Store{
		state: domain.NewMeetingState(),
		log:   log,
	}
}

// State returns the current state. States are immutable once published;
// callers must not modify the returned value.
func (st *Store) State() *domain.MeetingState {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

// Subscribe registers a listener notified after each applied action.
// Listeners run outside the state lock but in application order: the state
// a listener receives is never older than one delivered before it. A
// listener must not call Dispatch.
func (st *Store) Subscribe(l Listener) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.listeners = append(st.listeners, l)
}

// Dispatch feeds one action through the reducer. It reports whether the
// action changed anything; a rejected action leaves the state untouched and
// is logged as a diagnostic, never surfaced as an error.
func (st *Store) Dispatch(a Action) bool {
	st.mu.Lock()
	prev := st.state
	next := Reduce(prev, a)
	changed := next != prev
	if changed {
		st.state = next
	}
	listeners := make([]Listener, len(st.listeners))
	copy(listeners, st.listeners)
	if changed {
		// Taken while the state lock is still held, so notification order
		// matches the order states were applied.
		st.notifyMu.Lock()
	}
	st.mu.Unlock()

	if !changed {
		st.log.Debug("action rejected",
			zap.String("action", string(a.Type)),
			zap.String("timer_status", string(prev.TimerStatus)))
		return false
	}

	st.log.Debug("action applied",
		zap.String("action", string(a.Type)),
		zap.String("timer_status", string(next.TimerStatus)),
		zap.String("meeting_status", string(next.MeetingStatus)),
		zap.Int("current_time_seconds", next.CurrentTimeSeconds))

	for _, l := range listeners {
		l(next)
	}
	st.notifyMu.Unlock()
	return true
}
