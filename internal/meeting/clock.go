package meeting

import "time"

// Ticker delivers periodic time notifications and can be stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock is the external time source. The interface exists so tests can drive
// the timer deterministically.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// SystemClock is the default Clock backed by the standard library.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) NewTicker(d time.Duration) Ticker {
	return &systemTicker{t: time.NewTicker(d)}
}

type systemTicker struct {
	t *time.Ticker
}

func (st *systemTicker) C() <-chan time.Time {
	return st.t.C
}

func (st *systemTicker) Stop() {
	st.t.Stop()
}
