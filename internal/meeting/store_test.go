package meeting

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roundtable/internal/domain"
	"roundtable/pkg/logger"
)

func newTestStore() *Store {
	return NewStore(logger.NewNop())
}

func TestStoreDispatchReportsChange(t *testing.T) {
	st := newTestStore()

	applied := st.Dispatch(StartMeeting(StartMeetingPayload{
		Config: StoredTimerConfig{
			Mode:                 domain.TimerModeFixed,
			TotalDurationMinutes: 5,
		},
		Participants: roster("a", "b"),
	}))
	require.True(t, applied)
	assert.True(t, st.State().IsMeetingActive)

	// Resuming a running timer is a rejected no-op.
	assert.False(t, st.Dispatch(ResumeTimer()))
	assert.True(t, st.Dispatch(PauseTimer()))
	assert.Equal(t, domain.TimerStatusPaused, st.State().TimerStatus)
}

func TestStoreStateStartsAtDefaults(t *testing.T) {
	st := newTestStore()
	s := st.State()
	assert.False(t, s.IsMeetingActive)
	assert.Equal(t, domain.TimerStatusIdle, s.TimerStatus)
	assert.Equal(t, domain.MeetingStatusNotStarted, s.MeetingStatus)
}

func TestStoreNotifiesListenersOnAppliedActions(t *testing.T) {
	st := newTestStore()

	var mu sync.Mutex
	var seen []*domain.MeetingState
	st.Subscribe(func(s *domain.MeetingState) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, s)
	})

	st.Dispatch(StartMeeting(StartMeetingPayload{
		Config: StoredTimerConfig{
			Mode:                 domain.TimerModeFixed,
			TotalDurationMinutes: 1,
		},
	}))
	st.Dispatch(ResumeTimer()) // rejected, must not notify
	st.Dispatch(PauseTimer())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	assert.Equal(t, domain.TimerStatusRunning, seen[0].TimerStatus)
	assert.Equal(t, domain.TimerStatusPaused, seen[1].TimerStatus)
}

func TestStoreDispatchIsSafeUnderConcurrency(t *testing.T) {
	st := newTestStore()
	require.True(t, st.Dispatch(StartMeeting(StartMeetingPayload{
		Config: StoredTimerConfig{
			Mode:                 domain.TimerModeFixed,
			TotalDurationMinutes: 60,
		},
	})))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				st.Dispatch(Tick(1))
			}
		}()
	}
	wg.Wait()

	// Every tick is serialized, so exactly 400 seconds were consumed.
	assert.Equal(t, 3600-400, st.State().CurrentTimeSeconds)
}

func TestStoreListenersObserveStatesInApplicationOrder(t *testing.T) {
	st := newTestStore()
	require.True(t, st.Dispatch(StartMeeting(StartMeetingPayload{
		Config: StoredTimerConfig{
			Mode:                 domain.TimerModeFixed,
			TotalDurationMinutes: 60,
		},
	})))

	var seen []int
	st.Subscribe(func(s *domain.MeetingState) {
		seen = append(seen, s.CurrentTimeSeconds)
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				st.Dispatch(Tick(1))
			}
		}()
	}
	wg.Wait()

	// Delivery order matches application order: the countdown a listener
	// sees only ever decreases, with no stale state delivered late.
	require.Len(t, seen, 400)
	for i := 1; i < len(seen); i++ {
		require.Less(t, seen[i], seen[i-1])
	}
}
