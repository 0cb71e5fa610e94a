package meeting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roundtable/internal/domain"
)

func TestReduceUnknownActionReturnsSameState(t *testing.T) {
	s := domain.NewMeetingState()
	next := Reduce(s, Action{Type: ActionType("NO_SUCH_ACTION")})
	assert.Same(t, s, next)
}

func TestStartMeetingFixedMode(t *testing.T) {
	s := startFixed(t, 1, "alice", "bob")

	assert.Equal(t, domain.TimerModeFixed, s.TimerConfig.Mode)
	assert.Equal(t, 60, s.TimerConfig.DurationSeconds)
	assert.Equal(t, 60, s.CurrentTimeSeconds)
	assert.Equal(t, domain.MeetingStatusInProgress, s.MeetingStatus)
	assert.Empty(t, s.CurrentSpeakerID, "fixed mode tracks no individual speaker")
	assert.Empty(t, s.SpeakerQueue)
}

func TestStartMeetingPerParticipantSelectsFirstSpeaker(t *testing.T) {
	s := startPerParticipant(t, 30, "alice", "bob")

	require.Len(t, s.Participants, 2)
	assert.Equal(t, "p-alice", s.CurrentSpeakerID)
	assert.Equal(t, domain.ParticipantStatusActive, s.Participants[0].Status)
	assert.True(t, s.Participants[0].HasSpeakerRole())
	assert.Equal(t, domain.ParticipantStatusPending, s.Participants[1].Status)
	assert.Equal(t, 30, s.CurrentTimeSeconds)
	assert.Equal(t, []string{"p-bob"}, s.SpeakerQueue)
}

func TestStartMeetingFiltersExcludedParticipants(t *testing.T) {
	ps := roster("alice", "bob", "carol")
	ps[1].Included = false

	s := Reduce(domain.NewMeetingState(), StartMeeting(StartMeetingPayload{
		Config: StoredTimerConfig{
			Mode:                          domain.TimerModePerParticipant,
			DurationPerParticipantSeconds: 30,
		},
		Participants: ps,
	}))

	require.Len(t, s.Participants, 2)
	assert.Equal(t, "p-alice", s.Participants[0].ID)
	assert.Equal(t, "p-carol", s.Participants[1].ID)
}

func TestStartMeetingDurationFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		config   StoredTimerConfig
		expected int
	}{
		{
			name: "per-participant seconds take precedence",
			config: StoredTimerConfig{
				Mode:                          domain.TimerModePerParticipant,
				DurationPerParticipantSeconds: 45,
				PerParticipantMinutes:         5,
			},
			expected: 45,
		},
		{
			name: "falls back to per-participant minutes",
			config: StoredTimerConfig{
				Mode:                  domain.TimerModePerParticipant,
				PerParticipantMinutes: 2,
			},
			expected: 120,
		},
		{
			name: "missing duration degrades to zero",
			config: StoredTimerConfig{
				Mode: domain.TimerModePerParticipant,
			},
			expected: 0,
		},
		{
			name: "fixed mode uses total minutes",
			config: StoredTimerConfig{
				Mode:                 domain.TimerModeFixed,
				TotalDurationMinutes: 3,
			},
			expected: 180,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DurationSeconds())
		})
	}
}

func TestEndMeetingResetsToDefaults(t *testing.T) {
	s := startPerParticipant(t, 30, "alice", "bob")
	s = Reduce(s, EndMeeting())

	assert.False(t, s.IsMeetingActive)
	assert.Equal(t, domain.TimerStatusIdle, s.TimerStatus)
	assert.Equal(t, domain.MeetingStatusFinished, s.MeetingStatus)
	assert.Empty(t, s.Participants)
	assert.Empty(t, s.Donations)
	assert.Empty(t, s.CurrentSpeakerID)
}

func TestPauseResume(t *testing.T) {
	s := startFixed(t, 1)

	paused := Reduce(s, PauseTimer())
	require.Equal(t, domain.TimerStatusPaused, paused.TimerStatus)

	// Pausing again is a no-op.
	assert.Same(t, paused, Reduce(paused, PauseTimer()))
	// Resuming when running is a no-op.
	assert.Same(t, s, Reduce(s, ResumeTimer()))

	resumed := Reduce(paused, ResumeTimer())
	assert.Equal(t, domain.TimerStatusRunning, resumed.TimerStatus)
}

func TestPauseWithoutMeetingIsNoop(t *testing.T) {
	s := domain.NewMeetingState()
	assert.Same(t, s, Reduce(s, PauseTimer()))
	assert.Same(t, s, Reduce(s, ResumeTimer()))
}

func TestAddTime(t *testing.T) {
	start := func(allow bool, amount int) *domain.MeetingState {
		return Reduce(domain.NewMeetingState(), StartMeeting(StartMeetingPayload{
			Config: StoredTimerConfig{
				Mode:                   domain.TimerModeFixed,
				TotalDurationMinutes:   1,
				AllowExtension:         allow,
				ExtensionAmountSeconds: amount,
			},
			Participants: roster("alice"),
		}))
	}

	s := start(true, 15)
	s = Reduce(s, AddTime())
	assert.Equal(t, 75, s.CurrentTimeSeconds)

	disallowed := start(false, 15)
	assert.Same(t, disallowed, Reduce(disallowed, AddTime()))

	noAmount := start(true, 0)
	assert.Same(t, noAmount, Reduce(noAmount, AddTime()))
}

func TestAddTimeDoesNotTouchParticipantLedger(t *testing.T) {
	s := Reduce(domain.NewMeetingState(), StartMeeting(StartMeetingPayload{
		Config: StoredTimerConfig{
			Mode:                          domain.TimerModePerParticipant,
			DurationPerParticipantSeconds: 30,
			AllowExtension:                true,
			ExtensionAmountSeconds:        15,
		},
		Participants: roster("alice"),
	}))

	next := Reduce(s, AddTime())
	assert.Equal(t, 45, next.CurrentTimeSeconds)
	// Intentional asymmetry: the speaker's balance is not re-derived.
	assert.Equal(t, 30, next.Participants[0].RemainingTimeSeconds)
}

func TestCustomizeParticipantTime(t *testing.T) {
	s := startPerParticipant(t, 30, "alice", "bob")

	next := Reduce(s, CustomizeParticipantTime("p-bob", 90))
	require.NotSame(t, s, next)
	assert.Equal(t, 90, next.Participants[1].AllocatedTimeSeconds)
	assert.Equal(t, 90, next.Participants[1].RemainingTimeSeconds)
	// Not the current speaker: the countdown is untouched.
	assert.Equal(t, 30, next.CurrentTimeSeconds)

	// Customizing the current speaker synchronizes the countdown.
	synced := Reduce(s, CustomizeParticipantTime("p-alice", 120))
	assert.Equal(t, 120, synced.CurrentTimeSeconds)
	assert.Equal(t, 120, synced.Participants[0].RemainingTimeSeconds)
}

func TestCustomizeParticipantTimeFailsClosed(t *testing.T) {
	s := startPerParticipant(t, 30, "alice")
	assert.Same(t, s, Reduce(s, CustomizeParticipantTime("p-nobody", 60)))
	assert.Same(t, s, Reduce(s, CustomizeParticipantTime("p-alice", -5)))
}

func TestSetNextSpeakerOverridesRotation(t *testing.T) {
	s := startPerParticipant(t, 30, "alice", "bob", "carol")

	next := Reduce(s, SetNextSpeaker("p-carol"))
	require.NotSame(t, s, next)
	assert.Equal(t, "p-carol", next.CurrentSpeakerID)
	assert.Equal(t, domain.ParticipantStatusFinished, next.Participants[0].Status)
	assert.Equal(t, domain.ParticipantStatusPending, next.Participants[1].Status)
	assert.Equal(t, 30, next.CurrentTimeSeconds)
	assert.Equal(t, []string{"p-bob"}, next.SpeakerQueue)
}

func TestSetNextSpeakerRejectsNonPendingTarget(t *testing.T) {
	s := startPerParticipant(t, 30, "alice", "bob")

	// The current speaker is not pending.
	assert.Same(t, s, Reduce(s, SetNextSpeaker("p-alice")))
	assert.Same(t, s, Reduce(s, SetNextSpeaker("p-nobody")))

	skipped := Reduce(s, SkipParticipantAction("p-bob"))
	assert.Same(t, skipped, Reduce(skipped, SetNextSpeaker("p-bob")))
}

func TestSetTimerStatusOverride(t *testing.T) {
	s := startFixed(t, 1)

	next := Reduce(s, SetTimerStatus(domain.TimerStatusParticipantTransition))
	assert.Equal(t, domain.TimerStatusParticipantTransition, next.TimerStatus)

	assert.Same(t, s, Reduce(s, SetTimerStatus(domain.TimerStatus("bogus"))))
	assert.Same(t, s, Reduce(s, SetTimerStatus(domain.TimerStatusRunning)))
}

func TestSingleActiveSpeakerInvariant(t *testing.T) {
	s := startPerParticipant(t, 5, "alice", "bob", "carol")

	actions := []Action{
		Tick(1),
		SkipParticipantAction("p-bob"),
		Tick(2),
		NextParticipant(),
		Tick(1),
		NextParticipant(),
		Tick(10),
	}
	for _, a := range actions {
		s = Reduce(s, a)
		assert.LessOrEqual(t, activeCount(s), 1, "at most one ACTIVE participant after %s", a.Type)
	}
}
