package meeting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"roundtable/internal/domain"
)

// timeStamp is a fixed instant for deterministic ledger records.
func timeStamp() time.Time {
	return time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
}

func roster(names ...string) []domain.Participant {
	ps := make([]domain.Participant, 0, len(names))
	for _, n := range names {
		ps = append(ps, domain.Participant{
			ID:       "p-" + n,
			Name:     n,
			Included: true,
			Type:     domain.ParticipantTypeInteractive,
		})
	}
	return ps
}

// startPerParticipant starts a per-participant meeting with the given
// per-speaker duration and roster names.
func startPerParticipant(t *testing.T, durationSeconds int, names ...string) *domain.MeetingState {
	t.Helper()
	s := Reduce(domain.NewMeetingState(), StartMeeting(StartMeetingPayload{
		Config: StoredTimerConfig{
			Mode:                          domain.TimerModePerParticipant,
			DurationPerParticipantSeconds: durationSeconds,
		},
		Participants: roster(names...),
	}))
	require.True(t, s.IsMeetingActive)
	require.Equal(t, domain.TimerStatusRunning, s.TimerStatus)
	return s
}

// startFixed starts a fixed-mode meeting with the given total minutes.
func startFixed(t *testing.T, totalMinutes int, names ...string) *domain.MeetingState {
	t.Helper()
	s := Reduce(domain.NewMeetingState(), StartMeeting(StartMeetingPayload{
		Config: StoredTimerConfig{
			Mode:                 domain.TimerModeFixed,
			TotalDurationMinutes: totalMinutes,
		},
		Participants: roster(names...),
	}))
	require.True(t, s.IsMeetingActive)
	return s
}

func activeCount(s *domain.MeetingState) int {
	n := 0
	for i := range s.Participants {
		if s.Participants[i].Status == domain.ParticipantStatusActive {
			n++
		}
	}
	return n
}
