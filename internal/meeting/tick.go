package meeting

import (
	"roundtable/internal/domain"
)

// ProcessTick applies elapsed seconds of wall-clock time to the countdown.
// It is a no-op (same pointer returned) unless a meeting is active and the
// timer is running, which makes the terminal state idempotent under ticks.
//
// Time values are non-negative integers; the decrement clamps at zero. When
// the current speaker's balance reaches zero the rotation engine advances,
// strictly after the decrement has been applied and observed at zero.
func ProcessTick(s *domain.MeetingState, elapsedSeconds int) *domain.MeetingState {
	if elapsedSeconds <= 0 {
		return s
	}
	if !s.IsMeetingActive || s.TimerStatus != domain.TimerStatusRunning {
		return s
	}

	ns := s.Clone()

	idx := ns.CurrentSpeakerIndex()
	if idx < 0 {
		// Fixed mode: one whole-meeting countdown, no individual speaker.
		ns.CurrentTimeSeconds -= elapsedSeconds
		if ns.CurrentTimeSeconds <= 0 {
			ns.CurrentTimeSeconds = 0
			ns.TimerStatus = domain.TimerStatusFinished
			ns.MeetingStatus = domain.MeetingStatusFinished
		}
		return ns
	}

	p := &ns.Participants[idx]
	consumed := elapsedSeconds
	if consumed > p.RemainingTimeSeconds {
		consumed = p.RemainingTimeSeconds
	}
	p.RemainingTimeSeconds -= consumed
	p.UsedTimeSeconds += consumed
	ns.CurrentTimeSeconds = p.RemainingTimeSeconds

	if p.RemainingTimeSeconds == 0 {
		// Automatic advance, distinct from the manual NEXT_PARTICIPANT path.
		return MoveToNextParticipant(ns)
	}
	return ns
}
