package meeting

import (
	"roundtable/internal/domain"
)

// MoveToNextParticipant advances the rotation. It always succeeds: either a
// next speaker is activated or the meeting reaches its terminal state. The
// scan is a strict forward pass over the roster in array order, with no
// wraparound and no re-visiting of finished or skipped participants.
func MoveToNextParticipant(s *domain.MeetingState) *domain.MeetingState {
	ns := s.Clone()

	if cur := ns.CurrentSpeakerIndex(); cur >= 0 && ns.Participants[cur].Status == domain.ParticipantStatusActive {
		ns.Participants[cur].Status = domain.ParticipantStatusFinished
	}
	ns.CurrentSpeakerID = ""

	next := -1
	for i := range ns.Participants {
		if ns.Participants[i].Status == domain.ParticipantStatusPending {
			next = i
			break
		}
	}
	if next < 0 {
		// Rotation exhausted. Terminal: no further ticks have effect.
		ns.CurrentTimeSeconds = 0
		ns.SpeakerQueue = nil
		ns.TimerStatus = domain.TimerStatusFinished
		ns.MeetingStatus = domain.MeetingStatusFinished
		return ns
	}

	activateParticipant(ns, next)
	return ns
}

// activateParticipant makes the participant at idx the current speaker. The
// countdown resets to their total available time, so donations received
// before their turn persist into their speaking time.
func activateParticipant(ns *domain.MeetingState, idx int) {
	p := &ns.Participants[idx]
	p.Status = domain.ParticipantStatusActive
	p.RemainingTimeSeconds = p.TotalAvailableSeconds()
	ns.CurrentSpeakerID = p.ID
	ns.CurrentTimeSeconds = p.RemainingTimeSeconds
	// A paused clock stays paused across a speaker change; only an explicit
	// resume restarts it.
	if ns.TimerStatus != domain.TimerStatusPaused {
		ns.TimerStatus = domain.TimerStatusRunning
	}
	rebuildSpeakerQueue(ns)
}

// rebuildSpeakerQueue keeps the auxiliary queue consistent with PENDING
// membership, in roster order.
func rebuildSpeakerQueue(ns *domain.MeetingState) {
	ns.SpeakerQueue = nil
	for i := range ns.Participants {
		if ns.Participants[i].Status == domain.ParticipantStatusPending {
			ns.SpeakerQueue = append(ns.SpeakerQueue, ns.Participants[i].ID)
		}
	}
}

// SkipParticipant marks the target SKIPPED. Like FINISHED, skipped is
// terminal: the participant never re-enters rotation. Skipping the current
// speaker advances immediately; skipping a future participant only removes
// them from the queue.
func SkipParticipant(s *domain.MeetingState, participantID string) *domain.MeetingState {
	idx := s.FindParticipant(participantID)
	if idx < 0 {
		return s
	}
	switch s.Participants[idx].Status {
	case domain.ParticipantStatusFinished, domain.ParticipantStatusSkipped:
		return s
	}

	ns := s.Clone()
	wasCurrent := ns.CurrentSpeakerID == participantID
	ns.Participants[idx].Status = domain.ParticipantStatusSkipped
	if wasCurrent {
		ns.CurrentSpeakerID = ""
		return MoveToNextParticipant(ns)
	}
	rebuildSpeakerQueue(ns)
	return ns
}
