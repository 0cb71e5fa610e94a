package meeting

import (
	"roundtable/internal/domain"
)

// Reduce is the single transition function of the meeting state machine.
// It is pure: given the same state and action it always produces the same
// result, and it never mutates its input. An action that is invalid in the
// current state returns the input pointer unchanged, so callers can detect
// "nothing happened" by pointer equality. Unknown actions never panic.
func Reduce(s *domain.MeetingState, a Action) *domain.MeetingState {
	switch a.Type {
	case ActionStartMeeting:
		return startMeeting(s, a.Start)
	case ActionEndMeeting:
		return endMeeting()
	case ActionPauseTimer:
		return pauseTimer(s)
	case ActionResumeTimer:
		return resumeTimer(s)
	case ActionTick:
		elapsed := a.ElapsedSeconds
		if elapsed == 0 {
			elapsed = 1
		}
		return ProcessTick(s, elapsed)
	case ActionNextParticipant:
		return nextParticipant(s)
	case ActionSetNextSpeaker:
		return setNextSpeaker(s, a.ParticipantID)
	case ActionSkipParticipant:
		return SkipParticipant(s, a.ParticipantID)
	case ActionDonateTime:
		return DonateToSpeaker(s, a.FromParticipantID, a.At)
	case ActionCustomizeParticipantTime:
		return customizeParticipantTime(s, a.ParticipantID, a.TimeSeconds)
	case ActionAddTime:
		return addTime(s)
	case ActionSetTimerStatus:
		return setTimerStatus(s, a.Status)
	default:
		return s
	}
}

// startMeeting replaces the aggregate wholesale from setup inputs. Excluded
// participants never enter the roster. In per-participant mode the first
// included participant becomes the initial speaker; fixed mode tracks no
// individual speaker.
func startMeeting(s *domain.MeetingState, payload *StartMeetingPayload) *domain.MeetingState {
	if payload == nil {
		return s
	}

	mode := payload.Config.Mode
	if mode == "" {
		mode = domain.TimerModeFixed
	}
	duration := payload.Config.DurationSeconds()

	ns := domain.NewMeetingState()
	ns.TimerConfig = domain.TimerConfig{
		Mode:                   mode,
		DurationSeconds:        duration,
		AllowExtension:         payload.Config.AllowExtension,
		ExtensionAmountSeconds: payload.Config.ExtensionAmountSeconds,
	}
	ns.KickoffSettings = payload.Kickoff
	ns.SelectedGridComponentIDs = payload.SelectedGridComponentIDs
	ns.ParticipantListVisibilityMode = payload.ParticipantListVisibilityMode

	for _, p := range payload.Participants {
		if !p.Included {
			continue
		}
		p.Status = domain.ParticipantStatusPending
		if p.Type == "" {
			p.Type = domain.ParticipantTypeInteractive
		}
		if p.AllocatedTimeSeconds == 0 {
			p.AllocatedTimeSeconds = duration
		}
		p.RemainingTimeSeconds = p.AllocatedTimeSeconds
		p.UsedTimeSeconds = 0
		p.DonatedTimeSeconds = 0
		p.ReceivedTimeSeconds = 0
		ns.Participants = append(ns.Participants, p)
	}

	ns.IsMeetingActive = true
	ns.MeetingStatus = domain.MeetingStatusInProgress
	ns.TimerStatus = domain.TimerStatusRunning

	if mode == domain.TimerModePerParticipant && len(ns.Participants) > 0 {
		activateParticipant(ns, 0)
	} else {
		ns.CurrentTimeSeconds = duration
	}
	return ns
}

// endMeeting resets to defaults; only the meeting status records that a
// meeting took place. No partial rotation or donation survives this.
func endMeeting() *domain.MeetingState {
	ns := domain.NewMeetingState()
	ns.MeetingStatus = domain.MeetingStatusFinished
	return ns
}

func pauseTimer(s *domain.MeetingState) *domain.MeetingState {
	if !s.IsMeetingActive || s.TimerStatus != domain.TimerStatusRunning {
		return s
	}
	ns := s.Clone()
	ns.TimerStatus = domain.TimerStatusPaused
	return ns
}

func resumeTimer(s *domain.MeetingState) *domain.MeetingState {
	if !s.IsMeetingActive || s.TimerStatus != domain.TimerStatusPaused {
		return s
	}
	ns := s.Clone()
	ns.TimerStatus = domain.TimerStatusRunning
	return ns
}

// nextParticipant is the manual forced advance. Per-participant mode only;
// the automatic advance on time exhaustion lives in the tick processor.
func nextParticipant(s *domain.MeetingState) *domain.MeetingState {
	if !s.IsMeetingActive || s.TimerConfig.Mode != domain.TimerModePerParticipant {
		return s
	}
	if s.TimerStatus == domain.TimerStatusFinished {
		return s
	}
	return MoveToNextParticipant(s)
}

// setNextSpeaker overrides the current speaker directly, bypassing the
// rotation scan. The target must still be awaiting its turn.
func setNextSpeaker(s *domain.MeetingState, participantID string) *domain.MeetingState {
	if !s.IsMeetingActive || s.TimerConfig.Mode != domain.TimerModePerParticipant {
		return s
	}
	idx := s.FindParticipant(participantID)
	if idx < 0 || s.Participants[idx].Status != domain.ParticipantStatusPending {
		return s
	}
	ns := s.Clone()
	if cur := ns.CurrentSpeakerIndex(); cur >= 0 && ns.Participants[cur].Status == domain.ParticipantStatusActive {
		ns.Participants[cur].Status = domain.ParticipantStatusFinished
	}
	activateParticipant(ns, idx)
	return ns
}

// customizeParticipantTime overwrites a participant's allocation and balance.
// The donation ledger fields are untouched. When the target is the current
// speaker the displayed countdown is synchronized as well.
func customizeParticipantTime(s *domain.MeetingState, participantID string, timeSeconds int) *domain.MeetingState {
	if timeSeconds < 0 {
		return s
	}
	idx := s.FindParticipant(participantID)
	if idx < 0 {
		return s
	}
	ns := s.Clone()
	ns.Participants[idx].AllocatedTimeSeconds = timeSeconds
	ns.Participants[idx].RemainingTimeSeconds = timeSeconds
	if ns.CurrentSpeakerID == participantID {
		ns.CurrentTimeSeconds = timeSeconds
	}
	return ns
}

// addTime extends the displayed countdown by the configured extension amount.
// It deliberately does not touch the per-participant remaining-time ledger:
// extension is a facilitator grant on the clock, not a transfer.
func addTime(s *domain.MeetingState) *domain.MeetingState {
	if !s.IsMeetingActive || !s.TimerConfig.AllowExtension || s.TimerConfig.ExtensionAmountSeconds <= 0 {
		return s
	}
	ns := s.Clone()
	ns.CurrentTimeSeconds += s.TimerConfig.ExtensionAmountSeconds
	return ns
}

func setTimerStatus(s *domain.MeetingState, status domain.TimerStatus) *domain.MeetingState {
	if !status.Valid() || status == s.TimerStatus {
		return s
	}
	ns := s.Clone()
	ns.TimerStatus = status
	return ns
}
