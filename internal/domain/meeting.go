package domain

import "time"

// TimerStatus is the state of the countdown clock.
type TimerStatus string

const (
	TimerStatusIdle                  TimerStatus = "idle"
	TimerStatusRunning               TimerStatus = "running"
	TimerStatusPaused                TimerStatus = "paused"
	TimerStatusFinished              TimerStatus = "finished"
	TimerStatusParticipantTransition TimerStatus = "participant_transition"
)

// Valid reports whether s is a known timer status.
func (s TimerStatus) Valid() bool {
	switch s {
	case TimerStatusIdle, TimerStatusRunning, TimerStatusPaused,
		TimerStatusFinished, TimerStatusParticipantTransition:
		return true
	}
	return false
}

// MeetingStatus tracks the whole-meeting envelope, distinct from the clock.
type MeetingStatus string

const (
	MeetingStatusNotStarted MeetingStatus = "not_started"
	MeetingStatusInProgress MeetingStatus = "in_progress"
	MeetingStatusFinished   MeetingStatus = "finished"
)

// TimerMode selects between one whole-meeting countdown and per-speaker allotments.
type TimerMode string

const (
	TimerModeFixed          TimerMode = "fixed"
	TimerModePerParticipant TimerMode = "per_participant"
)

// TimerConfig is fixed for the meeting's duration once START_MEETING sets it.
type TimerConfig struct {
	Mode                   TimerMode `json:"mode"`
	DurationSeconds        int       `json:"duration_seconds"`
	AllowExtension         bool      `json:"allow_extension"`
	ExtensionAmountSeconds int       `json:"extension_amount_seconds,omitempty"`
}

// KickoffSettings configures the optional opening round shown before the
// first speaker. Stored opaquely on the state for the UI.
type KickoffSettings struct {
	Enabled         bool   `json:"enabled"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	Prompt          string `json:"prompt,omitempty"`
}

// TimeDonation is one immutable ledger record of a time transfer. The ledger
// is append-only; records are never mutated or removed.
type TimeDonation struct {
	ID                string    `json:"id"`
	FromParticipantID string    `json:"from_participant_id"`
	ToParticipantID   string    `json:"to_participant_id"`
	AmountSeconds     int       `json:"amount_seconds"`
	Timestamp         time.Time `json:"timestamp"`
}

// MeetingState is the aggregate root owned by the reducer. Treated as
// immutable: every transition derives a new value via Clone.
type MeetingState struct {
	IsMeetingActive               bool           `json:"is_meeting_active"`
	TimerStatus                   TimerStatus    `json:"timer_status"`
	TimerConfig                   TimerConfig    `json:"timer_config"`
	Participants                  []Participant  `json:"participants"`
	CurrentSpeakerID              string         `json:"current_speaker_id,omitempty"`
	CurrentTimeSeconds            int            `json:"current_time_seconds"`
	SpeakerQueue                  []string       `json:"speaker_queue"`
	MeetingStatus                 MeetingStatus  `json:"meeting_status"`
	Donations                     []TimeDonation `json:"donations"`
	KickoffSettings               KickoffSettings `json:"kickoff_settings"`
	SelectedGridComponentIDs      []string       `json:"selected_grid_component_ids,omitempty"`
	ParticipantListVisibilityMode string         `json:"participant_list_visibility_mode,omitempty"`
}

// NewMeetingState returns the all-default aggregate: no meeting, idle clock.
func NewMeetingState() *MeetingState {
	return &MeetingState{
		TimerStatus:   TimerStatusIdle,
		MeetingStatus: MeetingStatusNotStarted,
	}
}

// Clone returns a deep copy. Slices are copied so a derived state never
// shares mutable backing arrays with its parent.
func (s *MeetingState) Clone() *MeetingState {
	ns := *s
	if s.Participants != nil {
		ns.Participants = make([]Participant, len(s.Participants))
		copy(ns.Participants, s.Participants)
	}
	if s.SpeakerQueue != nil {
		ns.SpeakerQueue = make([]string, len(s.SpeakerQueue))
		copy(ns.SpeakerQueue, s.SpeakerQueue)
	}
	if s.Donations != nil {
		ns.Donations = make([]TimeDonation, len(s.Donations))
		copy(ns.Donations, s.Donations)
	}
	if s.SelectedGridComponentIDs != nil {
		ns.SelectedGridComponentIDs = make([]string, len(s.SelectedGridComponentIDs))
		copy(ns.SelectedGridComponentIDs, s.SelectedGridComponentIDs)
	}
	return &ns
}

// FindParticipant returns the index of the participant with the given id,
// or -1 when absent.
func (s *MeetingState) FindParticipant(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.Participants {
		if s.Participants[i].ID == id {
			return i
		}
	}
	return -1
}

// CurrentSpeakerIndex returns the index of the current speaker, or -1 when
// no speaker is tracked (fixed mode, or rotation not started/ended).
func (s *MeetingState) CurrentSpeakerIndex() int {
	return s.FindParticipant(s.CurrentSpeakerID)
}

// TotalRemainingSeconds sums remaining time across all participants. Donations
// move time between participants without changing this sum.
func (s *MeetingState) TotalRemainingSeconds() int {
	total := 0
	for i := range s.Participants {
		total += s.Participants[i].RemainingTimeSeconds
	}
	return total
}
