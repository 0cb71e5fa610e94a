package domain

import "encoding/json"

// ParticipantStatus tracks where a participant is in the speaking rotation.
type ParticipantStatus string

const (
	ParticipantStatusPending  ParticipantStatus = "pending"
	ParticipantStatusActive   ParticipantStatus = "active"
	ParticipantStatusFinished ParticipantStatus = "finished"
	ParticipantStatusSkipped  ParticipantStatus = "skipped"
)

// ParticipantType is the permission level of a participant. Only interactive
// participants may trigger donation and skip actions.
type ParticipantType string

const (
	ParticipantTypeInteractive ParticipantType = "interactive"
	ParticipantTypeViewOnly    ParticipantType = "view_only"
)

// Participant is one meeting attendee. All time values are whole seconds.
type Participant struct {
	ID                   string            `json:"id"`
	Name                 string            `json:"name"`
	Included             bool              `json:"included"`
	Type                 ParticipantType   `json:"type"`
	Status               ParticipantStatus `json:"status"`
	AllocatedTimeSeconds int               `json:"allocated_time_seconds"`
	RemainingTimeSeconds int               `json:"remaining_time_seconds"`
	UsedTimeSeconds      int               `json:"used_time_seconds"`
	DonatedTimeSeconds   int               `json:"donated_time_seconds"`
	ReceivedTimeSeconds  int               `json:"received_time_seconds"`
}

// HasSpeakerRole reports whether this participant is the current speaker.
// Derived from Status rather than stored, so the two can never disagree.
func (p Participant) HasSpeakerRole() bool {
	return p.Status == ParticipantStatusActive
}

// TotalAvailableSeconds is the participant's speaking budget including
// donations received before their turn and minus anything given away.
func (p Participant) TotalAvailableSeconds() int {
	return p.AllocatedTimeSeconds + p.ReceivedTimeSeconds - p.DonatedTimeSeconds
}

// MarshalJSON includes the derived has_speaker_role field for UI consumers.
func (p Participant) MarshalJSON() ([]byte, error) {
	type alias Participant
	return json.Marshal(struct {
		alias
		HasSpeakerRole bool `json:"has_speaker_role"`
	}{alias(p), p.HasSpeakerRole()})
}
