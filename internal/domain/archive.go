package domain

import "time"

// MeetingSummary is one row of the post-meeting archive. Written when a
// meeting ends; live timer state itself is never persisted.
type MeetingSummary struct {
	ID               string    `json:"id"`
	Mode             TimerMode `json:"mode"`
	DurationSeconds  int       `json:"duration_seconds"`
	ParticipantCount int       `json:"participant_count"`
	DonationCount    int       `json:"donation_count"`
	FinishedAt       time.Time `json:"finished_at"`
}
