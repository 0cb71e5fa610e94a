package service

import (
	"context"
	"encoding/json"

	"roundtable/internal/domain"
	"roundtable/internal/meeting"
)

// MeetingService defines the interface for driving the single live meeting
type MeetingService interface {
	// Start begins a meeting from the given payload; a nil payload falls
	// back to the persisted setup configuration
	Start(ctx context.Context, payload *meeting.StartMeetingPayload) (*domain.MeetingState, error)

	// End finishes the meeting and archives it when an archive is configured
	End(ctx context.Context) (*domain.MeetingState, error)

	// Pause suspends the countdown
	Pause(ctx context.Context) (*domain.MeetingState, error)

	// Resume restarts a paused countdown
	Resume(ctx context.Context) (*domain.MeetingState, error)

	// NextSpeaker forces the rotation forward
	NextSpeaker(ctx context.Context) (*domain.MeetingState, error)

	// SetNextSpeaker promotes a specific pending participant to speaker
	SetNextSpeaker(ctx context.Context, participantID string) (*domain.MeetingState, error)

	// Skip forfeits a participant's turn
	Skip(ctx context.Context, participantID string) (*domain.MeetingState, error)

	// Donate transfers time from the given participant to the current speaker
	Donate(ctx context.Context, fromParticipantID string) (*domain.MeetingState, error)

	// CustomizeTime overwrites a participant's time allocation
	CustomizeTime(ctx context.Context, participantID string, timeSeconds int) (*domain.MeetingState, error)

	// AddTime extends the current countdown by the configured amount
	AddTime(ctx context.Context) (*domain.MeetingState, error)

	// Snapshot returns the current state
	Snapshot(ctx context.Context) *domain.MeetingState

	// Stop halts the timer driver during shutdown
	Stop(ctx context.Context) error
}

// SetupService defines the interface for persistent setup configuration
type SetupService interface {
	// SaveTimerConfig stores the timer configuration blob
	SaveTimerConfig(ctx context.Context, cfg meeting.StoredTimerConfig) error

	// GetTimerConfig retrieves the stored timer configuration; nil when unset
	GetTimerConfig(ctx context.Context) (*meeting.StoredTimerConfig, error)

	// SaveRoster stores the participant roster
	SaveRoster(ctx context.Context, roster []domain.Participant) error

	// GetRoster retrieves the stored roster; nil when unset
	GetRoster(ctx context.Context) ([]domain.Participant, error)

	// SaveLayout stores the widget layout blob opaquely
	SaveLayout(ctx context.Context, layout json.RawMessage) error

	// GetLayout retrieves the stored layout blob; nil when unset
	GetLayout(ctx context.Context) (json.RawMessage, error)
}

// SessionService defines the interface for participant session tokens
type SessionService interface {
	// IssueToken mints a signed session token for the given claims
	IssueToken(ctx context.Context, claims domain.SessionClaims) (string, error)

	// ValidateToken verifies a session token and returns its claims
	ValidateToken(ctx context.Context, token string) (*domain.SessionClaims, error)
}

// Services aggregates all service interfaces
type Services struct {
	Meeting MeetingService
	Setup   SetupService
	Session SessionService
}
