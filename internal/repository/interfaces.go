package repository

import (
	"context"

	"roundtable/internal/domain"
)

// ArchiveRepository defines the interface for post-meeting archive operations
type ArchiveRepository interface {
	// SaveMeeting persists a finished meeting's summary and its donation ledger
	SaveMeeting(ctx context.Context, summary *domain.MeetingSummary, donations []domain.TimeDonation) error

	// ListRecent retrieves the most recently archived meetings
	ListRecent(ctx context.Context, limit int) ([]*domain.MeetingSummary, error)
}
