package repository

import (
	"context"
	"fmt"

	"roundtable/internal/domain"
	"roundtable/pkg/database"
)

// archiveRepository persists finished meetings with PostgreSQL
type archiveRepository struct {
	db *database.PostgresDB
}

// NewArchiveRepository creates a new archive repository
func NewArchiveRepository(db *database.PostgresDB) ArchiveRepository {
	return &archiveRepository{
		db: db,
	}
}

// SaveMeeting persists the meeting summary and its donation ledger in one
// transaction, so a partially archived meeting can never be observed.
func (r *archiveRepository) SaveMeeting(ctx context.Context, summary *domain.MeetingSummary, donations []domain.TimeDonation) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin archive transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO meeting_archive (id, mode, duration_seconds, participant_count, donation_count, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.Exec(ctx, query,
		summary.ID,
		summary.Mode,
		summary.DurationSeconds,
		summary.ParticipantCount,
		summary.DonationCount,
		summary.FinishedAt,
	); err != nil {
		return fmt.Errorf("failed to insert meeting summary: %w", err)
	}

	donationQuery := `
		INSERT INTO meeting_donations (id, meeting_id, from_participant_id, to_participant_id, amount_seconds, donated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, d := range donations {
		if _, err := tx.Exec(ctx, donationQuery,
			d.ID,
			summary.ID,
			d.FromParticipantID,
			d.ToParticipantID,
			d.AmountSeconds,
			d.Timestamp,
		); err != nil {
			return fmt.Errorf("failed to insert donation record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit archive transaction: %w", err)
	}
	return nil
}

// ListRecent retrieves the most recently archived meetings
func (r *archiveRepository) ListRecent(ctx context.Context, limit int) ([]*domain.MeetingSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, mode, duration_seconds, participant_count, donation_count, finished_at
		FROM meeting_archive
		ORDER BY finished_at DESC
		LIMIT $1
	`
	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived meetings: %w", err)
	}
	defer rows.Close()

	summaries := make([]*domain.MeetingSummary, 0, limit)
	for rows.Next() {
		s := &domain.MeetingSummary{}
		if err := rows.Scan(
			&s.ID,
			&s.Mode,
			&s.DurationSeconds,
			&s.ParticipantCount,
			&s.DonationCount,
			&s.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan archived meeting: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read archived meetings: %w", err)
	}

	return summaries, nil
}
