package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"roundtable/internal/domain"
	"roundtable/internal/meeting"
	"roundtable/internal/repository"
	"roundtable/pkg/errors"
	"roundtable/pkg/logger"
)

// meetingService drives the single live meeting of this process: it owns the
// store and the timer driver, dispatches reducer actions, and archives the
// meeting when it ends. Reducer rejections come back as conflict errors so
// the HTTP layer can surface them as 409.
type meetingService struct {
	store   *meeting.Store
	driver  *meeting.Driver
	setup   SetupService
	archive repository.ArchiveRepository
	logger  *logger.Logger
}

// NewMeetingService creates a meeting service. setup and archive may be nil
// when Redis or Postgres is not configured.
func NewMeetingService(setup SetupService, archive repository.ArchiveRepository, clock meeting.Clock, logger *logger.Logger) MeetingService {
	store := meeting.NewStore(logger)
	return &meetingService{
		store:   store,
		driver:  meeting.NewDriver(store, clock, logger),
		setup:   setup,
		archive: archive,
		logger:  logger,
	}
}

// Start begins a meeting from the given payload; a nil payload falls back to
// the persisted setup configuration
func (m *meetingService) Start(ctx context.Context, payload *meeting.StartMeetingPayload) (*domain.MeetingState, error) {
	if payload == nil {
		loaded, err := m.loadSetupPayload(ctx)
		if err != nil {
			return nil, err
		}
		payload = loaded
	}

	if payload.Config.DurationSeconds() == 0 {
		// Configuration defect, not a failure: the meeting starts and every
		// turn expires on the first tick.
		m.logger.WithField("mode", string(payload.Config.Mode)).Warn("Timer configuration yields zero duration")
	}
	for i := range payload.Participants {
		if payload.Participants[i].ID == "" {
			payload.Participants[i].ID = uuid.NewString()
		}
	}

	if !m.store.Dispatch(meeting.StartMeeting(*payload)) {
		return nil, errors.NewConflictError("Meeting could not be started")
	}
	m.driver.Start()

	state := m.store.State()
	m.logger.WithFields(map[string]interface{}{
		"mode":         string(state.TimerConfig.Mode),
		"participants": len(state.Participants),
	}).Info("Meeting started")
	return state, nil
}

// End finishes the meeting and archives it when an archive is configured
func (m *meetingService) End(ctx context.Context) (*domain.MeetingState, error) {
	final := m.store.State()
	if !final.IsMeetingActive {
		return nil, errors.NewConflictError("No active meeting to end")
	}

	if !m.store.Dispatch(meeting.EndMeeting()) {
		return nil, errors.NewConflictError("Meeting could not be ended")
	}
	m.driver.Stop()

	if m.archive != nil {
		summary := &domain.MeetingSummary{
			ID:               uuid.NewString(),
			Mode:             final.TimerConfig.Mode,
			DurationSeconds:  final.TimerConfig.DurationSeconds,
			ParticipantCount: len(final.Participants),
			DonationCount:    len(final.Donations),
			FinishedAt:       time.Now().UTC(),
		}
		if err := m.archive.SaveMeeting(ctx, summary, final.Donations); err != nil {
			// Archival is best effort; the meeting is over either way.
			m.logger.WithError(err).Error("Failed to archive meeting")
		} else {
			m.logger.WithField("meeting_id", summary.ID).Info("Meeting archived")
		}
	}

	return m.store.State(), nil
}

// Pause suspends the countdown
func (m *meetingService) Pause(ctx context.Context) (*domain.MeetingState, error) {
	if !m.store.Dispatch(meeting.PauseTimer()) {
		return nil, errors.NewConflictError("Timer is not running")
	}
	m.driver.Stop()
	return m.store.State(), nil
}

// Resume restarts a paused countdown
func (m *meetingService) Resume(ctx context.Context) (*domain.MeetingState, error) {
	if !m.store.Dispatch(meeting.ResumeTimer()) {
		return nil, errors.NewConflictError("Timer is not paused")
	}
	m.driver.Start()
	return m.store.State(), nil
}

// NextSpeaker forces the rotation forward
func (m *meetingService) NextSpeaker(ctx context.Context) (*domain.MeetingState, error) {
	return m.dispatch(meeting.NextParticipant(), "Cannot advance to the next participant")
}

// SetNextSpeaker promotes a specific pending participant to speaker
func (m *meetingService) SetNextSpeaker(ctx context.Context, participantID string) (*domain.MeetingState, error) {
	return m.dispatch(meeting.SetNextSpeaker(participantID), "Participant cannot take the floor")
}

// Skip forfeits a participant's turn
func (m *meetingService) Skip(ctx context.Context, participantID string) (*domain.MeetingState, error) {
	return m.dispatch(meeting.SkipParticipantAction(participantID), "Participant cannot be skipped")
}

// Donate transfers time from the given participant to the current speaker
func (m *meetingService) Donate(ctx context.Context, fromParticipantID string) (*domain.MeetingState, error) {
	return m.dispatch(meeting.DonateTime(fromParticipantID, time.Now().UTC()), "Donation is not possible right now")
}

// CustomizeTime overwrites a participant's time allocation
func (m *meetingService) CustomizeTime(ctx context.Context, participantID string, timeSeconds int) (*domain.MeetingState, error) {
	return m.dispatch(meeting.CustomizeParticipantTime(participantID, timeSeconds), "Time allocation cannot be changed")
}

// AddTime extends the current countdown by the configured amount
func (m *meetingService) AddTime(ctx context.Context) (*domain.MeetingState, error) {
	return m.dispatch(meeting.AddTime(), "Time extension is not allowed")
}

// Snapshot returns the current state
func (m *meetingService) Snapshot(ctx context.Context) *domain.MeetingState {
	return m.store.State()
}

// Stop halts the timer driver during shutdown
func (m *meetingService) Stop(ctx context.Context) error {
	m.driver.Stop()
	return nil
}

func (m *meetingService) dispatch(a meeting.Action, conflictMessage string) (*domain.MeetingState, error) {
	if !m.store.Dispatch(a) {
		return nil, errors.NewConflictError(conflictMessage)
	}
	return m.store.State(), nil
}

// loadSetupPayload assembles a start payload from the persisted setup
// configuration.
func (m *meetingService) loadSetupPayload(ctx context.Context) (*meeting.StartMeetingPayload, error) {
	if m.setup == nil {
		return nil, errors.NewValidationError("No meeting configuration supplied and setup storage is not configured", nil)
	}

	cfg, err := m.setup.GetTimerConfig(ctx)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load timer configuration", err)
	}
	if cfg == nil {
		return nil, errors.NewValidationError("No timer configuration has been saved", nil)
	}
	roster, err := m.setup.GetRoster(ctx)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load participant roster", err)
	}

	return &meeting.StartMeetingPayload{
		Config:       *cfg,
		Participants: roster,
	}, nil
}
