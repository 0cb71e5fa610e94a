package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"roundtable/internal/meeting"
	"roundtable/internal/middleware"
	"roundtable/internal/repository"
	"roundtable/internal/service"
	"roundtable/pkg/errors"
	"roundtable/pkg/logger"
)

// MeetingHandler maps the meeting action routes onto the meeting service.
type MeetingHandler struct {
	meetings service.MeetingService
	archive  repository.ArchiveRepository
	logger   *logger.Logger
}

// NewMeetingHandler creates a new meeting handler. archive may be nil when
// Postgres is not configured.
func NewMeetingHandler(meetings service.MeetingService, archive repository.ArchiveRepository, logger *logger.Logger) *MeetingHandler {
	return &MeetingHandler{
		meetings: meetings,
		archive:  archive,
		logger:   logger,
	}
}

// GetState handles GET /api/v1/meeting/state
func (h *MeetingHandler) GetState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.meetings.Snapshot(r.Context()), h.logger)
}

// Start handles POST /api/v1/meeting/start. An empty body starts the meeting
// from the persisted setup configuration.
func (h *MeetingHandler) Start(w http.ResponseWriter, r *http.Request) {
	var payload *meeting.StartMeetingPayload
	if r.ContentLength != 0 {
		payload = &meeting.StartMeetingPayload{}
		if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
			respondError(w, errors.NewValidationError("Invalid request body", nil), h.logger)
			return
		}
	}

	state, err := h.meetings.Start(r.Context(), payload)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, state, h.logger)
}

// End handles POST /api/v1/meeting/end
func (h *MeetingHandler) End(w http.ResponseWriter, r *http.Request) {
	state, err := h.meetings.End(r.Context())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, state, h.logger)
}

// Pause handles POST /api/v1/meeting/pause
func (h *MeetingHandler) Pause(w http.ResponseWriter, r *http.Request) {
	state, err := h.meetings.Pause(r.Context())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, state, h.logger)
}

// Resume handles POST /api/v1/meeting/resume
func (h *MeetingHandler) Resume(w http.ResponseWriter, r *http.Request) {
	state, err := h.meetings.Resume(r.Context())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, state, h.logger)
}

// Next handles POST /api/v1/meeting/next
func (h *MeetingHandler) Next(w http.ResponseWriter, r *http.Request) {
	state, err := h.meetings.NextSpeaker(r.Context())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, state, h.logger)
}

// SetSpeakerRequest is the body of POST /api/v1/meeting/speaker
type SetSpeakerRequest struct {
	ParticipantID string `json:"participant_id"`
}

// SetSpeaker handles POST /api/v1/meeting/speaker
func (h *MeetingHandler) SetSpeaker(w http.ResponseWriter, r *http.Request) {
	var req SetSpeakerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ParticipantID == "" {
		respondError(w, errors.NewValidationError("participant_id is required", nil), h.logger)
		return
	}

	state, err := h.meetings.SetNextSpeaker(r.Context(), req.ParticipantID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, state, h.logger)
}

// Skip handles POST /api/v1/meeting/skip/{participantId}
func (h *MeetingHandler) Skip(w http.ResponseWriter, r *http.Request) {
	participantID := chi.URLParam(r, "participantId")
	if participantID == "" {
		respondError(w, errors.NewValidationError("participant id is required", nil), h.logger)
		return
	}

	state, err := h.meetings.Skip(r.Context(), participantID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, state, h.logger)
}

// Donate handles POST /api/v1/meeting/donate. The donor is always the
// session participant; clients cannot donate on someone else's behalf.
func (h *MeetingHandler) Donate(w http.ResponseWriter, r *http.Request) {
	claims := middleware.SessionFromContext(r.Context())
	if claims == nil {
		respondError(w, errors.NewAuthenticationError("Session is required"), h.logger)
		return
	}

	state, err := h.meetings.Donate(r.Context(), claims.ParticipantID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, state, h.logger)
}

// CustomizeTimeRequest is the body of PUT /api/v1/meeting/participants/{participantId}/time
type CustomizeTimeRequest struct {
	TimeSeconds int `json:"time_seconds"`
}

// CustomizeTime handles PUT /api/v1/meeting/participants/{participantId}/time
func (h *MeetingHandler) CustomizeTime(w http.ResponseWriter, r *http.Request) {
	participantID := chi.URLParam(r, "participantId")
	if participantID == "" {
		respondError(w, errors.NewValidationError("participant id is required", nil), h.logger)
		return
	}

	var req CustomizeTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.NewValidationError("Invalid request body", nil), h.logger)
		return
	}
	if req.TimeSeconds < 0 {
		respondError(w, errors.NewValidationError("time_seconds must not be negative", nil), h.logger)
		return
	}

	state, err := h.meetings.CustomizeTime(r.Context(), participantID, req.TimeSeconds)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, state, h.logger)
}

// AddTime handles POST /api/v1/meeting/add-time
func (h *MeetingHandler) AddTime(w http.ResponseWriter, r *http.Request) {
	state, err := h.meetings.AddTime(r.Context())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, state, h.logger)
}

// Archive handles GET /api/v1/meeting/archive
func (h *MeetingHandler) Archive(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			respondError(w, errors.NewValidationError("limit must be between 1 and 100", nil), h.logger)
			return
		}
		limit = parsed
	}

	if h.archive == nil {
		respondJSON(w, http.StatusOK, []interface{}{}, h.logger)
		return
	}

	summaries, err := h.archive.ListRecent(r.Context(), limit)
	if err != nil {
		respondError(w, errors.NewInternalError("Failed to list archived meetings", err), h.logger)
		return
	}
	respondJSON(w, http.StatusOK, summaries, h.logger)
}
