package handler

import (
	"encoding/json"
	"net/http"

	"roundtable/internal/domain"
	"roundtable/internal/service"
	"roundtable/pkg/errors"
	"roundtable/pkg/logger"
)

// SessionHandler mints participant session tokens.
type SessionHandler struct {
	sessions service.SessionService
	logger   *logger.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions service.SessionService, logger *logger.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// JoinRequest is the body of POST /api/v1/meeting/join
type JoinRequest struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	Type          string `json:"type,omitempty"`
}

// JoinResponse carries the minted session token.
type JoinResponse struct {
	Token         string                 `json:"token"`
	ParticipantID string                 `json:"participant_id"`
	Type          domain.ParticipantType `json:"type"`
}

// Join handles POST /api/v1/meeting/join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.NewValidationError("Invalid request body", nil), h.logger)
		return
	}
	if req.ParticipantID == "" || req.Name == "" {
		respondError(w, errors.NewValidationError("participant_id and name are required", nil), h.logger)
		return
	}

	pt := domain.ParticipantType(req.Type)
	switch pt {
	case "":
		pt = domain.ParticipantTypeInteractive
	case domain.ParticipantTypeInteractive, domain.ParticipantTypeViewOnly:
	default:
		respondError(w, errors.NewValidationError("type must be interactive or view_only", nil), h.logger)
		return
	}

	claims := domain.SessionClaims{
		ParticipantID: req.ParticipantID,
		Name:          req.Name,
		Type:          pt,
	}
	token, err := h.sessions.IssueToken(r.Context(), claims)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"participant_id": req.ParticipantID,
		"type":           string(pt),
	}).Info("Participant joined")

	respondJSON(w, http.StatusOK, JoinResponse{
		Token:         token,
		ParticipantID: req.ParticipantID,
		Type:          pt,
	}, h.logger)
}
