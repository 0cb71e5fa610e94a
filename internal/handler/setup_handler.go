package handler

import (
	"encoding/json"
	"net/http"

	"roundtable/internal/domain"
	"roundtable/internal/meeting"
	"roundtable/internal/service"
	"roundtable/pkg/errors"
	"roundtable/pkg/logger"
)

// SetupHandler exposes the persisted setup configuration. Timer config and
// roster are validated on write; the layout blob is stored opaquely.
type SetupHandler struct {
	setup  service.SetupService
	logger *logger.Logger
}

// NewSetupHandler creates a new setup handler. setup may be nil when Redis
// is not configured.
func NewSetupHandler(setup service.SetupService, logger *logger.Logger) *SetupHandler {
	return &SetupHandler{
		setup:  setup,
		logger: logger,
	}
}

// GetTimerConfig handles GET /api/v1/setup/timer-config
func (h *SetupHandler) GetTimerConfig(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	cfg, err := h.setup.GetTimerConfig(r.Context())
	if err != nil {
		respondError(w, errors.NewInternalError("Failed to load timer configuration", err), h.logger)
		return
	}
	if cfg == nil {
		respondError(w, errors.NewNotFoundError("No timer configuration has been saved"), h.logger)
		return
	}
	respondJSON(w, http.StatusOK, cfg, h.logger)
}

// PutTimerConfig handles PUT /api/v1/setup/timer-config
func (h *SetupHandler) PutTimerConfig(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	var cfg meeting.StoredTimerConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		respondError(w, errors.NewValidationError("Invalid request body", nil), h.logger)
		return
	}
	switch cfg.Mode {
	case domain.TimerModeFixed, domain.TimerModePerParticipant:
	default:
		respondError(w, errors.NewValidationError("mode must be fixed or per_participant", nil), h.logger)
		return
	}
	if err := h.setup.SaveTimerConfig(r.Context(), cfg); err != nil {
		respondError(w, errors.NewInternalError("Failed to store timer configuration", err), h.logger)
		return
	}
	respondJSON(w, http.StatusOK, cfg, h.logger)
}

// GetRoster handles GET /api/v1/setup/roster
func (h *SetupHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	roster, err := h.setup.GetRoster(r.Context())
	if err != nil {
		respondError(w, errors.NewInternalError("Failed to load roster", err), h.logger)
		return
	}
	if roster == nil {
		roster = []domain.Participant{}
	}
	respondJSON(w, http.StatusOK, roster, h.logger)
}

// PutRoster handles PUT /api/v1/setup/roster
func (h *SetupHandler) PutRoster(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	var roster []domain.Participant
	if err := json.NewDecoder(r.Body).Decode(&roster); err != nil {
		respondError(w, errors.NewValidationError("Invalid request body", nil), h.logger)
		return
	}
	for _, p := range roster {
		if p.Name == "" {
			respondError(w, errors.NewValidationError("every participant needs a name", nil), h.logger)
			return
		}
	}
	if err := h.setup.SaveRoster(r.Context(), roster); err != nil {
		respondError(w, errors.NewInternalError("Failed to store roster", err), h.logger)
		return
	}
	respondJSON(w, http.StatusOK, roster, h.logger)
}

// GetLayout handles GET /api/v1/setup/layout
func (h *SetupHandler) GetLayout(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	layout, err := h.setup.GetLayout(r.Context())
	if err != nil {
		respondError(w, errors.NewInternalError("Failed to load layout", err), h.logger)
		return
	}
	if layout == nil {
		respondError(w, errors.NewNotFoundError("No layout has been saved"), h.logger)
		return
	}
	respondJSON(w, http.StatusOK, layout, h.logger)
}

// PutLayout handles PUT /api/v1/setup/layout
func (h *SetupHandler) PutLayout(w http.ResponseWriter, r *http.Request) {
	if !h.available(w) {
		return
	}
	var layout json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&layout); err != nil {
		respondError(w, errors.NewValidationError("Invalid request body", nil), h.logger)
		return
	}
	if err := h.setup.SaveLayout(r.Context(), layout); err != nil {
		respondError(w, errors.NewInternalError("Failed to store layout", err), h.logger)
		return
	}
	respondJSON(w, http.StatusOK, layout, h.logger)
}

func (h *SetupHandler) available(w http.ResponseWriter) bool {
	if h.setup == nil {
		respondError(w, errors.NewInternalError("Setup storage is not configured", nil), h.logger)
		return false
	}
	return true
}
