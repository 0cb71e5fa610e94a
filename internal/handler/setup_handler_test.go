package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"roundtable/internal/domain"
	"roundtable/internal/meeting"
	"roundtable/internal/service"
	"roundtable/pkg/logger"
	"roundtable/pkg/redis"
)

func newSetupRouter(t *testing.T) *chi.Mux {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	log := logger.NewNop()
	setupHandler := NewSetupHandler(service.NewSetupService(client, log), log)

	r := chi.NewRouter()
	r.Route("/api/v1/setup", func(r chi.Router) {
		r.Get("/timer-config", setupHandler.GetTimerConfig)
		r.Put("/timer-config", setupHandler.PutTimerConfig)
		r.Get("/roster", setupHandler.GetRoster)
		r.Put("/roster", setupHandler.PutRoster)
		r.Get("/layout", setupHandler.GetLayout)
		r.Put("/layout", setupHandler.PutLayout)
	})
	return r
}

func doJSON(t *testing.T, router *chi.Mux, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSetupTimerConfigEndpoints(t *testing.T) {
	router := newSetupRouter(t)

	// Nothing stored yet.
	rec := doJSON(t, router, http.MethodGet, "/api/v1/setup/timer-config", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	cfg := meeting.StoredTimerConfig{
		Mode:                 domain.TimerModeFixed,
		TotalDurationMinutes: 45,
		AllowExtension:       true,
	}
	rec = doJSON(t, router, http.MethodPut, "/api/v1/setup/timer-config", cfg)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/setup/timer-config", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var loaded meeting.StoredTimerConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loaded))
	assert.Equal(t, cfg, loaded)
}

func TestSetupTimerConfigRejectsUnknownMode(t *testing.T) {
	router := newSetupRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/v1/setup/timer-config", map[string]string{"mode": "freeform"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetupRosterEndpoints(t *testing.T) {
	router := newSetupRouter(t)

	// An unset roster reads as empty, not missing.
	rec := doJSON(t, router, http.MethodGet, "/api/v1/setup/roster", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	roster := []domain.Participant{
		{ID: "p-1", Name: "Ada", Included: true, Type: domain.ParticipantTypeInteractive},
	}
	rec = doJSON(t, router, http.MethodPut, "/api/v1/setup/roster", roster)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/setup/roster", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var loaded []domain.Participant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loaded))
	require.Len(t, loaded, 1)
	assert.Equal(t, "Ada", loaded[0].Name)

	// Nameless participants are rejected.
	rec = doJSON(t, router, http.MethodPut, "/api/v1/setup/roster", []domain.Participant{{ID: "p-2"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetupLayoutEndpointsStoreOpaquely(t *testing.T) {
	router := newSetupRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/setup/layout", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	layout := map[string]interface{}{
		"widgets": []map[string]interface{}{
			{"id": "timer", "x": 0, "y": 0},
			{"id": "speaker-queue", "x": 1, "y": 0},
		},
	}
	rec = doJSON(t, router, http.MethodPut, "/api/v1/setup/layout", layout)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/setup/layout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	expected, err := json.Marshal(layout)
	require.NoError(t, err)
	assert.JSONEq(t, string(expected), rec.Body.String())
}

func TestSetupUnavailableWithoutRedis(t *testing.T) {
	log := logger.NewNop()
	setupHandler := NewSetupHandler(nil, log)

	r := chi.NewRouter()
	r.Get("/api/v1/setup/timer-config", setupHandler.GetTimerConfig)

	rec := doJSON(t, r, http.MethodGet, "/api/v1/setup/timer-config", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
