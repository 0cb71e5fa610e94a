package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"roundtable/internal/domain"
	"roundtable/internal/meeting"
	"roundtable/pkg/logger"
	"roundtable/pkg/redis"
)

func newTestSetupService(t *testing.T) (SetupService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewSetupService(client, logger.NewNop()), mr
}

func TestSetupServiceTimerConfigRoundTrip(t *testing.T) {
	svc, _ := newTestSetupService(t)
	ctx := context.Background()

	cfg := meeting.StoredTimerConfig{
		Mode:                          domain.TimerModePerParticipant,
		DurationPerParticipantSeconds: 120,
		AllowExtension:                true,
		ExtensionAmountSeconds:        30,
	}
	require.NoError(t, svc.SaveTimerConfig(ctx, cfg))

	loaded, err := svc.GetTimerConfig(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, cfg, *loaded)
}

func TestSetupServiceTimerConfigMissing(t *testing.T) {
	svc, _ := newTestSetupService(t)

	loaded, err := svc.GetTimerConfig(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSetupServiceRosterRoundTrip(t *testing.T) {
	svc, _ := newTestSetupService(t)
	ctx := context.Background()

	roster := []domain.Participant{
		{ID: "p-1", Name: "Ada", Included: true, Type: domain.ParticipantTypeInteractive},
		{ID: "p-2", Name: "Grace", Included: false, Type: domain.ParticipantTypeViewOnly},
	}
	require.NoError(t, svc.SaveRoster(ctx, roster))

	loaded, err := svc.GetRoster(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Ada", loaded[0].Name)
	assert.False(t, loaded[1].Included)
}

func TestSetupServiceLayoutIsOpaque(t *testing.T) {
	svc, _ := newTestSetupService(t)
	ctx := context.Background()

	blob := json.RawMessage(`{"widgets":[{"id":"timer","x":0},{"id":"queue","x":1}]}`)
	require.NoError(t, svc.SaveLayout(ctx, blob))

	loaded, err := svc.GetLayout(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, string(blob), string(loaded))
}

func TestSetupServiceUsesEnvironmentPrefixedKeys(t *testing.T) {
	svc, mr := newTestSetupService(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveTimerConfig(ctx, meeting.StoredTimerConfig{
		Mode:                 domain.TimerModeFixed,
		TotalDurationMinutes: 30,
	}))

	assert.True(t, mr.Exists("test:setup:timer-config"))
}
