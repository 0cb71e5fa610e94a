package service

import (
	"context"
	"encoding/json"
	"fmt"

	"roundtable/internal/domain"
	"roundtable/internal/meeting"
	"roundtable/pkg/logger"
	"roundtable/pkg/redis"
)

// setupService stores meeting setup configuration as JSON blobs in Redis.
// Setup is the only state that survives a restart; live timer state never
// touches storage.
type setupService struct {
	redis  *redis.Client
	logger *logger.Logger
}

// NewSetupService creates a new setup service
func NewSetupService(redisClient *redis.Client, logger *logger.Logger) SetupService {
	return &setupService{
		redis:  redisClient,
		logger: logger,
	}
}

// SaveTimerConfig stores the timer configuration blob
func (s *setupService) SaveTimerConfig(ctx context.Context, cfg meeting.StoredTimerConfig) error {
	return s.saveBlob(ctx, s.redis.KeyBuilder.KeySetupTimerConfig(), cfg)
}

// GetTimerConfig retrieves the stored timer configuration; nil when unset
func (s *setupService) GetTimerConfig(ctx context.Context) (*meeting.StoredTimerConfig, error) {
	raw, err := s.loadBlob(ctx, s.redis.KeyBuilder.KeySetupTimerConfig())
	if err != nil || raw == nil {
		return nil, err
	}
	var cfg meeting.StoredTimerConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode timer config: %w", err)
	}
	return &cfg, nil
}

// SaveRoster stores the participant roster
func (s *setupService) SaveRoster(ctx context.Context, roster []domain.Participant) error {
	return s.saveBlob(ctx, s.redis.KeyBuilder.KeySetupRoster(), roster)
}

// GetRoster retrieves the stored roster; nil when unset
func (s *setupService) GetRoster(ctx context.Context) ([]domain.Participant, error) {
	raw, err := s.loadBlob(ctx, s.redis.KeyBuilder.KeySetupRoster())
	if err != nil || raw == nil {
		return nil, err
	}
	var roster []domain.Participant
	if err := json.Unmarshal(raw, &roster); err != nil {
		return nil, fmt.Errorf("failed to decode roster: %w", err)
	}
	return roster, nil
}

// SaveLayout stores the widget layout blob opaquely
func (s *setupService) SaveLayout(ctx context.Context, layout json.RawMessage) error {
	return s.saveBlob(ctx, s.redis.KeyBuilder.KeySetupLayout(), layout)
}

// GetLayout retrieves the stored layout blob; nil when unset
func (s *setupService) GetLayout(ctx context.Context) (json.RawMessage, error) {
	raw, err := s.loadBlob(ctx, s.redis.KeyBuilder.KeySetupLayout())
	if err != nil || raw == nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

func (s *setupService) saveBlob(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setup blob: %w", err)
	}
	// Setup blobs have no natural expiry; they live until overwritten.
	if err := s.redis.Set(ctx, key, string(data), 0); err != nil {
		return fmt.Errorf("failed to store setup blob: %w", err)
	}
	s.logger.WithField("key", key).Debug("Setup blob stored")
	return nil
}

func (s *setupService) loadBlob(ctx context.Context, key string) ([]byte, error) {
	data, err := s.redis.Get(ctx, key)
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load setup blob: %w", err)
	}
	return []byte(data), nil
}
