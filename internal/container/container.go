package container

import (
	"context"
	"time"

	"roundtable/internal/config"
	"roundtable/internal/meeting"
	"roundtable/internal/repository"
	"roundtable/internal/service"
	"roundtable/pkg/database"
	"roundtable/pkg/logger"
	"roundtable/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	RedisClient *redis.Client
	DB          *database.PostgresDB
	Archive     repository.ArchiveRepository
	Services    *service.Services
}

// New creates a new dependency injection container. Redis and Postgres are
// optional: without Redis the setup storage is unavailable, without Postgres
// finished meetings are simply not archived.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without setup storage")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without setup storage")
	}

	var db *database.PostgresDB
	var archive repository.ArchiveRepository
	if cfg.DatabaseURL != "" {
		pg, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Warn("Failed to connect to Postgres, proceeding without meeting archive")
		} else {
			db = pg
			archive = repository.NewArchiveRepository(pg)
			log.Info("Postgres connection pool initialized successfully")
		}
	} else {
		log.Info("Database URL not configured, proceeding without meeting archive")
	}

	var setupService service.SetupService
	if redisClient != nil {
		setupService = service.NewSetupService(redisClient, log)
	}

	sessionService := service.NewSessionService(
		cfg.SessionSecret,
		time.Duration(cfg.SessionTTLMinutes)*time.Minute,
		log,
	)
	meetingService := service.NewMeetingService(setupService, archive, meeting.SystemClock, log)

	return &Container{
		Config:      cfg,
		Logger:      log,
		RedisClient: redisClient,
		DB:          db,
		Archive:     archive,
		Services: &service.Services{
			Meeting: meetingService,
			Setup:   setupService,
			Session: sessionService,
		},
	}, nil
}

// GetMeetingService returns the meeting service
func (c *Container) GetMeetingService() service.MeetingService {
	return c.Services.Meeting
}

// GetSetupService returns the setup service (may be nil without Redis)
func (c *Container) GetSetupService() service.SetupService {
	return c.Services.Setup
}

// GetSessionService returns the session service
func (c *Container) GetSessionService() service.SessionService {
	return c.Services.Session
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// HasRedis returns true if the Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}

// HasDatabase returns true if the Postgres pool is available
func (c *Container) HasDatabase() bool {
	return c.DB != nil
}
