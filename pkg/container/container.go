package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"readtrack-backend/internal/config"
	infraCache "readtrack-backend/internal/infrastructure/cache"
	"readtrack-backend/internal/infrastructure/database"
	"readtrack-backend/internal/store"
	"readtrack-backend/internal/store/memory"
	"readtrack-backend/internal/store/postgres"
	"readtrack-backend/pkg/cache"
	"readtrack-backend/pkg/logger"

	bookHandler "readtrack-backend/internal/domains/book/handler"
	libraryHandler "readtrack-backend/internal/domains/library/handler"
	reviewHandler "readtrack-backend/internal/domains/review/handler"
	sessionHandler "readtrack-backend/internal/domains/session/handler"
	userHandler "readtrack-backend/internal/domains/user/handler"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup; handlers are stateless and share the
// one Storage.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB // nil with the memory driver
	Cache  cache.Cache          // nil with the memory driver
	Store  store.Storage

	BookHandler    *bookHandler.BookHandler
	LibraryHandler *libraryHandler.LibraryHandler
	ReviewHandler  *reviewHandler.ReviewHandler
	SessionHandler *sessionHandler.SessionHandler
	UserHandler    *userHandler.UserHandler

	redis *infraCache.RedisClient
}

// NewContainer builds the dependency graph in order: config, then
// infrastructure, then the store, then handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment)
	log.Info().
		Str("environment", cfg.App.Environment).
		Str("store_driver", cfg.Store.Driver).
		Msg("Config loaded")

	if err := c.initStore(); err != nil {
		return nil, err
	}

	c.BookHandler = bookHandler.NewBookHandler(c.Store)
	c.LibraryHandler = libraryHandler.NewLibraryHandler(c.Store)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.Store)
	c.SessionHandler = sessionHandler.NewSessionHandler(c.Store)
	c.UserHandler = userHandler.NewUserHandler(c.Store)

	log.Info().Msg("Container initialized")
	return c, nil
}

func (c *Container) initStore() error {
	if c.Config.Store.Driver == config.DriverMemory {
		c.Store = memory.New()
		log.Info().Msg("Using in-memory store")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := &database.PostgresDB{
		Config: &database.DBConfig{
			Host:              c.Config.Database.Host,
			Port:              c.Config.Database.Port,
			Username:          c.Config.Database.User,
			Password:          c.Config.Database.Password,
			DBName:            c.Config.Database.Database,
			MaxConns:          int32(c.Config.Database.MaxConns),
			MinConns:          int32(c.Config.Database.MinConns),
			MaxConnLifetime:   30 * time.Minute,
			MaxConnIdleTime:   5 * time.Minute,
			HealthCheckPeriod: time.Minute,
			MaxRetries:        5,
			RetryDelay:        time.Second,
			ConnectTimeout:    5 * time.Second,
		},
	}

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	redis := infraCache.NewRedisClient(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)
	if err := redis.Connect(ctx); err != nil {
		// Redis is an accelerator here, not a dependency. Run without
		// it rather than refusing to start.
		log.Warn().Err(err).Msg("Redis unavailable, caching disabled")
	} else {
		c.redis = redis
		c.Cache = redis
	}

	pg := postgres.New(db.Pool, c.Cache)
	if err := pg.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	c.Store = pg
	log.Info().Msg("Using postgres store")
	return nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.Store != nil && c.DB == nil {
		c.Store.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("Redis close failed")
		}
	}
	log.Info().Msg("Container cleaned up")
}
