package container

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"

	"github.com/venuedate/venuedate-backend/internal/config"
	"github.com/venuedate/venuedate-backend/internal/delivery/http"
	"github.com/venuedate/venuedate-backend/internal/delivery/http/handler"
	"github.com/venuedate/venuedate-backend/internal/delivery/http/middleware"
	"github.com/venuedate/venuedate-backend/internal/infrastructure/database"
	"github.com/venuedate/venuedate-backend/internal/infrastructure/server"
	"github.com/venuedate/venuedate-backend/internal/repository/postgres"
	redisrepo "github.com/venuedate/venuedate-backend/internal/repository/redis"
	"github.com/venuedate/venuedate-backend/internal/usecase/admin"
	"github.com/venuedate/venuedate-backend/internal/usecase/auth"
	"github.com/venuedate/venuedate-backend/internal/usecase/chat"
	"github.com/venuedate/venuedate-backend/internal/usecase/discover"
	"github.com/venuedate/venuedate-backend/internal/usecase/match"
	"github.com/venuedate/venuedate-backend/internal/usecase/moderation"
	"github.com/venuedate/venuedate-backend/internal/usecase/presence"
	"github.com/venuedate/venuedate-backend/internal/usecase/profile"
	"github.com/venuedate/venuedate-backend/internal/usecase/swipe"
	"github.com/venuedate/venuedate-backend/internal/usecase/venue"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *goredis.Client
	Server *server.Server
}

// NewContainer wires repositories, use cases, handlers and the HTTP server.
func NewContainer(cfg *config.Config) (*Container, error) {
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	venueRepo := postgres.NewVenueRepository(db)
	swipeRepo := postgres.NewSwipeRepository(db)
	blockRepo := postgres.NewBlockRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	presenceRepo := redisrepo.NewPresenceRepository(redisClient)
	chatRepo := redisrepo.NewChatRepository(redisClient)

	// Use cases
	tokenTTL := time.Duration(cfg.JWT.ExpiryDays) * 24 * time.Hour
	authUseCase := auth.NewAuthUseCase(userRepo, cfg.JWT.Secret, tokenTTL)
	profileUseCase := profile.NewProfileUseCase(userRepo, venueRepo, presenceRepo)
	venueUseCase := venue.NewVenueUseCase(venueRepo, presenceRepo)
	presenceUseCase := presence.NewPresenceUseCase(userRepo, venueRepo, presenceRepo, swipeRepo, cfg.Presence.TTL)
	discoverUseCase := discover.NewDiscoverUseCase(userRepo)
	swipeUseCase := swipe.NewSwipeUseCase(userRepo, swipeRepo, matchRepo, chatRepo, cfg.Presence.EphemeralMatchTTL)
	matchUseCase := match.NewMatchUseCase(userRepo, venueRepo, matchRepo)
	chatUseCase := chat.NewChatUseCase(userRepo, venueRepo, chatRepo)
	moderationUseCase := moderation.NewModerationUseCase(userRepo, blockRepo, reportRepo)
	adminUseCase := admin.NewAdminUseCase(userRepo, venueRepo, matchRepo, reportRepo, presenceRepo, swipeRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	venueHandler := handler.NewVenueHandler(venueUseCase, presenceUseCase)
	discoverHandler := handler.NewDiscoverHandler(discoverUseCase)
	swipeHandler := handler.NewSwipeHandler(swipeUseCase, matchUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)
	moderationHandler := handler.NewModerationHandler(moderationUseCase)
	adminVenueHandler := handler.NewAdminVenueHandler(venueUseCase)
	adminHandler := handler.NewAdminHandler(adminUseCase)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	router := http.NewRouter(
		authHandler,
		profileHandler,
		venueHandler,
		discoverHandler,
		swipeHandler,
		chatHandler,
		moderationHandler,
		adminVenueHandler,
		adminHandler,
		authMiddleware,
	)

	srv := server.NewServer(&cfg.Server, router.Setup())

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

// Close releases the container's connections.
func (c *Container) Close() error {
	var firstErr error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
