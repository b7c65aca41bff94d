package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aryanarora07/studybuddy-new/internal/auth"
	"github.com/aryanarora07/studybuddy-new/internal/config"
	"github.com/aryanarora07/studybuddy-new/internal/domain"
	"github.com/aryanarora07/studybuddy-new/internal/handler"
	"github.com/aryanarora07/studybuddy-new/internal/hub"
	"github.com/aryanarora07/studybuddy-new/internal/presence"
	"github.com/aryanarora07/studybuddy-new/internal/repository"
	"github.com/aryanarora07/studybuddy-new/internal/service"
	"github.com/aryanarora07/studybuddy-new/pkg/database"
	pkglog "github.com/aryanarora07/studybuddy-new/pkg/log"
	"github.com/aryanarora07/studybuddy-new/pkg/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})
	logger := pkglog.L()

	// Connect to database using GORM
	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Auto-migrate
	if err := database.AutoMigrate(db,
		&domain.UserModel{},
		&domain.ProfileModel{},
		&domain.RoomModel{},
		&domain.RoomMemberModel{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	logger.Info().Msg("database migration completed")

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	profileRepo := repository.NewGormProfileRepository(db)
	roomRepo := repository.NewGormRoomRepository(db)

	// Initialize presence store. Fall back to the in-memory store when
	// Redis is unreachable so a dev box without Redis still starts.
	var presenceStore presence.Store
	redisStore, err := presence.NewRedisStore(cfg.Presence)
	if err != nil {
		logger.Warn().Err(err).Str("addr", cfg.Presence.RedisAddress).Msg("redis unavailable, using in-memory presence")
		presenceStore = presence.NewMemoryStore(cfg.Presence.TTL)
	} else {
		presenceStore = redisStore
		logger.Info().Str("addr", cfg.Presence.RedisAddress).Msg("redis presence connected")
	}
	defer presenceStore.Close()

	// Initialize storage backend for profile pictures
	ctx := context.Background()
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	logger.Info().Str("backend", cfg.Storage.Backend).Msg("storage initialized")

	// Initialize JWT manager and auth middleware
	jwtManager, err := auth.NewManager(cfg.JWT)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create jwt manager")
	}
	authMiddleware := auth.NewMiddleware(jwtManager)

	// Initialize services
	userService := service.NewUserService(userRepo, jwtManager)
	profileService := service.NewProfileService(profileRepo, userRepo, store)
	partnerService := service.NewPartnerService(profileRepo, userRepo, presenceStore, store)
	roomService := service.NewRoomService(roomRepo)

	// Initialize Hub
	wsHub := hub.NewHub(cfg.WebSocket)
	go wsHub.Run()

	// Initialize handlers
	httpHandler := handler.NewHandler(userService, profileService, partnerService, roomService, presenceStore, authMiddleware)
	wsHandler := handler.NewWSHandler(wsHub, cfg.WebSocket)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Serve locally stored profile pictures
	if cfg.Storage.Backend == "local" {
		r.Static("/uploads", cfg.Storage.Local.BasePath)
	}

	// Register routes
	httpHandler.RegisterRoutes(r)
	wsHandler.RegisterRoutes(r)

	// Setup HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().Str("addr", addr).Str("driver", cfg.Database.Driver).Msg("studybuddy server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}
