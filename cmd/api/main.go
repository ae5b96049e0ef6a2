package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/nekkositon/booking-api/internal/config"
	adminHandler "github.com/nekkositon/booking-api/internal/handler/admin"
	authHandler "github.com/nekkositon/booking-api/internal/handler/auth"
	bookingHandler "github.com/nekkositon/booking-api/internal/handler/booking"
	catalogHandler "github.com/nekkositon/booking-api/internal/handler/catalog"
	intakeHandler "github.com/nekkositon/booking-api/internal/handler/intake"
	userHandler "github.com/nekkositon/booking-api/internal/handler/user"
	"github.com/nekkositon/booking-api/internal/middleware"
	"github.com/nekkositon/booking-api/internal/repository/postgres"
	"github.com/nekkositon/booking-api/internal/router"
	adminrequestService "github.com/nekkositon/booking-api/internal/service/adminrequest"
	authService "github.com/nekkositon/booking-api/internal/service/auth"
	bookingService "github.com/nekkositon/booking-api/internal/service/booking"
	catalogService "github.com/nekkositon/booking-api/internal/service/catalog"
	intakeService "github.com/nekkositon/booking-api/internal/service/intake"
	userService "github.com/nekkositon/booking-api/internal/service/user"
	"github.com/nekkositon/booking-api/pkg/auth"
	"github.com/nekkositon/booking-api/pkg/logger"
	"github.com/nekkositon/booking-api/pkg/metrics"
	"github.com/nekkositon/booking-api/pkg/security"
	"github.com/nekkositon/booking-api/pkg/storage"
)

const bcryptCost = 12

func main() {
	appLog := logger.NewLogger(nil)
	log.Logger = *appLog.Zerolog()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize repositories
	serviceRepo := postgres.NewServiceRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	requestRepo := postgres.NewAdminRequestRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Initialize shared infrastructure
	blobs, err := storage.NewFileStore(cfg.Storage.BaseDir, cfg.Storage.PublicBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize blob store")
	}

	drafts, err := intakeService.NewRedisDraftStore(cfg.Redis, cfg.Intake.DraftTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	tokens := auth.NewJWTService(cfg.JWT)
	hasher := security.NewBcryptHasher(bcryptCost)
	m := metrics.NewMetrics("booking_api")

	// Initialize services
	catalogSvc := catalogService.NewService(serviceRepo, cfg.Catalog.CacheTTL, cfg.Catalog.CleanupInterval)
	bookingSvc := bookingService.NewService(bookingRepo, catalogSvc, blobs, m)
	intakeSvc := intakeService.NewService(drafts, catalogSvc, bookingSvc, m)
	requestSvc := adminrequestService.NewService(requestRepo, m)
	authSvc := authService.NewService(userRepo, requestSvc, tokens, hasher)
	userSvc := userService.NewService(userRepo, blobs)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	if err := middleware.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("failed to register request validators")
	}

	// Initialize handlers
	authH := authHandler.NewHandler(authSvc)
	catalogH := catalogHandler.NewHandler(catalogSvc)
	intakeH := intakeHandler.NewHandler(intakeSvc, authMiddleware)
	bookingH := bookingHandler.NewHandler(bookingSvc)
	adminH := adminHandler.NewHandler(bookingSvc, requestSvc, time.Local)
	userH := userHandler.NewHandler(userSvc)

	// Setup router
	r := router.NewRouter(
		authMiddleware,
		authH,
		catalogH,
		intakeH,
		bookingH,
		adminH,
		userH,
		router.Config{
			RateLimit:  rate.Limit(cfg.Server.RateLimit),
			RateBurst:  cfg.Server.RateBurst,
			CORSConfig: middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	// Serve uploaded blobs (payment proofs, avatars) from the local store.
	r.Engine().Static(cfg.Storage.PublicBaseURL, cfg.Storage.BaseDir)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
