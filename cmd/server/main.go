package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/madaris/school-app-backend/internal/config"
	"github.com/madaris/school-app-backend/internal/database"
	"github.com/madaris/school-app-backend/internal/events"
	"github.com/madaris/school-app-backend/internal/handler"
	"github.com/madaris/school-app-backend/internal/logger"
	"github.com/madaris/school-app-backend/internal/repository"
	"github.com/madaris/school-app-backend/internal/router"
	"github.com/madaris/school-app-backend/internal/service"
	"github.com/madaris/school-app-backend/internal/storage"
	"github.com/madaris/school-app-backend/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting School App Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Object Store ───────────────────────────────────────
	store := storage.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL, cfg.MaxUploadBytes)

	// ─── Initialize Repositories ───────────────────────────────────────
	profileRepo := repository.NewProfileRepository(pool)
	detailRepo := repository.NewStudentDetailRepository(pool)
	majorRepo := repository.NewMajorRepository(pool)
	yearRepo := repository.NewAcademicYearRepository(pool)
	registrationRepo := repository.NewRegistrationRepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(profileRepo)
	studentService := service.NewStudentService(detailRepo)
	registrationService := service.NewRegistrationService(
		yearRepo, majorRepo, detailRepo, registrationRepo, documentRepo,
		store, events.NewRedisPublisher(rdb), log,
	)
	reviewService := service.NewReviewService(registrationRepo, documentRepo, log)
	majorService := service.NewMajorService(majorRepo)
	yearService := service.NewAcademicYearService(yearRepo, log)
	dashboardService := service.NewDashboardService(dashboardRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService, userService),
		Registration: handler.NewRegistrationHandler(registrationService, studentService),
		Review:       handler.NewReviewHandler(reviewService),
		Major:        handler.NewMajorHandler(majorService),
		AcademicYear: handler.NewAcademicYearHandler(yearService),
		User:         handler.NewUserHandler(userService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		WS:           handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
