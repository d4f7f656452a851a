package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/league-service/internal/api/http"
	"github.com/spec-kit/league-service/internal/api/http/handlers"
	"github.com/spec-kit/league-service/internal/auth"
	"github.com/spec-kit/league-service/internal/config"
	"github.com/spec-kit/league-service/internal/events"
	"github.com/spec-kit/league-service/internal/observability"
	"github.com/spec-kit/league-service/internal/persistence"
	"github.com/spec-kit/league-service/internal/repository"
	"github.com/spec-kit/league-service/internal/service"
	"github.com/spec-kit/league-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewAttendanceSessionRepository(pool)
	recordRepo := repository.NewAttendanceRecordRepository(pool)
	missionRepo := repository.NewMissionRepository(pool)
	transactionRepo := repository.NewTransactionRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)
	codeReserver := repository.NewCodeReserver(redis.Client)

	authService, err := service.NewAuthService(cfg.Auth, userRepo, dispatcher)
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	attendanceService := service.NewAttendanceService(cfg.Attendance, sessionRepo, recordRepo, codeReserver, dispatcher, logger)
	missionService := service.NewMissionService(missionRepo, userRepo, dispatcher)
	paymentService := service.NewPaymentService(userRepo, transactionRepo, dispatcher)
	feedbackService := service.NewFeedbackService(feedbackRepo, dispatcher)
	announcementService := service.NewAnnouncementService(announcementRepo, dispatcher)
	userService := service.NewUserService(userRepo, missionRepo, feedbackRepo, transactionRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Attendance:     handlers.NewAttendanceHandler(attendanceService),
		Missions:       handlers.NewMissionsHandler(missionService),
		Payments:       handlers.NewPaymentsHandler(paymentService),
		Feedback:       handlers.NewFeedbackHandler(feedbackService),
		Announcements:  handlers.NewAnnouncementsHandler(announcementService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
