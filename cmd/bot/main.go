package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mlefevre/cartable/internal/app"
	"github.com/mlefevre/cartable/internal/config"
	"github.com/mlefevre/cartable/internal/controller"
	"github.com/mlefevre/cartable/internal/repository"
	"github.com/mlefevre/cartable/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting cartable bot", zap.String("environment", cfg.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	classRepo := repository.NewClassRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	holidayRepo := repository.NewHolidayRepository(pool)

	classService := service.NewClassService(classRepo, logger)
	scheduleService := service.NewScheduleService(classRepo, scheduleRepo, logger)
	sessionService := service.NewSessionService(sessionRepo, logger)
	settingsService := service.NewSettingsService(settingsRepo, logger)
	holidayService := service.NewHolidayService(holidayRepo, cfg.HolidayCacheTTL, logger)
	generator := service.NewGeneratorService(settingsRepo, scheduleRepo, sessionRepo, holidayService, logger)

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		b,
		classService,
		scheduleService,
		sessionService,
		settingsService,
		generator,
		logger,
	)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	scheduler := app.NewScheduler(settingsService, holidayService, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Shutting down")
}
