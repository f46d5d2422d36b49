package app

import (
	"context"
	"time"

	"github.com/mlefevre/cartable/internal/calendar"
	"github.com/mlefevre/cartable/internal/service"
	"go.uber.org/zap"
)

// Scheduler runs background maintenance tasks.
type Scheduler struct {
	settingsService *service.SettingsService
	holidayService  *service.HolidayService
	logger          *zap.Logger
	stopChan        chan struct{}
}

func NewScheduler(settingsService *service.SettingsService, holidayService *service.HolidayService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		settingsService: settingsService,
		holidayService:  holidayService,
		logger:          logger,
		stopChan:        make(chan struct{}),
	}
}

// Start launches the background tasks.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")
	go s.runHolidayCacheTask(ctx)
}

// Stop stops the background tasks.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runHolidayCacheTask re-warms the holiday calendar cache once a day so
// the cache TTL never expires in the middle of a generation run.
func (s *Scheduler) runHolidayCacheTask(ctx context.Context) {
	s.warmHolidayCache(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.warmHolidayCache(ctx)
		case <-s.stopChan:
			s.logger.Info("Holiday cache task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Holiday cache task cancelled")
			return
		}
	}
}

func (s *Scheduler) warmHolidayCache(ctx context.Context) {
	settings, err := s.settingsService.Get(ctx)
	if err != nil {
		s.logger.Error("Failed to load school year settings", zap.Error(err))
		return
	}
	if settings == nil {
		s.logger.Debug("School year not configured, skipping holiday cache warm-up")
		return
	}

	schoolYear := calendar.SchoolYearLabel(settings.SchoolYearStart)
	if err := s.holidayService.WarmCache(ctx, schoolYear); err != nil {
		s.logger.Error("Failed to warm holiday cache",
			zap.String("school_year", schoolYear),
			zap.Error(err))
		return
	}

	s.logger.Info("Holiday cache warmed", zap.String("school_year", schoolYear))
}
