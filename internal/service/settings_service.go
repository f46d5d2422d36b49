package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mlefevre/cartable/internal/calendar"
	"github.com/mlefevre/cartable/internal/model"
	"go.uber.org/zap"
)

// SettingsService manages the single school-year configuration row.
type SettingsService struct {
	settingsRepo SettingsStore
	validate     *validator.Validate
	logger       *zap.Logger
}

func NewSettingsService(settingsRepo SettingsStore, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		validate:     validator.New(),
		logger:       logger,
	}
}

// Get returns the active settings, nil when not configured.
func (s *SettingsService) Get(ctx context.Context) (*model.SchoolYearSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// Update validates and stores new school-year settings. An inverted
// range (start after end) is rejected here so the engine never sees one.
func (s *SettingsService) Update(ctx context.Context, form *model.SchoolYearSettingsForm) (*model.SchoolYearSettings, error) {
	if err := s.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("validate school year settings: %w", err)
	}

	settings := &model.SchoolYearSettings{
		Zone:            form.Zone,
		SchoolYearStart: calendar.Truncate(form.SchoolYearStart),
		SchoolYearEnd:   calendar.Truncate(form.SchoolYearEnd),
	}

	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("save school year settings: %w", err)
	}

	s.logger.Info("School year settings updated",
		zap.String("zone", string(settings.Zone)),
		zap.String("start", calendar.FormatDate(settings.SchoolYearStart)),
		zap.String("end", calendar.FormatDate(settings.SchoolYearEnd)))

	return settings, nil
}
