package handlers

import (
	"github.com/mlefevre/cartable/internal/controller/state"
	"github.com/mlefevre/cartable/internal/service"
	"go.uber.org/zap"
)

// Handlers groups the bot command handlers and their dependencies.
type Handlers struct {
	classService    *service.ClassService
	scheduleService *service.ScheduleService
	sessionService  *service.SessionService
	settingsService *service.SettingsService
	generator       *service.GeneratorService
	stateManager    *state.Manager
	logger          *zap.Logger
}

func NewHandlers(
	classService *service.ClassService,
	scheduleService *service.ScheduleService,
	sessionService *service.SessionService,
	settingsService *service.SettingsService,
	generator *service.GeneratorService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		classService:    classService,
		scheduleService: scheduleService,
		sessionService:  sessionService,
		settingsService: settingsService,
		generator:       generator,
		stateManager:    stateManager,
		logger:          logger,
	}
}
