package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mlefevre/cartable/internal/controller/handlers"
	"github.com/mlefevre/cartable/internal/controller/state"
	"github.com/mlefevre/cartable/internal/service"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	classService *service.ClassService,
	scheduleService *service.ScheduleService,
	sessionService *service.SessionService,
	settingsService *service.SettingsService,
	generator *service.GeneratorService,
	logger *zap.Logger,
) *BotController {
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(
		classService,
		scheduleService,
		sessionService,
		settingsService,
		generator,
		stateManager,
		logger,
	)

	return &BotController{
		bot:      botInstance,
		handlers: cmdHandlers,
		logger:   logger,
	}
}

// RegisterHandlers registers all command handlers.
// Commands that take a class name argument are matched by prefix.
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/classes", bot.MatchTypeExact, c.handlers.HandleClasses)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/annee", bot.MatchTypeExact, c.handlers.HandleYear)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/newclass", bot.MatchTypePrefix, c.handlers.HandleNewClass)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/schedule", bot.MatchTypePrefix, c.handlers.HandleSchedule)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addslot", bot.MatchTypePrefix, c.handlers.HandleAddSlot)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/delslot", bot.MatchTypePrefix, c.handlers.HandleDeleteSlot)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/preview", bot.MatchTypePrefix, c.handlers.HandlePreview)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/generate", bot.MatchTypePrefix, c.handlers.HandleGenerate)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/regenerate", bot.MatchTypePrefix, c.handlers.HandleRegenerate)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypePrefix, c.handlers.HandleStats)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/sessions", bot.MatchTypePrefix, c.handlers.HandleSessions)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/timetable", bot.MatchTypePrefix, c.handlers.HandleTimetable)

	// Free-text messages feed the dialog state machine.
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	return c.setCommands(ctx)
}

func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Démarrer"},
		{Command: "help", Description: "❓ Aide"},
		{Command: "classes", Description: "🏫 Mes classes"},
		{Command: "newclass", Description: "➕ Créer une classe"},
		{Command: "schedule", Description: "📋 Emploi du temps d'une classe"},
		{Command: "addslot", Description: "➕ Ajouter un créneau"},
		{Command: "delslot", Description: "🗑 Supprimer un créneau"},
		{Command: "annee", Description: "📆 Configurer l'année scolaire"},
		{Command: "preview", Description: "🔍 Prévisualiser les séances"},
		{Command: "generate", Description: "⚙️ Générer les séances"},
		{Command: "regenerate", Description: "♻️ Régénérer les séances"},
		{Command: "stats", Description: "📊 Statistiques de génération"},
		{Command: "sessions", Description: "📅 Séances d'une classe"},
		{Command: "timetable", Description: "🖼 Image de l'emploi du temps"},
		{Command: "cancel", Description: "❌ Annuler le dialogue en cours"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start runs the bot until the context is cancelled.
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
