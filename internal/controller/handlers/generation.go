package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mlefevre/cartable/internal/calendar"
	"github.com/mlefevre/cartable/internal/controller/timetable"
	"github.com/mlefevre/cartable/internal/model"
	"github.com/mlefevre/cartable/internal/service"
	"go.uber.org/zap"
)

// generationErrorText maps engine errors to user-facing French messages.
func generationErrorText(err error) string {
	switch {
	case errors.Is(err, service.ErrSettingsNotConfigured):
		return "⚠️ L'année scolaire n'est pas configurée. Utilisez /annee d'abord."
	case errors.Is(err, service.ErrNoScheduleSlots):
		return "⚠️ Cette classe n'a aucun créneau. Ajoutez-en avec /addslot."
	default:
		return "❌ Une erreur est survenue pendant la génération."
	}
}

func formatResult(class *model.Class, result *model.GenerationResult, preview bool) string {
	action := "générées"
	if preview {
		action = "prévues (aperçu, rien n'a été créé)"
	}
	return fmt.Sprintf(
		"📋 %s\n\n"+
			"Séances %s : %d\n"+
			"Période : %s → %s\n"+
			"Jours non travaillés ignorés : %d",
		class.Name, action, result.TotalGenerated,
		calendar.FormatDate(result.StartDate), calendar.FormatDate(result.EndDate),
		result.SkippedDays)
}

// HandlePreview handles /preview <class>.
func (h *Handlers) HandlePreview(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	class := h.classFromCommand(ctx, b, update)
	if class == nil {
		return
	}

	result, err := h.generator.PreviewGeneration(ctx, class.ID)
	if err != nil {
		h.logger.Error("Preview failed", zap.String("class_id", class.ID.String()), zap.Error(err))
		h.reply(ctx, b, chatID, generationErrorText(err))
		return
	}

	h.reply(ctx, b, chatID, formatResult(class, result, true))
}

// HandleGenerate handles /generate <class>.
func (h *Handlers) HandleGenerate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	class := h.classFromCommand(ctx, b, update)
	if class == nil {
		return
	}

	result, err := h.generator.GenerateSessions(ctx, class.ID, service.GenerateOptions{})
	if err != nil {
		h.logger.Error("Generation failed", zap.String("class_id", class.ID.String()), zap.Error(err))
		h.reply(ctx, b, chatID, generationErrorText(err))
		return
	}

	h.reply(ctx, b, chatID, formatResult(class, result, false))
}

// HandleRegenerate handles /regenerate <class>: deletes the existing
// sessions of the class, then generates fresh ones.
func (h *Handlers) HandleRegenerate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	class := h.classFromCommand(ctx, b, update)
	if class == nil {
		return
	}

	result, err := h.generator.RegenerateSessions(ctx, class.ID)
	if err != nil {
		h.logger.Error("Regeneration failed", zap.String("class_id", class.ID.String()), zap.Error(err))
		h.reply(ctx, b, chatID, generationErrorText(err))
		return
	}

	h.reply(ctx, b, chatID, "♻️ Anciennes séances supprimées.\n\n"+formatResult(class, result, false))
}

// HandleStats handles /stats <class>.
func (h *Handlers) HandleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	class := h.classFromCommand(ctx, b, update)
	if class == nil {
		return
	}

	stats, err := h.generator.GenerationStats(ctx, class.ID)
	if err != nil {
		h.logger.Error("Stats failed", zap.String("class_id", class.ID.String()), zap.Error(err))
		h.reply(ctx, b, chatID, "❌ Une erreur est survenue. Réessayez plus tard.")
		return
	}

	if stats.SchoolYearDays == 0 {
		h.reply(ctx, b, chatID, "⚠️ L'année scolaire n'est pas configurée. Utilisez /annee d'abord.")
		return
	}

	h.reply(ctx, b, chatID, fmt.Sprintf(
		"📊 %s\n\n"+
			"Créneaux récurrents : %d\n"+
			"Séances estimées : %d\n"+
			"Jours dans l'année scolaire : %d\n"+
			"Jours travaillés : %d",
		class.Name, stats.ScheduleSlots, stats.EstimatedSessions,
		stats.SchoolYearDays, stats.WorkingDays))
}

// HandleYear handles /annee without arguments: shows the active
// configuration and starts the configuration dialog when absent.
func (h *Handlers) HandleYear(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	settings, err := h.settingsService.Get(ctx)
	if err != nil {
		h.logger.Error("Failed to get settings", zap.Error(err))
		h.reply(ctx, b, chatID, "❌ Une erreur est survenue. Réessayez plus tard.")
		return
	}

	if settings != nil {
		h.reply(ctx, b, chatID, fmt.Sprintf(
			"🗓 Année scolaire configurée :\n\n"+
				"Zone : %s\n"+
				"Du %s au %s\n\n"+
				"Envoyez une nouvelle zone (A, B ou C) pour reconfigurer, ou /cancel.",
			settings.Zone,
			calendar.FormatDate(settings.SchoolYearStart),
			calendar.FormatDate(settings.SchoolYearEnd)))
	} else {
		h.reply(ctx, b, chatID, "L'année scolaire n'est pas encore configurée.\nQuelle est votre zone (A, B ou C) ?")
	}

	h.startYearDialog(chatID)
}

// HandleTimetable handles /timetable <class>: renders the weekly grid
// as a PNG and sends it as a photo.
func (h *Handlers) HandleTimetable(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	class := h.classFromCommand(ctx, b, update)
	if class == nil {
		return
	}

	slots, err := h.scheduleService.GetClassSchedule(ctx, class.ID)
	if err != nil {
		h.logger.Error("Failed to get schedule", zap.String("class_id", class.ID.String()), zap.Error(err))
		h.reply(ctx, b, chatID, "❌ Une erreur est survenue. Réessayez plus tard.")
		return
	}
	if len(slots) == 0 {
		h.reply(ctx, b, chatID, fmt.Sprintf("L'emploi du temps de « %s » est vide.", class.Name))
		return
	}

	png, err := timetable.Render(class.Name, slots)
	if err != nil {
		h.logger.Error("Failed to render timetable", zap.String("class_id", class.ID.String()), zap.Error(err))
		h.reply(ctx, b, chatID, "❌ Impossible de générer l'image.")
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: "emploi_du_temps.png",
			Data:     bytes.NewReader(png),
		},
		Caption: fmt.Sprintf("Emploi du temps — %s", class.Name),
	})
	if err != nil {
		h.logger.Error("Failed to send timetable photo", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
