package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/mlefevre/cartable/internal/calendar"
	"github.com/mlefevre/cartable/internal/controller/state"
	"github.com/mlefevre/cartable/internal/model"
	"go.uber.org/zap"
)

// HandleAddSlot handles /addslot <class>: starts the slot creation dialog.
func (h *Handlers) HandleAddSlot(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	class := h.classFromCommand(ctx, b, update)
	if class == nil {
		return
	}

	h.stateManager.ClearState(chatID)
	h.stateManager.SetData(chatID, "class_id", class.ID.String())
	h.stateManager.SetData(chatID, "class_name", class.Name)
	h.stateManager.SetState(chatID, state.StateAddSlotDay)

	h.reply(ctx, b, chatID, fmt.Sprintf(
		"➕ Nouveau créneau pour « %s ».\n\nQuel jour ? (Lundi à Vendredi, ou 1-7)\n/cancel pour abandonner.", class.Name))
}

// HandleTextMessage routes free-text messages to the dialog in progress.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	// Commands are handled by their own handlers.
	if strings.HasPrefix(text, "/") {
		return
	}

	switch h.stateManager.GetState(chatID) {
	case state.StateAddSlotDay:
		h.addSlotDayStep(ctx, b, chatID, text)
	case state.StateAddSlotTime:
		h.addSlotTimeStep(ctx, b, chatID, text)
	case state.StateAddSlotDuration:
		h.addSlotDurationStep(ctx, b, chatID, text)
	case state.StateAddSlotSubject:
		h.addSlotSubjectStep(ctx, b, chatID, text)
	case state.StateAddSlotFrequency:
		h.addSlotFrequencyStep(ctx, b, chatID, text)
	case state.StateSetYearZone:
		h.yearZoneStep(ctx, b, chatID, text)
	case state.StateSetYearStart:
		h.yearStartStep(ctx, b, chatID, text)
	case state.StateSetYearEnd:
		h.yearEndStep(ctx, b, chatID, text)
	}
}

// ── /addslot dialog ──

func (h *Handlers) addSlotDayStep(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	day, ok := parseWeekday(text)
	if !ok {
		h.reply(ctx, b, chatID, "Jour invalide. Envoyez un jour (Lundi…Dimanche) ou un numéro 1-7.")
		return
	}

	h.stateManager.SetData(chatID, "day", day)
	h.stateManager.SetState(chatID, state.StateAddSlotTime)
	h.reply(ctx, b, chatID, fmt.Sprintf("%s. À quelle heure ? (format HH:MM, par exemple 09:00)", weekdayNames[day]))
}

func (h *Handlers) addSlotTimeStep(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if _, err := time.Parse("15:04", text); err != nil {
		h.reply(ctx, b, chatID, "Heure invalide. Utilisez le format HH:MM, par exemple 14:30.")
		return
	}

	h.stateManager.SetData(chatID, "time", text)
	h.stateManager.SetState(chatID, state.StateAddSlotDuration)
	h.reply(ctx, b, chatID, "Durée en minutes ? (par exemple 55)")
}

func (h *Handlers) addSlotDurationStep(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	duration, err := strconv.Atoi(text)
	if err != nil || duration <= 0 {
		h.reply(ctx, b, chatID, "Durée invalide. Envoyez un nombre de minutes positif.")
		return
	}

	h.stateManager.SetData(chatID, "duration", duration)
	h.stateManager.SetState(chatID, state.StateAddSlotSubject)
	h.reply(ctx, b, chatID, "Quelle matière ? (par exemple Mathématiques)")
}

func (h *Handlers) addSlotSubjectStep(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if text == "" {
		h.reply(ctx, b, chatID, "La matière ne peut pas être vide.")
		return
	}

	h.stateManager.SetData(chatID, "subject", text)
	h.stateManager.SetState(chatID, state.StateAddSlotFrequency)
	h.reply(ctx, b, chatID,
		"Fréquence ?\n"+
			"1 — hebdomadaire\n"+
			"2A — quinzaine, semaine A\n"+
			"2B — quinzaine, semaine B")
}

func (h *Handlers) addSlotFrequencyStep(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	var (
		frequency model.SlotFrequency
		startWeek *int
	)
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "1", "HEBDOMADAIRE":
		frequency = model.FrequencyWeekly
	case "2A":
		frequency = model.FrequencyBiweekly
		week := 0
		startWeek = &week
	case "2B":
		frequency = model.FrequencyBiweekly
		week := 1
		startWeek = &week
	default:
		h.reply(ctx, b, chatID, "Réponse invalide. Envoyez 1, 2A ou 2B.")
		return
	}

	data := h.stateManager.GetAllData(chatID)
	h.stateManager.ClearState(chatID)

	classID, err := uuid.Parse(data["class_id"].(string))
	if err != nil {
		h.logger.Error("Invalid class id in dialog state", zap.Error(err))
		h.reply(ctx, b, chatID, "❌ Une erreur est survenue. Recommencez avec /addslot.")
		return
	}

	form := &model.ScheduleSlotForm{
		ClassID:         classID,
		DayOfWeek:       data["day"].(int),
		StartTime:       data["time"].(string),
		DurationMinutes: data["duration"].(int),
		Subject:         data["subject"].(string),
		Frequency:       frequency,
		StartWeek:       startWeek,
	}

	slot, err := h.scheduleService.CreateSlot(ctx, form)
	if err != nil {
		h.logger.Error("Failed to create slot from dialog", zap.Error(err))
		h.reply(ctx, b, chatID, fmt.Sprintf("❌ Créneau refusé : %v", err))
		return
	}

	h.reply(ctx, b, chatID, fmt.Sprintf(
		"✅ Créneau ajouté à « %s » : %s %s, %s (%d min, %s)",
		data["class_name"].(string), weekdayNames[slot.DayOfWeek], slot.StartTime,
		slot.Subject, slot.DurationMinutes, frequencyLabel(slot)))
}

// ── /annee dialog ──

func (h *Handlers) startYearDialog(chatID int64) {
	h.stateManager.ClearState(chatID)
	h.stateManager.SetState(chatID, state.StateSetYearZone)
}

func (h *Handlers) yearZoneStep(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	zone := model.Zone(strings.ToUpper(strings.TrimSpace(text)))
	if zone != model.ZoneA && zone != model.ZoneB && zone != model.ZoneC {
		h.reply(ctx, b, chatID, "Zone invalide. Envoyez A, B ou C.")
		return
	}

	h.stateManager.SetData(chatID, "zone", string(zone))
	h.stateManager.SetState(chatID, state.StateSetYearStart)
	h.reply(ctx, b, chatID, "Date de rentrée ? (format AAAA-MM-JJ, par exemple 2024-09-02)")
}

func (h *Handlers) yearStartStep(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if _, err := calendar.ParseDate(text); err != nil {
		h.reply(ctx, b, chatID, "Date invalide. Utilisez le format AAAA-MM-JJ.")
		return
	}

	h.stateManager.SetData(chatID, "start", text)
	h.stateManager.SetState(chatID, state.StateSetYearEnd)
	h.reply(ctx, b, chatID, "Date de fin d'année ? (format AAAA-MM-JJ, par exemple 2025-07-05)")
}

func (h *Handlers) yearEndStep(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	end, err := calendar.ParseDate(text)
	if err != nil {
		h.reply(ctx, b, chatID, "Date invalide. Utilisez le format AAAA-MM-JJ.")
		return
	}

	data := h.stateManager.GetAllData(chatID)
	h.stateManager.ClearState(chatID)

	start, _ := calendar.ParseDate(data["start"].(string))
	settings, err := h.settingsService.Update(ctx, &model.SchoolYearSettingsForm{
		Zone:            model.Zone(data["zone"].(string)),
		SchoolYearStart: start,
		SchoolYearEnd:   end,
	})
	if err != nil {
		h.logger.Error("Failed to update school year settings", zap.Error(err))
		h.reply(ctx, b, chatID, fmt.Sprintf("❌ Configuration refusée : %v", err))
		return
	}

	h.reply(ctx, b, chatID, fmt.Sprintf(
		"✅ Année scolaire configurée : zone %s, du %s au %s.",
		settings.Zone,
		calendar.FormatDate(settings.SchoolYearStart),
		calendar.FormatDate(settings.SchoolYearEnd)))
}
