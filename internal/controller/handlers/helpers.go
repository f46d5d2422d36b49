package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mlefevre/cartable/internal/model"
	"github.com/mlefevre/cartable/internal/service"
	"go.uber.org/zap"
)

// weekdayNames maps ISO weekday numbers (1 = Monday) to French names.
var weekdayNames = [8]string{
	"", "Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi", "Dimanche",
}

// parseWeekday accepts either a number 1..7 or a French weekday name.
func parseWeekday(input string) (int, bool) {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= 7 {
			return n, true
		}
		return 0, false
	}
	lower := strings.ToLower(input)
	for i := 1; i <= 7; i++ {
		if strings.ToLower(weekdayNames[i]) == lower {
			return i, true
		}
	}
	return 0, false
}

// frequencyLabel renders a slot frequency for display.
func frequencyLabel(slot *model.ScheduleSlot) string {
	if slot.Frequency == model.FrequencyWeekly {
		return "hebdomadaire"
	}
	week := "A"
	if slot.StartWeek != nil && *slot.StartWeek == 1 {
		week = "B"
	}
	return "quinzaine (semaine " + week + ")"
}

func formatSlot(i int, slot *model.ScheduleSlot) string {
	return fmt.Sprintf("%d. %s %s — %s (%d min, %s)",
		i+1, weekdayNames[slot.DayOfWeek], slot.StartTime, slot.Subject,
		slot.DurationMinutes, frequencyLabel(slot))
}

// reply sends a plain text message, logging send failures.
func (h *Handlers) reply(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// commandArg strips the leading "/command" token and returns the rest.
func commandArg(text string) string {
	parts := strings.SplitN(strings.TrimSpace(text), " ", 2)
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// classFromCommand resolves the "/cmd <classe>" argument to a class.
// On failure it informs the user and returns nil.
func (h *Handlers) classFromCommand(ctx context.Context, b *bot.Bot, update *models.Update) *model.Class {
	chatID := update.Message.Chat.ID
	name := commandArg(update.Message.Text)
	if name == "" {
		h.reply(ctx, b, chatID, "Indiquez le nom de la classe, par exemple : /schedule CM2 A")
		return nil
	}

	class, err := h.classService.GetClassByName(ctx, name)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			h.reply(ctx, b, chatID, fmt.Sprintf("❌ Classe « %s » introuvable. /classes pour la liste.", name))
			return nil
		}
		h.logger.Error("Failed to look up class", zap.String("name", name), zap.Error(err))
		h.reply(ctx, b, chatID, "❌ Une erreur est survenue. Réessayez plus tard.")
		return nil
	}
	return class
}
