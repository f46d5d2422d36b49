package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mlefevre/cartable/internal/calendar"
	"github.com/mlefevre/cartable/internal/model"
	"go.uber.org/zap"
)

// HandleStart handles /start.
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	welcomeText := "👋 Bonjour !\n\n" +
		"Cartable est votre assistant de planification : classes, emploi du temps " +
		"et génération des séances sur l'année scolaire (vacances et jours fériés exclus).\n\n" +
		"Commandes principales :\n" +
		"/classes — Mes classes\n" +
		"/newclass — Créer une classe\n" +
		"/schedule — Emploi du temps d'une classe\n" +
		"/generate — Générer les séances de l'année\n" +
		"/help — Aide complète"

	h.reply(ctx, b, update.Message.Chat.ID, welcomeText)
}

// HandleHelp handles /help.
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Aide :\n\n" +
		"Classes :\n" +
		"/classes — Liste des classes\n" +
		"/newclass <nom> [niveau] — Créer une classe\n\n" +
		"Emploi du temps :\n" +
		"/schedule <classe> — Créneaux récurrents\n" +
		"/addslot <classe> — Ajouter un créneau (dialogue)\n" +
		"/delslot <classe> <n°> — Supprimer un créneau\n" +
		"/timetable <classe> — Image de la semaine\n\n" +
		"Année scolaire :\n" +
		"/annee — Configurer zone et dates (dialogue)\n\n" +
		"Séances :\n" +
		"/preview <classe> — Aperçu sans rien créer\n" +
		"/generate <classe> — Générer les séances\n" +
		"/regenerate <classe> — Supprimer puis régénérer\n" +
		"/stats <classe> — Statistiques de génération\n" +
		"/sessions <classe> — Prochaines séances\n\n" +
		"/cancel — Abandonner le dialogue en cours"

	h.reply(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleClasses handles /classes.
func (h *Handlers) HandleClasses(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	classes, err := h.classService.ListClasses(ctx)
	if err != nil {
		h.logger.Error("Failed to list classes", zap.Error(err))
		h.reply(ctx, b, chatID, "❌ Une erreur est survenue. Réessayez plus tard.")
		return
	}

	if len(classes) == 0 {
		h.reply(ctx, b, chatID, "Aucune classe pour l'instant. Créez-en une avec /newclass <nom> [niveau].")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏫 Mes classes :\n\n")
	for _, class := range classes {
		if class.Level != "" {
			fmt.Fprintf(&sb, "• %s (%s)\n", class.Name, class.Level)
		} else {
			fmt.Fprintf(&sb, "• %s\n", class.Name)
		}
	}
	h.reply(ctx, b, chatID, sb.String())
}

// HandleNewClass handles /newclass <name> [level].
func (h *Handlers) HandleNewClass(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	arg := commandArg(update.Message.Text)
	if arg == "" {
		h.reply(ctx, b, chatID, "Usage : /newclass <nom> [niveau], par exemple /newclass CM2 A CM2")
		return
	}

	// Last token is the level when more than one token is given.
	name, level := arg, ""
	if idx := strings.LastIndex(arg, " "); idx > 0 {
		name, level = arg[:idx], arg[idx+1:]
	}

	class, err := h.classService.CreateClass(ctx, &model.ClassForm{Name: name, Level: level})
	if err != nil {
		h.logger.Error("Failed to create class", zap.String("name", name), zap.Error(err))
		h.reply(ctx, b, chatID, fmt.Sprintf("❌ Impossible de créer la classe : %v", err))
		return
	}

	h.reply(ctx, b, chatID, fmt.Sprintf("✅ Classe « %s » créée. Ajoutez des créneaux avec /addslot %s", class.Name, class.Name))
}

// HandleSchedule handles /schedule <class>.
func (h *Handlers) HandleSchedule(ctx context.Context, b *bot.Bot, update *models.Update) {
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
		h.reply(ctx, b, chatID, fmt.Sprintf("L'emploi du temps de « %s » est vide. /addslot %s pour commencer.", class.Name, class.Name))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 Emploi du temps — %s :\n\n", class.Name)
	for i, slot := range slots {
		sb.WriteString(formatSlot(i, slot))
		sb.WriteByte('\n')
	}
	h.reply(ctx, b, chatID, sb.String())
}

// HandleDeleteSlot handles /delslot <class> <index>.
func (h *Handlers) HandleDeleteSlot(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	arg := commandArg(update.Message.Text)
	idx := strings.LastIndex(arg, " ")
	if idx <= 0 {
		h.reply(ctx, b, chatID, "Usage : /delslot <classe> <n°> (numéro affiché par /schedule)")
		return
	}
	name, numStr := strings.TrimSpace(arg[:idx]), strings.TrimSpace(arg[idx+1:])
	n, err := strconv.Atoi(numStr)
	if err != nil || n < 1 {
		h.reply(ctx, b, chatID, "Le numéro de créneau doit être un entier positif.")
		return
	}

	class, err := h.classService.GetClassByName(ctx, name)
	if err != nil {
		h.reply(ctx, b, chatID, fmt.Sprintf("❌ Classe « %s » introuvable.", name))
		return
	}

	slots, err := h.scheduleService.GetClassSchedule(ctx, class.ID)
	if err != nil || n > len(slots) {
		h.reply(ctx, b, chatID, "❌ Créneau introuvable. Vérifiez le numéro avec /schedule.")
		return
	}

	slot := slots[n-1]
	if err := h.scheduleService.DeleteSlot(ctx, class.ID, slot.ID); err != nil {
		h.logger.Error("Failed to delete slot", zap.String("slot_id", slot.ID.String()), zap.Error(err))
		h.reply(ctx, b, chatID, "❌ Une erreur est survenue. Réessayez plus tard.")
		return
	}

	h.reply(ctx, b, chatID, fmt.Sprintf("✅ Créneau supprimé : %s %s — %s", weekdayNames[slot.DayOfWeek], slot.StartTime, slot.Subject))
}

// HandleSessions handles /sessions <class>: upcoming sessions.
func (h *Handlers) HandleSessions(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	class := h.classFromCommand(ctx, b, update)
	if class == nil {
		return
	}

	sessions, err := h.sessionService.ListByClass(ctx, class.ID)
	if err != nil {
		h.logger.Error("Failed to list sessions", zap.String("class_id", class.ID.String()), zap.Error(err))
		h.reply(ctx, b, chatID, "❌ Une erreur est survenue. Réessayez plus tard.")
		return
	}

	if len(sessions) == 0 {
		h.reply(ctx, b, chatID, fmt.Sprintf("Aucune séance pour « %s ». /generate %s pour les créer.", class.Name, class.Name))
		return
	}

	const maxListed = 15
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 Séances — %s (%d au total) :\n\n", class.Name, len(sessions))
	for i, session := range sessions {
		if i == maxListed {
			fmt.Fprintf(&sb, "… et %d autres\n", len(sessions)-maxListed)
			break
		}
		fmt.Fprintf(&sb, "• %s %s — %s [%s]\n",
			calendar.FormatDate(session.Date), session.StartTime, session.Subject, session.Status)
	}
	h.reply(ctx, b, chatID, sb.String())
}

// HandleCancel handles /cancel: abandons any dialog in progress.
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.stateManager.ClearState(update.Message.Chat.ID)
	h.reply(ctx, b, update.Message.Chat.ID, "Dialogue annulé.")
}
