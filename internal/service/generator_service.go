package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mlefevre/cartable/internal/calendar"
	"github.com/mlefevre/cartable/internal/model"
	"go.uber.org/zap"
)

// GeneratorService expands the recurring timetable of a class into
// concrete calendar-dated sessions over the configured school year,
// skipping weekends, zone-specific school holidays and public holidays.
//
// The day loop is strictly sequential: week parity for biweekly slots
// is anchored to the school-year start, week 0 first. Delete+recreate
// is not transactional — a failure mid-run can leave the sessions
// created so far in place.
type GeneratorService struct {
	settingsStore SettingsStore
	scheduleStore ScheduleStore
	sessionStore  SessionStore
	holidays      NonWorkingDayChecker
	logger        *zap.Logger
}

func NewGeneratorService(
	settingsStore SettingsStore,
	scheduleStore ScheduleStore,
	sessionStore SessionStore,
	holidays NonWorkingDayChecker,
	logger *zap.Logger,
) *GeneratorService {
	return &GeneratorService{
		settingsStore: settingsStore,
		scheduleStore: scheduleStore,
		sessionStore:  sessionStore,
		holidays:      holidays,
		logger:        logger,
	}
}

// GenerateOptions control one generation run.
type GenerateOptions struct {
	// Preview computes the result without creating or deleting anything.
	Preview bool
	// DeleteExisting removes the class's current sessions before
	// generating. Ignored in preview mode.
	DeleteExisting bool
}

// GenerateSessions runs the generation algorithm for one class.
func (s *GeneratorService) GenerateSessions(ctx context.Context, classID uuid.UUID, opts GenerateOptions) (*model.GenerationResult, error) {
	settings, err := s.settingsStore.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get school year settings: %w", err)
	}
	if settings == nil || settings.Zone == "" || settings.SchoolYearStart.IsZero() || settings.SchoolYearEnd.IsZero() {
		return nil, ErrSettingsNotConfigured
	}

	slots, err := s.scheduleStore.GetByClass(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("get schedule slots: %w", err)
	}
	if len(slots) == 0 {
		return nil, ErrNoScheduleSlots
	}

	if opts.DeleteExisting && !opts.Preview {
		if err := s.sessionStore.DeleteByClass(ctx, classID); err != nil {
			return nil, fmt.Errorf("delete existing sessions: %w", err)
		}
		s.logger.Info("Existing sessions deleted before regeneration",
			zap.String("class_id", classID.String()))
	}

	start := calendar.Truncate(settings.SchoolYearStart)
	end := calendar.Truncate(settings.SchoolYearEnd)

	candidates, skippedDays, err := s.collectCandidates(ctx, classID, slots, start, end, settings.Zone)
	if err != nil {
		return nil, err
	}

	result := &model.GenerationResult{
		TotalGenerated:  len(candidates),
		SessionsCreated: []uuid.UUID{},
		StartDate:       start,
		EndDate:         end,
		SkippedDays:     skippedDays,
	}

	if opts.Preview {
		return result, nil
	}

	// Sessions are created one at a time, in chronological order, so
	// SessionsCreated mirrors the generation order. No rollback of the
	// sessions already created if a create fails.
	for _, form := range candidates {
		session, err := s.sessionStore.Create(ctx, form)
		if err != nil {
			return nil, fmt.Errorf("create session on %s: %w", calendar.FormatDate(form.Date), err)
		}
		result.SessionsCreated = append(result.SessionsCreated, session.ID)
	}

	s.logger.Info("Sessions generated",
		zap.String("class_id", classID.String()),
		zap.Int("total_generated", result.TotalGenerated),
		zap.Int("skipped_days", result.SkippedDays),
		zap.String("start_date", calendar.FormatDate(start)),
		zap.String("end_date", calendar.FormatDate(end)))

	return result, nil
}

// collectCandidates walks the range day by day and gathers the session
// forms to create. A day is skipped (and counted once) when it is a
// weekend or a non-working day for the zone.
func (s *GeneratorService) collectCandidates(
	ctx context.Context,
	classID uuid.UUID,
	slots []*model.ScheduleSlot,
	start, end time.Time,
	zone model.Zone,
) ([]*model.SessionForm, int, error) {
	var candidates []*model.SessionForm
	skippedDays := 0

	for d := start; !d.After(end); d = calendar.NextDay(d) {
		dayOfWeek := calendar.ISOWeekday(d)

		// Weekends never generate, with or without holiday data.
		if dayOfWeek >= 6 {
			skippedDays++
			continue
		}

		nonWorking, err := s.holidays.IsNonWorkingDay(ctx, d, zone)
		if err != nil {
			return nil, 0, fmt.Errorf("check non-working day %s: %w", calendar.FormatDate(d), err)
		}
		if nonWorking {
			skippedDays++
			continue
		}

		for _, slot := range slots {
			if slot.DayOfWeek != dayOfWeek {
				continue
			}

			if slot.Frequency == model.FrequencyBiweekly {
				// Week 0 starts on the school-year start date itself.
				parity := calendar.WeekOffset(start, d) % 2
				startWeek := 0
				if slot.StartWeek != nil {
					startWeek = *slot.StartWeek
				}
				if parity != startWeek {
					continue
				}
			}

			candidates = append(candidates, &model.SessionForm{
				ClassID:         classID,
				Subject:         slot.Subject,
				Date:            d,
				StartTime:       slot.StartTime,
				DurationMinutes: slot.DurationMinutes,
			})
		}
	}

	return candidates, skippedDays, nil
}

// PreviewGeneration is a dry run: same result, nothing persisted.
func (s *GeneratorService) PreviewGeneration(ctx context.Context, classID uuid.UUID) (*model.GenerationResult, error) {
	return s.GenerateSessions(ctx, classID, GenerateOptions{Preview: true})
}

// RegenerateSessions deletes the class's sessions and generates fresh ones.
func (s *GeneratorService) RegenerateSessions(ctx context.Context, classID uuid.UUID) (*model.GenerationResult, error) {
	return s.GenerateSessions(ctx, classID, GenerateOptions{DeleteExisting: true})
}

// GenerationStats returns a best-effort summary for display. Unlike
// GenerateSessions it does not fail on incomplete configuration: it
// returns zeroed stats so the UI can show "not configured".
func (s *GeneratorService) GenerationStats(ctx context.Context, classID uuid.UUID) (*model.GenerationStats, error) {
	stats := &model.GenerationStats{}

	settings, err := s.settingsStore.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get school year settings: %w", err)
	}
	if settings == nil || settings.Zone == "" || settings.SchoolYearStart.IsZero() || settings.SchoolYearEnd.IsZero() {
		return stats, nil
	}

	slots, err := s.scheduleStore.GetByClass(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("get schedule slots: %w", err)
	}
	stats.ScheduleSlots = len(slots)

	start := calendar.Truncate(settings.SchoolYearStart)
	end := calendar.Truncate(settings.SchoolYearEnd)
	stats.SchoolYearDays = calendar.DaysInclusive(start, end)

	for d := start; !d.After(end); d = calendar.NextDay(d) {
		nonWorking, err := s.holidays.IsNonWorkingDay(ctx, d, settings.Zone)
		if err != nil {
			return nil, fmt.Errorf("check non-working day %s: %w", calendar.FormatDate(d), err)
		}
		if !nonWorking {
			stats.WorkingDays++
		}
	}

	if len(slots) > 0 {
		preview, err := s.PreviewGeneration(ctx, classID)
		if err != nil {
			return nil, fmt.Errorf("preview generation: %w", err)
		}
		stats.EstimatedSessions = preview.TotalGenerated
	}

	return stats, nil
}
