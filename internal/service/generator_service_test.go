package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mlefevre/cartable/internal/calendar"
	"github.com/mlefevre/cartable/internal/model"
	"go.uber.org/zap"
)

func intPtr(i int) *int { return &i }

func setupGenerator(checker NonWorkingDayChecker) (*GeneratorService, *mockSettingsStore, *mockScheduleStore, *mockSessionStore) {
	settings := newMockSettingsStore()
	schedule := newMockScheduleStore()
	sessions := newMockSessionStore()
	svc := NewGeneratorService(settings, schedule, sessions, checker, zap.NewNop())
	return svc, settings, schedule, sessions
}

// seedSeptember2024 configures zone A over 2024-09-02 (a Monday) to
// 2024-09-29 (a Sunday) — exactly four weeks.
func seedSeptember2024(settings *mockSettingsStore) {
	settings.settings = &model.SchoolYearSettings{
		Zone:            model.ZoneA,
		SchoolYearStart: calendar.Date(2024, time.September, 2),
		SchoolYearEnd:   calendar.Date(2024, time.September, 29),
	}
}

// seedWeeklySlots adds a Monday 09:00 Math slot and a Wednesday 14:00
// French slot, both weekly.
func seedWeeklySlots(schedule *mockScheduleStore, classID uuid.UUID) {
	schedule.slots = append(schedule.slots,
		&model.ScheduleSlot{
			ID: uuid.New(), ClassID: classID, DayOfWeek: 1, StartTime: "09:00",
			DurationMinutes: 60, Subject: "Mathématiques", Frequency: model.FrequencyWeekly,
		},
		&model.ScheduleSlot{
			ID: uuid.New(), ClassID: classID, DayOfWeek: 3, StartTime: "14:00",
			DurationMinutes: 55, Subject: "Français", Frequency: model.FrequencyWeekly,
		},
	)
}

func TestGenerateSessions_WeeklyCoverage(t *testing.T) {
	svc, settings, schedule, sessions := setupGenerator(newStubChecker())
	seedSeptember2024(settings)
	classID := uuid.New()
	seedWeeklySlots(schedule, classID)

	result, err := svc.GenerateSessions(context.Background(), classID, GenerateOptions{})
	if err != nil {
		t.Fatalf("GenerateSessions: %v", err)
	}

	// 4 Mondays + 4 Wednesdays over four full weeks.
	if result.TotalGenerated != 8 {
		t.Errorf("TotalGenerated = %d, want 8", result.TotalGenerated)
	}
	if len(result.SessionsCreated) != 8 {
		t.Errorf("SessionsCreated has %d ids, want 8", len(result.SessionsCreated))
	}
	// 8 weekend days in the range, no holidays.
	if result.SkippedDays != 8 {
		t.Errorf("SkippedDays = %d, want 8", result.SkippedDays)
	}
	if calendar.FormatDate(result.StartDate) != "2024-09-02" || calendar.FormatDate(result.EndDate) != "2024-09-29" {
		t.Errorf("range echo mismatch: %s .. %s",
			calendar.FormatDate(result.StartDate), calendar.FormatDate(result.EndDate))
	}

	first := sessions.sessions[0]
	if calendar.FormatDate(first.Date) != "2024-09-02" {
		t.Errorf("first session date = %s, want 2024-09-02", calendar.FormatDate(first.Date))
	}
	if first.Subject != "Mathématiques" || first.DurationMinutes != 60 {
		t.Errorf("first session = (%q, %d min), want (Mathématiques, 60 min)", first.Subject, first.DurationMinutes)
	}
	if first.Status != model.SessionStatusPlanned {
		t.Errorf("first session status = %s, want planned", first.Status)
	}

	// Creation follows chronological generation order.
	for i := 1; i < len(sessions.sessions); i++ {
		if sessions.sessions[i].Date.Before(sessions.sessions[i-1].Date) {
			t.Fatalf("sessions created out of chronological order at index %d", i)
		}
	}
}

func TestGenerateSessions_ExcludedDate(t *testing.T) {
	// 2024-09-16 is a Monday; marking it non-working drops one Math session.
	svc, settings, schedule, sessions := setupGenerator(newStubChecker("2024-09-16"))
	seedSeptember2024(settings)
	classID := uuid.New()
	seedWeeklySlots(schedule, classID)

	result, err := svc.GenerateSessions(context.Background(), classID, GenerateOptions{})
	if err != nil {
		t.Fatalf("GenerateSessions: %v", err)
	}

	if result.TotalGenerated != 7 {
		t.Errorf("TotalGenerated = %d, want 7", result.TotalGenerated)
	}
	if result.SkippedDays != 9 {
		t.Errorf("SkippedDays = %d, want 9 (8 weekend days + 1 holiday)", result.SkippedDays)
	}
	for _, s := range sessions.sessions {
		if calendar.FormatDate(s.Date) == "2024-09-16" {
			t.Error("session generated on excluded date 2024-09-16")
		}
	}
}

func TestGenerateSessions_BiweeklyAlternation(t *testing.T) {
	svc, settings, schedule, sessions := setupGenerator(newStubChecker())
	seedSeptember2024(settings)
	classID := uuid.New()
	schedule.slots = append(schedule.slots,
		&model.ScheduleSlot{
			ID: uuid.New(), ClassID: classID, DayOfWeek: 1, StartTime: "09:00",
			DurationMinutes: 60, Subject: "Mathématiques", Frequency: model.FrequencyBiweekly, StartWeek: intPtr(0),
		},
		&model.ScheduleSlot{
			ID: uuid.New(), ClassID: classID, DayOfWeek: 1, StartTime: "09:00",
			DurationMinutes: 60, Subject: "Français", Frequency: model.FrequencyBiweekly, StartWeek: intPtr(1),
		},
	)

	result, err := svc.GenerateSessions(context.Background(), classID, GenerateOptions{})
	if err != nil {
		t.Fatalf("GenerateSessions: %v", err)
	}

	if result.TotalGenerated != 4 {
		t.Fatalf("TotalGenerated = %d, want 4", result.TotalGenerated)
	}

	bySubject := make(map[string][]string)
	for _, s := range sessions.sessions {
		bySubject[s.Subject] = append(bySubject[s.Subject], calendar.FormatDate(s.Date))
	}

	wantMath := []string{"2024-09-02", "2024-09-16"}
	wantFrench := []string{"2024-09-09", "2024-09-23"}
	if len(bySubject["Mathématiques"]) != 2 || len(bySubject["Français"]) != 2 {
		t.Fatalf("expected 2 sessions per subject, got %v", bySubject)
	}
	for i, d := range wantMath {
		if bySubject["Mathématiques"][i] != d {
			t.Errorf("Math session %d on %s, want %s", i, bySubject["Mathématiques"][i], d)
		}
	}
	for i, d := range wantFrench {
		if bySubject["Français"][i] != d {
			t.Errorf("French session %d on %s, want %s", i, bySubject["Français"][i], d)
		}
	}
}

// Two opposite-parity biweekly slots on the same weekday must exactly
// reconstruct weekly coverage: one emission per matching weekday, no
// gaps, no duplicates — holidays included.
func TestGenerateSessions_BiweeklyUnionEqualsWeekly(t *testing.T) {
	checker := newStubChecker("2024-09-16")
	classID := uuid.New()

	weeklySvc, weeklySettings, weeklySchedule, _ := setupGenerator(checker)
	seedSeptember2024(weeklySettings)
	weeklySchedule.slots = append(weeklySchedule.slots, &model.ScheduleSlot{
		ID: uuid.New(), ClassID: classID, DayOfWeek: 1, StartTime: "09:00",
		DurationMinutes: 60, Subject: "Histoire", Frequency: model.FrequencyWeekly,
	})
	weeklyResult, err := weeklySvc.PreviewGeneration(context.Background(), classID)
	if err != nil {
		t.Fatalf("weekly preview: %v", err)
	}

	biSvc, biSettings, biSchedule, biSessions := setupGenerator(checker)
	seedSeptember2024(biSettings)
	for _, startWeek := range []int{0, 1} {
		biSchedule.slots = append(biSchedule.slots, &model.ScheduleSlot{
			ID: uuid.New(), ClassID: classID, DayOfWeek: 1, StartTime: "09:00",
			DurationMinutes: 60, Subject: "Histoire", Frequency: model.FrequencyBiweekly, StartWeek: intPtr(startWeek),
		})
	}
	biResult, err := biSvc.GenerateSessions(context.Background(), classID, GenerateOptions{})
	if err != nil {
		t.Fatalf("biweekly generation: %v", err)
	}

	if biResult.TotalGenerated != weeklyResult.TotalGenerated {
		t.Errorf("biweekly union generated %d, weekly generated %d", biResult.TotalGenerated, weeklyResult.TotalGenerated)
	}
	seen := make(map[string]bool)
	for _, s := range biSessions.sessions {
		d := calendar.FormatDate(s.Date)
		if seen[d] {
			t.Errorf("duplicate emission on %s", d)
		}
		seen[d] = true
	}
}

func TestGenerateSessions_PreviewIsSideEffectFree(t *testing.T) {
	svc, settings, schedule, sessions := setupGenerator(newStubChecker())
	seedSeptember2024(settings)
	classID := uuid.New()
	seedWeeklySlots(schedule, classID)

	first, err := svc.PreviewGeneration(context.Background(), classID)
	if err != nil {
		t.Fatalf("first preview: %v", err)
	}
	second, err := svc.PreviewGeneration(context.Background(), classID)
	if err != nil {
		t.Fatalf("second preview: %v", err)
	}

	if first.TotalGenerated != second.TotalGenerated || first.SkippedDays != second.SkippedDays {
		t.Errorf("previews differ: (%d, %d) vs (%d, %d)",
			first.TotalGenerated, first.SkippedDays, second.TotalGenerated, second.SkippedDays)
	}
	if len(first.SessionsCreated) != 0 || len(second.SessionsCreated) != 0 {
		t.Error("preview must not report created session ids")
	}
	if len(sessions.ops) != 0 {
		t.Errorf("preview touched the session store: %v", sessions.ops)
	}

	// Preview with DeleteExisting set still must not delete.
	if _, err := svc.GenerateSessions(context.Background(), classID, GenerateOptions{Preview: true, DeleteExisting: true}); err != nil {
		t.Fatalf("preview with DeleteExisting: %v", err)
	}
	if sessions.deleteCalls() != 0 {
		t.Error("preview must not delete existing sessions")
	}
}

func TestGenerateSessions_MissingSettings(t *testing.T) {
	svc, _, schedule, _ := setupGenerator(newStubChecker())
	classID := uuid.New()
	seedWeeklySlots(schedule, classID)

	_, err := svc.GenerateSessions(context.Background(), classID, GenerateOptions{})
	if !errors.Is(err, ErrSettingsNotConfigured) {
		t.Errorf("expected ErrSettingsNotConfigured, got %v", err)
	}
}

func TestGenerateSessions_IncompleteSettings(t *testing.T) {
	svc, settings, schedule, _ := setupGenerator(newStubChecker())
	classID := uuid.New()
	seedWeeklySlots(schedule, classID)

	settings.settings = &model.SchoolYearSettings{
		Zone:            "",
		SchoolYearStart: calendar.Date(2024, time.September, 2),
		SchoolYearEnd:   calendar.Date(2024, time.September, 29),
	}

	_, err := svc.GenerateSessions(context.Background(), classID, GenerateOptions{})
	if !errors.Is(err, ErrSettingsNotConfigured) {
		t.Errorf("expected ErrSettingsNotConfigured for empty zone, got %v", err)
	}
}

func TestGenerateSessions_NoScheduleSlots(t *testing.T) {
	svc, settings, _, _ := setupGenerator(newStubChecker())
	seedSeptember2024(settings)

	_, err := svc.GenerateSessions(context.Background(), uuid.New(), GenerateOptions{})
	if !errors.Is(err, ErrNoScheduleSlots) {
		t.Errorf("expected ErrNoScheduleSlots, got %v", err)
	}
}

func TestGenerateSessions_InvertedRangeYieldsNothing(t *testing.T) {
	svc, settings, schedule, _ := setupGenerator(newStubChecker())
	classID := uuid.New()
	seedWeeklySlots(schedule, classID)
	settings.settings = &model.SchoolYearSettings{
		Zone:            model.ZoneA,
		SchoolYearStart: calendar.Date(2024, time.September, 29),
		SchoolYearEnd:   calendar.Date(2024, time.September, 2),
	}

	result, err := svc.GenerateSessions(context.Background(), classID, GenerateOptions{})
	if err != nil {
		t.Fatalf("GenerateSessions: %v", err)
	}
	if result.TotalGenerated != 0 || result.SkippedDays != 0 {
		t.Errorf("inverted range generated (%d, skipped %d), want zeros", result.TotalGenerated, result.SkippedDays)
	}
}

func TestRegenerateSessions_DeletesOnceBeforeCreating(t *testing.T) {
	svc, settings, schedule, sessions := setupGenerator(newStubChecker())
	seedSeptember2024(settings)
	classID := uuid.New()
	seedWeeklySlots(schedule, classID)

	// Existing sessions from a previous run.
	if _, err := svc.GenerateSessions(context.Background(), classID, GenerateOptions{}); err != nil {
		t.Fatalf("initial generation: %v", err)
	}
	sessions.ops = nil

	preview, err := svc.PreviewGeneration(context.Background(), classID)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}

	result, err := svc.RegenerateSessions(context.Background(), classID)
	if err != nil {
		t.Fatalf("RegenerateSessions: %v", err)
	}

	if sessions.deleteCalls() != 1 {
		t.Errorf("DeleteByClass called %d times, want 1", sessions.deleteCalls())
	}
	if len(sessions.ops) == 0 || sessions.ops[0] != "delete" {
		t.Errorf("delete must precede every create, ops = %v", sessions.ops)
	}
	if result.TotalGenerated != preview.TotalGenerated {
		t.Errorf("regeneration produced %d, preview said %d", result.TotalGenerated, preview.TotalGenerated)
	}
	if len(sessions.sessions) != result.TotalGenerated {
		t.Errorf("store holds %d sessions, want %d", len(sessions.sessions), result.TotalGenerated)
	}
}

func TestGenerateSessions_ZoneSensitivity(t *testing.T) {
	// A vacation period seeded for zone B only: zone A keeps all
	// sessions, zone B loses the Monday and Wednesday inside it.
	holidayStore := newMockHolidayStore()
	holidayStore.holidays["2024-2025"] = []*model.Holiday{{
		ID:          1,
		Description: "Vacances test",
		Start:       calendar.Date(2024, time.September, 9),
		End:         calendar.Date(2024, time.September, 13),
		Zones:       []model.Zone{model.ZoneB},
		SchoolYear:  "2024-2025",
	}}
	holidaySvc := NewHolidayService(holidayStore, time.Hour, zap.NewNop())

	totals := make(map[model.Zone]int)
	for _, zone := range []model.Zone{model.ZoneA, model.ZoneB} {
		svc, settings, schedule, _ := setupGenerator(holidaySvc)
		seedSeptember2024(settings)
		settings.settings.Zone = zone
		classID := uuid.New()
		seedWeeklySlots(schedule, classID)

		result, err := svc.PreviewGeneration(context.Background(), classID)
		if err != nil {
			t.Fatalf("preview zone %s: %v", zone, err)
		}
		totals[zone] = result.TotalGenerated
	}

	if totals[model.ZoneA] != 8 {
		t.Errorf("zone A generated %d, want 8", totals[model.ZoneA])
	}
	if totals[model.ZoneB] != 6 {
		t.Errorf("zone B generated %d, want 6", totals[model.ZoneB])
	}
}

func TestGenerateSessions_NoSessionOnWeekend(t *testing.T) {
	svc, settings, schedule, sessions := setupGenerator(newStubChecker())
	seedSeptember2024(settings)
	classID := uuid.New()
	// Saturday and Sunday slots never produce sessions.
	schedule.slots = append(schedule.slots,
		&model.ScheduleSlot{
			ID: uuid.New(), ClassID: classID, DayOfWeek: 6, StartTime: "10:00",
			DurationMinutes: 60, Subject: "Soutien", Frequency: model.FrequencyWeekly,
		},
		&model.ScheduleSlot{
			ID: uuid.New(), ClassID: classID, DayOfWeek: 7, StartTime: "10:00",
			DurationMinutes: 60, Subject: "Soutien", Frequency: model.FrequencyWeekly,
		},
	)

	result, err := svc.GenerateSessions(context.Background(), classID, GenerateOptions{})
	if err != nil {
		t.Fatalf("GenerateSessions: %v", err)
	}
	if result.TotalGenerated != 0 {
		t.Errorf("weekend slots generated %d sessions, want 0", result.TotalGenerated)
	}
	if len(sessions.sessions) != 0 {
		t.Error("sessions persisted for weekend slots")
	}
}

func TestGenerationStats(t *testing.T) {
	svc, settings, schedule, _ := setupGenerator(newStubChecker())
	classID := uuid.New()

	// Unconfigured: zeroed stats, no error.
	stats, err := svc.GenerationStats(context.Background(), classID)
	if err != nil {
		t.Fatalf("GenerationStats unconfigured: %v", err)
	}
	if *stats != (model.GenerationStats{}) {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}

	seedSeptember2024(settings)
	seedWeeklySlots(schedule, classID)

	stats, err = svc.GenerationStats(context.Background(), classID)
	if err != nil {
		t.Fatalf("GenerationStats: %v", err)
	}
	if stats.ScheduleSlots != 2 {
		t.Errorf("ScheduleSlots = %d, want 2", stats.ScheduleSlots)
	}
	if stats.EstimatedSessions != 8 {
		t.Errorf("EstimatedSessions = %d, want 8", stats.EstimatedSessions)
	}
	if stats.SchoolYearDays != 28 {
		t.Errorf("SchoolYearDays = %d, want 28", stats.SchoolYearDays)
	}
	if stats.WorkingDays != 20 {
		t.Errorf("WorkingDays = %d, want 20", stats.WorkingDays)
	}
}

func TestGenerationStats_ClassWithoutSlots(t *testing.T) {
	svc, settings, _, _ := setupGenerator(newStubChecker())
	seedSeptember2024(settings)

	stats, err := svc.GenerationStats(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GenerationStats: %v", err)
	}
	if stats.ScheduleSlots != 0 || stats.EstimatedSessions != 0 {
		t.Errorf("empty class stats = %+v, want zero slots and sessions", stats)
	}
	if stats.SchoolYearDays != 28 || stats.WorkingDays != 20 {
		t.Errorf("calendar stats = (%d, %d), want (28, 20)", stats.SchoolYearDays, stats.WorkingDays)
	}
}
