package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mlefevre/cartable/internal/calendar"
	"github.com/mlefevre/cartable/internal/model"
)

// ── Mock ClassStore ──

type mockClassStore struct {
	classes map[uuid.UUID]*model.Class
}

func newMockClassStore() *mockClassStore {
	return &mockClassStore{classes: make(map[uuid.UUID]*model.Class)}
}

func (m *mockClassStore) Create(_ context.Context, class *model.Class) error {
	if class.ID == uuid.Nil {
		class.ID = uuid.New()
	}
	m.classes[class.ID] = class
	return nil
}

func (m *mockClassStore) GetByID(_ context.Context, id uuid.UUID) (*model.Class, error) {
	return m.classes[id], nil
}

func (m *mockClassStore) GetByName(_ context.Context, name string) (*model.Class, error) {
	for _, c := range m.classes {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockClassStore) GetAll(_ context.Context) ([]*model.Class, error) {
	var result []*model.Class
	for _, c := range m.classes {
		result = append(result, c)
	}
	return result, nil
}

func (m *mockClassStore) Update(_ context.Context, class *model.Class) error {
	m.classes[class.ID] = class
	return nil
}

func (m *mockClassStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.classes, id)
	return nil
}

// ── Mock ScheduleStore ──

// Slots are kept in a slice so GetByClass order is deterministic.
type mockScheduleStore struct {
	slots []*model.ScheduleSlot
}

func newMockScheduleStore() *mockScheduleStore {
	return &mockScheduleStore{}
}

func (m *mockScheduleStore) Create(_ context.Context, slot *model.ScheduleSlot) error {
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	m.slots = append(m.slots, slot)
	return nil
}

func (m *mockScheduleStore) GetByID(_ context.Context, id uuid.UUID) (*model.ScheduleSlot, error) {
	for _, s := range m.slots {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (m *mockScheduleStore) GetByClass(_ context.Context, classID uuid.UUID) ([]*model.ScheduleSlot, error) {
	var result []*model.ScheduleSlot
	for _, s := range m.slots {
		if s.ClassID == classID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockScheduleStore) Update(_ context.Context, slot *model.ScheduleSlot) error {
	for i, s := range m.slots {
		if s.ID == slot.ID {
			m.slots[i] = slot
			return nil
		}
	}
	return nil
}

func (m *mockScheduleStore) Delete(_ context.Context, id uuid.UUID) error {
	for i, s := range m.slots {
		if s.ID == id {
			m.slots = append(m.slots[:i], m.slots[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock SessionStore ──

// ops records the order of delete/create calls so the deletion-before-
// creation contract is checkable.
type mockSessionStore struct {
	sessions  []*model.Session
	ops       []string
	createErr error
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{}
}

func (m *mockSessionStore) Create(_ context.Context, form *model.SessionForm) (*model.Session, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	session := &model.Session{
		ID:              uuid.New(),
		ClassID:         form.ClassID,
		Subject:         form.Subject,
		Date:            form.Date,
		StartTime:       form.StartTime,
		DurationMinutes: form.DurationMinutes,
		Status:          model.SessionStatusPlanned,
	}
	m.sessions = append(m.sessions, session)
	m.ops = append(m.ops, "create")
	return session, nil
}

func (m *mockSessionStore) GetByClass(_ context.Context, classID uuid.UUID) ([]*model.Session, error) {
	var result []*model.Session
	for _, s := range m.sessions {
		if s.ClassID == classID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockSessionStore) UpdateStatus(_ context.Context, id uuid.UUID, status model.SessionStatus) error {
	for _, s := range m.sessions {
		if s.ID == id {
			s.Status = status
			return nil
		}
	}
	return nil
}

func (m *mockSessionStore) DeleteByClass(_ context.Context, classID uuid.UUID) error {
	var kept []*model.Session
	for _, s := range m.sessions {
		if s.ClassID != classID {
			kept = append(kept, s)
		}
	}
	m.sessions = kept
	m.ops = append(m.ops, "delete")
	return nil
}

func (m *mockSessionStore) deleteCalls() int {
	n := 0
	for _, op := range m.ops {
		if op == "delete" {
			n++
		}
	}
	return n
}

// ── Mock SettingsStore ──

type mockSettingsStore struct {
	settings *model.SchoolYearSettings
}

func newMockSettingsStore() *mockSettingsStore {
	return &mockSettingsStore{}
}

func (m *mockSettingsStore) Get(_ context.Context) (*model.SchoolYearSettings, error) {
	return m.settings, nil
}

func (m *mockSettingsStore) Upsert(_ context.Context, settings *model.SchoolYearSettings) error {
	m.settings = settings
	return nil
}

// ── Mock HolidayStore ──

type mockHolidayStore struct {
	holidays map[string][]*model.Holiday
	queries  int
}

func newMockHolidayStore() *mockHolidayStore {
	return &mockHolidayStore{holidays: make(map[string][]*model.Holiday)}
}

func (m *mockHolidayStore) GetBySchoolYear(_ context.Context, schoolYear string) ([]*model.Holiday, error) {
	m.queries++
	return m.holidays[schoolYear], nil
}

// ── Stub NonWorkingDayChecker ──

// stubChecker excludes weekends plus an explicit set of dates,
// independent of any holiday data.
type stubChecker struct {
	excluded map[string]bool
}

func newStubChecker(dates ...string) *stubChecker {
	excluded := make(map[string]bool, len(dates))
	for _, d := range dates {
		excluded[d] = true
	}
	return &stubChecker{excluded: excluded}
}

func (c *stubChecker) IsNonWorkingDay(_ context.Context, date time.Time, _ model.Zone) (bool, error) {
	if calendar.IsWeekend(date) {
		return true, nil
	}
	return c.excluded[calendar.FormatDate(date)], nil
}
