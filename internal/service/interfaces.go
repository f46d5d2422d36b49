package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mlefevre/cartable/internal/model"
)

// Storage interfaces the services depend on. The pgx repositories in
// internal/repository implement them; tests substitute in-memory fakes.

type ClassStore interface {
	Create(ctx context.Context, class *model.Class) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Class, error)
	GetByName(ctx context.Context, name string) (*model.Class, error)
	GetAll(ctx context.Context) ([]*model.Class, error)
	Update(ctx context.Context, class *model.Class) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ScheduleStore interface {
	Create(ctx context.Context, slot *model.ScheduleSlot) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.ScheduleSlot, error)
	GetByClass(ctx context.Context, classID uuid.UUID) ([]*model.ScheduleSlot, error)
	Update(ctx context.Context, slot *model.ScheduleSlot) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SessionStore interface {
	Create(ctx context.Context, form *model.SessionForm) (*model.Session, error)
	GetByClass(ctx context.Context, classID uuid.UUID) ([]*model.Session, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.SessionStatus) error
	DeleteByClass(ctx context.Context, classID uuid.UUID) error
}

type SettingsStore interface {
	Get(ctx context.Context) (*model.SchoolYearSettings, error)
	Upsert(ctx context.Context, settings *model.SchoolYearSettings) error
}

type HolidayStore interface {
	GetBySchoolYear(ctx context.Context, schoolYear string) ([]*model.Holiday, error)
}

// NonWorkingDayChecker is the single predicate the generation engine
// needs from the holiday calendar. It must return true for Saturdays
// and Sundays even when no holiday data is loaded.
type NonWorkingDayChecker interface {
	IsNonWorkingDay(ctx context.Context, date time.Time, zone model.Zone) (bool, error)
}
