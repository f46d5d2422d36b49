package model

import (
	"time"

	"github.com/google/uuid"
)

type SlotFrequency string

const (
	FrequencyWeekly   SlotFrequency = "weekly"
	FrequencyBiweekly SlotFrequency = "biweekly"
)

// ScheduleSlot is a recurring weekly commitment of a class.
// DayOfWeek uses the ISO convention: 1 = Monday .. 7 = Sunday.
type ScheduleSlot struct {
	ID              uuid.UUID     `json:"id"`
	ClassID         uuid.UUID     `json:"class_id"`
	DayOfWeek       int           `json:"day_of_week"`      // 1 = Monday .. 7 = Sunday
	StartTime       string        `json:"start_time"`       // "HH:MM", 24-hour
	DurationMinutes int           `json:"duration_minutes"` // positive
	Subject         string        `json:"subject"`
	Frequency       SlotFrequency `json:"frequency"`
	StartWeek       *int          `json:"start_week"` // 0 or 1, biweekly only
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ScheduleSlotForm carries validated input for slot mutations.
// The invariants (day range, frequency enum, start week parity) are
// enforced here at write time — the generation engine trusts its input.
type ScheduleSlotForm struct {
	ClassID         uuid.UUID     `json:"class_id" validate:"required"`
	DayOfWeek       int           `json:"day_of_week" validate:"required,min=1,max=7"`
	StartTime       string        `json:"start_time" validate:"required,datetime=15:04"`
	DurationMinutes int           `json:"duration_minutes" validate:"required,gt=0"`
	Subject         string        `json:"subject" validate:"required,max=120"`
	Frequency       SlotFrequency `json:"frequency" validate:"required,oneof=weekly biweekly"`
	StartWeek       *int          `json:"start_week" validate:"required_if=Frequency biweekly,omitempty,oneof=0 1"`
}
