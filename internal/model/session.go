package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusPlanned   SessionStatus = "planned"
	SessionStatusDone      SessionStatus = "done"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// Session is a concrete, calendar-dated occurrence of a schedule slot.
// The generation engine creates sessions; afterwards they belong to the
// CRUD layer (status updates, deletion).
type Session struct {
	ID              uuid.UUID     `json:"id"`
	ClassID         uuid.UUID     `json:"class_id"`
	Subject         string        `json:"subject"`
	Date            time.Time     `json:"date"`       // calendar date, midnight UTC
	StartTime       string        `json:"start_time"` // "HH:MM", 24-hour
	DurationMinutes int           `json:"duration_minutes"`
	Status          SessionStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
}

// SessionForm carries validated input for session creation.
type SessionForm struct {
	ClassID         uuid.UUID `json:"class_id" validate:"required"`
	Subject         string    `json:"subject" validate:"required,max=120"`
	Date            time.Time `json:"date" validate:"required"`
	StartTime       string    `json:"start_time" validate:"omitempty,datetime=15:04"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,gt=0"`
}
