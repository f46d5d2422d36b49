package model

import (
	"time"

	"github.com/google/uuid"
)

// GenerationResult summarises one run of the session generation engine.
type GenerationResult struct {
	TotalGenerated  int         `json:"total_generated"`
	SessionsCreated []uuid.UUID `json:"sessions_created"` // empty in preview mode
	StartDate       time.Time   `json:"start_date"`
	EndDate         time.Time   `json:"end_date"`
	SkippedDays     int         `json:"skipped_days"` // weekend/holiday days, each counted once
}

// GenerationStats is a best-effort summary for display; all fields are
// zero when the school year is not configured.
type GenerationStats struct {
	ScheduleSlots     int `json:"schedule_slots"`
	EstimatedSessions int `json:"estimated_sessions"`
	SchoolYearDays    int `json:"school_year_days"`
	WorkingDays       int `json:"working_days"`
}
