package model

import "time"

// Zone is one of the three French school-holiday regions with staggered
// vacation calendars.
type Zone string

const (
	ZoneA Zone = "A"
	ZoneB Zone = "B"
	ZoneC Zone = "C"
)

// SchoolYearSettings holds the active zone and the bounds of the school
// year sessions are generated over. There is a single active row.
type SchoolYearSettings struct {
	Zone            Zone      `json:"zone"`
	SchoolYearStart time.Time `json:"school_year_start"` // calendar date, inclusive
	SchoolYearEnd   time.Time `json:"school_year_end"`   // calendar date, inclusive
	UpdatedAt       time.Time `json:"updated_at"`
}

// SchoolYearSettingsForm carries validated input for settings updates.
type SchoolYearSettingsForm struct {
	Zone            Zone      `json:"zone" validate:"required,oneof=A B C"`
	SchoolYearStart time.Time `json:"school_year_start" validate:"required"`
	SchoolYearEnd   time.Time `json:"school_year_end" validate:"required,gtefield=SchoolYearStart"`
}
