package model

import "time"

// Holiday is a school vacation period for one or more zones, e.g.
// "Vacances de la Toussaint". Bounds are inclusive calendar dates.
// Seeded reference data, read-only at runtime.
type Holiday struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Zones       []Zone    `json:"zones"`
	SchoolYear  string    `json:"school_year"` // label like "2024-2025"
}

// ContainsDate reports whether date falls inside the period (inclusive)
// and the period applies to the given zone.
func (h *Holiday) ContainsDate(date time.Time, zone Zone) bool {
	inZone := false
	for _, z := range h.Zones {
		if z == zone {
			inZone = true
			break
		}
	}
	if !inZone {
		return false
	}
	return !date.Before(h.Start) && !date.After(h.End)
}

type PublicHolidayType string

const (
	PublicHolidayTypePublic        PublicHolidayType = "public"
	PublicHolidayTypeReligious     PublicHolidayType = "religious"
	PublicHolidayTypeCommemorative PublicHolidayType = "commemorative"
)

// PublicHoliday is a single non-working date, identical for all zones.
// Derived deterministically per calendar year, never stored.
type PublicHoliday struct {
	Date time.Time         `json:"date"`
	Name string            `json:"name"`
	Type PublicHolidayType `json:"type"`
}
