package service

import "errors"

var (
	// ErrSettingsNotConfigured is returned when session generation is
	// attempted without a complete school-year configuration (zone,
	// start and end dates).
	ErrSettingsNotConfigured = errors.New("school year settings are not configured")

	// ErrNoScheduleSlots is returned when a class has no recurring
	// schedule slots to generate sessions from.
	ErrNoScheduleSlots = errors.New("no schedule slots configured for this class")

	ErrClassNotFound = errors.New("class not found")
	ErrSlotNotFound  = errors.New("schedule slot not found")
)
