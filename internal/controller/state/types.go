package state

// UserState is the current position of a chat in a multi-step dialog.
type UserState string

const (
	StateNone UserState = "" // no active dialog

	// Slot creation dialog (/addslot)
	StateAddSlotDay       UserState = "add_slot_day"
	StateAddSlotTime      UserState = "add_slot_time"
	StateAddSlotDuration  UserState = "add_slot_duration"
	StateAddSlotSubject   UserState = "add_slot_subject"
	StateAddSlotFrequency UserState = "add_slot_frequency"

	// School year configuration dialog (/annee)
	StateSetYearZone  UserState = "set_year_zone"
	StateSetYearStart UserState = "set_year_start"
	StateSetYearEnd   UserState = "set_year_end"
)

// UserData holds the in-flight data of a dialog.
type UserData struct {
	State UserState
	Data  map[string]interface{}
}
