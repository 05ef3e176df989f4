// Package grid implements the academic-year week grid: building it, locating
// dates on it, placing exam records, and reconciling placed exams against a
// refreshed timetable.
package grid

import (
	"errors"
	"fmt"
)

// Placement errors.
var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrOutOfRange      = errors.New("date outside grid range")
	ErrAlreadyImported = errors.New("already imported for this date/class")
)

// Editing errors.
var (
	ErrEmptyText     = errors.New("event text cannot be empty")
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidType   = errors.New("unknown event type")
	ErrInvalidDayKey = errors.New("unknown day key")
	ErrGridNotFound  = errors.New("grid not found")
)

// ClassAll is the class scope meaning "every class".
const ClassAll = "all"

// EventType is the closed set of event kinds.
type EventType string

const (
	TypeOfficialExam EventType = "official_exam"
	TypeMockExam     EventType = "mock_exam"
	TypeTrip         EventType = "trip"
	TypeVacation     EventType = "vacation"
	TypeHoliday      EventType = "holiday"
	TypeGeneral      EventType = "general"
)

// EventTypes lists every event type in display priority order.
var EventTypes = []EventType{
	TypeOfficialExam,
	TypeMockExam,
	TypeTrip,
	TypeVacation,
	TypeHoliday,
	TypeGeneral,
}

// ParseEventType converts a string into an EventType.
// The legacy names "bagrut" and "magen" are accepted.
func ParseEventType(s string) (EventType, error) {
	switch s {
	case "official_exam", "bagrut":
		return TypeOfficialExam, nil
	case "mock_exam", "magen":
		return TypeMockExam, nil
	case "trip":
		return TypeTrip, nil
	case "vacation":
		return TypeVacation, nil
	case "holiday":
		return TypeHoliday, nil
	case "general":
		return TypeGeneral, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

// Valid returns true if the type is a member of the closed set.
func (t EventType) Valid() bool {
	for _, v := range EventTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Locked reports whether events of this type block a slot for conflict purposes.
func (t EventType) Locked() bool {
	return t == TypeTrip
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *EventType) UnmarshalText(b []byte) error {
	parsed, err := ParseEventType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Event is one scheduled item inside a day slot.
type Event struct {
	Text      string    `json:"text"`
	Type      EventType `json:"type"`
	Class     string    `json:"class"`
	SourceID  string    `json:"source_id,omitempty"`
	StartTime string    `json:"start_time,omitempty"` // "HH:MM"
	EndTime   string    `json:"end_time,omitempty"`   // "HH:MM"
}

// VisibleTo reports whether the event is shown for the given class.
func (e *Event) VisibleTo(class string) bool {
	return e.Class == class || e.Class == ClassAll
}

// Imported returns true if the event came from the external timetable.
func (e *Event) Imported() bool {
	return e.SourceID != ""
}

// ExternalRecord is one exam from the authority's timetable.
type ExternalRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Date      string `json:"date"`       // "YYYY-MM-DD"
	StartTime string `json:"start_time"` // "HH:MM" or ""
	EndTime   string `json:"end_time"`   // "HH:MM" or ""
}

// ChangeReport describes one relocated, or unrelocatable, imported event.
type ChangeReport struct {
	SourceID string `json:"source_id"`
	Name     string `json:"name"`
	OldDate  string `json:"old_date"` // DD/MM/YYYY
	NewDate  string `json:"new_date"` // DD/MM/YYYY
	Conflict string `json:"conflict"`
	Moved    bool   `json:"moved"`
}
