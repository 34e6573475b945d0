package schedule

import "fmt"

// MalformedTimeError is returned when a wall-clock value is not a valid
// 24-hour "HH:MM" string.
type MalformedTimeError struct {
	Value string `json:"value"`
}

func (e *MalformedTimeError) Error() string {
	return fmt.Sprintf("malformed time %q, expected HH:MM", e.Value)
}

// UnknownWeekdayError is returned when a day label cannot be parsed.
type UnknownWeekdayError struct {
	Label string `json:"label"`
}

func (e *UnknownWeekdayError) Error() string {
	return fmt.Sprintf("unknown weekday %q", e.Label)
}

// DuplicateSlotError is returned when a day declares the same slot twice.
type DuplicateSlotError struct {
	Day  Weekday `json:"day"`
	Slot Slot    `json:"slot"`
}

func (e *DuplicateSlotError) Error() string {
	return fmt.Sprintf("duplicate slot found on %s: %s - %s", e.Day, e.Slot.Start, e.Slot.End)
}

// OverlappingSlotsError is returned when two slots on the same day share time.
type OverlappingSlotsError struct {
	Day    Weekday `json:"day"`
	First  Slot    `json:"first"`
	Second Slot    `json:"second"`
}

func (e *OverlappingSlotsError) Error() string {
	return fmt.Sprintf("overlapping slots on %s: %s overlaps with %s", e.Day, e.First, e.Second)
}
