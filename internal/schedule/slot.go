// Package schedule contains the slot and weekly availability types and the
// validation rules applied to a doctor's declared schedule.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Slot represents a wall-clock time range within a single day, with both ends
// expressed as 24-hour "HH:MM" strings.
type Slot struct {
	Start string `json:"start" dbfield:"slot_start"`
	End   string `json:"end" dbfield:"slot_end"`
}

// ToMinutes parses a "HH:MM" wall-clock string into minutes since midnight.
func ToMinutes(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, &MalformedTimeError{Value: value}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, &MalformedTimeError{Value: value}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, &MalformedTimeError{Value: value}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, &MalformedTimeError{Value: value}
	}
	return hour*60 + minute, nil
}

// StartMinutes returns the slot start in minutes since midnight.
func (s Slot) StartMinutes() (int, error) {
	return ToMinutes(s.Start)
}

// EndMinutes returns the slot end in minutes since midnight.
func (s Slot) EndMinutes() (int, error) {
	return ToMinutes(s.End)
}

// Validate checks that both ends parse and that the slot starts before it ends.
func (s Slot) Validate() error {
	start, err := s.StartMinutes()
	if err != nil {
		return err
	}
	end, err := s.EndMinutes()
	if err != nil {
		return err
	}
	if start >= end {
		return &MalformedTimeError{Value: s.String()}
	}
	return nil
}

// Overlaps reports whether the two slots share any time. Touching slots, where
// one ends exactly when the other starts, do not overlap.
func (s Slot) Overlaps(other Slot) (bool, error) {
	aStart, err := s.StartMinutes()
	if err != nil {
		return false, err
	}
	aEnd, err := s.EndMinutes()
	if err != nil {
		return false, err
	}
	bStart, err := other.StartMinutes()
	if err != nil {
		return false, err
	}
	bEnd, err := other.EndMinutes()
	if err != nil {
		return false, err
	}
	return aStart < bEnd && bStart < aEnd, nil
}

// Equal reports whether both slots are the same textual (start, end) pair.
func (s Slot) Equal(other Slot) bool {
	return s.Start == other.Start && s.End == other.End
}

func (s Slot) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
