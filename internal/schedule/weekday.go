package schedule

import "time"

// Weekday enumerates the days of the week, Sunday first, matching time.Weekday.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// DaysPerWeek is the size of the weekly availability table.
const DaysPerWeek = 7

var dayLabels = [DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var longDayLabels = map[string]Weekday{
	"Sunday":    Sunday,
	"Monday":    Monday,
	"Tuesday":   Tuesday,
	"Wednesday": Wednesday,
	"Thursday":  Thursday,
	"Friday":    Friday,
	"Saturday":  Saturday,
}

// ParseWeekday parses a short ("Mon") or long ("Monday") day label.
func ParseWeekday(label string) (Weekday, error) {
	for i, v := range dayLabels {
		if v == label {
			return Weekday(i), nil
		}
	}
	if day, found := longDayLabels[label]; found {
		return day, nil
	}
	return 0, &UnknownWeekdayError{Label: label}
}

// WeekdayOf returns the Weekday of the given date.
func WeekdayOf(date time.Time) Weekday {
	return Weekday(date.Weekday())
}

func (w Weekday) String() string {
	if w < Sunday || w > Saturday {
		return "Unknown"
	}
	return dayLabels[w]
}

// Week is a doctor's weekly availability, a fixed-size table of slot lists
// indexed by Weekday. A nil or empty entry means the doctor is off that day.
type Week [DaysPerWeek][]Slot

// Days returns the weekdays that have at least one slot, Sunday first.
func (w Week) Days() []Weekday {
	days := make([]Weekday, 0, DaysPerWeek)
	for i := range w {
		if len(w[i]) > 0 {
			days = append(days, Weekday(i))
		}
	}
	return days
}

// SlotsOn returns the slots declared for the given day.
func (w Week) SlotsOn(day Weekday) []Slot {
	return w[day]
}

// Contains reports whether the given slot is declared on the given day.
func (w Week) Contains(day Weekday, slot Slot) bool {
	for _, v := range w[day] {
		if v.Equal(slot) {
			return true
		}
	}
	return false
}
