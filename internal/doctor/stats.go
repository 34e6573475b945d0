package doctor

import (
	"time"

	"clinic-booking/internal/booking"
	"clinic-booking/internal/schedule"
)

// NoBookedDay is reported as the most booked day when there is no history.
const NoBookedDay = "None"

// StatsSnapshot summarizes a doctor's appointment history.
type StatsSnapshot struct {
	WeeklyAppointments  int    `json:"weeklyAppointments"`
	MonthlyAppointments int    `json:"monthlyAppointments"`
	Completed           int    `json:"completedAppointments"`
	Cancelled           int    `json:"cancelledAppointments"`
	MostBookedDay       string `json:"mostBookedDay"`
}

// StartOfWeek returns the most recent Monday at midnight relative to the given
// reference, keeping its location. A Monday reference is its own week start.
func StartOfWeek(now time.Time) time.Time {
	offset := (int(now.Weekday()) + schedule.DaysPerWeek - int(time.Monday)) % schedule.DaysPerWeek
	monday := now.AddDate(0, 0, -offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, monday.Location())
}

// StartOfMonth returns the first day of the reference's month at midnight,
// keeping its location.
func StartOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// ComputeStats aggregates the given history relative to the given reference
// time. Weekly and monthly totals count every appointment on or after the week
// and month starts, whatever its status. The most booked day is the weekday
// with most appointments over the whole history, ties resolved to the first
// maximal day counting from Sunday.
func ComputeStats(history []AppointmentRecord, now time.Time) StatsSnapshot {
	snapshot := StatsSnapshot{MostBookedDay: NoBookedDay}
	if len(history) == 0 {
		return snapshot
	}
	weekStart := StartOfWeek(now)
	monthStart := StartOfMonth(now)
	var perDay [schedule.DaysPerWeek]int
	for _, record := range history {
		if !record.Date.Before(weekStart) {
			snapshot.WeeklyAppointments++
		}
		if !record.Date.Before(monthStart) {
			snapshot.MonthlyAppointments++
		}
		switch record.Status {
		case booking.StatusCompleted:
			snapshot.Completed++
		case booking.StatusCanceled:
			snapshot.Cancelled++
		}
		perDay[schedule.WeekdayOf(record.Date)]++
	}
	mostBooked := schedule.Sunday
	for day := schedule.Sunday; day <= schedule.Saturday; day++ {
		if perDay[day] > perDay[mostBooked] {
			mostBooked = day
		}
	}
	snapshot.MostBookedDay = mostBooked.String()
	return snapshot
}
