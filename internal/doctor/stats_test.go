package doctor

import (
	"testing"
	"time"

	"clinic-booking/internal/booking"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "should return the same day when the reference is a Monday",
			now:  time.Date(2026, 8, 31, 15, 30, 0, 0, time.Local),
			want: date(2026, 8, 31),
		},
		{
			name: "should return the previous Monday when the reference is a Wednesday",
			now:  time.Date(2026, 9, 2, 9, 0, 0, 0, time.Local),
			want: date(2026, 8, 31),
		},
		{
			name: "should return the Monday six days earlier when the reference is a Sunday",
			now:  time.Date(2026, 9, 6, 23, 59, 0, 0, time.Local),
			want: date(2026, 8, 31),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfWeek(tt.now); !got.Equal(tt.want) {
				t.Errorf("StartOfWeek() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartOfMonth(t *testing.T) {
	now := time.Date(2026, 9, 15, 18, 45, 0, 0, time.Local)
	want := date(2026, 9, 1)
	if got := StartOfMonth(now); !got.Equal(want) {
		t.Errorf("StartOfMonth() = %v, want %v", got, want)
	}
}

func TestComputeStats(t *testing.T) {
	// Tuesday, week starts Monday 2026-08-31, month starts 2026-09-01.
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	type args struct {
		history []AppointmentRecord
		now     time.Time
	}
	tests := []struct {
		name string
		args args
		want StatsSnapshot
	}{
		{
			name: "should report zero counts and no booked day for an empty history",
			args: args{history: nil, now: now},
			want: StatsSnapshot{MostBookedDay: NoBookedDay},
		},
		{
			name: "should count appointments from the week start but not before",
			args: args{
				history: []AppointmentRecord{
					{ID: 1, Date: date(2026, 8, 31), Status: booking.StatusBooked},
					{ID: 2, Date: date(2026, 8, 30), Status: booking.StatusBooked},
				},
				now: now,
			},
			want: StatsSnapshot{WeeklyAppointments: 1, MostBookedDay: "Sun"},
		},
		{
			name: "should count appointments from the month start but not before",
			args: args{
				history: []AppointmentRecord{
					{ID: 1, Date: date(2026, 9, 1), Status: booking.StatusBooked},
					{ID: 2, Date: date(2026, 8, 15), Status: booking.StatusBooked},
				},
				now: now,
			},
			want: StatsSnapshot{WeeklyAppointments: 1, MonthlyAppointments: 1, MostBookedDay: "Tue"},
		},
		{
			name: "should count completed and canceled appointments over the whole history",
			args: args{
				history: []AppointmentRecord{
					{ID: 1, Date: date(2026, 7, 6), Status: booking.StatusCompleted},
					{ID: 2, Date: date(2026, 7, 13), Status: booking.StatusCompleted},
					{ID: 3, Date: date(2026, 7, 20), Status: booking.StatusCanceled},
					{ID: 4, Date: date(2026, 7, 27), Status: booking.StatusBooked},
				},
				now: now,
			},
			want: StatsSnapshot{Completed: 2, Cancelled: 1, MostBookedDay: "Mon"},
		},
		{
			name: "should resolve a most booked day tie to the first maximal day counting from Sunday",
			args: args{
				history: []AppointmentRecord{
					{ID: 1, Date: date(2026, 7, 8), Status: booking.StatusCompleted},  // Wednesday
					{ID: 2, Date: date(2026, 7, 12), Status: booking.StatusCompleted}, // Sunday
				},
				now: now,
			},
			want: StatsSnapshot{Completed: 2, MostBookedDay: "Sun"},
		},
		{
			name: "should count canceled appointments in the weekly and monthly totals",
			args: args{
				history: []AppointmentRecord{
					{ID: 1, Date: date(2026, 9, 1), Status: booking.StatusCanceled},
					{ID: 2, Date: date(2026, 9, 1), Status: booking.StatusRescheduled},
				},
				now: now,
			},
			want: StatsSnapshot{WeeklyAppointments: 2, MonthlyAppointments: 2, Cancelled: 1, MostBookedDay: "Tue"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeStats(tt.args.history, tt.args.now); got != tt.want {
				t.Errorf("ComputeStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
