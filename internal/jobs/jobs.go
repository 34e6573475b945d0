// Package jobs contains the background schedules of the system.
package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"clinic-booking/internal/logging"
	"clinic-booking/internal/metrics"

	"github.com/robfig/cron/v3"
)

// AppointmentCounter counts the non-canceled appointments on a given date.
type AppointmentCounter interface {
	CountActiveOn(ctx context.Context, date time.Time) (int, error)
}

// StartDailyScheduler starts the nightly schedule that refreshes the next-day
// appointment gauge, running once immediately so the gauge is set at startup.
// The returned cron can be stopped on shutdown.
func StartDailyScheduler(logger *log.Logger, counter AppointmentCounter) *cron.Cron {
	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		tomorrow := time.Now().AddDate(0, 0, 1)
		count, err := counter.CountActiveOn(ctx, tomorrow)
		if err != nil {
			logging.PrintlnError(logger, fmt.Errorf("could not refresh the next-day appointment gauge: %w", err))
			return
		}
		metrics.SetUpcomingAppointments(count)
		logging.PrintlnInfo(logger, fmt.Sprintf("next-day appointment gauge refreshed, %d appointments", count))
	}

	c := cron.New()

	// Runs every day at 00:05 AM
	if _, err := c.AddFunc("5 0 * * *", refresh); err != nil {
		logging.PrintlnError(logger, fmt.Errorf("could not schedule the nightly refresh: %w", err))
		return c
	}
	c.Start()

	go refresh()
	return c
}
