package cron

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"onegoal/internal/jobs"
	"onegoal/internal/services"
)

// StartReminderCronJobs schedules the background scans. Routine reminders run
// hourly so each user's reminder hour is hit in their own timezone; the rest
// run once a day.
func StartReminderCronJobs(scanner *jobs.ReminderScanner, notificationService *services.NotificationService) {
	c := cron.New()

	// Routine reminders
	c.AddFunc("@hourly", func() {
		if err := scanner.RunRoutineScan(context.Background()); err != nil {
			logrus.WithError(err).Error("RunRoutineScan failed")
		}
	})

	// Inactivity nudges and notification cleanup
	c.AddFunc("0 0 * * *", func() {
		if err := scanner.RunInactivityScan(context.Background()); err != nil {
			logrus.WithError(err).Error("RunInactivityScan failed")
		}
		if err := notificationService.DeleteExpiredNotifications(context.Background()); err != nil {
			logrus.WithError(err).Error("DeleteExpiredNotifications failed")
		}
	})

	// Goal deadlines and the morning digest
	c.AddFunc("0 8 * * *", func() {
		if err := scanner.RunDeadlineScan(context.Background()); err != nil {
			logrus.WithError(err).Error("RunDeadlineScan failed")
		}
		if err := scanner.RunDailyDigest(context.Background()); err != nil {
			logrus.WithError(err).Error("RunDailyDigest failed")
		}
	})

	c.Start()
	logrus.Info("Reminder cron jobs started")
}
