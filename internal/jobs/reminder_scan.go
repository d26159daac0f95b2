package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"onegoal/internal/models"
	"onegoal/internal/services"
)

// Mailer is the slice of the SMTP sender the digest needs.
type Mailer interface {
	Enabled() bool
	Send(to, subject, body string) error
}

// ReminderScanner walks all users and raises the time-driven notifications:
// routine reminders, goal deadlines, inactivity nudges and the daily digest
// mail.
type ReminderScanner struct {
	Users         *services.UserService
	Goals         *services.GoalService
	Progress      *services.ProgressService
	Notifications *services.NotificationService
	Mailer        Mailer
}

// NewReminderScanner creates a new instance of ReminderScanner. mailer may be
// nil when SMTP is not configured.
func NewReminderScanner(
	users *services.UserService,
	goals *services.GoalService,
	progress *services.ProgressService,
	notifications *services.NotificationService,
	mailer Mailer,
) *ReminderScanner {
	return &ReminderScanner{
		Users:         users,
		Goals:         goals,
		Progress:      progress,
		Notifications: notifications,
		Mailer:        mailer,
	}
}

// routineReminderType keys the dedup per routine kind, so a water reminder in
// the morning does not swallow the exercise one in the evening.
func routineReminderType(kind string) string {
	return models.NotificationRoutineReminder + ":" + kind
}

func userLocation(user *models.User) *time.Location {
	loc, err := time.LoadLocation(user.Settings.Timezone)
	if err != nil || user.Settings.Timezone == "" {
		return time.UTC
	}
	return loc
}

// RunRoutineScan fires at most once per day and kind: when the reminder hour
// has arrived and the day's count is still short of the target. Runs hourly.
func (s *ReminderScanner) RunRoutineScan(ctx context.Context) error {
	users, err := s.Users.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}

	for _, user := range users {
		loc := userLocation(user)
		now := time.Now().In(loc)
		today := now.Format("2006-01-02")

		progress, err := s.Progress.GetByDate(ctx, user.ID, today)
		if err != nil {
			logrus.WithError(err).WithField("userID", user.ID.Hex()).Warn("Routine scan skipped user")
			continue
		}

		for kind, plan := range user.RoutineSettings {
			if !plan.Enabled || plan.RemindAt == "" {
				continue
			}

			remindAt, err := time.Parse("15:04", plan.RemindAt)
			if err != nil || now.Hour() != remindAt.Hour() {
				continue
			}

			count := progress.Routines[kind]
			if plan.Done(count) {
				continue
			}

			latest, err := s.Notifications.GetLatestByType(ctx, user.ID, routineReminderType(kind))
			if err == nil && latest != nil && latest.CreatedAt.In(loc).Format("2006-01-02") == today {
				continue
			}

			_ = s.Notifications.CreateNotification(
				ctx,
				user.ID,
				routineReminderType(kind),
				"Routine Reminder",
				fmt.Sprintf("Time for %s: %d of %d done today.", kind, count, plan.DailyTarget),
				nil,
			)
		}
	}

	logrus.Info("Routine reminder scan completed")
	return nil
}

// RunDeadlineScan warns once per goal when the active goal ends within the
// next 48 hours.
func (s *ReminderScanner) RunDeadlineScan(ctx context.Context) error {
	goals, err := s.Goals.GetAllActiveGoals(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to fetch active goals: %w", err)
	}

	now := time.Now()
	horizon := now.Add(48 * time.Hour)

	for _, goal := range goals {
		if !goal.EndDate.After(now) || !goal.EndDate.Before(horizon) {
			continue
		}

		latest, err := s.Notifications.GetLatestByType(ctx, goal.UserID, models.NotificationGoalEndingSoon)
		if err == nil && latest != nil && latest.TargetID != nil && *latest.TargetID == goal.ID {
			continue
		}

		goalID := goal.ID
		_ = s.Notifications.CreateNotification(
			ctx,
			goal.UserID,
			models.NotificationGoalEndingSoon,
			"Goal Ending Soon",
			fmt.Sprintf("Your goal %q ends on %s. Finish strong!", goal.Title, goal.EndDate.Format("Jan 2")),
			&goalID,
		)
	}

	logrus.Info("Goal deadline scan completed")
	return nil
}

// RunInactivityScan nudges users who have not touched the tracker for three
// days, at most once per three-day window.
func (s *ReminderScanner) RunInactivityScan(ctx context.Context) error {
	users, err := s.Users.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}

	cutoff := time.Now().Add(-3 * 24 * time.Hour)

	for _, user := range users {
		if user.CreatedAt.After(cutoff) {
			continue // fresh accounts get a grace period
		}
		if user.LastActiveAt.After(cutoff) {
			continue
		}

		latest, err := s.Notifications.GetLatestByType(ctx, user.ID, models.NotificationInactivity)
		if err == nil && latest != nil && latest.CreatedAt.After(cutoff) {
			continue
		}

		lastSeen := "a while"
		if !user.LastActiveAt.IsZero() {
			lastSeen = user.LastActiveAt.Format("Jan 2")
		}
		_ = s.Notifications.CreateNotification(
			ctx,
			user.ID,
			models.NotificationInactivity,
			"We Miss You",
			fmt.Sprintf("You have not checked in since %s. Your goal is waiting.", lastSeen),
			nil,
		)
	}

	logrus.Info("Inactivity scan completed")
	return nil
}

// RunDailyDigest mails yesterday's numbers to every user who opted in. Mail
// failures are logged per user and never abort the scan.
func (s *ReminderScanner) RunDailyDigest(ctx context.Context) error {
	if s.Mailer == nil || !s.Mailer.Enabled() {
		logrus.Info("Daily digest skipped: mailer not configured")
		return nil
	}

	users, err := s.Users.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}

	for _, user := range users {
		if !user.Settings.DigestEmail {
			continue
		}

		loc := userLocation(user)
		yesterday := time.Now().In(loc).AddDate(0, 0, -1).Format("2006-01-02")

		progress, err := s.Progress.GetByDate(ctx, user.ID, yesterday)
		if err != nil {
			logrus.WithError(err).WithField("userID", user.ID.Hex()).Warn("Digest skipped user")
			continue
		}

		body := s.digestBody(ctx, user, progress, yesterday)
		subject := fmt.Sprintf("Your day in review: %s", yesterday)
		if err := s.Mailer.Send(user.Email, subject, body); err != nil {
			logrus.WithError(err).WithField("userID", user.ID.Hex()).Warn("Failed to send digest mail")
		}
	}

	logrus.Info("Daily digest completed")
	return nil
}

func (s *ReminderScanner) digestBody(ctx context.Context, user *models.User, progress *models.DailyProgress, date string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s,\n\n", user.Username)
	fmt.Fprintf(&b, "Here is how %s went:\n", date)
	fmt.Fprintf(&b, "- Focus time: %d minutes across %d sessions\n",
		progress.TotalSeconds/60, len(progress.Sessions))
	fmt.Fprintf(&b, "- Satisfaction: %s\n", progress.Satisfaction)

	met, tracked := 0, 0
	for kind, plan := range user.RoutineSettings {
		if !plan.Enabled {
			continue
		}
		tracked++
		if plan.Done(progress.Routines[kind]) {
			met++
		}
	}
	if tracked > 0 {
		fmt.Fprintf(&b, "- Routines met: %d of %d\n", met, tracked)
	}

	if goal, err := s.Goals.GetActiveGoal(ctx, user.ID); err == nil {
		daysLeft := int(time.Until(goal.EndDate).Hours() / 24)
		fmt.Fprintf(&b, "\nYour goal %q has %d days left.\n", goal.Title, daysLeft)
	}

	b.WriteString("\nKeep going!\n")
	return b.String()
}
