package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/staffport/attendance-backend-go/internal/domain/attendance"
	"github.com/staffport/attendance-backend-go/internal/domain/notification"
	"github.com/staffport/attendance-backend-go/internal/domain/user"
)

// ReminderJobs sends attendance reminders to staff who have not signed in.
type ReminderJobs struct {
	ledger     attendance.LedgerService
	dispatcher notification.Dispatcher
	userRepo   user.UserRepository
}

func NewReminderJobs(ledger attendance.LedgerService, dispatcher notification.Dispatcher, userRepo user.UserRepository) *ReminderJobs {
	return &ReminderJobs{
		ledger:     ledger,
		dispatcher: dispatcher,
		userRepo:   userRepo,
	}
}

// RemindAbsentees messages every user who is still absent today. Each
// delivery is independent; a failed send is recorded on its log entry and
// does not stop the sweep.
func (j *ReminderJobs) RemindAbsentees(ctx context.Context) error {
	today := attendance.Day(time.Now())

	absentees, err := j.ledger.GetAbsentUsers(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to get absentees: %w", err)
	}

	for _, absentee := range absentees {
		recipient, err := j.userRepo.GetByID(ctx, absentee.ID)
		if err != nil {
			slog.Error("Reminder skipped, user lookup failed", "user_id", absentee.ID, "error", err)
			continue
		}
		if recipient.IsAdmin() {
			continue
		}

		message := fmt.Sprintf(
			"Hi %s,\n\nYou have not signed in to the Attendance Portal today (%s). Please log in to mark your attendance, or mark leave if you are away.",
			recipient.Name, today.Format("January 02, 2006"),
		)
		j.dispatcher.SendReminder(ctx, recipient, message)
	}

	slog.Info("Absentee reminder sweep completed", "absentees", len(absentees))
	return nil
}
