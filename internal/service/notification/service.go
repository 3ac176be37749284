package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/staffport/attendance-backend-go/internal/domain/notification"
	"github.com/staffport/attendance-backend-go/internal/domain/user"
)

const defaultSendTimeout = 10 * time.Second

type DispatcherImpl struct {
	repo     notification.Repository
	userRepo user.UserRepository
	channels []notification.DeliveryChannel
	logger   *slog.Logger

	sendTimeout time.Duration
}

func NewDispatcher(
	repo notification.Repository,
	userRepo user.UserRepository,
	channels []notification.DeliveryChannel,
	logger *slog.Logger,
) notification.Dispatcher {
	return &DispatcherImpl{
		repo:        repo,
		userRepo:    userRepo,
		channels:    channels,
		logger:      logger,
		sendTimeout: defaultSendTimeout,
	}
}

// address picks the channel-specific delivery address, empty when the user
// has none for that channel.
func address(u user.User, kind notification.Channel) string {
	switch kind {
	case notification.ChannelWhatsApp:
		return u.Phone
	case notification.ChannelEmail:
		return u.Email
	}
	return ""
}

// deliver runs one delivery attempt per configured channel. Each attempt gets
// its own log entry and its own failure handling; a broken channel never
// blocks the others.
func (d *DispatcherImpl) deliver(ctx context.Context, recipient user.User, typ notification.Type, subject, message string) {
	for _, ch := range d.channels {
		addr := address(recipient, ch.Kind())
		if addr == "" {
			continue
		}

		entry := notification.Notification{
			UserID:  recipient.ID,
			Message: message,
			Type:    typ,
			Channel: ch.Kind(),
		}
		if err := d.repo.Create(ctx, &entry); err != nil {
			d.logger.Error("failed to log notification attempt",
				"user_id", recipient.ID, "channel", ch.Kind(), "error", err)
			continue
		}

		sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
		sendErr := ch.Send(sendCtx, notification.Recipient{Name: recipient.Name, Address: addr}, subject, message)
		cancel()

		if sendErr != nil {
			d.logger.Warn("notification delivery failed",
				"user_id", recipient.ID, "channel", ch.Kind(), "type", typ, "error", sendErr)
			if err := d.repo.MarkFailed(ctx, entry.ID, sendErr.Error()); err != nil {
				d.logger.Error("failed to mark notification failed", "id", entry.ID, "error", err)
			}
			continue
		}

		if err := d.repo.MarkSent(ctx, entry.ID); err != nil {
			d.logger.Error("failed to mark notification sent", "id", entry.ID, "error", err)
		}
	}
}

// NotifyLogin implements notification.Dispatcher.
func (d *DispatcherImpl) NotifyLogin(ctx context.Context, staff user.User, loginTime time.Time) {
	clock := loginTime.Format("03:04 PM")

	staffMessage := fmt.Sprintf(
		"Hi %s,\n\nYou have successfully signed in at %s.\n\nHave a productive day! 🚀",
		staff.Name, clock,
	)
	d.deliver(ctx, staff, notification.TypeLogin, "Signed In", staffMessage)

	managers, err := d.userRepo.ListActiveByRoles(ctx, []user.Role{user.RoleManager, user.RoleDirector})
	if err != nil {
		d.logger.Error("failed to list notification recipients", "error", err)
		return
	}

	broadcast := fmt.Sprintf("%s has signed in at %s.", staff.Name, clock)
	for _, manager := range managers {
		if manager.ID == staff.ID {
			continue
		}
		d.deliver(ctx, manager, notification.TypeManagerNotification, "Staff Sign-In", broadcast)
	}
}

// NotifyLogout implements notification.Dispatcher.
func (d *DispatcherImpl) NotifyLogout(ctx context.Context, staff user.User, logoutTime time.Time, workDuration *float64) {
	message := fmt.Sprintf(
		"Hi %s,\n\nYou have successfully signed out at %s.\n\n",
		staff.Name, logoutTime.Format("03:04 PM"),
	)
	if workDuration != nil {
		message += fmt.Sprintf("Today's work duration: %v hours.\n\n", *workDuration)
	}
	message += "Have a good evening! 🌙"

	d.deliver(ctx, staff, notification.TypeLogout, "Signed Out", message)
}

// SendReminder implements notification.Dispatcher.
func (d *DispatcherImpl) SendReminder(ctx context.Context, recipient user.User, message string) {
	d.deliver(ctx, recipient, notification.TypeReminder, "Attendance Reminder", message)
}
