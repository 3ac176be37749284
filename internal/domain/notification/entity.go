package notification

import "time"

// Type identifies what event produced a notification.
type Type string

const (
	TypeLogin               Type = "login"
	TypeLogout              Type = "logout"
	TypeReminder            Type = "reminder"
	TypeManagerNotification Type = "manager_notification"
)

// Channel identifies the delivery transport used for an attempt.
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

// Status tracks a log entry through its one-way lifecycle:
// pending -> sent on delivery success, pending -> failed on failure.
// There are no further transitions and no automatic retry.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// Notification is an audit record of one delivery attempt, not a queue
// item.
type Notification struct {
	ID           string
	UserID       string
	Message      string
	Type         Type
	Channel      Channel
	Status       Status
	ErrorMessage *string
	SentAt       *time.Time
	CreatedAt    time.Time
}
