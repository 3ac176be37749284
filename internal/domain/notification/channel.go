package notification

import "context"

// Recipient is one delivery target. Address is channel-specific: a phone
// number for WhatsApp, an email address for email.
type Recipient struct {
	Name    string
	Address string
}

// DeliveryChannel is an outbound transport. Implementations never inspect
// ledger state; dispatch treats every Send as fire-and-forget and records
// the outcome on the notification log entry.
type DeliveryChannel interface {
	Kind() Channel
	Send(ctx context.Context, to Recipient, subject, body string) error
}
