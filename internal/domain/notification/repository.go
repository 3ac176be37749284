package notification

import "context"

type Repository interface {
	// Create inserts a pending log entry immediately before a delivery
	// attempt.
	Create(ctx context.Context, n *Notification) error

	// MarkSent transitions pending -> sent.
	MarkSent(ctx context.Context, id string) error

	// MarkFailed transitions pending -> failed with the delivery error.
	MarkFailed(ctx context.Context, id string, errorMessage string) error

	GetByUserID(ctx context.Context, userID string, limit int) ([]Notification, error)
}
