package notification

import (
	"context"
	"time"

	"github.com/staffport/attendance-backend-go/internal/domain/user"
)

// Dispatcher sends attendance notifications after ledger transitions. Every
// method is fire-and-forget: delivery failures are recorded on the log
// entries and never returned to the caller as an error of the overall
// operation.
type Dispatcher interface {
	// NotifyLogin messages the staff member, then broadcasts to every
	// active manager and director on each configured channel.
	NotifyLogin(ctx context.Context, staff user.User, loginTime time.Time)

	// NotifyLogout messages the staff member; the duration line is
	// included only when workDuration is non-nil.
	NotifyLogout(ctx context.Context, staff user.User, logoutTime time.Time, workDuration *float64)

	// SendReminder delivers a custom reminder message to one user.
	SendReminder(ctx context.Context, recipient user.User, message string)
}
