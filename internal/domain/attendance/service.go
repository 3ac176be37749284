package attendance

import (
	"context"
	"time"
)

// LedgerService owns every attendance state transition and query. It is the
// single writer of attendance records outside the administrative override.
type LedgerService interface {
	// RecordLogin creates or updates today's record for the user. The
	// returned flag is true only on the first login of the day; callers
	// use it to decide whether notifications fire.
	RecordLogin(ctx context.Context, userID string, now time.Time) (Attendance, bool, error)

	// RecordLogout stamps the logout time. When there is nothing to do
	// (no record, no login yet, already logged out) it returns marked
	// false with no error and no mutation.
	RecordLogout(ctx context.Context, userID string, now time.Time) (record *Attendance, workDuration *float64, marked bool, err error)

	// RecordLeave marks leave for a future-or-today date, overwriting any
	// existing record for that date unconditionally.
	RecordLeave(ctx context.Context, userID string, date time.Time, leaveType LeaveType, notes string) (Attendance, error)

	// RecordRemote flips today's record to remote work. Requires an
	// existing record.
	RecordRemote(ctx context.Context, userID string) (Attendance, error)

	GetToday(ctx context.Context, userID string, now time.Time) (*Attendance, error)
	GetRecent(ctx context.Context, userID string, days int, now time.Time) ([]Attendance, error)
	GetSummary(ctx context.Context, userID string, windowDays int, now time.Time) (Summary, error)

	// GetAbsentUsers derives the absentee set for a date: every active
	// user without a non-Absent record.
	GetAbsentUsers(ctx context.Context, date time.Time) ([]AbsentUser, error)

	// ListForDate is the admin panel view: records for one date with
	// optional department/status filters plus per-status counters.
	ListForDate(ctx context.Context, date time.Time, department, status string) ([]Attendance, DayStats, error)

	// AdminUpdate is the administrative override. It validates enum
	// values but deliberately skips timestamp re-validation.
	AdminUpdate(ctx context.Context, req AdminUpdateRequest) (Attendance, error)
}

// AbsentUser is one row of the absentee list.
type AbsentUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}
