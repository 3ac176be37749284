package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. The
// (user_id, date) pair is unique at the storage layer; Create surfaces a
// constraint race as ErrDuplicateRecord so callers can retry as a lookup.
type AttendanceRepository interface {
	Create(ctx context.Context, record Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByUserAndDate returns nil without error when no record exists.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	Update(ctx context.Context, record Attendance) error

	// ListByUserSince returns a user's records with date >= since, newest
	// first.
	ListByUserSince(ctx context.Context, userID string, since time.Time) ([]Attendance, error)

	// ListForDate returns all records for a date joined with user fields,
	// optionally filtered by department and status, ordered by user name.
	ListForDate(ctx context.Context, date time.Time, department, status string) ([]Attendance, error)

	// ListRange returns records in [start, end] joined with user fields,
	// ordered by date descending then user name ascending. Feeds the CSV
	// export.
	ListRange(ctx context.Context, start, end time.Time) ([]Attendance, error)

	// UserIDsWithRecordOn returns the ids of users holding a non-Absent
	// record for the date. The complement against active users is the
	// absentee set.
	UserIDsWithRecordOn(ctx context.Context, date time.Time) (map[string]struct{}, error)

	// CountByStatus returns the number of records with the given status on
	// the date.
	CountByStatus(ctx context.Context, date time.Time, status Status) (int, error)
}
