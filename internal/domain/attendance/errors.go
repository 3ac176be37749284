package attendance

import "errors"

var (
	// Ledger rule violations
	ErrPastDate        = errors.New("cannot mark leave for a past date")
	ErrNoAttendanceYet = errors.New("no attendance record for today; log in first")
	ErrInvalidStatus   = errors.New("invalid attendance status")
	ErrInvalidWorkType = errors.New("invalid work type")
	ErrInvalidLeaveType = errors.New("invalid leave type")

	// Storage-level
	ErrDuplicateRecord    = errors.New("attendance record already exists for this user and date")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
