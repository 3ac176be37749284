package attendance

import (
	"math"
	"time"
)

// Status is the day-level attendance classification. Stored as text but
// closed at the service boundary; unrecognized values are rejected.
type Status string

const (
	StatusAbsent    Status = "Absent"
	StatusPresent   Status = "Present"
	StatusRemote    Status = "Remote"
	StatusLeave     Status = "Leave"
	StatusSickLeave Status = "Sick Leave"
)

// ParseStatus validates a raw status string.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusAbsent, StatusPresent, StatusRemote, StatusLeave, StatusSickLeave:
		return Status(s), true
	}
	return "", false
}

// WorkType records where or how the day was worked.
type WorkType string

const (
	WorkTypeOffice    WorkType = "Office"
	WorkTypeRemote    WorkType = "Remote"
	WorkTypeLeave     WorkType = "Leave"
	WorkTypeSickLeave WorkType = "Sick Leave"
)

// ParseWorkType validates a raw work type string.
func ParseWorkType(s string) (WorkType, bool) {
	switch WorkType(s) {
	case WorkTypeOffice, WorkTypeRemote, WorkTypeLeave, WorkTypeSickLeave:
		return WorkType(s), true
	}
	return "", false
}

// LeaveType pairs the status and work type written by a leave marking.
type LeaveType struct {
	Status   Status
	WorkType WorkType
}

// ParseLeaveType validates a raw leave type string. Only leave kinds are
// accepted here; Present/Remote/Absent are not valid leave markings.
func ParseLeaveType(s string) (LeaveType, bool) {
	switch Status(s) {
	case StatusLeave:
		return LeaveType{Status: StatusLeave, WorkType: WorkTypeLeave}, true
	case StatusSickLeave:
		return LeaveType{Status: StatusSickLeave, WorkType: WorkTypeSickLeave}, true
	}
	return LeaveType{}, false
}

type Attendance struct {
	ID         string
	UserID     string
	Date       time.Time // calendar day, midnight UTC
	LoginTime  *time.Time
	LogoutTime *time.Time
	Status     Status
	WorkType   WorkType
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Join fields populated by list queries
	UserName       *string
	UserEmail      *string
	UserDepartment *string
}

// WorkDuration returns hours between login and logout rounded to two
// decimals, or nil when either timestamp is missing.
func (a *Attendance) WorkDuration() *float64 {
	if a.LoginTime == nil || a.LogoutTime == nil {
		return nil
	}
	hours := a.LogoutTime.Sub(*a.LoginTime).Hours()
	rounded := math.Round(hours*100) / 100
	return &rounded
}

// Day truncates a timestamp to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Summary aggregates a window of records into status buckets. TotalDays is
// the number of records found, not the window length; days without a record
// are not represented. Records outside the named buckets (Sick Leave, bare
// Remote status) count in TotalDays only.
type Summary struct {
	TotalDays   int `json:"total_days"`
	PresentDays int `json:"present_days"`
	RemoteDays  int `json:"remote_days"`
	LeaveDays   int `json:"leave_days"`
	AbsentDays  int `json:"absent_days"`
}

// Classify adds one record to the summary using the bucket precedence:
// Present+Remote work type counts as remote, any other Present counts as
// present, then Leave, then Absent.
func (s *Summary) Classify(a Attendance) {
	s.TotalDays++
	switch {
	case a.Status == StatusPresent && a.WorkType == WorkTypeRemote:
		s.RemoteDays++
	case a.Status == StatusPresent:
		s.PresentDays++
	case a.Status == StatusLeave:
		s.LeaveDays++
	case a.Status == StatusAbsent:
		s.AbsentDays++
	}
}
