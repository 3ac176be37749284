package attendance

import (
	"time"

	"github.com/staffport/attendance-backend-go/internal/pkg/validator"
)

// ============= Request DTOs =============

// MarkLeaveRequest marks leave for a future-or-today date.
type MarkLeaveRequest struct {
	Date      string `json:"date"`
	LeaveType string `json:"leave_type"`
	Notes     string `json:"notes"`
}

func (r *MarkLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if _, ok := ParseLeaveType(r.LeaveType); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "unrecognized leave type",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AdminUpdateRequest is the administrative override: direct mutation of
// status, work type, and notes with no timestamp re-validation.
type AdminUpdateRequest struct {
	ID       string  `json:"id"`
	Status   *string `json:"status,omitempty"`
	WorkType *string `json:"work_type,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *AdminUpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Status != nil {
		if _, ok := ParseStatus(*r.Status); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "unrecognized status",
			})
		}
	}

	if r.WorkType != nil {
		if _, ok := ParseWorkType(*r.WorkType); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "work_type",
				Message: "unrecognized work type",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ============= Response DTOs =============

// AttendanceResponse represents an attendance record in API responses.
type AttendanceResponse struct {
	ID           string   `json:"id"`
	UserID       string   `json:"user_id"`
	UserName     *string  `json:"user_name,omitempty"`
	Date         string   `json:"date"`
	LoginTime    *string  `json:"login_time"`
	LogoutTime   *string  `json:"logout_time"`
	Status       string   `json:"status"`
	WorkType     string   `json:"work_type"`
	Notes        string   `json:"notes,omitempty"`
	WorkDuration *float64 `json:"work_duration,omitempty"`
}

// FormatClock renders a timestamp on a 12-hour clock, or "N/A" when nil.
func FormatClock(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("03:04 PM")
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02 15:04:05")
	return &formatted
}

// ToResponse maps an Attendance entity to its API representation.
func (a *Attendance) ToResponse() AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		UserName:     a.UserName,
		Date:         a.Date.Format("2006-01-02"),
		LoginTime:    timePtrToString(a.LoginTime),
		LogoutTime:   timePtrToString(a.LogoutTime),
		Status:       string(a.Status),
		WorkType:     string(a.WorkType),
		Notes:        a.Notes,
		WorkDuration: a.WorkDuration(),
	}
}

// DayStats is the admin panel counter block for a single date.
type DayStats struct {
	TotalActiveStaff int `json:"total_active_staff"`
	Present          int `json:"present"`
	Remote           int `json:"remote"`
	Leave            int `json:"leave"`
	Absent           int `json:"absent"`
}
