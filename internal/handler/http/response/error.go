package response

import (
	"errors"
	"net/http"

	"github.com/staffport/attendance-backend-go/internal/domain/attendance"
	"github.com/staffport/attendance-backend-go/internal/domain/auth"
	"github.com/staffport/attendance-backend-go/internal/domain/report"
	"github.com/staffport/attendance-backend-go/internal/domain/user"
	"github.com/staffport/attendance-backend-go/internal/domain/webauthn"
	"github.com/staffport/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, user.ErrAccountInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrStaffOnly):
		Forbidden(w, "Admin accounts do not hold attendance records")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrInvalidRole), errors.Is(err, user.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrPastDate):
		BadRequest(w, "Cannot mark leave for a past date", nil)
	case errors.Is(err, attendance.ErrNoAttendanceYet):
		BadRequest(w, "No attendance record for today yet", nil)
	case errors.Is(err, attendance.ErrDuplicateRecord):
		Conflict(w, "Attendance record already exists for this date")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidStatus),
		errors.Is(err, attendance.ErrInvalidWorkType),
		errors.Is(err, attendance.ErrInvalidLeaveType):
		BadRequest(w, err.Error(), nil)

	// Report domain errors
	case errors.Is(err, report.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// WebAuthn domain errors
	case errors.Is(err, webauthn.ErrCredentialNotFound):
		NotFound(w, "Credential not found")
	case errors.Is(err, webauthn.ErrCredentialExists):
		Conflict(w, "Credential already registered")
	case errors.Is(err, webauthn.ErrCounterRegression):
		BadRequest(w, err.Error(), nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
