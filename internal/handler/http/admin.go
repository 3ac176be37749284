package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/staffport/attendance-backend-go/internal/domain/attendance"
	"github.com/staffport/attendance-backend-go/internal/domain/report"
	"github.com/staffport/attendance-backend-go/internal/domain/user"
	"github.com/staffport/attendance-backend-go/internal/handler/http/response"
)

type AdminHandler interface {
	ListUsers(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
	DayAttendance(w http.ResponseWriter, r *http.Request)
	Absentees(w http.ResponseWriter, r *http.Request)
	OverrideAttendance(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
}

type AdminHandlerImpl struct {
	userService   user.UserService
	ledgerService attendance.LedgerService
	reportService report.ReportService
}

func NewAdminHandler(
	userService user.UserService,
	ledgerService attendance.LedgerService,
	reportService report.ReportService,
) AdminHandler {
	return &AdminHandlerImpl{
		userService:   userService,
		ledgerService: ledgerService,
		reportService: reportService,
	}
}

// dateParam reads a YYYY-MM-DD query parameter, defaulting to today.
func dateParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01-02", raw)
}

// ListUsers implements AdminHandler.
func (a *AdminHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.userService.List(r.Context())
	if err != nil {
		slog.Error("ListUsers service error", "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]user.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	response.Success(w, out)
}

// UpdateUser implements AdminHandler.
func (a *AdminHandlerImpl) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var updateReq user.UpdateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	updated, err := a.userService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdateUser service error", "user_id", updateReq.ID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated", updated.ToResponse())
}

// ListDepartments implements AdminHandler.
func (a *AdminHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := a.userService.ListDepartments(r.Context())
	if err != nil {
		slog.Error("ListDepartments service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, departments)
}

// DayAttendance implements AdminHandler. Returns the records for one date
// alongside per-status counters for the whole date.
func (a *AdminHandlerImpl) DayAttendance(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, "date")
	if err != nil {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	department := r.URL.Query().Get("department")
	status := r.URL.Query().Get("status")

	records, stats, err := a.ledgerService.ListForDate(r.Context(), date, department, status)
	if err != nil {
		slog.Error("DayAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]attendance.AttendanceResponse, 0, len(records))
	for i := range records {
		out = append(out, records[i].ToResponse())
	}
	response.Success(w, map[string]interface{}{
		"records": out,
		"stats":   stats,
	})
}

// Absentees implements AdminHandler.
func (a *AdminHandlerImpl) Absentees(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, "date")
	if err != nil {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	absent, err := a.ledgerService.GetAbsentUsers(r.Context(), date)
	if err != nil {
		slog.Error("Absentees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, absent)
}

// OverrideAttendance implements AdminHandler.
func (a *AdminHandlerImpl) OverrideAttendance(w http.ResponseWriter, r *http.Request) {
	var overrideReq attendance.AdminUpdateRequest

	if err := json.NewDecoder(r.Body).Decode(&overrideReq); err != nil {
		slog.Error("OverrideAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	overrideReq.ID = chi.URLParam(r, "id")

	record, err := a.ledgerService.AdminUpdate(r.Context(), overrideReq)
	if err != nil {
		slog.Error("OverrideAttendance service error", "attendance_id", overrideReq.ID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated", record.ToResponse())
}

// ExportCSV implements AdminHandler. Streams the attendance export as a
// file download.
func (a *AdminHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	start, err := dateParam(r, "start_date")
	if err != nil {
		response.BadRequest(w, "start_date must be in YYYY-MM-DD format", nil)
		return
	}
	end, err := dateParam(r, "end_date")
	if err != nil {
		response.BadRequest(w, "end_date must be in YYYY-MM-DD format", nil)
		return
	}
	// Default window is the last 30 days.
	if r.URL.Query().Get("start_date") == "" {
		start = end.AddDate(0, 0, -30)
	}

	data, filename, err := a.reportService.BuildAttendanceCSV(r.Context(), start, end)
	if err != nil {
		slog.Error("ExportCSV service error", "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
