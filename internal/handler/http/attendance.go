package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/staffport/attendance-backend-go/internal/domain/attendance"
	"github.com/staffport/attendance-backend-go/internal/domain/notification"
	"github.com/staffport/attendance-backend-go/internal/handler/http/middleware"
	"github.com/staffport/attendance-backend-go/internal/handler/http/response"
)

const (
	defaultRecentDays  = 7
	defaultSummaryDays = 30
	notificationLimit  = 20
)

type AttendanceHandler interface {
	GetToday(w http.ResponseWriter, r *http.Request)
	GetRecent(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	MarkLeave(w http.ResponseWriter, r *http.Request)
	MarkRemote(w http.ResponseWriter, r *http.Request)
	MyNotifications(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	ledgerService    attendance.LedgerService
	notificationRepo notification.Repository
}

func NewAttendanceHandler(ledgerService attendance.LedgerService, notificationRepo notification.Repository) AttendanceHandler {
	return &AttendanceHandlerImpl{
		ledgerService:    ledgerService,
		notificationRepo: notificationRepo,
	}
}

// daysParam reads an integer query parameter, falling back when absent or
// unparseable.
func daysParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return fallback
	}
	return days
}

// GetToday implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := a.ledgerService.GetToday(r.Context(), userID, time.Now().UTC())
	if err != nil {
		slog.Error("GetToday service error", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	if record == nil {
		response.Success(w, nil)
		return
	}
	response.Success(w, record.ToResponse())
}

// GetRecent implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetRecent(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	days := daysParam(r, "days", defaultRecentDays)
	records, err := a.ledgerService.GetRecent(r.Context(), userID, days, time.Now().UTC())
	if err != nil {
		slog.Error("GetRecent service error", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]attendance.AttendanceResponse, 0, len(records))
	for i := range records {
		out = append(out, records[i].ToResponse())
	}
	response.Success(w, out)
}

// GetSummary implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	days := daysParam(r, "days", defaultSummaryDays)
	summary, err := a.ledgerService.GetSummary(r.Context(), userID, days, time.Now().UTC())
	if err != nil {
		slog.Error("GetSummary service error", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// MarkLeave implements AttendanceHandler.
func (a *AttendanceHandlerImpl) MarkLeave(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var markReq attendance.MarkLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&markReq); err != nil {
		slog.Error("MarkLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := markReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	date, err := time.Parse("2006-01-02", markReq.Date)
	if err != nil {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}
	leaveType, _ := attendance.ParseLeaveType(markReq.LeaveType)

	record, err := a.ledgerService.RecordLeave(r.Context(), userID, date, leaveType, markReq.Notes)
	if err != nil {
		slog.Error("MarkLeave service error", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave recorded", record.ToResponse())
}

// MarkRemote implements AttendanceHandler.
func (a *AttendanceHandlerImpl) MarkRemote(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := a.ledgerService.RecordRemote(r.Context(), userID)
	if err != nil {
		slog.Error("MarkRemote service error", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Remote work recorded", record.ToResponse())
}

// MyNotifications implements AttendanceHandler.
func (a *AttendanceHandlerImpl) MyNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	notifications, err := a.notificationRepo.GetByUserID(r.Context(), userID, notificationLimit)
	if err != nil {
		slog.Error("MyNotifications repository error", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]notification.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, notifications[i].ToResponse())
	}
	response.Success(w, out)
}
