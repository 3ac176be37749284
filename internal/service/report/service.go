package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/staffport/attendance-backend-go/internal/domain/attendance"
	"github.com/staffport/attendance-backend-go/internal/domain/report"
)

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewReportService(attendanceRepo attendance.AttendanceRepository) report.ReportService {
	return &ReportServiceImpl{attendanceRepo: attendanceRepo}
}

var csvHeader = []string{
	"Date", "Name", "Email", "Department",
	"Login Time", "Logout Time", "Status", "Work Type",
	"Duration (hrs)", "Notes",
}

// BuildAttendanceCSV implements report.ReportService.
func (s *ReportServiceImpl) BuildAttendanceCSV(ctx context.Context, start, end time.Time) ([]byte, string, error) {
	startDay := attendance.Day(start)
	endDay := attendance.Day(end)
	if startDay.After(endDay) {
		return nil, "", report.ErrInvalidDateRange
	}

	records, err := s.attendanceRepo.ListRange(ctx, startDay, endDay)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list records for export: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, "", fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, record := range records {
		if err := w.Write(csvRow(record)); err != nil {
			return nil, "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to flush csv: %w", err)
	}

	filename := fmt.Sprintf("attendance_%s_%s.csv",
		startDay.Format("2006-01-02"), endDay.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func csvRow(record attendance.Attendance) []string {
	duration := "N/A"
	if d := record.WorkDuration(); d != nil {
		duration = fmt.Sprintf("%.2f", *d)
	}

	return []string{
		record.Date.Format("2006-01-02"),
		strFromPtr(record.UserName),
		strFromPtr(record.UserEmail),
		strFromPtr(record.UserDepartment),
		attendance.FormatClock(record.LoginTime),
		attendance.FormatClock(record.LogoutTime),
		string(record.Status),
		string(record.WorkType),
		duration,
		record.Notes,
	}
}

func strFromPtr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
