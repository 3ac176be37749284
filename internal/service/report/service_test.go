package report

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffport/attendance-backend-go/internal/domain/attendance"
	"github.com/staffport/attendance-backend-go/internal/domain/report"
)

type stubAttendanceRepo struct {
	records []attendance.Attendance
	err     error
}

func (s *stubAttendanceRepo) Create(_ context.Context, r attendance.Attendance) (attendance.Attendance, error) {
	return r, nil
}
func (s *stubAttendanceRepo) GetByID(_ context.Context, _ string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}
func (s *stubAttendanceRepo) GetByUserAndDate(_ context.Context, _ string, _ time.Time) (*attendance.Attendance, error) {
	return nil, nil
}
func (s *stubAttendanceRepo) Update(_ context.Context, _ attendance.Attendance) error { return nil }
func (s *stubAttendanceRepo) ListByUserSince(_ context.Context, _ string, _ time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}
func (s *stubAttendanceRepo) ListForDate(_ context.Context, _ time.Time, _, _ string) ([]attendance.Attendance, error) {
	return nil, nil
}
func (s *stubAttendanceRepo) ListRange(_ context.Context, _, _ time.Time) ([]attendance.Attendance, error) {
	return s.records, s.err
}
func (s *stubAttendanceRepo) UserIDsWithRecordOn(_ context.Context, _ time.Time) (map[string]struct{}, error) {
	return nil, nil
}
func (s *stubAttendanceRepo) CountByStatus(_ context.Context, _ time.Time, _ attendance.Status) (int, error) {
	return 0, nil
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestBuildAttendanceCSV_FormatsRows(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	login := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	logout := time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC)

	repo := &stubAttendanceRepo{records: []attendance.Attendance{
		{
			UserID: "u1", Date: date,
			LoginTime: &login, LogoutTime: &logout,
			Status: attendance.StatusPresent, WorkType: attendance.WorkTypeOffice,
			Notes:    "on site",
			UserName: strPtr("Alice"), UserEmail: strPtr("alice@example.com"), UserDepartment: strPtr("Engineering"),
		},
		{
			UserID: "u2", Date: date,
			LoginTime: timePtr(login.Add(30 * time.Minute)),
			Status:    attendance.StatusPresent, WorkType: attendance.WorkTypeRemote,
			UserName: strPtr("Bob"), UserEmail: strPtr("bob@example.com"), UserDepartment: strPtr("Sales"),
		},
		{
			UserID: "u3", Date: date,
			Status:   attendance.StatusLeave, WorkType: attendance.WorkTypeLeave,
			UserName: strPtr("Cara"), UserEmail: strPtr("cara@example.com"), UserDepartment: strPtr("Sales"),
		},
	}}
	svc := NewReportService(repo)

	data, filename, err := svc.BuildAttendanceCSV(context.Background(), date, date)
	require.NoError(t, err)
	assert.Equal(t, "attendance_2026-03-02_2026-03-02.csv", filename)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{
		"Date", "Name", "Email", "Department",
		"Login Time", "Logout Time", "Status", "Work Type",
		"Duration (hrs)", "Notes",
	}, rows[0])
	assert.Equal(t, []string{
		"2026-03-02", "Alice", "alice@example.com", "Engineering",
		"09:00 AM", "05:30 PM", "Present", "Office", "8.50", "on site",
	}, rows[1])
	// Missing logout: no clock, no duration.
	assert.Equal(t, "N/A", rows[2][5])
	assert.Equal(t, "N/A", rows[2][8])
	// Leave rows have neither timestamp.
	assert.Equal(t, "N/A", rows[3][4])
	assert.Equal(t, "N/A", rows[3][5])
}

func TestBuildAttendanceCSV_EmptyRangeStillHasHeader(t *testing.T) {
	svc := NewReportService(&stubAttendanceRepo{})
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	data, _, err := svc.BuildAttendanceCSV(context.Background(), date, date)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestBuildAttendanceCSV_RejectsInvertedRange(t *testing.T) {
	svc := NewReportService(&stubAttendanceRepo{})
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, _, err := svc.BuildAttendanceCSV(context.Background(), start, start.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, report.ErrInvalidDateRange)
}

func TestBuildAttendanceCSV_PropagatesRepositoryError(t *testing.T) {
	svc := NewReportService(&stubAttendanceRepo{err: errors.New("connection refused")})
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, _, err := svc.BuildAttendanceCSV(context.Background(), date, date)
	assert.Error(t, err)
}
