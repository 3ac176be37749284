package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/staffport/attendance-backend-go/internal/domain/attendance"
	"github.com/staffport/attendance-backend-go/internal/domain/user"
	"github.com/staffport/attendance-backend-go/internal/pkg/database"
)

type LedgerServiceImpl struct {
	attendance.AttendanceRepository
	user.UserRepository
	retry database.RetryPolicy
}

func NewLedgerService(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	retry database.RetryPolicy,
) attendance.LedgerService {
	return &LedgerServiceImpl{
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		retry:                retry,
	}
}

// createRecord inserts with transient-failure retry at the storage boundary.
func (s *LedgerServiceImpl) createRecord(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	var created attendance.Attendance
	err := database.WithRetry(ctx, s.retry, func(ctx context.Context) error {
		var err error
		created, err = s.AttendanceRepository.Create(ctx, record)
		return err
	})
	return created, err
}

// updateRecord updates with transient-failure retry at the storage boundary.
func (s *LedgerServiceImpl) updateRecord(ctx context.Context, record attendance.Attendance) error {
	return database.WithRetry(ctx, s.retry, func(ctx context.Context) error {
		return s.AttendanceRepository.Update(ctx, record)
	})
}

// RecordLogin implements attendance.LedgerService. The login timestamp is
// written at most once per (user, day); repeated calls return the existing
// record unchanged with marked false.
func (s *LedgerServiceImpl) RecordLogin(ctx context.Context, userID string, now time.Time) (attendance.Attendance, bool, error) {
	today := attendance.Day(now)

	existing, err := s.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.Attendance{}, false, fmt.Errorf("failed to look up today's record: %w", err)
	}

	if existing == nil {
		record := attendance.Attendance{
			UserID:    userID,
			Date:      today,
			LoginTime: &now,
			Status:    attendance.StatusPresent,
			WorkType:  attendance.WorkTypeOffice,
		}
		created, err := s.createRecord(ctx, record)
		if err == nil {
			return created, true, nil
		}
		if !errors.Is(err, attendance.ErrDuplicateRecord) {
			return attendance.Attendance{}, false, err
		}

		// Lost a concurrent insert race; fall through to the
		// record the winner created.
		existing, err = s.GetByUserAndDate(ctx, userID, today)
		if err != nil {
			return attendance.Attendance{}, false, fmt.Errorf("failed to look up today's record: %w", err)
		}
		if existing == nil {
			return attendance.Attendance{}, false, attendance.ErrDuplicateRecord
		}
	}

	if existing.LoginTime != nil {
		return *existing, false, nil
	}

	// A leave marked for today is superseded by an actual sign-in.
	existing.LoginTime = &now
	existing.Status = attendance.StatusPresent
	if err := s.updateRecord(ctx, *existing); err != nil {
		return attendance.Attendance{}, false, err
	}
	return *existing, true, nil
}

// RecordLogout implements attendance.LedgerService. Missing record, missing
// login, and repeated logout are all quiet no-ops.
func (s *LedgerServiceImpl) RecordLogout(ctx context.Context, userID string, now time.Time) (*attendance.Attendance, *float64, bool, error) {
	today := attendance.Day(now)

	record, err := s.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to look up today's record: %w", err)
	}
	if record == nil || record.LoginTime == nil {
		return record, nil, false, nil
	}
	if record.LogoutTime != nil {
		return record, record.WorkDuration(), false, nil
	}

	record.LogoutTime = &now
	if err := s.updateRecord(ctx, *record); err != nil {
		return nil, nil, false, err
	}
	return record, record.WorkDuration(), true, nil
}

// RecordLeave implements attendance.LedgerService. An existing record for the
// date is overwritten, including one already holding a login.
func (s *LedgerServiceImpl) RecordLeave(ctx context.Context, userID string, date time.Time, leaveType attendance.LeaveType, notes string) (attendance.Attendance, error) {
	day := attendance.Day(date)
	if day.Before(attendance.Day(time.Now())) {
		return attendance.Attendance{}, attendance.ErrPastDate
	}
	if _, ok := attendance.ParseLeaveType(string(leaveType.Status)); !ok {
		return attendance.Attendance{}, attendance.ErrInvalidLeaveType
	}

	existing, err := s.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to look up record: %w", err)
	}

	if existing != nil {
		existing.Status = leaveType.Status
		existing.WorkType = leaveType.WorkType
		existing.Notes = notes
		if err := s.updateRecord(ctx, *existing); err != nil {
			return attendance.Attendance{}, err
		}
		return *existing, nil
	}

	record := attendance.Attendance{
		UserID:   userID,
		Date:     day,
		Status:   leaveType.Status,
		WorkType: leaveType.WorkType,
		Notes:    notes,
	}
	created, err := s.createRecord(ctx, record)
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, attendance.ErrDuplicateRecord) {
		return attendance.Attendance{}, err
	}

	// Insert race: another writer created the row first, overwrite it.
	existing, err = s.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to look up record: %w", err)
	}
	if existing == nil {
		return attendance.Attendance{}, attendance.ErrDuplicateRecord
	}
	existing.Status = leaveType.Status
	existing.WorkType = leaveType.WorkType
	existing.Notes = notes
	if err := s.updateRecord(ctx, *existing); err != nil {
		return attendance.Attendance{}, err
	}
	return *existing, nil
}

// RecordRemote implements attendance.LedgerService.
func (s *LedgerServiceImpl) RecordRemote(ctx context.Context, userID string) (attendance.Attendance, error) {
	today := attendance.Day(time.Now())

	record, err := s.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to look up today's record: %w", err)
	}
	if record == nil {
		return attendance.Attendance{}, attendance.ErrNoAttendanceYet
	}

	record.Status = attendance.StatusRemote
	record.WorkType = attendance.WorkTypeRemote
	if err := s.updateRecord(ctx, *record); err != nil {
		return attendance.Attendance{}, err
	}
	return *record, nil
}

// GetToday implements attendance.LedgerService.
func (s *LedgerServiceImpl) GetToday(ctx context.Context, userID string, now time.Time) (*attendance.Attendance, error) {
	record, err := s.GetByUserAndDate(ctx, userID, attendance.Day(now))
	if err != nil {
		return nil, fmt.Errorf("failed to look up today's record: %w", err)
	}
	return record, nil
}

// GetRecent implements attendance.LedgerService.
func (s *LedgerServiceImpl) GetRecent(ctx context.Context, userID string, days int, now time.Time) ([]attendance.Attendance, error) {
	since := attendance.Day(now).AddDate(0, 0, -(days - 1))
	records, err := s.ListByUserSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent records: %w", err)
	}
	return records, nil
}

// GetSummary implements attendance.LedgerService. The window includes today
// and the previous windowDays-1 calendar days.
func (s *LedgerServiceImpl) GetSummary(ctx context.Context, userID string, windowDays int, now time.Time) (attendance.Summary, error) {
	since := attendance.Day(now).AddDate(0, 0, -(windowDays - 1))
	records, err := s.ListByUserSince(ctx, userID, since)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to list records for summary: %w", err)
	}

	var summary attendance.Summary
	for _, record := range records {
		summary.Classify(record)
	}
	return summary, nil
}

// GetAbsentUsers implements attendance.LedgerService.
func (s *LedgerServiceImpl) GetAbsentUsers(ctx context.Context, date time.Time) ([]attendance.AbsentUser, error) {
	day := attendance.Day(date)

	active, err := s.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	recorded, err := s.UserIDsWithRecordOn(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list recorded users: %w", err)
	}

	var absent []attendance.AbsentUser
	for _, u := range active {
		if _, ok := recorded[u.ID]; ok {
			continue
		}
		absent = append(absent, attendance.AbsentUser{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Department: u.Department,
		})
	}
	return absent, nil
}

// ListForDate implements attendance.LedgerService. The counters are computed
// over the full date, not the filtered record list.
func (s *LedgerServiceImpl) ListForDate(ctx context.Context, date time.Time, department, status string) ([]attendance.Attendance, attendance.DayStats, error) {
	day := attendance.Day(date)

	if status != "" {
		if _, ok := attendance.ParseStatus(status); !ok {
			return nil, attendance.DayStats{}, attendance.ErrInvalidStatus
		}
	}

	records, err := s.AttendanceRepository.ListForDate(ctx, day, department, status)
	if err != nil {
		return nil, attendance.DayStats{}, fmt.Errorf("failed to list records: %w", err)
	}

	active, err := s.ListActive(ctx)
	if err != nil {
		return nil, attendance.DayStats{}, fmt.Errorf("failed to list active users: %w", err)
	}

	var stats attendance.DayStats
	stats.TotalActiveStaff = len(active)

	if stats.Present, err = s.CountByStatus(ctx, day, attendance.StatusPresent); err != nil {
		return nil, attendance.DayStats{}, fmt.Errorf("failed to count present: %w", err)
	}
	if stats.Remote, err = s.CountByStatus(ctx, day, attendance.StatusRemote); err != nil {
		return nil, attendance.DayStats{}, fmt.Errorf("failed to count remote: %w", err)
	}
	leave, err := s.CountByStatus(ctx, day, attendance.StatusLeave)
	if err != nil {
		return nil, attendance.DayStats{}, fmt.Errorf("failed to count leave: %w", err)
	}
	sickLeave, err := s.CountByStatus(ctx, day, attendance.StatusSickLeave)
	if err != nil {
		return nil, attendance.DayStats{}, fmt.Errorf("failed to count sick leave: %w", err)
	}
	stats.Leave = leave + sickLeave
	stats.Absent = stats.TotalActiveStaff - stats.Present - stats.Remote - stats.Leave
	if stats.Absent < 0 {
		stats.Absent = 0
	}

	return records, stats, nil
}

// AdminUpdate implements attendance.LedgerService. Status and work type are
// validated as closed enums; timestamps are left untouched.
func (s *LedgerServiceImpl) AdminUpdate(ctx context.Context, req attendance.AdminUpdateRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	if req.Status != nil {
		status, ok := attendance.ParseStatus(*req.Status)
		if !ok {
			return attendance.Attendance{}, attendance.ErrInvalidStatus
		}
		record.Status = status
	}
	if req.WorkType != nil {
		workType, ok := attendance.ParseWorkType(*req.WorkType)
		if !ok {
			return attendance.Attendance{}, attendance.ErrInvalidWorkType
		}
		record.WorkType = workType
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}

	if err := s.updateRecord(ctx, record); err != nil {
		return attendance.Attendance{}, err
	}
	return record, nil
}
