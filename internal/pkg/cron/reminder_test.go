package cron

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffport/attendance-backend-go/internal/domain/attendance"
	"github.com/staffport/attendance-backend-go/internal/domain/user"
)

type stubLedger struct {
	attendance.LedgerService
	absent []attendance.AbsentUser
	err    error
}

func (s *stubLedger) GetAbsentUsers(_ context.Context, _ time.Time) ([]attendance.AbsentUser, error) {
	return s.absent, s.err
}

type stubUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type recordingDispatcher struct {
	mu        sync.Mutex
	reminders map[string]string
}

func newRecordingDispatcher() *recordingDispatcher {
	return &recordingDispatcher{reminders: make(map[string]string)}
}

func (d *recordingDispatcher) NotifyLogin(_ context.Context, _ user.User, _ time.Time) {}
func (d *recordingDispatcher) NotifyLogout(_ context.Context, _ user.User, _ time.Time, _ *float64) {
}

func (d *recordingDispatcher) SendReminder(_ context.Context, recipient user.User, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reminders[recipient.ID] = message
}

func TestRemindAbsentees_MessagesNonAdminAbsentees(t *testing.T) {
	ledger := &stubLedger{absent: []attendance.AbsentUser{
		{ID: "s1", Name: "Alice"},
		{ID: "a1", Name: "Root"},
	}}
	users := &stubUserRepo{users: map[string]user.User{
		"s1": {ID: "s1", Name: "Alice", Role: user.RoleStaff, Status: user.StatusActive},
		"a1": {ID: "a1", Name: "Root", Role: user.RoleAdmin, Status: user.StatusActive},
	}}
	dispatcher := newRecordingDispatcher()

	jobs := NewReminderJobs(ledger, dispatcher, users)
	require.NoError(t, jobs.RemindAbsentees(context.Background()))

	assert.Len(t, dispatcher.reminders, 1)
	assert.Contains(t, dispatcher.reminders["s1"], "Hi Alice,")
	assert.Contains(t, dispatcher.reminders["s1"], "have not signed in")
}

func TestRemindAbsentees_LookupFailureSkipsUser(t *testing.T) {
	ledger := &stubLedger{absent: []attendance.AbsentUser{
		{ID: "gone"},
		{ID: "s1", Name: "Alice"},
	}}
	users := &stubUserRepo{users: map[string]user.User{
		"s1": {ID: "s1", Name: "Alice", Role: user.RoleStaff, Status: user.StatusActive},
	}}
	dispatcher := newRecordingDispatcher()

	jobs := NewReminderJobs(ledger, dispatcher, users)
	require.NoError(t, jobs.RemindAbsentees(context.Background()))

	assert.Len(t, dispatcher.reminders, 1)
	assert.Contains(t, dispatcher.reminders, "s1")
}

func TestRemindAbsentees_PropagatesLedgerError(t *testing.T) {
	ledger := &stubLedger{err: errors.New("connection refused")}
	jobs := NewReminderJobs(ledger, newRecordingDispatcher(), &stubUserRepo{})

	assert.Error(t, jobs.RemindAbsentees(context.Background()))
}

func TestScheduler_RunOnceExecutesJobs(t *testing.T) {
	s := NewScheduler()
	ran := 0
	s.AddJob("sweep", time.Hour, func(_ context.Context) error {
		ran++
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, 1, ran)
}

func TestScheduler_StartDoesNotRunImmediately(t *testing.T) {
	s := NewScheduler()
	var ran atomic.Int32
	s.AddJob("sweep", time.Hour, func(_ context.Context) error {
		ran.Add(1)
		return nil
	})

	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(0), ran.Load())
}
