package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func transientErr() error {
	return &pgconn.PgError{Code: "08006", Message: "connection failure"}
}

func TestWithRetry_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), DefaultRetryPolicy, func(ctx context.Context) error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_RetriesTransientError(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, InitialDelay: time.Millisecond}
	calls := 0
	err := WithRetry(context.Background(), policy, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return transientErr()
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 2, InitialDelay: time.Millisecond}
	calls := 0
	err := WithRetry(context.Background(), policy, func(ctx context.Context) error {
		calls++
		return transientErr()
	})
	assert.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_DoesNotRetryNonTransientError(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 3, InitialDelay: time.Millisecond}
	unique := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
	calls := 0
	err := WithRetry(context.Background(), policy, func(ctx context.Context) error {
		calls++
		return unique
	})
	assert.ErrorIs(t, err, unique)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_SentinelSurvivesWrapping(t *testing.T) {
	sentinel := errors.New("record not found")
	err := WithRetry(context.Background(), DefaultRetryPolicy, func(ctx context.Context) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestWithRetry_RespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	policy := RetryPolicy{MaxAttempts: 5, InitialDelay: time.Second}
	err := WithRetry(ctx, policy, func(ctx context.Context) error {
		return transientErr()
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "08006"}))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "57P01"}))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40001"}))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("parse error")))
}
