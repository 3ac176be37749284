package auth

import (
	"context"

	"github.com/staffport/attendance-backend-go/internal/domain/user"
)

type Service interface {
	// Signup registers a new staff account. New accounts always start as
	// active staff; role escalation is an administrative action.
	Signup(ctx context.Context, req SignupRequest) (user.UserResponse, error)

	// Login verifies credentials and issues a token pair. The full user
	// entity is returned so the caller can record attendance and fire
	// notifications.
	Login(ctx context.Context, req LoginRequest) (TokenResponse, user.User, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)

	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
}
