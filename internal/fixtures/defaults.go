package fixtures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/staffport/attendance-backend-go/internal/domain/user"
)

const (
	defaultAdminEmail      = "admin@attendance.com"
	defaultAdminName       = "Admin User"
	defaultAdminDepartment = "Administration"
)

// EnsureDefaultAdmin creates the bootstrap admin account if no account with
// its email exists yet. The initial password should be rotated immediately
// after first login.
func EnsureDefaultAdmin(ctx context.Context, userRepo user.UserRepository, password string) error {
	_, err := userRepo.GetByEmail(ctx, defaultAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = userRepo.Create(ctx, user.User{
		Name:         defaultAdminName,
		Email:        defaultAdminEmail,
		Department:   defaultAdminDepartment,
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
		Status:       user.StatusActive,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	slog.Warn("Default admin account created, change its password", "email", defaultAdminEmail)
	return nil
}
