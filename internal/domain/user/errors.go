package user

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserEmailExists     = errors.New("email already registered")
	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidStatus       = errors.New("invalid account status")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrAdminAccessRequired = errors.New("admin privileges required")
	ErrStaffOnly           = errors.New("admin accounts do not hold attendance records")
)
