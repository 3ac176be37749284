package user

import "context"

// UserService covers the administrative user surface: listing accounts,
// editing profile fields, and role or status changes.
type UserService interface {
	GetByID(ctx context.Context, id string) (User, error)
	List(ctx context.Context) ([]User, error)
	ListDepartments(ctx context.Context) ([]string, error)
	Update(ctx context.Context, req UpdateUserRequest) (User, error)
}
