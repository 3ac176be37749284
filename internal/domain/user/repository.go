package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, u User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// ListActive returns every active user, ordered by name. Used for
	// absentee inference.
	ListActive(ctx context.Context) ([]User, error)

	// ListActiveByRoles returns active users holding any of the given
	// roles. Used for manager/director notification broadcasts.
	ListActiveByRoles(ctx context.Context, roles []Role) ([]User, error)

	// ListDepartments returns the distinct department names in use.
	ListDepartments(ctx context.Context) ([]string, error)

	List(ctx context.Context) ([]User, error)
}
