package user

import (
	"context"

	"github.com/staffport/attendance-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepo user.UserRepository) user.UserService {
	return &UserServiceImpl{UserRepository: userRepo}
}

// Update implements user.UserService. Role and status values are validated
// as closed enums before anything is written.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	account, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return user.User{}, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Phone != nil {
		account.Phone = *req.Phone
	}
	if req.Department != nil {
		account.Department = *req.Department
	}
	if req.Role != nil {
		role, ok := user.ParseRole(*req.Role)
		if !ok {
			return user.User{}, user.ErrInvalidRole
		}
		account.Role = role
	}
	if req.Status != nil {
		status, ok := user.ParseStatus(*req.Status)
		if !ok {
			return user.User{}, user.ErrInvalidStatus
		}
		account.Status = status
	}

	if err := s.UserRepository.Update(ctx, account); err != nil {
		return user.User{}, err
	}
	return account, nil
}
