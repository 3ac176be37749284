package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffport/attendance-backend-go/internal/domain/auth"
	"github.com/staffport/attendance-backend-go/internal/domain/user"
	"github.com/staffport/attendance-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]user.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, newUser user.User) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Email == newUser.Email {
			return user.User{}, user.ErrUserEmailExists
		}
	}
	f.seq++
	newUser.ID = fmt.Sprintf("user-%d", f.seq)
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.NormalizeEmail(email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) ListActive(_ context.Context) ([]user.User, error) { return nil, nil }
func (f *fakeUserRepo) ListActiveByRoles(_ context.Context, _ []user.Role) ([]user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) ListDepartments(_ context.Context) ([]string, error) { return nil, nil }
func (f *fakeUserRepo) List(_ context.Context) ([]user.User, error)         { return nil, nil }

func newTestAuthService(repo *fakeUserRepo) auth.Service {
	jwtService := jwt.NewJWTService("test-secret-key", "1h", "24h")
	return NewAuthService(repo, jwtService)
}

func signupTestUser(t *testing.T, svc auth.Service) user.UserResponse {
	t.Helper()
	created, err := svc.Signup(context.Background(), auth.SignupRequest{
		Name:            "Alice",
		Email:           "Alice@Example.com",
		Phone:           "+15550001111",
		Department:      "Engineering",
		Password:        "hunter22",
		ConfirmPassword: "hunter22",
	})
	require.NoError(t, err)
	return created
}

func TestSignup_CreatesActiveStaffWithHashedPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	created := signupTestUser(t, svc)

	assert.Equal(t, "alice@example.com", created.Email)
	assert.Equal(t, string(user.RoleStaff), created.Role)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, user.StatusActive, stored.Status)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter22")))
}

func TestSignup_RejectsPasswordMismatch(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Signup(context.Background(), auth.SignupRequest{
		Name: "Alice", Email: "alice@example.com", Phone: "+15550001111",
		Department: "Engineering", Password: "hunter22", ConfirmPassword: "hunter23",
	})
	assert.Error(t, err)
}

func TestSignup_RejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	signupTestUser(t, svc)

	_, err := svc.Signup(context.Background(), auth.SignupRequest{
		Name: "Other", Email: "alice@example.com", Phone: "+15550002222",
		Department: "Sales", Password: "hunter22", ConfirmPassword: "hunter22",
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	signupTestUser(t, svc)

	tokens, account, err := svc.Login(context.Background(), auth.LoginRequest{
		Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "alice@example.com", account.Email)
	assert.Equal(t, account.ID, tokens.User.ID)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	signupTestUser(t, svc)

	_, _, wrongPassword := svc.Login(context.Background(), auth.LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	})
	_, _, unknownEmail := svc.Login(context.Background(), auth.LoginRequest{
		Email: "nobody@example.com", Password: "hunter22",
	})

	assert.ErrorIs(t, wrongPassword, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, auth.ErrInvalidCredentials)
}

func TestLogin_RejectsInactiveAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	created := signupTestUser(t, svc)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	stored.Status = user.StatusInactive
	require.NoError(t, repo.Update(context.Background(), stored))

	_, _, err = svc.Login(context.Background(), auth.LoginRequest{
		Email: "alice@example.com", Password: "hunter22",
	})
	assert.ErrorIs(t, err, user.ErrAccountInactive)
}

func TestRefresh_ExchangesValidToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	signupTestUser(t, svc)

	tokens, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	signupTestUser(t, svc)

	tokens, _, err := svc.Login(context.Background(), auth.LoginRequest{
		Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestChangePassword_RequiresCurrentPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	created := signupTestUser(t, svc)

	err := svc.ChangePassword(context.Background(), created.ID, auth.ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "newpassword",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), created.ID, auth.ChangePasswordRequest{
		CurrentPassword: "hunter22", NewPassword: "newpassword",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), auth.LoginRequest{
		Email: "alice@example.com", Password: "newpassword",
	})
	assert.NoError(t, err)
}
