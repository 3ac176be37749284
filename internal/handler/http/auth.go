package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/staffport/attendance-backend-go/internal/domain/attendance"
	"github.com/staffport/attendance-backend-go/internal/domain/auth"
	"github.com/staffport/attendance-backend-go/internal/domain/notification"
	"github.com/staffport/attendance-backend-go/internal/domain/user"
	"github.com/staffport/attendance-backend-go/internal/handler/http/middleware"
	"github.com/staffport/attendance-backend-go/internal/handler/http/response"
	"github.com/staffport/attendance-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService    jwt.Service
	authService   auth.Service
	ledgerService attendance.LedgerService
	userService   user.UserService
	dispatcher    notification.Dispatcher
}

func NewAuthHandler(
	jwtService jwt.Service,
	authService auth.Service,
	ledgerService attendance.LedgerService,
	userService user.UserService,
	dispatcher notification.Dispatcher,
) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:    jwtService,
		authService:   authService,
		ledgerService: ledgerService,
		userService:   userService,
		dispatcher:    dispatcher,
	}
}

// Register implements AuthHandler.
func (a *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var registerReq auth.SignupRequest

	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		slog.Error("Register decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := a.authService.Signup(r.Context(), registerReq)
	if err != nil {
		slog.Error("Register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Account created", created)
}

// Login implements AuthHandler. A successful login by a non-admin also
// stamps today's attendance record; notifications fire only on the first
// login of the day and never delay the response.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokens, account, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if !account.IsAdmin() {
		now := time.Now().UTC()
		_, first, err := a.ledgerService.RecordLogin(r.Context(), account.ID, now)
		if err != nil {
			// The session is valid even when the ledger write fails.
			slog.Error("Login attendance error", "user_id", account.ID, "error", err)
		} else if first {
			go a.dispatcher.NotifyLogin(context.WithoutCancel(r.Context()), account, now)
		}
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshTokenExpiresAt))
	response.SuccessWithMessage(w, "Login successful", tokens)
}

// Logout implements AuthHandler. Logging out before logging in, or twice,
// is a quiet no-op.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	now := time.Now().UTC()
	record, workDuration, marked, err := a.ledgerService.RecordLogout(r.Context(), userID, now)
	if err != nil {
		slog.Error("Logout attendance error", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	if marked {
		account, err := a.userService.GetByID(r.Context(), userID)
		if err != nil {
			slog.Error("Logout user lookup error", "user_id", userID, "error", err)
		} else {
			go a.dispatcher.NotifyLogout(context.WithoutCancel(r.Context()), account, now, workDuration)
		}
	}

	var data interface{}
	if record != nil {
		data = record.ToResponse()
	}
	response.SuccessWithMessage(w, "Logout recorded", data)
}

// RefreshToken implements AuthHandler.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	tokens, err := a.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		slog.Error("RefreshToken service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshTokenExpiresAt))
	response.Success(w, tokens)
}

// ChangePassword implements AuthHandler.
func (a *AuthHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var changeReq auth.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&changeReq); err != nil {
		slog.Error("ChangePassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := a.authService.ChangePassword(r.Context(), userID, changeReq); err != nil {
		slog.Error("ChangePassword service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password updated", nil)
}
