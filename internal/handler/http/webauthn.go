package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/staffport/attendance-backend-go/internal/domain/webauthn"
	"github.com/staffport/attendance-backend-go/internal/handler/http/middleware"
	"github.com/staffport/attendance-backend-go/internal/handler/http/response"
)

type WebAuthnHandler interface {
	RegisterCredential(w http.ResponseWriter, r *http.Request)
	ListCredentials(w http.ResponseWriter, r *http.Request)
	RecordAssertion(w http.ResponseWriter, r *http.Request)
	DeleteCredential(w http.ResponseWriter, r *http.Request)
}

type WebAuthnHandlerImpl struct {
	webauthnService webauthn.Service
}

func NewWebAuthnHandler(webauthnService webauthn.Service) WebAuthnHandler {
	return &WebAuthnHandlerImpl{webauthnService: webauthnService}
}

// RegisterCredential implements WebAuthnHandler.
func (h *WebAuthnHandlerImpl) RegisterCredential(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var registerReq webauthn.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		slog.Error("RegisterCredential decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cred, err := h.webauthnService.Register(r.Context(), userID, registerReq)
	if err != nil {
		slog.Error("RegisterCredential service error", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Credential registered", cred.ToResponse())
}

// ListCredentials implements WebAuthnHandler.
func (h *WebAuthnHandlerImpl) ListCredentials(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	creds, err := h.webauthnService.List(r.Context(), userID)
	if err != nil {
		slog.Error("ListCredentials service error", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]webauthn.CredentialResponse, 0, len(creds))
	for i := range creds {
		out = append(out, creds[i].ToResponse())
	}
	response.Success(w, out)
}

type assertionRequest struct {
	CredentialID string `json:"credential_id"`
	Counter      int64  `json:"counter"`
}

// RecordAssertion implements WebAuthnHandler.
func (h *WebAuthnHandlerImpl) RecordAssertion(w http.ResponseWriter, r *http.Request) {
	var assertReq assertionRequest
	if err := json.NewDecoder(r.Body).Decode(&assertReq); err != nil {
		slog.Error("RecordAssertion decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if assertReq.CredentialID == "" {
		response.BadRequest(w, "credential_id is required", nil)
		return
	}

	cred, err := h.webauthnService.RecordAssertion(r.Context(), assertReq.CredentialID, assertReq.Counter)
	if err != nil {
		slog.Error("RecordAssertion service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, cred.ToResponse())
}

// DeleteCredential implements WebAuthnHandler.
func (h *WebAuthnHandlerImpl) DeleteCredential(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.webauthnService.Remove(r.Context(), id, userID); err != nil {
		slog.Error("DeleteCredential service error", "user_id", userID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Credential removed", nil)
}
