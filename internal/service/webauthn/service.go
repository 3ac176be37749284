package webauthn

import (
	"context"

	"github.com/staffport/attendance-backend-go/internal/domain/webauthn"
)

type WebAuthnServiceImpl struct {
	webauthn.Repository
}

func NewWebAuthnService(repo webauthn.Repository) webauthn.Service {
	return &WebAuthnServiceImpl{Repository: repo}
}

// Register implements webauthn.Service.
func (s *WebAuthnServiceImpl) Register(ctx context.Context, userID string, req webauthn.RegisterRequest) (webauthn.Credential, error) {
	if err := req.Validate(); err != nil {
		return webauthn.Credential{}, err
	}

	return s.Create(ctx, webauthn.Credential{
		UserID:       userID,
		CredentialID: req.CredentialID,
		PublicKey:    req.PublicKey,
		DeviceName:   req.DeviceName,
	})
}

// List implements webauthn.Service.
func (s *WebAuthnServiceImpl) List(ctx context.Context, userID string) ([]webauthn.Credential, error) {
	return s.ListByUserID(ctx, userID)
}

// RecordAssertion implements webauthn.Service.
func (s *WebAuthnServiceImpl) RecordAssertion(ctx context.Context, credentialID string, counter int64) (webauthn.Credential, error) {
	cred, err := s.GetByCredentialID(ctx, credentialID)
	if err != nil {
		return webauthn.Credential{}, err
	}

	// Counter 0 means the authenticator does not implement counters.
	if counter != 0 && counter <= cred.Counter {
		return webauthn.Credential{}, webauthn.ErrCounterRegression
	}

	if err := s.TouchUsage(ctx, cred.ID, counter); err != nil {
		return webauthn.Credential{}, err
	}
	cred.Counter = counter
	return cred, nil
}

// Remove implements webauthn.Service.
func (s *WebAuthnServiceImpl) Remove(ctx context.Context, id, userID string) error {
	return s.Delete(ctx, id, userID)
}
