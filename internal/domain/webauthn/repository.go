package webauthn

import "context"

type Repository interface {
	Create(ctx context.Context, cred Credential) (Credential, error)
	GetByCredentialID(ctx context.Context, credentialID string) (Credential, error)
	ListByUserID(ctx context.Context, userID string) ([]Credential, error)

	// TouchUsage records a successful assertion: updates the signature
	// counter and last-used timestamp.
	TouchUsage(ctx context.Context, id string, counter int64) error

	Delete(ctx context.Context, id, userID string) error
}
