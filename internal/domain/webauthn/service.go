package webauthn

import "context"

// Service persists authenticator registrations and usage. Challenge and
// signature verification happen in the browser ceremony upstream; the server
// side tracks credentials and enforces counter monotonicity.
type Service interface {
	Register(ctx context.Context, userID string, req RegisterRequest) (Credential, error)
	List(ctx context.Context, userID string) ([]Credential, error)

	// RecordAssertion bumps the signature counter after a successful
	// assertion. A counter at or below the stored value indicates a cloned
	// authenticator and is rejected.
	RecordAssertion(ctx context.Context, credentialID string, counter int64) (Credential, error)

	Remove(ctx context.Context, id, userID string) error
}
