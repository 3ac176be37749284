package webauthn

import "time"

// Credential stores a registered WebAuthn/FIDO2 authenticator. The browser
// ceremony happens client-side; this service only persists the result and
// bumps the signature counter on use.
type Credential struct {
	ID           string
	UserID       string
	CredentialID string // base64-encoded authenticator credential id
	PublicKey    string // JSON-encoded public key
	Counter      int64
	DeviceName   *string
	RegisteredAt time.Time
	LastUsedAt   *time.Time
}
