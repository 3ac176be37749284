package webauthn

import "errors"

var (
	ErrCredentialNotFound = errors.New("webauthn credential not found")
	ErrCredentialExists   = errors.New("webauthn credential already registered")
	ErrCounterRegression  = errors.New("signature counter did not advance")
)
