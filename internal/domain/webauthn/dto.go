package webauthn

import (
	"github.com/staffport/attendance-backend-go/internal/pkg/validator"
)

type RegisterRequest struct {
	CredentialID string  `json:"credential_id"`
	PublicKey    string  `json:"public_key"`
	DeviceName   *string `json:"device_name,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CredentialID) {
		errs = append(errs, validator.ValidationError{
			Field:   "credential_id",
			Message: "credential_id is required",
		})
	}
	if validator.IsEmpty(r.PublicKey) {
		errs = append(errs, validator.ValidationError{
			Field:   "public_key",
			Message: "public_key is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CredentialResponse struct {
	ID           string  `json:"id"`
	CredentialID string  `json:"credential_id"`
	DeviceName   *string `json:"device_name,omitempty"`
	RegisteredAt string  `json:"registered_at"`
	LastUsedAt   *string `json:"last_used_at,omitempty"`
}

func (c *Credential) ToResponse() CredentialResponse {
	resp := CredentialResponse{
		ID:           c.ID,
		CredentialID: c.CredentialID,
		DeviceName:   c.DeviceName,
		RegisteredAt: c.RegisteredAt.Format("2006-01-02 15:04:05"),
	}
	if c.LastUsedAt != nil {
		formatted := c.LastUsedAt.Format("2006-01-02 15:04:05")
		resp.LastUsedAt = &formatted
	}
	return resp
}
