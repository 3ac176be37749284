package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/staffport/attendance-backend-go/internal/domain/webauthn"
	"github.com/staffport/attendance-backend-go/internal/pkg/database"
)

type webauthnCredentialRepository struct {
	db *database.DB
}

func NewWebAuthnCredentialRepository(db *database.DB) webauthn.Repository {
	return &webauthnCredentialRepository{db: db}
}

// Create implements webauthn.Repository.
func (r *webauthnCredentialRepository) Create(ctx context.Context, cred webauthn.Credential) (webauthn.Credential, error) {
	q := GetQuerier(ctx, r.db)

	cred.ID = uuid.NewString()
	query := `
		INSERT INTO webauthn_credentials (id, user_id, credential_id, public_key, counter, device_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING registered_at
	`

	err := q.QueryRow(ctx, query,
		cred.ID, cred.UserID, cred.CredentialID, cred.PublicKey, cred.Counter, cred.DeviceName,
	).Scan(&cred.RegisteredAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return webauthn.Credential{}, webauthn.ErrCredentialExists
		}
		return webauthn.Credential{}, fmt.Errorf("failed to create webauthn credential: %w", err)
	}
	return cred, nil
}

// GetByCredentialID implements webauthn.Repository.
func (r *webauthnCredentialRepository) GetByCredentialID(ctx context.Context, credentialID string) (webauthn.Credential, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, credential_id, public_key, counter, device_name, registered_at, last_used_at
		FROM webauthn_credentials
		WHERE credential_id = $1
	`

	var cred webauthn.Credential
	err := q.QueryRow(ctx, query, credentialID).Scan(
		&cred.ID, &cred.UserID, &cred.CredentialID, &cred.PublicKey,
		&cred.Counter, &cred.DeviceName, &cred.RegisteredAt, &cred.LastUsedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return webauthn.Credential{}, webauthn.ErrCredentialNotFound
		}
		return webauthn.Credential{}, fmt.Errorf("failed to get webauthn credential: %w", err)
	}
	return cred, nil
}

// ListByUserID implements webauthn.Repository.
func (r *webauthnCredentialRepository) ListByUserID(ctx context.Context, userID string) ([]webauthn.Credential, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, credential_id, public_key, counter, device_name, registered_at, last_used_at
		FROM webauthn_credentials
		WHERE user_id = $1
		ORDER BY registered_at DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query webauthn credentials: %w", err)
	}
	defer rows.Close()

	var creds []webauthn.Credential
	for rows.Next() {
		var cred webauthn.Credential
		err := rows.Scan(
			&cred.ID, &cred.UserID, &cred.CredentialID, &cred.PublicKey,
			&cred.Counter, &cred.DeviceName, &cred.RegisteredAt, &cred.LastUsedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan webauthn credential: %w", err)
		}
		creds = append(creds, cred)
	}
	return creds, rows.Err()
}

// TouchUsage implements webauthn.Repository.
func (r *webauthnCredentialRepository) TouchUsage(ctx context.Context, id string, counter int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE webauthn_credentials
		SET counter = $1, last_used_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, counter, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return webauthn.ErrCredentialNotFound
		}
		return fmt.Errorf("failed to update webauthn credential usage: %w", err)
	}
	return nil
}

// Delete implements webauthn.Repository.
func (r *webauthnCredentialRepository) Delete(ctx context.Context, id, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM webauthn_credentials WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete webauthn credential: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return webauthn.ErrCredentialNotFound
	}
	return nil
}
