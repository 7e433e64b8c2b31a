package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"gitlab.com/walletfy/walletfy-backend/internal/database"
	"gitlab.com/walletfy/walletfy-backend/internal/models"
)

// TokenRepository handles OAuth2 application and token database operations.
type TokenRepository struct {
	db database.PGXDB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db database.PGXDB) *TokenRepository {
	return &TokenRepository{db: db}
}

// EnsureApplication returns the OAuth2 application record for a user,
// creating it lazily on first use.
func (r *TokenRepository) EnsureApplication(ctx context.Context, name, userID string) (*models.Application, error) {
	var app models.Application
	err := r.db.QueryRow(ctx, `
		SELECT id, name, user_id, created_at
		FROM oauth_applications WHERE name = $1 AND user_id = $2
	`, name, userID).Scan(&app.ID, &app.Name, &app.UserID, &app.CreatedAt)
	if err == nil {
		return &app, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO oauth_applications (name, user_id)
		VALUES ($1, $2)
		ON CONFLICT (name, user_id) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, user_id, created_at
	`, name, userID).Scan(&app.ID, &app.Name, &app.UserID, &app.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &app, nil
}

// CreateAccessToken persists a new access token.
func (r *TokenRepository) CreateAccessToken(ctx context.Context, token *models.AccessToken) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO access_tokens (token, user_id, application_id, scope, expires)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, token.Token, token.UserID, token.ApplicationID, token.Scope, token.Expires,
	).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create access token: %w", err)
	}
	return nil
}

// CreateRefreshToken persists a new refresh token linked to an access token.
func (r *TokenRepository) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO refresh_tokens (token, user_id, application_id, access_token_id, revoked)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, token.Token, token.UserID, token.ApplicationID, token.AccessTokenID, token.Revoked,
	).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

// GetAccessToken retrieves an access token by its opaque value.
// Returns models.ErrInvalidAccessToken when unknown.
func (r *TokenRepository) GetAccessToken(ctx context.Context, token string) (*models.AccessToken, error) {
	var t models.AccessToken
	err := r.db.QueryRow(ctx, `
		SELECT id, token, user_id, application_id, scope, expires, created_at
		FROM access_tokens WHERE token = $1
	`, token).Scan(&t.ID, &t.Token, &t.UserID, &t.ApplicationID, &t.Scope, &t.Expires, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrInvalidAccessToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}
	return &t, nil
}

// GetRefreshToken retrieves a refresh token by its opaque value.
// Returns models.ErrInvalidRefreshToken when unknown.
func (r *TokenRepository) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var t models.RefreshToken
	err := r.db.QueryRow(ctx, `
		SELECT id, token, user_id, application_id, access_token_id, revoked, created_at
		FROM refresh_tokens WHERE token = $1
	`, token).Scan(&t.ID, &t.Token, &t.UserID, &t.ApplicationID, &t.AccessTokenID, &t.Revoked, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return &t, nil
}

// RelinkAccessToken points a refresh token at a newly minted access token.
func (r *TokenRepository) RelinkAccessToken(ctx context.Context, refreshTokenID, accessTokenID int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE refresh_tokens SET access_token_id = $2 WHERE id = $1
	`, refreshTokenID, accessTokenID)
	if err != nil {
		return fmt.Errorf("failed to relink refresh token: %w", err)
	}
	return nil
}

// RevokePair expires an access token and revokes its refresh token inside
// one transaction, so a half-logged-out state can never be observed.
func (r *TokenRepository) RevokePair(ctx context.Context, accessToken, refreshToken string, now time.Time) error {
	return database.WithTx(ctx, r.db, func(tx database.PGXDB) error {
		tag, err := tx.Exec(ctx, `
			UPDATE refresh_tokens SET revoked = $2 WHERE token = $1
		`, refreshToken, now)
		if err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return models.ErrInvalidRefreshToken
		}

		tag, err = tx.Exec(ctx, `
			UPDATE access_tokens SET expires = $2 WHERE token = $1
		`, accessToken, now)
		if err != nil {
			return fmt.Errorf("failed to expire access token: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return models.ErrInvalidAccessToken
		}
		return nil
	})
}
