// Package repository implements persistence for the walletfy domain on
// top of PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gitlab.com/walletfy/walletfy-backend/internal/database"
	"gitlab.com/walletfy/walletfy-backend/internal/models"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

// UserRepository handles user, profile and preference database operations.
type UserRepository struct {
	db database.PGXDB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db database.PGXDB) *UserRepository {
	return &UserRepository{db: db}
}

// EmailExists reports whether a user with the given email is registered.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// Create inserts a user together with their profile row in one transaction.
// Returns models.ErrUserAlreadyExists if the email or username is taken.
func (r *UserRepository) Create(ctx context.Context, user *models.User, profile *models.Profile) error {
	err := database.WithTx(ctx, r.db, func(tx database.PGXDB) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (id, email, username, password_hash, full_name)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at, updated_at
		`, user.ID, user.Email, user.Username, user.PasswordHash, user.FullName,
		).Scan(&user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return err
		}

		return tx.QueryRow(ctx, `
			INSERT INTO user_profiles (user_id, gender, role)
			VALUES ($1, $2, $3)
			RETURNING created_at
		`, user.ID, profile.Gender, profile.Role).Scan(&profile.CreatedAt)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	profile.UserID = user.ID
	return nil
}

// GetByEmail retrieves a user by email. Returns models.ErrInvalidUser
// when no such account exists.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, `
		SELECT id, email, username, password_hash, full_name, created_at, updated_at
		FROM users WHERE email = $1
	`, email)
}

// GetByID retrieves a user by id. Returns models.ErrInvalidUser when no
// such account exists.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getUser(ctx, `
		SELECT id, email, username, password_hash, full_name, created_at, updated_at
		FROM users WHERE id = $1
	`, id)
}

func (r *UserRepository) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordHash,
		&user.FullName, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrInvalidUser
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpdateProfile performs a partial update of name, email and username.
// Empty fields keep their stored values.
func (r *UserRepository) UpdateProfile(ctx context.Context, id, fullName, email, username string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET
			full_name = COALESCE(NULLIF($2, ''), full_name),
			email = COALESCE(NULLIF($3, ''), email),
			username = COALESCE(NULLIF($4, ''), username),
			updated_at = NOW()
		WHERE id = $1
	`, id, fullName, email, username)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// UpdatePassword replaces the stored password hash for a user.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1
	`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// GetProfile retrieves the demographic profile for a user.
func (r *UserRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.QueryRow(ctx, `
		SELECT user_id, gender, role, created_at
		FROM user_profiles WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.Gender, &p.Role, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrInvalidUser
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// UpsertPreferences stores salary, preference tier and location for a user.
// The account balance is set to the submitted salary and the month marker
// is refreshed, matching the behavior of re-submitting preference data.
func (r *UserRepository) UpsertPreferences(ctx context.Context, prefs *models.Preferences) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO user_preferences (user_id, salary, preference, location, account_balance, month, updated_at)
		VALUES ($1, $2, $3, $4, $2, CURRENT_DATE, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			salary = EXCLUDED.salary,
			preference = EXCLUDED.preference,
			location = EXCLUDED.location,
			account_balance = EXCLUDED.account_balance,
			month = CURRENT_DATE,
			updated_at = NOW()
		RETURNING account_balance, month, updated_at
	`, prefs.UserID, prefs.Salary, prefs.Preference, prefs.Location,
	).Scan(&prefs.AccountBalance, &prefs.Month, &prefs.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}
	return nil
}

// GetPreferences retrieves the preference details for a user.
// Returns models.ErrPreferencesNotSet when the user has never submitted them.
func (r *UserRepository) GetPreferences(ctx context.Context, userID string) (*models.Preferences, error) {
	var p models.Preferences
	err := r.db.QueryRow(ctx, `
		SELECT user_id, salary, preference, location, account_balance, month, updated_at
		FROM user_preferences WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.Salary, &p.Preference, &p.Location,
		&p.AccountBalance, &p.Month, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrPreferencesNotSet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return &p, nil
}
