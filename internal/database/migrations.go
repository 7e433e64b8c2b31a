package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations creates the database schema.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS user_profiles (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			gender TEXT NOT NULL,
			role TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS user_preferences (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			salary DECIMAL(12, 2) NOT NULL,
			preference TEXT NOT NULL,
			location TEXT NOT NULL,
			account_balance DECIMAL(12, 2) NOT NULL,
			month DATE NOT NULL DEFAULT CURRENT_DATE,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS oauth_applications (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (name, user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS access_tokens (
			id SERIAL PRIMARY KEY,
			token TEXT NOT NULL UNIQUE,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			application_id INTEGER NOT NULL REFERENCES oauth_applications(id),
			scope TEXT NOT NULL DEFAULT 'read write',
			expires TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS refresh_tokens (
			id SERIAL PRIMARY KEY,
			token TEXT NOT NULL UNIQUE,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			application_id INTEGER NOT NULL REFERENCES oauth_applications(id),
			access_token_id INTEGER NOT NULL REFERENCES access_tokens(id),
			revoked TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS ledger_entries (
			id SERIAL PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			tx_type TEXT NOT NULL,
			category TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			amount DECIMAL(12, 2) NOT NULL CHECK (amount > 0),
			remaining_balance DECIMAL(12, 2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_ledger_entries_user_id ON ledger_entries(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_entries_created_at ON ledger_entries(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_access_tokens_token ON access_tokens(token)`,
		`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_token ON refresh_tokens(token)`,

		`CREATE TABLE IF NOT EXISTS recommendation_rules (
			id SERIAL PRIMARY KEY,
			location TEXT NOT NULL,
			gender TEXT NOT NULL,
			preference TEXT NOT NULL,
			rent_pct DOUBLE PRECISION NOT NULL,
			food_pct DOUBLE PRECISION NOT NULL,
			shopping_pct DOUBLE PRECISION NOT NULL,
			travelling_pct DOUBLE PRECISION NOT NULL,
			health_pct DOUBLE PRECISION NOT NULL,
			entertainment_pct DOUBLE PRECISION NOT NULL,
			savings_pct DOUBLE PRECISION NOT NULL,
			miscellaneous_pct DOUBLE PRECISION NOT NULL,
			UNIQUE (location, gender, preference)
		)`,

		`CREATE TABLE IF NOT EXISTS feedback (
			id SERIAL PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			rating INTEGER NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for i, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
