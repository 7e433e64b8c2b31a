package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gitlab.com/walletfy/walletfy-backend/internal/database"
	"gitlab.com/walletfy/walletfy-backend/internal/models"
)

func setupTokenTest(t *testing.T) (*TokenRepository, string, context.Context) {
	t.Helper()

	tx := database.TestTx(t)
	users := NewUserRepository(tx)
	ctx := context.Background()

	user, profile := newUser(uuid.NewString() + "@example.com")
	require.NoError(t, users.Create(ctx, user, profile))

	return NewTokenRepository(tx), user.ID, ctx
}

func opaque() string {
	return uuid.NewString()[:32]
}

func TestEnsureApplication(t *testing.T) {
	repo, userID, ctx := setupTokenTest(t)

	app, err := repo.EnsureApplication(ctx, "walletfy", userID)
	require.NoError(t, err)
	require.NotZero(t, app.ID)
	require.Equal(t, "walletfy", app.Name)

	t.Run("second call returns the same row", func(t *testing.T) {
		again, err := repo.EnsureApplication(ctx, "walletfy", userID)
		require.NoError(t, err)
		require.Equal(t, app.ID, again.ID)
	})
}

func TestTokenLifecycle(t *testing.T) {
	repo, userID, ctx := setupTokenTest(t)

	app, err := repo.EnsureApplication(ctx, "walletfy", userID)
	require.NoError(t, err)

	access := &models.AccessToken{
		Token:         opaque(),
		UserID:        userID,
		ApplicationID: app.ID,
		Scope:         models.TokenScope,
		Expires:       time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.CreateAccessToken(ctx, access))
	require.NotZero(t, access.ID)

	refresh := &models.RefreshToken{
		Token:         opaque(),
		UserID:        userID,
		ApplicationID: app.ID,
		AccessTokenID: access.ID,
		Revoked:       time.Now().Add(30 * 24 * time.Hour),
	}
	require.NoError(t, repo.CreateRefreshToken(ctx, refresh))

	t.Run("tokens round-trip by value", func(t *testing.T) {
		gotAccess, err := repo.GetAccessToken(ctx, access.Token)
		require.NoError(t, err)
		require.Equal(t, userID, gotAccess.UserID)

		gotRefresh, err := repo.GetRefreshToken(ctx, refresh.Token)
		require.NoError(t, err)
		require.Equal(t, access.ID, gotRefresh.AccessTokenID)
	})

	t.Run("unknown tokens report distinct errors", func(t *testing.T) {
		_, err := repo.GetAccessToken(ctx, opaque())
		require.ErrorIs(t, err, models.ErrInvalidAccessToken)

		_, err = repo.GetRefreshToken(ctx, opaque())
		require.ErrorIs(t, err, models.ErrInvalidRefreshToken)
	})

	t.Run("relink moves the refresh token", func(t *testing.T) {
		second := &models.AccessToken{
			Token:         opaque(),
			UserID:        userID,
			ApplicationID: app.ID,
			Scope:         models.TokenScope,
			Expires:       time.Now().Add(time.Hour),
		}
		require.NoError(t, repo.CreateAccessToken(ctx, second))
		require.NoError(t, repo.RelinkAccessToken(ctx, refresh.ID, second.ID))

		got, err := repo.GetRefreshToken(ctx, refresh.Token)
		require.NoError(t, err)
		require.Equal(t, second.ID, got.AccessTokenID)
	})

	t.Run("revoke pair touches both rows", func(t *testing.T) {
		now := time.Now()
		require.NoError(t, repo.RevokePair(ctx, access.Token, refresh.Token, now))

		gotAccess, err := repo.GetAccessToken(ctx, access.Token)
		require.NoError(t, err)
		require.False(t, gotAccess.Expires.After(now))

		gotRefresh, err := repo.GetRefreshToken(ctx, refresh.Token)
		require.NoError(t, err)
		require.False(t, gotRefresh.Revoked.After(now))
	})

	t.Run("revoke pair with unknown access token rolls back", func(t *testing.T) {
		fresh := &models.RefreshToken{
			Token:         opaque(),
			UserID:        userID,
			ApplicationID: app.ID,
			AccessTokenID: access.ID,
			Revoked:       time.Now().Add(time.Hour),
		}
		require.NoError(t, repo.CreateRefreshToken(ctx, fresh))

		err := repo.RevokePair(ctx, opaque(), fresh.Token, time.Now())
		require.ErrorIs(t, err, models.ErrInvalidAccessToken)

		// The refresh token keeps its future revocation instant.
		got, err := repo.GetRefreshToken(ctx, fresh.Token)
		require.NoError(t, err)
		require.True(t, got.Revoked.After(time.Now()))
	})
}
