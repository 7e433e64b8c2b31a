package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/walletfy/walletfy-backend/internal/database"
	"gitlab.com/walletfy/walletfy-backend/internal/models"
)

func newUser(email string) (*models.User, *models.Profile) {
	id := uuid.NewString()
	user := &models.User{
		ID:           id,
		Email:        email,
		Username:     "u-" + id[:8],
		PasswordHash: "hash",
		FullName:     "Repo Tester",
	}
	profile := &models.Profile{UserID: id, Gender: models.GenderFemale, Role: models.RoleEmployee}
	return user, profile
}

func TestUserRepositoryCreate(t *testing.T) {
	repo := NewUserRepository(database.TestTx(t))
	ctx := context.Background()

	user, profile := newUser("create@example.com")
	require.NoError(t, repo.Create(ctx, user, profile))
	require.False(t, user.CreatedAt.IsZero())
	require.False(t, profile.CreatedAt.IsZero())

	t.Run("duplicate email", func(t *testing.T) {
		dup, dupProfile := newUser("create@example.com")
		err := repo.Create(ctx, dup, dupProfile)
		require.ErrorIs(t, err, models.ErrUserAlreadyExists)
	})

	t.Run("duplicate username", func(t *testing.T) {
		dup, dupProfile := newUser("other@example.com")
		dup.Username = user.Username
		err := repo.Create(ctx, dup, dupProfile)
		require.ErrorIs(t, err, models.ErrUserAlreadyExists)
	})

	t.Run("profile row exists after create", func(t *testing.T) {
		p, err := repo.GetProfile(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, models.GenderFemale, p.Gender)
		require.Equal(t, models.RoleEmployee, p.Role)
	})
}

func TestUserRepositoryLookups(t *testing.T) {
	repo := NewUserRepository(database.TestTx(t))
	ctx := context.Background()

	user, profile := newUser("lookup@example.com")
	require.NoError(t, repo.Create(ctx, user, profile))

	t.Run("by email", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "lookup@example.com")
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
	})

	t.Run("by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, "lookup@example.com", got.Email)
	})

	t.Run("unknown lookups report invalid user", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "missing@example.com")
		require.ErrorIs(t, err, models.ErrInvalidUser)

		_, err = repo.GetByID(ctx, uuid.NewString())
		require.ErrorIs(t, err, models.ErrInvalidUser)
	})

	t.Run("email existence check", func(t *testing.T) {
		exists, err := repo.EmailExists(ctx, "lookup@example.com")
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = repo.EmailExists(ctx, "missing@example.com")
		require.NoError(t, err)
		require.False(t, exists)
	})
}

func TestUserRepositoryPreferences(t *testing.T) {
	repo := NewUserRepository(database.TestTx(t))
	ctx := context.Background()

	user, profile := newUser("prefs@example.com")
	require.NoError(t, repo.Create(ctx, user, profile))

	t.Run("missing preferences report a distinct error", func(t *testing.T) {
		_, err := repo.GetPreferences(ctx, user.ID)
		require.ErrorIs(t, err, models.ErrPreferencesNotSet)
	})

	prefs := &models.Preferences{
		UserID:     user.ID,
		Salary:     decimal.NewFromInt(40000),
		Preference: models.PreferencePoor,
		Location:   "Chennai",
	}
	require.NoError(t, repo.UpsertPreferences(ctx, prefs))
	require.Equal(t, "40000.00", prefs.AccountBalance.StringFixed(2))
	require.False(t, prefs.Month.IsZero())

	t.Run("upsert replaces the existing row", func(t *testing.T) {
		updated := &models.Preferences{
			UserID:     user.ID,
			Salary:     decimal.NewFromInt(60000),
			Preference: models.PreferenceRich,
			Location:   "Hyderabad",
		}
		require.NoError(t, repo.UpsertPreferences(ctx, updated))

		got, err := repo.GetPreferences(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, "60000.00", got.Salary.StringFixed(2))
		require.Equal(t, "60000.00", got.AccountBalance.StringFixed(2))
		require.Equal(t, "Hyderabad", got.Location)
	})
}
