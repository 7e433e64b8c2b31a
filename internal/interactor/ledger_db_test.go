package interactor

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/walletfy/walletfy-backend/internal/database"
	"gitlab.com/walletfy/walletfy-backend/internal/models"
	"gitlab.com/walletfy/walletfy-backend/internal/repository"
)

// createLedgerUser inserts a user with preferences so ledger operations
// have a balance to work against.
func createLedgerUser(t *testing.T, users *repository.UserRepository, salary int64) string {
	t.Helper()
	ctx := context.Background()

	id := uuid.NewString()
	user := &models.User{
		ID:           id,
		Email:        id + "@example.com",
		Username:     "user-" + id[:8],
		PasswordHash: "not-a-real-hash",
		FullName:     "Ledger Tester",
	}
	profile := &models.Profile{UserID: id, Gender: models.GenderMale, Role: models.RoleStudent}
	require.NoError(t, users.Create(ctx, user, profile))

	prefs := &models.Preferences{
		UserID:     id,
		Salary:     decimal.NewFromInt(salary),
		Preference: models.PreferenceMiddle,
		Location:   "Pune",
	}
	require.NoError(t, users.UpsertPreferences(ctx, prefs))
	return id
}

func setupLedgerTest(t *testing.T) (*Ledger, *repository.UserRepository, context.Context) {
	t.Helper()

	tx := database.TestTx(t)
	users := repository.NewUserRepository(tx)
	entries := repository.NewLedgerRepository(tx)
	return NewLedger(users, entries), users, context.Background()
}

func TestLedgerRecord(t *testing.T) {
	ledger, users, ctx := setupLedgerTest(t)
	userID := createLedgerUser(t, users, 1000)

	t.Run("expense reduces the balance", func(t *testing.T) {
		result, err := ledger.Record(ctx, userID, RecordRequest{
			Type:        models.TxExpense,
			Category:    models.CategoryFood,
			Amount:      "250.50",
			Description: "groceries",
		})
		require.NoError(t, err)
		require.Equal(t, "749.50", result.Balance.StringFixed(2))
		require.Equal(t, "749.50", result.Entry.RemainingBalance.StringFixed(2))
		require.Equal(t, "250.50", result.MonthExpense.StringFixed(2))

		prefs, err := users.GetPreferences(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, "749.50", prefs.AccountBalance.StringFixed(2))
	})

	t.Run("income raises the balance", func(t *testing.T) {
		result, err := ledger.Record(ctx, userID, RecordRequest{
			Type:     models.TxIncome,
			Category: models.CategoryMiscellaneous,
			Amount:   "500",
		})
		require.NoError(t, err)
		require.Equal(t, "1249.50", result.Balance.StringFixed(2))
		require.Equal(t, "500.00", result.MonthIncome.StringFixed(2))
	})

	t.Run("overdraft is rejected and leaves the balance unchanged", func(t *testing.T) {
		_, err := ledger.Record(ctx, userID, RecordRequest{
			Type:     models.TxExpense,
			Category: models.CategoryShopping,
			Amount:   "99999",
		})
		require.ErrorIs(t, err, models.ErrInsufficientBalance)

		prefs, err := users.GetPreferences(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, "1249.50", prefs.AccountBalance.StringFixed(2))
	})

	t.Run("spending the exact balance is allowed", func(t *testing.T) {
		result, err := ledger.Record(ctx, userID, RecordRequest{
			Type:     models.TxExpense,
			Category: models.CategoryRent,
			Amount:   "1249.50",
		})
		require.NoError(t, err)
		require.True(t, result.Balance.IsZero())
	})

	t.Run("invalid amounts never reach the ledger", func(t *testing.T) {
		for _, amount := range []string{"0", "-5", "abc", ""} {
			_, err := ledger.Record(ctx, userID, RecordRequest{
				Type:     models.TxExpense,
				Category: models.CategoryFood,
				Amount:   amount,
			})
			require.ErrorIs(t, err, models.ErrInvalidAmount, "amount %q", amount)
		}
	})

	t.Run("user without preferences cannot record", func(t *testing.T) {
		_, err := ledger.Record(ctx, uuid.NewString(), RecordRequest{
			Type:     models.TxExpense,
			Category: models.CategoryFood,
			Amount:   "10",
		})
		require.ErrorIs(t, err, models.ErrPreferencesNotSet)
	})
}

func TestLedgerDelete(t *testing.T) {
	ledger, users, ctx := setupLedgerTest(t)
	userID := createLedgerUser(t, users, 1000)

	result, err := ledger.Record(ctx, userID, RecordRequest{
		Type:     models.TxExpense,
		Category: models.CategoryTravelling,
		Amount:   "123.45",
	})
	require.NoError(t, err)

	t.Run("deleting an expense restores the balance exactly", func(t *testing.T) {
		balance, err := ledger.Delete(ctx, userID, result.Entry.ID)
		require.NoError(t, err)
		require.Equal(t, "1000.00", balance.StringFixed(2))

		_, err = ledger.Detail(ctx, userID, result.Entry.ID)
		require.ErrorIs(t, err, models.ErrEntryNotFound)
	})

	t.Run("deleting an income subtracts it again", func(t *testing.T) {
		income, err := ledger.Record(ctx, userID, RecordRequest{
			Type:     models.TxIncome,
			Category: models.CategoryMiscellaneous,
			Amount:   "200",
		})
		require.NoError(t, err)

		balance, err := ledger.Delete(ctx, userID, income.Entry.ID)
		require.NoError(t, err)
		require.Equal(t, "1000.00", balance.StringFixed(2))
	})

	t.Run("unknown entry", func(t *testing.T) {
		_, err := ledger.Delete(ctx, userID, 999999)
		require.ErrorIs(t, err, models.ErrEntryNotFound)
	})

	t.Run("cannot delete another user's entry", func(t *testing.T) {
		otherID := createLedgerUser(t, users, 1000)
		other, err := ledger.Record(ctx, otherID, RecordRequest{
			Type:     models.TxExpense,
			Category: models.CategoryFood,
			Amount:   "10",
		})
		require.NoError(t, err)

		_, err = ledger.Delete(ctx, userID, other.Entry.ID)
		require.ErrorIs(t, err, models.ErrEntryNotFound)
	})
}

func TestLedgerListings(t *testing.T) {
	ledger, users, ctx := setupLedgerTest(t)
	userID := createLedgerUser(t, users, 10000)

	amounts := []string{"100", "250", "50", "75", "300", "20"}
	for _, a := range amounts {
		_, err := ledger.Record(ctx, userID, RecordRequest{
			Type:     models.TxExpense,
			Category: models.CategoryFood,
			Amount:   a,
		})
		require.NoError(t, err)
	}

	t.Run("last five caps at five entries newest first", func(t *testing.T) {
		recent, err := ledger.LastFive(ctx, userID)
		require.NoError(t, err)
		require.Len(t, recent, 5)
		require.Equal(t, "20.00", recent[0].Amount.StringFixed(2))
	})

	t.Run("history groups by calendar date", func(t *testing.T) {
		groups, err := ledger.History(ctx, userID)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		require.Equal(t, time.Now().Format("2006-01-02"), groups[0].Date)
		require.Len(t, groups[0].Entries, len(amounts))
		// Chronological inside the group.
		require.Equal(t, "100.00", groups[0].Entries[0].Amount.StringFixed(2))
	})

	t.Run("filter by highest amount", func(t *testing.T) {
		entries, err := ledger.Filter(ctx, userID, models.CategoryFood, repository.SortHighest)
		require.NoError(t, err)
		require.Len(t, entries, len(amounts))
		require.Equal(t, "300.00", entries[0].Amount.StringFixed(2))
		require.Equal(t, "20.00", entries[len(entries)-1].Amount.StringFixed(2))
	})

	t.Run("empty category filter returns everything", func(t *testing.T) {
		entries, err := ledger.Filter(ctx, userID, "", repository.SortOldest)
		require.NoError(t, err)
		require.Len(t, entries, len(amounts))
		require.Equal(t, "100.00", entries[0].Amount.StringFixed(2))
	})

	t.Run("filter by unused category is empty", func(t *testing.T) {
		entries, err := ledger.Filter(ctx, userID, models.CategoryRent, repository.SortNewest)
		require.NoError(t, err)
		require.Empty(t, entries)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := ledger.LastFive(ctx, uuid.NewString())
		require.ErrorIs(t, err, models.ErrInvalidUser)
	})
}

func TestLedgerMonthlyBreakdown(t *testing.T) {
	ledger, users, ctx := setupLedgerTest(t)
	userID := createLedgerUser(t, users, 10000)

	spend := map[models.Category]string{
		models.CategoryFood:     "400",
		models.CategoryRent:     "1500",
		models.CategoryShopping: "200",
	}
	for cat, amount := range spend {
		_, err := ledger.Record(ctx, userID, RecordRequest{
			Type:     models.TxExpense,
			Category: cat,
			Amount:   amount,
		})
		require.NoError(t, err)
	}
	// Income must not show up in the expense breakdown.
	_, err := ledger.Record(ctx, userID, RecordRequest{
		Type:     models.TxIncome,
		Category: models.CategoryMiscellaneous,
		Amount:   "5000",
	})
	require.NoError(t, err)

	totals, err := ledger.MonthlyBreakdown(ctx, userID, time.Now())
	require.NoError(t, err)
	require.Len(t, totals, len(spend))

	// Largest category first.
	require.Equal(t, models.CategoryRent, totals[0].Category)
	require.Equal(t, "1500.00", totals[0].Total.StringFixed(2))

	t.Run("a month with no activity is empty", func(t *testing.T) {
		totals, err := ledger.MonthlyBreakdown(ctx, userID, time.Now().AddDate(0, -2, 0))
		require.NoError(t, err)
		require.Empty(t, totals)
	})
}
