package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"gitlab.com/walletfy/walletfy-backend/internal/database"
	"gitlab.com/walletfy/walletfy-backend/internal/models"
)

// SortMode controls the ordering of filtered ledger listings.
type SortMode string

// Supported sort modes. Anything else falls back to newest-first.
const (
	SortNewest  SortMode = "newest"
	SortOldest  SortMode = "oldest"
	SortHighest SortMode = "highest"
	SortLowest  SortMode = "lowest"
)

// orderClauses maps sort modes onto ORDER BY fragments. Values are fixed
// strings, never user input.
var orderClauses = map[SortMode]string{
	SortNewest:  "created_at DESC, id DESC",
	SortOldest:  "created_at ASC, id ASC",
	SortHighest: "amount DESC, id DESC",
	SortLowest:  "amount ASC, id ASC",
}

// CategoryTotal is an aggregated spend figure for one category.
type CategoryTotal struct {
	Category models.Category
	Total    decimal.Decimal
}

// LedgerRepository handles ledger entry database operations.
type LedgerRepository struct {
	db database.PGXDB
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db database.PGXDB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// CreateWithBalance inserts a ledger entry and moves the account balance to
// entry.RemainingBalance inside one transaction.
func (r *LedgerRepository) CreateWithBalance(ctx context.Context, entry *models.LedgerEntry) error {
	err := database.WithTx(ctx, r.db, func(tx database.PGXDB) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO ledger_entries (user_id, tx_type, category, description, amount, remaining_balance)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`, entry.UserID, entry.Type, entry.Category, entry.Description,
			entry.Amount, entry.RemainingBalance,
		).Scan(&entry.ID, &entry.CreatedAt)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE user_preferences SET account_balance = $2, updated_at = NOW()
			WHERE user_id = $1
		`, entry.UserID, entry.RemainingBalance)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}
	return nil
}

// DeleteWithBalance removes a ledger entry and sets the account balance to
// restoredBalance inside one transaction.
func (r *LedgerRepository) DeleteWithBalance(ctx context.Context, userID string, entryID int, restoredBalance decimal.Decimal) error {
	err := database.WithTx(ctx, r.db, func(tx database.PGXDB) error {
		tag, err := tx.Exec(ctx, `
			DELETE FROM ledger_entries WHERE id = $1 AND user_id = $2
		`, entryID, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return models.ErrEntryNotFound
		}

		_, err = tx.Exec(ctx, `
			UPDATE user_preferences SET account_balance = $2, updated_at = NOW()
			WHERE user_id = $1
		`, userID, restoredBalance)
		return err
	})
	if errors.Is(err, models.ErrEntryNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}
	return nil
}

// GetByID retrieves one ledger entry owned by the given user.
// Returns models.ErrEntryNotFound when absent.
func (r *LedgerRepository) GetByID(ctx context.Context, userID string, entryID int) (*models.LedgerEntry, error) {
	var e models.LedgerEntry
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, tx_type, category, description, amount, remaining_balance, created_at
		FROM ledger_entries WHERE id = $1 AND user_id = $2
	`, entryID, userID).Scan(&e.ID, &e.UserID, &e.Type, &e.Category,
		&e.Description, &e.Amount, &e.RemainingBalance, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}
	return &e, nil
}

// Recent retrieves the newest entries for a user, newest first.
func (r *LedgerRepository) Recent(ctx context.Context, userID string, limit int) ([]models.LedgerEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, tx_type, category, description, amount, remaining_balance, created_at
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// All retrieves every entry for a user, newest first.
func (r *LedgerRepository) All(ctx context.Context, userID string) ([]models.LedgerEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, tx_type, category, description, amount, remaining_balance, created_at
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Filtered retrieves entries for a user, optionally restricted to one
// category, ordered by the given sort mode.
func (r *LedgerRepository) Filtered(ctx context.Context, userID string, category models.Category, sort SortMode) ([]models.LedgerEntry, error) {
	order, ok := orderClauses[sort]
	if !ok {
		order = orderClauses[SortNewest]
	}

	query := `
		SELECT id, user_id, tx_type, category, description, amount, remaining_balance, created_at
		FROM ledger_entries
		WHERE user_id = $1 AND ($2 = '' OR category = $2)
		ORDER BY ` + order

	rows, err := r.db.Query(ctx, query, userID, string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to query filtered entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// MonthTotals returns the summed income and expense amounts for entries in
// [start, end).
func (r *LedgerRepository) MonthTotals(ctx context.Context, userID string, start, end time.Time) (income, expense decimal.Decimal, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE tx_type = 'Income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE tx_type = 'Expense'), 0)
		FROM ledger_entries
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
	`, userID, start, end).Scan(&income, &expense)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum month totals: %w", err)
	}
	return income, expense, nil
}

// CategoryTotals returns the per-category expense sums for entries in
// [start, end), largest first.
func (r *LedgerRepository) CategoryTotals(ctx context.Context, userID string, start, end time.Time) ([]CategoryTotal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT category, COALESCE(SUM(amount), 0)
		FROM ledger_entries
		WHERE user_id = $1 AND tx_type = 'Expense' AND created_at >= $2 AND created_at < $3
		GROUP BY category
		ORDER BY 2 DESC
	`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to sum category totals: %w", err)
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var t CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}
	return totals, nil
}

func scanEntries(rows pgx.Rows) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Category,
			&e.Description, &e.Amount, &e.RemainingBalance, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entries: %w", err)
	}
	return entries, nil
}
