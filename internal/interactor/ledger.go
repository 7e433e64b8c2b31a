package interactor

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/walletfy/walletfy-backend/internal/logger"
	"gitlab.com/walletfy/walletfy-backend/internal/models"
	"gitlab.com/walletfy/walletfy-backend/internal/repository"
)

// RecordRequest carries one income or expense submission. Amount arrives
// as the raw string from the client so that format errors can be reported
// distinctly from positivity errors.
type RecordRequest struct {
	Type        models.TxType
	Category    models.Category
	Amount      string
	Description string
}

// TransactionResult is the response DTO for a ledger mutation, carrying
// the new balance and the month-to-date sums the client renders.
type TransactionResult struct {
	Entry        *models.LedgerEntry
	Balance      decimal.Decimal
	MonthIncome  decimal.Decimal
	MonthExpense decimal.Decimal
}

// DateGroup is one calendar day of transaction history.
type DateGroup struct {
	Date    string
	Entries []models.LedgerEntry
}

// Ledger orchestrates ledger mutations and the reporting queries built on
// top of them.
type Ledger struct {
	users   *repository.UserRepository
	entries *repository.LedgerRepository
}

// NewLedger creates the ledger interactor.
func NewLedger(users *repository.UserRepository, entries *repository.LedgerRepository) *Ledger {
	return &Ledger{users: users, entries: entries}
}

// Record validates and writes one transaction, updating the account
// balance atomically with the ledger insert. Expenses exceeding the
// current balance are rejected and leave the balance untouched.
func (l *Ledger) Record(ctx context.Context, userID string, req RecordRequest) (*TransactionResult, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	prefs, err := l.users.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	var newBalance decimal.Decimal
	switch req.Type {
	case models.TxExpense:
		if amount.Cmp(prefs.AccountBalance) > 0 {
			return nil, models.ErrInsufficientBalance
		}
		newBalance = prefs.AccountBalance.Sub(amount)
	case models.TxIncome:
		newBalance = prefs.AccountBalance.Add(amount)
	default:
		return nil, models.ErrInvalidAmount
	}

	entry := &models.LedgerEntry{
		UserID:           userID,
		Type:             req.Type,
		Category:         req.Category,
		Description:      req.Description,
		Amount:           amount,
		RemainingBalance: newBalance,
	}
	if err := l.entries.CreateWithBalance(ctx, entry); err != nil {
		return nil, err
	}

	logger.Log.Info().
		Str("type", string(req.Type)).
		Str("category", string(req.Category)).
		Msg("ledger entry recorded")

	return l.result(ctx, entry, newBalance)
}

// Delete removes an entry and reverses its effect on the balance.
func (l *Ledger) Delete(ctx context.Context, userID string, entryID int) (decimal.Decimal, error) {
	prefs, err := l.users.GetPreferences(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	entry, err := l.entries.GetByID(ctx, userID, entryID)
	if err != nil {
		return decimal.Zero, err
	}

	var restored decimal.Decimal
	if entry.Type == models.TxExpense {
		restored = prefs.AccountBalance.Add(entry.Amount)
	} else {
		restored = prefs.AccountBalance.Sub(entry.Amount)
	}

	if err := l.entries.DeleteWithBalance(ctx, userID, entryID, restored); err != nil {
		return decimal.Zero, err
	}
	return restored, nil
}

// LastFive returns the user's five newest transactions.
func (l *Ledger) LastFive(ctx context.Context, userID string) ([]models.LedgerEntry, error) {
	if _, err := l.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return l.entries.Recent(ctx, userID, 5)
}

// History returns the full transaction history grouped by calendar date.
// Groups are ordered newest-first; entries within a group run in
// chronological order.
func (l *Ledger) History(ctx context.Context, userID string) ([]DateGroup, error) {
	if _, err := l.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	entries, err := l.entries.All(ctx, userID)
	if err != nil {
		return nil, err
	}
	return GroupByDate(entries), nil
}

// Filter returns transactions restricted to a category and ordered by the
// requested sort mode.
func (l *Ledger) Filter(ctx context.Context, userID string, category models.Category, sort repository.SortMode) ([]models.LedgerEntry, error) {
	if _, err := l.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return l.entries.Filtered(ctx, userID, category, sort)
}

// Detail fetches a single transaction by id.
func (l *Ledger) Detail(ctx context.Context, userID string, entryID int) (*models.LedgerEntry, error) {
	if _, err := l.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return l.entries.GetByID(ctx, userID, entryID)
}

// MonthlyBreakdown returns per-category expense totals for one month,
// with legacy category aliases folded into their canonical names.
func (l *Ledger) MonthlyBreakdown(ctx context.Context, userID string, month time.Time) ([]repository.CategoryTotal, error) {
	if _, err := l.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	start, end := MonthRange(month)
	totals, err := l.entries.CategoryTotals(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return MergeAliases(totals), nil
}

func (l *Ledger) result(ctx context.Context, entry *models.LedgerEntry, balance decimal.Decimal) (*TransactionResult, error) {
	start, end := MonthRange(time.Now())
	income, expense, err := l.entries.MonthTotals(ctx, entry.UserID, start, end)
	if err != nil {
		return nil, err
	}
	return &TransactionResult{
		Entry:        entry,
		Balance:      balance,
		MonthIncome:  income,
		MonthExpense: expense,
	}, nil
}

// parseAmount validates that a raw amount string is a well-formed,
// strictly positive decimal.
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, models.ErrInvalidAmount
	}
	if amount.Cmp(decimal.Zero) <= 0 {
		return decimal.Zero, models.ErrInvalidAmount
	}
	return amount, nil
}

// MonthRange returns the [start, end) bounds of t's calendar month.
func MonthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// GroupByDate buckets newest-first entries into per-day groups, restoring
// chronological order inside each group.
func GroupByDate(entries []models.LedgerEntry) []DateGroup {
	var groups []DateGroup
	index := make(map[string]int)

	for _, e := range entries {
		date := e.CreatedAt.Format("2006-01-02")
		i, ok := index[date]
		if !ok {
			i = len(groups)
			index[date] = i
			groups = append(groups, DateGroup{Date: date})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	// Entries arrived newest-first; flip each group to chronological order.
	for i := range groups {
		g := groups[i].Entries
		for a, b := 0, len(g)-1; a < b; a, b = a+1, b-1 {
			g[a], g[b] = g[b], g[a]
		}
	}
	return groups
}

// MergeAliases folds alias category names into their canonical categories,
// summing totals that collide.
func MergeAliases(totals []repository.CategoryTotal) []repository.CategoryTotal {
	var merged []repository.CategoryTotal
	index := make(map[models.Category]int)

	for _, t := range totals {
		canonical := models.NormalizeCategory(string(t.Category))
		if i, ok := index[canonical]; ok {
			merged[i].Total = merged[i].Total.Add(t.Total)
			continue
		}
		index[canonical] = len(merged)
		merged = append(merged, repository.CategoryTotal{Category: canonical, Total: t.Total})
	}
	return merged
}
