package interactor

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/walletfy/walletfy-backend/internal/models"
	"gitlab.com/walletfy/walletfy-backend/internal/repository"
)

// SpendStatus buckets a category's actual spend against its recommendation.
type SpendStatus string

// SpendStatus values.
const (
	StatusOverSpent  SpendStatus = "over_spent"
	StatusUnderSpent SpendStatus = "under_spent"
	StatusZeroSpent  SpendStatus = "zero_spent"
)

// Suggestion is the recommended spend for one category.
type Suggestion struct {
	Category   models.Category `json:"category"`
	Percentage float64         `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

// Comparison relates one category's actual month-to-date spend to its
// recommended amount.
type Comparison struct {
	Category  models.Category `json:"category"`
	Suggested decimal.Decimal `json:"suggested"`
	Actual    decimal.Decimal `json:"actual"`
	Status    SpendStatus     `json:"status"`
}

// FinancialSummary condenses a user's situation for the AI assistant
// preamble.
type FinancialSummary struct {
	Salary        decimal.Decimal
	Balance       decimal.Decimal
	MonthIncome   decimal.Decimal
	MonthExpense  decimal.Decimal
	TopCategories []repository.CategoryTotal
}

// Advisor orchestrates recommendation lookups and spend comparisons.
type Advisor struct {
	users   *repository.UserRepository
	rules   *repository.RecommendationRepository
	entries *repository.LedgerRepository
}

// NewAdvisor creates the advisor interactor.
func NewAdvisor(users *repository.UserRepository, rules *repository.RecommendationRepository, entries *repository.LedgerRepository) *Advisor {
	return &Advisor{users: users, rules: rules, entries: entries}
}

// Suggestions multiplies the user's salary by the matching rule's
// per-category percentages. Returns models.ErrRuleNotFound when no rule
// exists for the user's exact (location, gender, preference) combination.
func (a *Advisor) Suggestions(ctx context.Context, userID string) ([]Suggestion, error) {
	prefs, profile, err := a.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	rule, err := a.rules.Get(ctx, prefs.Location, profile.Gender, prefs.Preference)
	if err != nil {
		return nil, err
	}
	return SuggestAmounts(prefs.Salary, rule), nil
}

// Compare buckets each category's month-to-date spend against its
// recommended amount, synthesizing zero-spent entries for categories with
// no ledger activity this month.
func (a *Advisor) Compare(ctx context.Context, userID string) ([]Comparison, error) {
	prefs, profile, err := a.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	rule, err := a.rules.Get(ctx, prefs.Location, profile.Gender, prefs.Preference)
	if err != nil {
		return nil, err
	}

	start, end := MonthRange(time.Now())
	totals, err := a.entries.CategoryTotals(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	return CompareSpend(prefs.Salary, rule, MergeAliases(totals)), nil
}

// Summary gathers the financial overview used by the AI assistant.
func (a *Advisor) Summary(ctx context.Context, userID string) (*FinancialSummary, error) {
	prefs, err := a.users.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	start, end := MonthRange(time.Now())
	income, expense, err := a.entries.MonthTotals(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	totals, err := a.entries.CategoryTotals(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	top := MergeAliases(totals)
	if len(top) > 3 {
		top = top[:3]
	}

	return &FinancialSummary{
		Salary:        prefs.Salary,
		Balance:       prefs.AccountBalance,
		MonthIncome:   income,
		MonthExpense:  expense,
		TopCategories: top,
	}, nil
}

func (a *Advisor) load(ctx context.Context, userID string) (*models.Preferences, *models.Profile, error) {
	prefs, err := a.users.GetPreferences(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := a.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return prefs, profile, nil
}

// SuggestAmounts computes salary × percentage / 100 for every canonical
// category, rounding each figure to two decimal places half away from
// zero.
func SuggestAmounts(salary decimal.Decimal, rule *models.RecommendationRule) []Suggestion {
	suggestions := make([]Suggestion, 0, len(models.Categories))
	for _, cat := range models.Categories {
		pct := rule.Percentage(cat)
		amount := salary.Mul(decimal.NewFromFloat(pct)).Div(decimal.NewFromInt(100)).Round(2)
		suggestions = append(suggestions, Suggestion{
			Category:   cat,
			Percentage: pct,
			Amount:     amount,
		})
	}
	return suggestions
}

// CompareSpend buckets actual per-category spend against the suggested
// amounts derived from salary and rule.
func CompareSpend(salary decimal.Decimal, rule *models.RecommendationRule, actuals []repository.CategoryTotal) []Comparison {
	spent := make(map[models.Category]decimal.Decimal, len(actuals))
	for _, t := range actuals {
		spent[t.Category] = t.Total
	}

	comparisons := make([]Comparison, 0, len(models.Categories))
	for _, s := range SuggestAmounts(salary, rule) {
		actual, ok := spent[s.Category]
		c := Comparison{
			Category:  s.Category,
			Suggested: s.Amount,
			Actual:    decimal.Zero,
		}
		switch {
		case !ok || actual.IsZero():
			c.Status = StatusZeroSpent
		case actual.Cmp(s.Amount) > 0:
			c.Actual = actual
			c.Status = StatusOverSpent
		default:
			c.Actual = actual
			c.Status = StatusUnderSpent
		}
		comparisons = append(comparisons, c)
	}
	return comparisons
}
