package interactor

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/walletfy/walletfy-backend/internal/models"
	"gitlab.com/walletfy/walletfy-backend/internal/repository"
	"pgregory.net/rapid"
)

func testRule() *models.RecommendationRule {
	return &models.RecommendationRule{
		Location:      "Bangalore",
		Gender:        models.GenderFemale,
		Preference:    models.PreferenceMiddle,
		Rent:          30,
		Food:          20,
		Shopping:      10,
		Travelling:    8,
		Health:        7,
		Entertainment: 5,
		Savings:       15,
		Miscellaneous: 5,
	}
}

func TestSuggestAmounts(t *testing.T) {
	t.Parallel()

	salary := decimal.NewFromInt(50000)
	suggestions := SuggestAmounts(salary, testRule())
	require.Len(t, suggestions, len(models.Categories))

	byCategory := make(map[models.Category]Suggestion)
	for _, s := range suggestions {
		byCategory[s.Category] = s
	}

	require.Equal(t, "15000.00", byCategory[models.CategoryRent].Amount.StringFixed(2))
	require.Equal(t, "10000.00", byCategory[models.CategoryFood].Amount.StringFixed(2))
	require.Equal(t, "4000.00", byCategory[models.CategoryTravelling].Amount.StringFixed(2))
	require.Equal(t, "7500.00", byCategory[models.CategorySavings].Amount.StringFixed(2))
	require.Equal(t, 30.0, byCategory[models.CategoryRent].Percentage)

	t.Run("fractional results round to two decimals", func(t *testing.T) {
		rule := testRule()
		rule.Rent = 33.33
		got := SuggestAmounts(decimal.NewFromInt(1000), rule)
		require.Equal(t, "333.30", got[0].Amount.StringFixed(2))
	})

	t.Run("categories come back in canonical order", func(t *testing.T) {
		for i, s := range suggestions {
			require.Equal(t, models.Categories[i], s.Category)
		}
	})
}

func TestSuggestAmountsTotal(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		salary := decimal.NewFromInt(rapid.Int64Range(1, 10_000_000).Draw(t, "salary"))
		rule := &models.RecommendationRule{
			Rent:          float64(rapid.IntRange(0, 100).Draw(t, "rent")),
			Food:          float64(rapid.IntRange(0, 100).Draw(t, "food")),
			Shopping:      float64(rapid.IntRange(0, 100).Draw(t, "shopping")),
			Travelling:    float64(rapid.IntRange(0, 100).Draw(t, "travelling")),
			Health:        float64(rapid.IntRange(0, 100).Draw(t, "health")),
			Entertainment: float64(rapid.IntRange(0, 100).Draw(t, "entertainment")),
			Savings:       float64(rapid.IntRange(0, 100).Draw(t, "savings")),
			Miscellaneous: float64(rapid.IntRange(0, 100).Draw(t, "miscellaneous")),
		}

		suggestions := SuggestAmounts(salary, rule)

		var pctSum float64
		for _, cat := range models.Categories {
			pctSum += rule.Percentage(cat)
		}
		expected := salary.Mul(decimal.NewFromFloat(pctSum)).Div(decimal.NewFromInt(100))

		total := decimal.Zero
		for _, s := range suggestions {
			require.False(t, s.Amount.IsNegative())
			total = total.Add(s.Amount)
		}

		// Each of the eight amounts is rounded to 2dp, so the sum may
		// drift from the exact figure by at most half a cent per category.
		tolerance := decimal.NewFromFloat(0.04)
		require.True(t, total.Sub(expected).Abs().Cmp(tolerance) <= 0,
			"total %s drifted from expected %s", total, expected)
	})
}

func TestCompareSpend(t *testing.T) {
	t.Parallel()

	salary := decimal.NewFromInt(50000)
	rule := testRule()

	actuals := []repository.CategoryTotal{
		{Category: models.CategoryRent, Total: decimal.NewFromInt(16000)},  // over 15000
		{Category: models.CategoryFood, Total: decimal.NewFromInt(8000)},   // under 10000
		{Category: models.CategoryHealth, Total: decimal.NewFromInt(3500)}, // exactly at limit
	}

	comparisons := CompareSpend(salary, rule, actuals)
	require.Len(t, comparisons, len(models.Categories))

	byCategory := make(map[models.Category]Comparison)
	for _, c := range comparisons {
		byCategory[c.Category] = c
	}

	rent := byCategory[models.CategoryRent]
	require.Equal(t, StatusOverSpent, rent.Status)
	require.Equal(t, "16000.00", rent.Actual.StringFixed(2))

	food := byCategory[models.CategoryFood]
	require.Equal(t, StatusUnderSpent, food.Status)

	// Spending exactly the suggested amount is not overspending.
	require.Equal(t, StatusUnderSpent, byCategory[models.CategoryHealth].Status)

	t.Run("categories without activity report zero spent", func(t *testing.T) {
		shopping := byCategory[models.CategoryShopping]
		require.Equal(t, StatusZeroSpent, shopping.Status)
		require.True(t, shopping.Actual.IsZero())
		require.Equal(t, "5000.00", shopping.Suggested.StringFixed(2))
	})
}
