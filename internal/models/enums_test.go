package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGender(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"MALE", "FEMALE", "OTHER"} {
		g, err := ParseGender(valid)
		require.NoError(t, err)
		require.Equal(t, Gender(valid), g)
	}

	for _, invalid := range []string{"", "male", "Male", "M", "unknown"} {
		_, err := ParseGender(invalid)
		require.Error(t, err)
	}
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"Student", "Employee"} {
		r, err := ParseRole(valid)
		require.NoError(t, err)
		require.Equal(t, Role(valid), r)
	}

	for _, invalid := range []string{"", "student", "EMPLOYEE", "Retired"} {
		_, err := ParseRole(invalid)
		require.Error(t, err)
	}
}

func TestParsePreference(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"RICH", "MIDDLE CLASS", "POOR"} {
		p, err := ParsePreference(valid)
		require.NoError(t, err)
		require.Equal(t, Preference(valid), p)
	}

	for _, invalid := range []string{"", "rich", "MIDDLE", "MIDDLE_CLASS"} {
		_, err := ParsePreference(invalid)
		require.Error(t, err)
	}
}

func TestParseTxType(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"Income", "Expense"} {
		tt, err := ParseTxType(valid)
		require.NoError(t, err)
		require.Equal(t, TxType(valid), tt)
	}

	for _, invalid := range []string{"", "income", "EXPENSE", "Transfer"} {
		_, err := ParseTxType(invalid)
		require.Error(t, err)
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	for _, cat := range Categories {
		parsed, err := ParseCategory(string(cat))
		require.NoError(t, err)
		require.Equal(t, cat, parsed)
	}

	t.Run("aliases resolve to canonical categories", func(t *testing.T) {
		travel, err := ParseCategory("Travel")
		require.NoError(t, err)
		require.Equal(t, CategoryTravelling, travel)

		misc, err := ParseCategory("Misc")
		require.NoError(t, err)
		require.Equal(t, CategoryMiscellaneous, misc)
	})

	t.Run("rejects unknown categories", func(t *testing.T) {
		for _, invalid := range []string{"", "food", "RENT", "Groceries"} {
			_, err := ParseCategory(invalid)
			require.Error(t, err)
		}
	})
}

func TestNormalizeCategory(t *testing.T) {
	t.Parallel()

	require.Equal(t, CategoryTravelling, NormalizeCategory("Travel"))
	require.Equal(t, CategoryMiscellaneous, NormalizeCategory("Misc"))
	require.Equal(t, CategoryFood, NormalizeCategory("Food"))
	// Unknown names pass through untouched.
	require.Equal(t, Category("Groceries"), NormalizeCategory("Groceries"))
}

func TestRulePercentage(t *testing.T) {
	t.Parallel()

	rule := &RecommendationRule{
		Rent:          30,
		Food:          20,
		Shopping:      10,
		Travelling:    8,
		Health:        7,
		Entertainment: 5,
		Savings:       15,
		Miscellaneous: 5,
	}

	require.Equal(t, 30.0, rule.Percentage(CategoryRent))
	require.Equal(t, 20.0, rule.Percentage(CategoryFood))
	require.Equal(t, 10.0, rule.Percentage(CategoryShopping))
	require.Equal(t, 8.0, rule.Percentage(CategoryTravelling))
	require.Equal(t, 7.0, rule.Percentage(CategoryHealth))
	require.Equal(t, 5.0, rule.Percentage(CategoryEntertainment))
	require.Equal(t, 15.0, rule.Percentage(CategorySavings))
	require.Equal(t, 5.0, rule.Percentage(CategoryMiscellaneous))
	require.Equal(t, 0.0, rule.Percentage(Category("Unknown")))
}
