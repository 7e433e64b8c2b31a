package models

import "fmt"

// Gender is a user's self-reported gender.
type Gender string

// Gender values.
const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// ParseGender validates a wire value against the known genders.
func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderMale, GenderFemale, GenderOther:
		return Gender(s), nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

// Role is a user's occupation class.
type Role string

// Role values.
const (
	RoleStudent  Role = "Student"
	RoleEmployee Role = "Employee"
)

// ParseRole validates a wire value against the known roles.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleEmployee:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Preference is a user's lifestyle tier used to key recommendation rules.
type Preference string

// Preference values.
const (
	PreferenceRich   Preference = "RICH"
	PreferenceMiddle Preference = "MIDDLE CLASS"
	PreferencePoor   Preference = "POOR"
)

// ParsePreference validates a wire value against the known tiers.
func ParsePreference(s string) (Preference, error) {
	switch Preference(s) {
	case PreferenceRich, PreferenceMiddle, PreferencePoor:
		return Preference(s), nil
	}
	return "", fmt.Errorf("unknown preference %q", s)
}

// TxType distinguishes income from expense ledger entries.
type TxType string

// TxType values.
const (
	TxIncome  TxType = "Income"
	TxExpense TxType = "Expense"
)

// ParseTxType validates a wire value against the known transaction types.
func ParseTxType(s string) (TxType, error) {
	switch TxType(s) {
	case TxIncome, TxExpense:
		return TxType(s), nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// Category is a canonical spending category.
type Category string

// Canonical spending categories. These match the recommendation table columns.
const (
	CategoryRent          Category = "Rent"
	CategoryFood          Category = "Food"
	CategoryShopping      Category = "Shopping"
	CategoryTravelling    Category = "Travelling"
	CategoryHealth        Category = "Health"
	CategoryEntertainment Category = "Entertainment"
	CategorySavings       Category = "Savings"
	CategoryMiscellaneous Category = "Miscellaneous"
)

// Categories lists the canonical categories in recommendation-table order.
var Categories = []Category{
	CategoryRent,
	CategoryFood,
	CategoryShopping,
	CategoryTravelling,
	CategoryHealth,
	CategoryEntertainment,
	CategorySavings,
	CategoryMiscellaneous,
}

// categoryAliases maps legacy client spellings onto canonical categories.
var categoryAliases = map[string]Category{
	"Travel": CategoryTravelling,
	"Misc":   CategoryMiscellaneous,
}

// ParseCategory validates a wire value against the canonical categories,
// accepting known aliases.
func ParseCategory(s string) (Category, error) {
	if c, ok := categoryAliases[s]; ok {
		return c, nil
	}
	switch Category(s) {
	case CategoryRent, CategoryFood, CategoryShopping, CategoryTravelling,
		CategoryHealth, CategoryEntertainment, CategorySavings, CategoryMiscellaneous:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// NormalizeCategory maps aliases onto canonical categories, passing through
// anything it does not recognize. Used when aggregating historical entries
// that may predate alias cleanup.
func NormalizeCategory(s string) Category {
	if c, ok := categoryAliases[s]; ok {
		return c
	}
	return Category(s)
}
