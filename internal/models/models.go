// Package models defines the domain entities for the walletfy backend.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TokenScope is the scope granted to every issued access token.
const TokenScope = "read write"

// MaxDescriptionLength is the maximum allowed length for ledger entry descriptions.
const MaxDescriptionLength = 500

// User represents a registered account.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile holds the demographic attributes attached 1:1 to a user.
type Profile struct {
	UserID    string
	Gender    Gender
	Role      Role
	CreatedAt time.Time
}

// Preferences holds salary, lifestyle tier and location for a user,
// together with the running account balance the ledger mutates.
type Preferences struct {
	UserID         string
	Salary         decimal.Decimal
	Preference     Preference
	Location       string
	AccountBalance decimal.Decimal
	Month          time.Time
	UpdatedAt      time.Time
}

// Application is the OAuth2 client record a user's tokens are bound to.
// It is created lazily the first time a token is issued for the user.
type Application struct {
	ID        int
	Name      string
	UserID    string
	CreatedAt time.Time
}

// AccessToken is an opaque bearer token with a fixed forward expiry.
type AccessToken struct {
	ID            int
	Token         string
	UserID        string
	ApplicationID int
	Scope         string
	Expires       time.Time
	CreatedAt     time.Time
}

// RefreshToken references the access token it was issued alongside.
// Revoked carries the forward expiry when the token is minted and is
// moved to the present instant on logout.
type RefreshToken struct {
	ID            int
	Token         string
	UserID        string
	ApplicationID int
	AccessTokenID int
	Revoked       time.Time
	CreatedAt     time.Time
}

// LedgerEntry is one income or expense transaction. Entries are immutable
// once written; deletion reverses their effect on the account balance.
type LedgerEntry struct {
	ID               int
	UserID           string
	Type             TxType
	Category         Category
	Description      string
	Amount           decimal.Decimal
	RemainingBalance decimal.Decimal
	CreatedAt        time.Time
}

// RecommendationRule is one row of the static percentage-of-salary table,
// keyed by (location, gender, preference). Populated by bulk import only.
type RecommendationRule struct {
	ID            int
	Location      string
	Gender        Gender
	Preference    Preference
	Rent          float64
	Food          float64
	Shopping      float64
	Travelling    float64
	Health        float64
	Entertainment float64
	Savings       float64
	Miscellaneous float64
}

// Percentage returns the rule's percentage for a canonical category.
func (r *RecommendationRule) Percentage(cat Category) float64 {
	switch cat {
	case CategoryRent:
		return r.Rent
	case CategoryFood:
		return r.Food
	case CategoryShopping:
		return r.Shopping
	case CategoryTravelling:
		return r.Travelling
	case CategoryHealth:
		return r.Health
	case CategoryEntertainment:
		return r.Entertainment
	case CategorySavings:
		return r.Savings
	case CategoryMiscellaneous:
		return r.Miscellaneous
	}
	return 0
}

// Feedback is a free-form rating a user leaves about the product.
type Feedback struct {
	ID        int
	UserID    string
	Rating    int
	Message   string
	CreatedAt time.Time
}
