package models

import "errors"

// Domain errors. Interactors translate these into HTTP error responses;
// anything else surfacing from a repository is an infrastructure failure.
var (
	ErrInvalidUser         = errors.New("invalid user")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrInvalidAccessToken  = errors.New("invalid access token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrAccessTokenExpired  = errors.New("access token expired")
	ErrInvalidAmount       = errors.New("amount must be a positive number")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrEntryNotFound       = errors.New("transaction not found")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrRuleNotFound        = errors.New("no recommendation rule for this location, gender and preference")
	ErrPreferencesNotSet   = errors.New("preference details not set")
)
