package interactor

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gitlab.com/walletfy/walletfy-backend/internal/models"
	"gitlab.com/walletfy/walletfy-backend/internal/repository"
)

// ProfileDetails is the read DTO joining identity, demographic and salary
// attributes for the profile screen.
type ProfileDetails struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Gender   string `json:"gender"`
	Salary   string `json:"salary"`
}

// PreferencesRequest carries a preference-details submission.
type PreferencesRequest struct {
	Salary     decimal.Decimal
	Preference models.Preference
	Location   string
}

// Profile orchestrates profile reads and mutations.
type Profile struct {
	users *repository.UserRepository
}

// NewProfile creates the profile interactor.
func NewProfile(users *repository.UserRepository) *Profile {
	return &Profile{users: users}
}

// Details assembles the profile read DTO. A user who has never submitted
// preference details gets a zero salary rather than an error.
func (p *Profile) Details(ctx context.Context, userID string) (*ProfileDetails, error) {
	user, err := p.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := p.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	salary := decimal.Zero
	prefs, err := p.users.GetPreferences(ctx, userID)
	if err != nil && !errors.Is(err, models.ErrPreferencesNotSet) {
		return nil, err
	}
	if prefs != nil {
		salary = prefs.Salary
	}

	return &ProfileDetails{
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
		Role:     string(profile.Role),
		Gender:   string(profile.Gender),
		Salary:   salary.StringFixed(2),
	}, nil
}

// Update performs a partial update of name, email and username.
// The caller's existence is validated first; the update itself reports
// success unconditionally.
func (p *Profile) Update(ctx context.Context, userID, fullName, email, username string) error {
	if _, err := p.users.GetByID(ctx, userID); err != nil {
		return err
	}
	return p.users.UpdateProfile(ctx, userID, fullName, email, username)
}

// SavePreferences upserts salary, preference tier and location, resetting
// the account balance to the submitted salary.
func (p *Profile) SavePreferences(ctx context.Context, userID string, req PreferencesRequest) (*models.Preferences, error) {
	if _, err := p.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if req.Salary.Cmp(decimal.Zero) <= 0 {
		return nil, models.ErrInvalidAmount
	}

	prefs := &models.Preferences{
		UserID:     userID,
		Salary:     req.Salary,
		Preference: req.Preference,
		Location:   req.Location,
	}
	if err := p.users.UpsertPreferences(ctx, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}
