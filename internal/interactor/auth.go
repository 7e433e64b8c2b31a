// Package interactor implements the use cases of the walletfy backend,
// one orchestration unit per API operation.
package interactor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gitlab.com/walletfy/walletfy-backend/internal/logger"
	"gitlab.com/walletfy/walletfy-backend/internal/models"
	"gitlab.com/walletfy/walletfy-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// TokenPair is the result of a successful login or signup.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SignupRequest carries the fields a new account is created from.
type SignupRequest struct {
	Email    string
	Password string
	Username string
	FullName string
	Role     models.Role
	Gender   models.Gender
}

// Auth orchestrates login, signup, logout, token refresh and password
// updates against the user and token stores.
type Auth struct {
	users      *repository.UserRepository
	tokens     *repository.TokenRepository
	appName    string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuth creates the authentication interactor.
func NewAuth(users *repository.UserRepository, tokens *repository.TokenRepository, appName string, accessTTL, refreshTTL time.Duration) *Auth {
	return &Auth{
		users:      users,
		tokens:     tokens,
		appName:    appName,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Login validates credentials and issues a fresh token pair.
// Returns models.ErrInvalidUser for an unknown email and
// models.ErrInvalidPassword for a failed hash check.
func (a *Auth) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, models.ErrInvalidPassword
	}

	pair, err := a.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	logger.Log.Info().
		Str("email_hash", logger.HashEmail(email)).
		Msg("user logged in")
	return pair, nil
}

// Signup creates the user and profile rows and issues a token pair
// exactly as login does. Returns models.ErrUserAlreadyExists when the
// email is taken.
func (a *Auth) Signup(ctx context.Context, req SignupRequest) (*TokenPair, error) {
	exists, err := a.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
	}
	profile := &models.Profile{
		UserID: user.ID,
		Gender: req.Gender,
		Role:   req.Role,
	}
	if err := a.users.Create(ctx, user, profile); err != nil {
		return nil, err
	}

	pair, err := a.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	logger.Log.Info().
		Str("email_hash", logger.HashEmail(req.Email)).
		Msg("user signed up")
	return pair, nil
}

// Logout revokes the supplied token pair atomically.
func (a *Auth) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if err := a.tokens.RevokePair(ctx, accessToken, refreshToken, time.Now()); err != nil {
		return err
	}
	logger.Log.Info().
		Str("token_hash", logger.HashToken(accessToken)).
		Msg("user logged out")
	return nil
}

// Refresh exchanges a live refresh token for a new access token and
// re-links the refresh token to it. Returns models.ErrInvalidRefreshToken
// for an unknown token and models.ErrRefreshTokenExpired once the token's
// revocation instant has passed.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (string, error) {
	rt, err := a.tokens.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	if rt.Revoked.Before(time.Now()) {
		return "", models.ErrRefreshTokenExpired
	}

	access, err := a.mintAccessToken(ctx, rt.UserID)
	if err != nil {
		return "", err
	}
	if err := a.tokens.RelinkAccessToken(ctx, rt.ID, access.ID); err != nil {
		return "", err
	}
	return access.Token, nil
}

// UpdatePassword validates the old password for an email and stores a new
// hash.
func (a *Auth) UpdatePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return models.ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return a.users.UpdatePassword(ctx, user.ID, string(hash))
}

// issueTokens mints an access token and a refresh token bound to the
// user's lazily created application record.
func (a *Auth) issueTokens(ctx context.Context, userID string) (*TokenPair, error) {
	access, err := a.mintAccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	refresh := &models.RefreshToken{
		Token:         newOpaqueToken(),
		UserID:        userID,
		ApplicationID: access.ApplicationID,
		AccessTokenID: access.ID,
		Revoked:       time.Now().Add(a.refreshTTL),
	}
	if err := a.tokens.CreateRefreshToken(ctx, refresh); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
	}, nil
}

func (a *Auth) mintAccessToken(ctx context.Context, userID string) (*models.AccessToken, error) {
	app, err := a.tokens.EnsureApplication(ctx, a.appName, userID)
	if err != nil {
		return nil, err
	}

	access := &models.AccessToken{
		Token:         newOpaqueToken(),
		UserID:        userID,
		ApplicationID: app.ID,
		Scope:         models.TokenScope,
		Expires:       time.Now().Add(a.accessTTL),
	}
	if err := a.tokens.CreateAccessToken(ctx, access); err != nil {
		return nil, err
	}
	return access, nil
}

// newOpaqueToken returns 32 hex characters, the same shape the original
// OAuth2 provider produced.
func newOpaqueToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
