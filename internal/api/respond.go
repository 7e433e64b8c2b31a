// Package api exposes the walletfy use cases over an HTTP JSON API.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"gitlab.com/walletfy/walletfy-backend/internal/logger"
	"gitlab.com/walletfy/walletfy-backend/internal/models"
)

// errorStatus maps domain errors onto HTTP status codes. Anything not
// listed is an infrastructure failure and surfaces as a 500.
var errorStatus = map[error]int{
	models.ErrInvalidUser:         http.StatusBadRequest,
	models.ErrInvalidPassword:     http.StatusBadRequest,
	models.ErrUserAlreadyExists:   http.StatusConflict,
	models.ErrInvalidAccessToken:  http.StatusUnauthorized,
	models.ErrInvalidRefreshToken: http.StatusUnauthorized,
	models.ErrRefreshTokenExpired: http.StatusUnauthorized,
	models.ErrAccessTokenExpired:  http.StatusUnauthorized,
	models.ErrInvalidAmount:       http.StatusBadRequest,
	models.ErrInvalidRating:       http.StatusBadRequest,
	models.ErrInsufficientBalance: http.StatusBadRequest,
	models.ErrPreferencesNotSet:   http.StatusBadRequest,
	models.ErrEntryNotFound:       http.StatusNotFound,
	models.ErrRuleNotFound:        http.StatusNotFound,
}

// respondJSON writes v as a JSON response body.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error().Err(err).Msg("failed to encode response")
	}
}

// respondError translates a domain error into a structured JSON error
// response. Unknown errors are logged and reported as a generic 500 so
// internals never leak to clients.
func respondError(w http.ResponseWriter, err error) {
	for domainErr, status := range errorStatus {
		if errors.Is(err, domainErr) {
			respondJSON(w, status, map[string]string{"error": domainErr.Error()})
			return
		}
	}

	logger.Log.Error().Err(err).Msg("request failed")
	respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// respondMessageError writes a 400 with a literal validation message.
func respondMessageError(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

// respondMessage writes a simple confirmation payload.
func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"message": msg})
}

// decode parses a JSON request body into dst.
func decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
