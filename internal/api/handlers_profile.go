package api

import (
	"net/http"

	"github.com/shopspring/decimal"
	"gitlab.com/walletfy/walletfy-backend/internal/interactor"
	"gitlab.com/walletfy/walletfy-backend/internal/models"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	details, err := s.profile.Details(r.Context(), userID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

type updateProfilePayload struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var p updateProfilePayload
	if err := decode(r, &p); err != nil {
		respondMessageError(w, "invalid request payload")
		return
	}

	if err := s.profile.Update(r.Context(), userID(r), p.FullName, p.Email, p.Username); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "profile updated")
}

type preferencesPayload struct {
	Salary     string `json:"salary"`
	Preference string `json:"preference"`
	Location   string `json:"location"`
}

func (s *Server) handleSavePreferences(w http.ResponseWriter, r *http.Request) {
	var p preferencesPayload
	if err := decode(r, &p); err != nil {
		respondMessageError(w, "invalid request payload")
		return
	}

	salary, err := decimal.NewFromString(p.Salary)
	if err != nil {
		respondError(w, models.ErrInvalidAmount)
		return
	}
	preference, err := models.ParsePreference(p.Preference)
	if err != nil {
		respondMessageError(w, err.Error())
		return
	}
	if p.Location == "" {
		respondMessageError(w, "location is required")
		return
	}

	prefs, err := s.profile.SavePreferences(r.Context(), userID(r), interactor.PreferencesRequest{
		Salary:     salary,
		Preference: preference,
		Location:   p.Location,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"salary":          prefs.Salary.StringFixed(2),
		"preference":      string(prefs.Preference),
		"location":        prefs.Location,
		"account_balance": prefs.AccountBalance.StringFixed(2),
	})
}

type feedbackPayload struct {
	Rating  int    `json:"rating"`
	Message string `json:"message"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var p feedbackPayload
	if err := decode(r, &p); err != nil {
		respondMessageError(w, "invalid request payload")
		return
	}

	if _, err := s.feedback.Submit(r.Context(), userID(r), p.Rating, p.Message); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusCreated, "feedback received")
}
