package api

import (
	"net/http"

	"gitlab.com/walletfy/walletfy-backend/internal/interactor"
	"gitlab.com/walletfy/walletfy-backend/internal/models"
)

type signupPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Gender   string `json:"gender"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var p signupPayload
	if err := decode(r, &p); err != nil {
		respondMessageError(w, "invalid request payload")
		return
	}
	if p.Email == "" || p.Password == "" || p.Username == "" {
		respondMessageError(w, "email, password and username are required")
		return
	}

	role, err := models.ParseRole(p.Role)
	if err != nil {
		respondMessageError(w, err.Error())
		return
	}
	gender, err := models.ParseGender(p.Gender)
	if err != nil {
		respondMessageError(w, err.Error())
		return
	}

	pair, err := s.auth.Signup(r.Context(), interactor.SignupRequest{
		Email:    p.Email,
		Password: p.Password,
		Username: p.Username,
		FullName: p.FullName,
		Role:     role,
		Gender:   gender,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, pair)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var p loginPayload
	if err := decode(r, &p); err != nil {
		respondMessageError(w, "invalid request payload")
		return
	}

	pair, err := s.auth.Login(r.Context(), p.Email, p.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pair)
}

type logoutPayload struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var p logoutPayload
	if err := decode(r, &p); err != nil {
		respondMessageError(w, "invalid request payload")
		return
	}

	if err := s.auth.Logout(r.Context(), p.AccessToken, p.RefreshToken); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "logged out")
}

type refreshPayload struct {
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var p refreshPayload
	if err := decode(r, &p); err != nil {
		respondMessageError(w, "invalid request payload")
		return
	}

	accessToken, err := s.auth.Refresh(r.Context(), p.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"access_token": accessToken})
}

type updatePasswordPayload struct {
	Email       string `json:"email"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	var p updatePasswordPayload
	if err := decode(r, &p); err != nil {
		respondMessageError(w, "invalid request payload")
		return
	}
	if p.NewPassword == "" {
		respondMessageError(w, "new password is required")
		return
	}

	if err := s.auth.UpdatePassword(r.Context(), p.Email, p.OldPassword, p.NewPassword); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "password updated")
}
