package api

import (
	"net/http"
	"strings"

	"gitlab.com/walletfy/walletfy-backend/internal/gemini"
	"gitlab.com/walletfy/walletfy-backend/internal/interactor"
)

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.advisor.Suggestions(r.Context(), userID(r))
	if err != nil {
		respondError(w, err)
		return
	}

	type suggestionJSON struct {
		Category   string  `json:"category"`
		Percentage float64 `json:"percentage"`
		Amount     string  `json:"amount"`
	}
	out := make([]suggestionJSON, 0, len(suggestions))
	for _, sg := range suggestions {
		out = append(out, suggestionJSON{
			Category:   string(sg.Category),
			Percentage: sg.Percentage,
			Amount:     sg.Amount.StringFixed(2),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"suggestions": out})
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	comparisons, err := s.advisor.Compare(r.Context(), userID(r))
	if err != nil {
		respondError(w, err)
		return
	}

	type comparisonJSON struct {
		Category  string `json:"category"`
		Suggested string `json:"suggested"`
		Actual    string `json:"actual"`
		Status    string `json:"status"`
	}
	out := make([]comparisonJSON, 0, len(comparisons))
	for _, c := range comparisons {
		out = append(out, comparisonJSON{
			Category:  string(c.Category),
			Suggested: c.Suggested.StringFixed(2),
			Actual:    c.Actual.StringFixed(2),
			Status:    string(c.Status),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"comparison": out})
}

type assistantPayload struct {
	Question string `json:"question"`
}

func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	if s.assistant == nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "assistant is not available",
		})
		return
	}

	var p assistantPayload
	if err := decode(r, &p); err != nil {
		respondMessageError(w, "invalid request payload")
		return
	}
	if strings.TrimSpace(p.Question) == "" {
		respondMessageError(w, "question is required")
		return
	}
	if len(p.Question) > gemini.MaxQuestionLength {
		respondMessageError(w, "question too long")
		return
	}

	summary, err := s.advisor.Summary(r.Context(), userID(r))
	if err != nil {
		// Assistant works without a full summary; fall back to an
		// empty one rather than failing the request.
		summary = &interactor.FinancialSummary{}
	}

	answer, err := s.assistant.Ask(r.Context(), summary, p.Question)
	if err != nil {
		respondJSON(w, http.StatusBadGateway, map[string]string{
			"error": "assistant could not answer, try again later",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"answer": answer})
}
