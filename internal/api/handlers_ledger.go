package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"gitlab.com/walletfy/walletfy-backend/internal/interactor"
	"gitlab.com/walletfy/walletfy-backend/internal/models"
	"gitlab.com/walletfy/walletfy-backend/internal/repository"
)

// entryJSON is the wire shape of one ledger entry.
type entryJSON struct {
	ID               int    `json:"id"`
	Type             string `json:"type"`
	Category         string `json:"category"`
	Description      string `json:"description"`
	Amount           string `json:"amount"`
	RemainingBalance string `json:"remaining_balance"`
	Date             string `json:"date"`
}

func toEntryJSON(e models.LedgerEntry) entryJSON {
	return entryJSON{
		ID:               e.ID,
		Type:             string(e.Type),
		Category:         string(e.Category),
		Description:      e.Description,
		Amount:           e.Amount.StringFixed(2),
		RemainingBalance: e.RemainingBalance.StringFixed(2),
		Date:             e.CreatedAt.Format(time.RFC3339),
	}
}

func toEntriesJSON(entries []models.LedgerEntry) []entryJSON {
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryJSON(e))
	}
	return out
}

type transactionPayload struct {
	Type        string `json:"type"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

func (s *Server) handleRecordTransaction(w http.ResponseWriter, r *http.Request) {
	var p transactionPayload
	if err := decode(r, &p); err != nil {
		respondMessageError(w, "invalid request payload")
		return
	}

	txType, err := models.ParseTxType(p.Type)
	if err != nil {
		respondMessageError(w, err.Error())
		return
	}
	category, err := models.ParseCategory(p.Category)
	if err != nil {
		respondMessageError(w, err.Error())
		return
	}
	if len(p.Description) > models.MaxDescriptionLength {
		respondMessageError(w, "description too long")
		return
	}

	result, err := s.ledger.Record(r.Context(), userID(r), interactor.RecordRequest{
		Type:        txType,
		Category:    category,
		Amount:      p.Amount,
		Description: p.Description,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"transaction":   toEntryJSON(*result.Entry),
		"balance":       result.Balance.StringFixed(2),
		"month_income":  result.MonthIncome.StringFixed(2),
		"month_expense": result.MonthExpense.StringFixed(2),
	})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondMessageError(w, "invalid transaction id")
		return
	}

	balance, err := s.ledger.Delete(r.Context(), userID(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"balance": balance.StringFixed(2)})
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	entries, err := s.ledger.LastFive(r.Context(), userID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"transactions": toEntriesJSON(entries)})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	groups, err := s.ledger.History(r.Context(), userID(r))
	if err != nil {
		respondError(w, err)
		return
	}

	type groupJSON struct {
		Date         string      `json:"date"`
		Transactions []entryJSON `json:"transactions"`
	}
	out := make([]groupJSON, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupJSON{Date: g.Date, Transactions: toEntriesJSON(g.Entries)})
	}
	respondJSON(w, http.StatusOK, map[string]any{"history": out})
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if c := r.URL.Query().Get("category"); c != "" {
		parsed, err := models.ParseCategory(c)
		if err != nil {
			respondMessageError(w, err.Error())
			return
		}
		category = parsed
	}

	sort := repository.SortMode(r.URL.Query().Get("sort"))
	if sort == "" {
		sort = repository.SortNewest
	}

	entries, err := s.ledger.Filter(r.Context(), userID(r), category, sort)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"transactions": toEntriesJSON(entries)})
}

func (s *Server) handleTransactionDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondMessageError(w, "invalid transaction id")
		return
	}

	entry, err := s.ledger.Detail(r.Context(), userID(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toEntryJSON(*entry))
}

// parseMonth reads an optional ?month=YYYY-MM query parameter, defaulting
// to the current month.
func parseMonth(r *http.Request) (time.Time, error) {
	q := r.URL.Query().Get("month")
	if q == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01", q)
}

func (s *Server) handleMonthlyBreakdown(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonth(r)
	if err != nil {
		respondMessageError(w, "month must be formatted YYYY-MM")
		return
	}

	totals, err := s.ledger.MonthlyBreakdown(r.Context(), userID(r), month)
	if err != nil {
		respondError(w, err)
		return
	}

	type totalJSON struct {
		Category string `json:"category"`
		Total    string `json:"total"`
	}
	out := make([]totalJSON, 0, len(totals))
	for _, t := range totals {
		out = append(out, totalJSON{Category: string(t.Category), Total: t.Total.StringFixed(2)})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"month":      month.Format("2006-01"),
		"categories": out,
	})
}
