package api

import (
	"fmt"
	"net/http"

	"github.com/go-analyze/charts"
	"gitlab.com/walletfy/walletfy-backend/internal/repository"
)

// RenderCategoryPie renders per-category expense totals as a pie chart
// and returns the PNG bytes.
func RenderCategoryPie(totals []repository.CategoryTotal, period string) ([]byte, error) {
	if len(totals) == 0 {
		return nil, fmt.Errorf("no expenses to chart")
	}

	values := make([]float64, 0, len(totals))
	names := make([]string, 0, len(totals))
	for _, t := range totals {
		names = append(names, string(t.Category))
		values = append(values, t.Total.InexactFloat64())
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: fmt.Sprintf("Expense Breakdown - %s", period),
		}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}

func (s *Server) handleMonthlyChart(w http.ResponseWriter, r *http.Request) {
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

	period := month.Format("2006-01")
	png, err := RenderCategoryPie(totals, period)
	if err != nil {
		respondMessageError(w, "no expenses recorded for this month")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="chart_month_%s.png"`, period))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
