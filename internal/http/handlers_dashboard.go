package http

import (
	"net/http"
	"strconv"

	"fintrack/internal/core"
)

type periodPointResponse struct {
	Period      string `json:"period"`
	Income      string `json:"income"`
	Expenses    string `json:"expenses"`
	Net         string `json:"net"`
	SavingsRate string `json:"savings_rate"`
}

func toPeriodPointResponse(p core.PeriodPoint) periodPointResponse {
	return periodPointResponse{
		Period:      p.Period,
		Income:      p.Income.StringFixed(2),
		Expenses:    p.Expenses.StringFixed(2),
		Net:         p.Net.StringFixed(2),
		SavingsRate: p.SavingsRate.Round(4).String(),
	}
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	points, err := s.reports.Series(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out := make([]periodPointResponse, len(points))
	for i, p := range points {
		out[i] = toPeriodPointResponse(p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	month, err := strconv.Atoi(r.PathValue("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	point, err := s.reports.MonthOverview(r.Context(), year, month)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, toPeriodPointResponse(point))
}
