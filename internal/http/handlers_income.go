package http

import (
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

type incomeRequest struct {
	Description string `json:"description"`
	Source      string `json:"source"`
	Amount      string `json:"amount"`
	Frequency   string `json:"frequency"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type salaryRequest struct {
	Description string `json:"description"`
	Source      string `json:"source"`
	Amount      string `json:"amount"`
	Rule        string `json:"payday_rule"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
}

type incomeResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Source      string `json:"source,omitempty"`
	Amount      string `json:"amount"`
	Frequency   string `json:"frequency"`
	Active      bool   `json:"active"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

func toIncomeResponse(in core.Income) incomeResponse {
	resp := incomeResponse{
		ID:          in.ID,
		Description: in.Description,
		Source:      in.Source,
		Amount:      in.Amount.StringFixed(2),
		Frequency:   string(in.Frequency),
		Active:      in.Active,
	}
	if !in.StartDate.IsZero() {
		resp.StartDate = in.StartDate.Format("2006-01-02")
	}
	if !in.EndDate.IsZero() {
		resp.EndDate = in.EndDate.Format("2006-01-02")
	}
	return resp
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	in := core.Income{
		Description: req.Description,
		Source:      req.Source,
		Amount:      amount,
		Frequency:   core.Frequency(req.Frequency),
		Active:      true,
		StartDate:   start,
		EndDate:     end,
	}
	id, err := s.incomes.Create(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	in.ID = id
	writeJSON(w, http.StatusCreated, toIncomeResponse(in))
}

func (s *Server) handleOnboardSalary(w http.ResponseWriter, r *http.Request) {
	var req salaryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	created, err := s.incomes.OnboardSalary(r.Context(), services.SalaryOnboarding{
		Description: req.Description,
		Source:      req.Source,
		Amount:      amount,
		Rule:        core.PaydayRule(req.Rule),
		Year:        req.Year,
		Month:       req.Month,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out := make([]incomeResponse, len(created))
	for i, in := range created {
		out[i] = toIncomeResponse(in)
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	rows, err := s.incomes.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]incomeResponse, len(rows))
	for i, in := range rows {
		out[i] = toIncomeResponse(in)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.incomes.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
