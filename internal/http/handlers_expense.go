package http

import (
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

type expenseRequest struct {
	Description     string `json:"description"`
	Category        string `json:"category"`
	Amount          string `json:"amount"`
	Frequency       string `json:"frequency"`
	Recurring       bool   `json:"recurring"`
	TransactionDate string `json:"transaction_date"`
	CardID          string `json:"card_id"`
}

type installmentPlanRequest struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	CardID      string `json:"card_id"`
	Total       string `json:"total"`
	Count       int    `json:"count"`
	FirstDue    string `json:"first_due"`
}

type expenseResponse struct {
	ID              int64  `json:"id"`
	Description     string `json:"description"`
	Category        string `json:"category,omitempty"`
	Amount          string `json:"amount"`
	Frequency       string `json:"frequency"`
	Recurring       bool   `json:"recurring"`
	TransactionDate string `json:"transaction_date,omitempty"`
	CardID          string `json:"card_id,omitempty"`
	GroupID         string `json:"group_id,omitempty"`
	InstallmentNo   int    `json:"installment_no,omitempty"`
	InstallmentOf   int    `json:"installment_of,omitempty"`
}

type deleteGroupResponse struct {
	Deleted int `json:"deleted"`
}

func toExpenseResponse(e core.Expense) expenseResponse {
	resp := expenseResponse{
		ID:            e.ID,
		Description:   e.Description,
		Category:      e.Category,
		Amount:        e.Amount.StringFixed(2),
		Frequency:     string(e.Frequency),
		Recurring:     e.Recurring,
		CardID:        e.CardID,
		GroupID:       e.GroupID,
		InstallmentNo: e.InstallmentNo,
		InstallmentOf: e.InstallmentOf,
	}
	if !e.TransactionDate.IsZero() {
		resp.TransactionDate = e.TransactionDate.Format("2006-01-02")
	}
	return resp
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	txDate, err := parseDate(req.TransactionDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	e := core.Expense{
		Description:     req.Description,
		Category:        req.Category,
		Amount:          amount,
		Frequency:       core.Frequency(req.Frequency),
		Recurring:       req.Recurring,
		TransactionDate: txDate,
		CardID:          req.CardID,
	}
	id, err := s.expenses.Create(r.Context(), e)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	e.ID = id
	writeJSON(w, http.StatusCreated, toExpenseResponse(e))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	rows, err := s.expenses.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]expenseResponse, len(rows))
	for i, e := range rows {
		out[i] = toExpenseResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.expenses.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateInstallmentPlan(w http.ResponseWriter, r *http.Request) {
	var req installmentPlanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	total, err := core.ParseAmount(req.Total)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	firstDue, err := parseDate(req.FirstDue)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	created, err := s.expenses.CreateInstallmentPlan(r.Context(), services.InstallmentPlan{
		Description: req.Description,
		Category:    req.Category,
		CardID:      req.CardID,
		Total:       total,
		Count:       req.Count,
		FirstDue:    firstDue,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out := make([]expenseResponse, len(created))
	for i, e := range created {
		out[i] = toExpenseResponse(e)
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	group := r.PathValue("group")
	if group == "" {
		writeError(w, http.StatusBadRequest, errMissingGroup)
		return
	}
	n, err := s.expenses.DeleteGroup(r.Context(), group)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if n == 0 {
		writeError(w, http.StatusNotFound, errGroupNotFound)
		return
	}
	writeJSON(w, http.StatusOK, deleteGroupResponse{Deleted: n})
}
