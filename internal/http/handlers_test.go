package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/store/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithHandler("test", slog.NewTextHandler(io.Discard, nil))
	st := memory.New()
	incomes := services.NewIncomeService(st, nil, logger)
	expenses := services.NewExpenseService(st, nil, logger)
	reports := services.NewReportService(st, st, logger)
	return NewServer(":0", incomes, expenses, reports, logger)
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCreateAndListIncome(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/incomes",
		`{"description":"Salary","source":"Acme","amount":"2500","frequency":"monthly","start_date":"2024-01-05"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created incomeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if created.Amount != "2500.00" {
		t.Fatalf("expected amount 2500.00, got %s", created.Amount)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/incomes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var rows []incomeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(rows) != 1 || rows[0].Description != "Salary" {
		t.Fatalf("unexpected list: %+v", rows)
	}
}

func TestCreateIncomeRejectsBadPayload(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"negative amount", `{"description":"x","amount":"-5","frequency":"monthly"}`},
		{"bad frequency", `{"description":"x","amount":"5","frequency":"hourly"}`},
		{"bad date", `{"description":"x","amount":"5","frequency":"monthly","start_date":"05/01/2024"}`},
		{"unknown field", `{"description":"x","amount":"5","frequency":"monthly","surprise":true}`},
	}
	for _, tc := range cases {
		rec := doJSON(t, srv, http.MethodPost, "/api/incomes", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, rec.Code)
		}
	}
}

func TestOnboardSalaryBonusMonth(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/incomes/salary",
		`{"description":"Salary","source":"Acme","amount":"2500","payday_rule":"last_bd","year":2024,"month":6}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var rows []incomeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected base row plus bonus row, got %d", len(rows))
	}
	if rows[0].StartDate != "2024-06-28" {
		t.Fatalf("expected payday 2024-06-28, got %s", rows[0].StartDate)
	}
	if rows[1].Amount != "1250.00" {
		t.Fatalf("expected bonus amount 1250.00, got %s", rows[1].Amount)
	}
}

func TestDeleteIncome(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/incomes",
		`{"description":"Salary","amount":"100","frequency":"monthly"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var created incomeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rec = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/incomes/%d", created.ID), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/incomes/%d", created.ID), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestInstallmentPlanLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/installments",
		`{"description":"Laptop","category":"tech","total":"100","count":3,"first_due":"2024-01-15"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var rows []expenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 installments, got %d", len(rows))
	}
	for i, row := range rows {
		if row.Amount != "33.33" {
			t.Fatalf("installment %d: expected 33.33, got %s", i+1, row.Amount)
		}
		if row.GroupID != rows[0].GroupID {
			t.Fatal("installments must share a group id")
		}
		if !strings.HasSuffix(row.Description, fmt.Sprintf("(%d/3)", i+1)) {
			t.Fatalf("installment %d: unexpected description %q", i+1, row.Description)
		}
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/installments/"+rows[0].GroupID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var del deleteGroupResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &del); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if del.Deleted != 3 {
		t.Fatalf("expected 3 deleted, got %d", del.Deleted)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/installments/"+rows[0].GroupID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for drained group, got %d", rec.Code)
	}
}

func TestDashboardSeries(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/incomes",
		`{"description":"Salary","amount":"2000","frequency":"monthly","start_date":"2024-01-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("income: expected 201, got %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodPost, "/api/expenses",
		`{"description":"Rent","category":"housing","amount":"800","frequency":"monthly","recurring":true,"transaction_date":"2024-01-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expense: expected 201, got %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/dashboard/series?from=2024-01&to=2024-03", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var points []periodPointResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &points); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	for _, p := range points {
		if p.Net != "1200.00" {
			t.Fatalf("period %s: expected net 1200.00, got %s", p.Period, p.Net)
		}
		if p.SavingsRate != "0.6" {
			t.Fatalf("period %s: expected savings rate 0.6, got %s", p.Period, p.SavingsRate)
		}
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/dashboard/series?from=2024-03&to=2024-01", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodGet, "/api/dashboard/series?from=garbage&to=2024-01", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed key, got %d", rec.Code)
	}
}

func TestMonthOverview(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/incomes",
		`{"description":"Salary","amount":"1000","frequency":"monthly","start_date":"2024-01-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/overview/2024/2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var point periodPointResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &point); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if point.Period != "2024-02" {
		t.Fatalf("expected period 2024-02, got %s", point.Period)
	}
	if point.Income != "1000.00" {
		t.Fatalf("expected income 1000.00, got %s", point.Income)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/overview/2024/13", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for month 13, got %d", rec.Code)
	}
}
