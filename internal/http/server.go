// Package http exposes the JSON API over the services layer.
package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"fintrack/internal/log"
	"fintrack/internal/services"
)

type Server struct {
	http.Server
	incomes  *services.IncomeService
	expenses *services.ExpenseService
	reports  *services.ReportService
	log      *log.Logger
}

func NewServer(addr string, incomes *services.IncomeService, expenses *services.ExpenseService,
	reports *services.ReportService, logger *log.Logger) *Server {

	s := &Server{
		incomes:  incomes,
		expenses: expenses,
		reports:  reports,
		log:      logger.WithComponent(log.ComponentHTTP),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/incomes", s.handleCreateIncome)
	mux.HandleFunc("POST /api/incomes/salary", s.handleOnboardSalary)
	mux.HandleFunc("GET /api/incomes", s.handleListIncomes)
	mux.HandleFunc("DELETE /api/incomes/{id}", s.handleDeleteIncome)

	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("POST /api/installments", s.handleCreateInstallmentPlan)
	mux.HandleFunc("DELETE /api/installments/{group}", s.handleDeleteGroup)

	mux.HandleFunc("GET /api/dashboard/series", s.handleSeries)
	mux.HandleFunc("GET /api/overview/{year}/{month}", s.handleOverview)

	limiter := newRateLimiter(requestsPerMinute)

	s.Addr = addr
	s.Handler = s.withLogging(limiter.middleware(withSecurityHeaders(mux)))
	return s
}

const requestsPerMinute = 240

// withSecurityHeaders sets the usual hardening headers for a JSON-only API.
func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withLogging tags each request with a generated id and records method, path,
// status and duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := newRequestID()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		level := slog.LevelInfo
		if rec.status >= 500 {
			level = slog.LevelError
		} else if rec.status >= 400 {
			level = slog.LevelWarn
		}
		s.log.Log(r.Context(), level, "Request handled",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rec.status,
			log.FieldDuration, time.Since(start).Milliseconds())
	})
}

func newRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(b)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
