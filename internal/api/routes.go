// Package api wires handlers and middleware into the route table.
package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"life-dashboard/internal/handler"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Options configures the middleware stack.
type Options struct {
	AllowedOrigins []string
	Logger         *log.Logger
}

// corsMiddleware answers preflights and sets CORS headers for allowed origins.
func corsMiddleware(allowed []string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (slices.Contains(allowed, "*") || slices.Contains(allowed, origin)) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next(w, r)
		}
	}
}

// recoverMiddleware keeps a panicking handler from taking the server down.
func recoverMiddleware(logger *log.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered", "path", r.URL.Path, "panic", err,
						"request_id", w.Header().Get(RequestIDHeader))
					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
			}()
			next(w, r)
		}
	}
}

func requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func accessLogMiddleware(logger *log.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next(rec, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
				"request_id", w.Header().Get(RequestIDHeader),
			)
		}
	}
}

// chain applies middlewares so the first one listed runs outermost.
func chain(f http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		f = middlewares[i](f)
	}
	return f
}

func SetupRoutes(h *handler.Handler, opts Options) *http.ServeMux {
	mux := http.NewServeMux()
	logger := opts.Logger

	with := func(f http.HandlerFunc) http.HandlerFunc {
		return chain(f,
			requestIDMiddleware,
			accessLogMiddleware(logger),
			recoverMiddleware(logger),
			corsMiddleware(opts.AllowedOrigins),
		)
	}
	handle := func(pattern string, f http.HandlerFunc) {
		mux.HandleFunc(pattern, with(f))
	}

	// Preflight for every API path; corsMiddleware answers it.
	handle("OPTIONS /api/", func(w http.ResponseWriter, r *http.Request) {})

	handle("GET /health", h.HealthCheck)
	handle("GET /api/test", h.Ping)

	handle("GET /api/chores", h.ListChores)
	handle("POST /api/chores", h.CreateChore)
	handle("PUT /api/chores/{id}", h.UpdateChore)
	handle("POST /api/chores/{id}/done", h.MarkChoreDone)
	handle("DELETE /api/chores/{id}", h.DeleteChore)

	handle("GET /api/plants", h.ListPlants)
	handle("POST /api/plants", h.CreatePlant)
	handle("PUT /api/plants/{id}", h.UpdatePlant)
	handle("POST /api/plants/{id}/water", h.WaterPlant)
	handle("DELETE /api/plants/{id}", h.DeletePlant)

	handle("GET /api/calendar/events", h.ListEvents)
	handle("POST /api/calendar/events", h.CreateEvent)
	handle("PUT /api/calendar/events/{id}", h.UpdateEvent)
	handle("DELETE /api/calendar/events/{id}", h.DeleteEvent)

	handle("GET /api/finance/transactions", h.ListTransactions)
	handle("POST /api/finance/transactions", h.CreateTransaction)
	handle("DELETE /api/finance/transactions/{id}", h.DeleteTransaction)
	handle("GET /api/finance/budget", h.GetBudget)
	handle("POST /api/finance/budget", h.SetBudget)
	handle("GET /api/finance/summary", h.Summary)
	handle("GET /api/finance/categories", h.Categories)

	handle("GET /api/weather/{city}", h.GetWeather)
	handle("POST /api/weather", h.RecordWeather)

	handle("POST /api/chat", h.Chat)
	handle("GET /api/reports/due", h.Report)

	return mux
}
