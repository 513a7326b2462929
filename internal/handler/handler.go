// Package handler implements the dashboard's JSON endpoints.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"life-dashboard/internal/recurrence"
	"life-dashboard/internal/repository"
	"life-dashboard/internal/service"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Message string     `json:"message,omitempty"`
}

// ErrorInfo carries a machine-readable code and a human message.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Timeouts per operation.
const (
	DefaultTimeout = 10 * time.Second
	ListTimeout    = 5 * time.Second
	CreateTimeout  = 3 * time.Second
	UpdateTimeout  = 3 * time.Second
	DeleteTimeout  = 2 * time.Second
	WeatherTimeout = 15 * time.Second
)

// MaxBodyBytes bounds request bodies; plant images make it generous.
const MaxBodyBytes = 10 << 20

// Services bundles what the handlers call into.
type Services struct {
	Chores   *service.ChoreService
	Plants   *service.PlantService
	Calendar *service.CalendarService
	Finance  *service.FinanceService
	Weather  *service.WeatherService
	Chat     *service.ChatService
	Reports  *service.ReminderService
}

// Handler holds the services behind the HTTP surface.
type Handler struct {
	svc    Services
	now    func() time.Time
	logger *log.Logger
}

func NewHandler(svc Services, now func() time.Time, logger *log.Logger) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{svc: svc, now: now, logger: logger}
}

func (h *Handler) sendJSON(w http.ResponseWriter, status int, response Response) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(response); err != nil {
		// sendError would recurse here.
		h.logger.Error("encoding response", "err", err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Internal Server Error: Failed to encode response"))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) sendOK(w http.ResponseWriter, status int, data any, message string) {
	h.sendJSON(w, status, Response{Success: true, Data: data, Message: message})
}

func (h *Handler) sendError(w http.ResponseWriter, status int, code, message string) {
	h.sendJSON(w, status, Response{
		Success: false,
		Error:   &ErrorInfo{Code: code, Message: message},
	})
}

// fail maps a service error onto a status code and error code.
func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the answer.
		h.logger.Debug("request canceled", "op", op)
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("request timed out", "op", op, "err", err)
		h.sendError(w, http.StatusRequestTimeout, "TIMEOUT", "request timed out, please retry")
	case errors.Is(err, repository.ErrNotFound):
		h.sendError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, recurrence.ErrInvalidFrequency):
		h.sendError(w, http.StatusBadRequest, "INVALID_FREQUENCY", err.Error())
	case errors.Is(err, recurrence.ErrInvalidState):
		h.sendError(w, http.StatusBadRequest, "INVALID_STATE", err.Error())
	case errors.Is(err, service.ErrValidation):
		h.sendError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, service.ErrWeatherUnavailable):
		h.logger.Warn("weather unavailable", "op", op, "err", err)
		h.sendError(w, http.StatusBadGateway, "WEATHER_UNAVAILABLE", err.Error())
	default:
		h.logger.Error("request failed", "op", op, "err", err)
		h.sendError(w, http.StatusInternalServerError, "DATABASE_ERROR", op+" failed")
	}
}

// decode reads a bounded JSON body into dst and answers the error itself.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.sendError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE",
				fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		h.sendError(w, http.StatusBadRequest, "INVALID_JSON", fmt.Sprintf("invalid JSON: %v", err))
		return false
	}
	return true
}

// pathID parses the {id} wildcard.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		h.sendError(w, http.StatusBadRequest, "INVALID_ID", fmt.Sprintf("invalid id %q", raw))
		return 0, false
	}
	return uint(id), true
}

// currentMonth formats now as YYYY-MM.
func (h *Handler) currentMonth() string {
	return h.now().Format("2006-01")
}
