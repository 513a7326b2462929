package handler

import (
	"context"
	"net/http"
	"time"

	"life-dashboard/internal/service"
)

type snapshotRequest struct {
	City        string    `json:"city"`
	Temperature *float64  `json:"temperature"`
	FeelsLike   float64   `json:"feelsLike"`
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Timestamp   *dateTime `json:"timestamp"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply     string    `json:"reply"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.sendOK(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": h.now(),
	}, "service is running")
}

// Ping answers GET /api/test.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	h.sendOK(w, http.StatusOK, nil, "backend is running")
}

// GetWeather answers GET /api/weather/{city}.
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), WeatherTimeout)
	defer cancel()

	weather, err := h.svc.Weather.Lookup(ctx, r.PathValue("city"))
	if err != nil {
		h.fail(w, "weather lookup", err)
		return
	}
	message := ""
	if weather.Stale {
		message = "provider unavailable, showing last stored observation"
	}
	h.sendOK(w, http.StatusOK, weather, message)
}

// RecordWeather answers POST /api/weather.
func (h *Handler) RecordWeather(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), CreateTimeout)
	defer cancel()

	var req snapshotRequest
	if !h.decode(w, r, &req) {
		return
	}
	input := service.SnapshotInput{
		City:        req.City,
		Temperature: req.Temperature,
		FeelsLike:   req.FeelsLike,
		Humidity:    req.Humidity,
		WindSpeed:   req.WindSpeed,
		Description: req.Description,
		Icon:        req.Icon,
	}
	if t := req.Timestamp.ptr(); t != nil {
		input.ObservedAt = *t
	}

	snap, err := h.svc.Weather.Record(ctx, input)
	if err != nil {
		h.fail(w, "record weather", err)
		return
	}
	h.sendOK(w, http.StatusCreated, snap, "weather stored")
}

// Chat answers POST /api/chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !h.decode(w, r, &req) {
		return
	}
	reply, err := h.svc.Chat.Reply(req.Message)
	if err != nil {
		h.fail(w, "chat", err)
		return
	}
	h.sendOK(w, http.StatusOK, chatResponse{Reply: reply, Timestamp: h.now()}, "")
}

// Report answers GET /api/reports/due.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), ListTimeout)
	defer cancel()

	report, err := h.svc.Reports.Build(ctx)
	if err != nil {
		h.fail(w, "due report", err)
		return
	}
	h.sendOK(w, http.StatusOK, report, "")
}
