package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"life-dashboard/internal/service"
)

type eventRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Start       *dateTime `json:"start"`
	End         *dateTime `json:"end"`
	Category    *string   `json:"category"`
	AllDay      *bool     `json:"allDay"`
}

// ListEvents answers GET /api/calendar/events?from=&to=.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), ListTimeout)
	defer cancel()

	var bounds [2]time.Time
	for i, key := range []string{"from", "to"} {
		raw := r.URL.Query().Get(key)
		if raw == "" {
			continue
		}
		t, err := parseDateTime(raw)
		if err != nil {
			h.sendError(w, http.StatusBadRequest, "VALIDATION_ERROR", fmt.Sprintf("%s: %v", key, err))
			return
		}
		bounds[i] = t
	}

	events, err := h.svc.Calendar.List(ctx, bounds[0], bounds[1])
	if err != nil {
		h.fail(w, "list events", err)
		return
	}
	h.sendOK(w, http.StatusOK, events, "")
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), CreateTimeout)
	defer cancel()

	var req eventRequest
	if !h.decode(w, r, &req) {
		return
	}
	input := service.EventInput{
		Title:       deref(req.Title),
		Description: deref(req.Description),
		Category:    deref(req.Category),
	}
	if t := req.Start.ptr(); t != nil {
		input.Start = *t
	}
	if t := req.End.ptr(); t != nil {
		input.End = *t
	}
	if req.AllDay != nil {
		input.AllDay = *req.AllDay
	}

	event, err := h.svc.Calendar.Create(ctx, input)
	if err != nil {
		h.fail(w, "create event", err)
		return
	}
	h.sendOK(w, http.StatusCreated, event, "event created")
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), UpdateTimeout)
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req eventRequest
	if !h.decode(w, r, &req) {
		return
	}
	event, err := h.svc.Calendar.Update(ctx, id, service.EventPatch{
		Title:       req.Title,
		Description: req.Description,
		Start:       req.Start.ptr(),
		End:         req.End.ptr(),
		Category:    req.Category,
		AllDay:      req.AllDay,
	})
	if err != nil {
		h.fail(w, "update event", err)
		return
	}
	h.sendOK(w, http.StatusOK, event, "event updated")
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), DeleteTimeout)
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Calendar.Delete(ctx, id); err != nil {
		h.fail(w, "delete event", err)
		return
	}
	h.sendOK(w, http.StatusOK, nil, "event deleted")
}
