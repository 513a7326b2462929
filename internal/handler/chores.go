package handler

import (
	"context"
	"net/http"

	"life-dashboard/internal/service"
)

type choreRequest struct {
	Name       *string      `json:"name"`
	AssignedTo *string      `json:"assignedTo"`
	Frequency  *looseString `json:"frequency"`
}

// ListChores answers GET /api/chores?filter=&sort=.
func (h *Handler) ListChores(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), ListTimeout)
	defer cancel()

	q := r.URL.Query()
	chores, err := h.svc.Chores.List(ctx, q.Get("filter"), q.Get("sort"))
	if err != nil {
		h.fail(w, "list chores", err)
		return
	}
	h.sendOK(w, http.StatusOK, chores, "")
}

func (h *Handler) CreateChore(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), CreateTimeout)
	defer cancel()

	var req choreRequest
	if !h.decode(w, r, &req) {
		return
	}
	input := service.ChoreInput{}
	if req.Name != nil {
		input.Name = *req.Name
	}
	if req.AssignedTo != nil {
		input.AssignedTo = *req.AssignedTo
	}
	if req.Frequency != nil {
		input.Frequency = string(*req.Frequency)
	}

	chore, err := h.svc.Chores.Create(ctx, input)
	if err != nil {
		h.fail(w, "create chore", err)
		return
	}
	h.sendOK(w, http.StatusCreated, chore, "chore created")
}

func (h *Handler) UpdateChore(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), UpdateTimeout)
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req choreRequest
	if !h.decode(w, r, &req) {
		return
	}

	chore, err := h.svc.Chores.Update(ctx, id, service.ChorePatch{
		Name:       req.Name,
		AssignedTo: req.AssignedTo,
		Frequency:  req.Frequency.ptr(),
	})
	if err != nil {
		h.fail(w, "update chore", err)
		return
	}
	h.sendOK(w, http.StatusOK, chore, "chore updated")
}

// MarkChoreDone answers POST /api/chores/{id}/done.
func (h *Handler) MarkChoreDone(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), UpdateTimeout)
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	chore, err := h.svc.Chores.MarkDone(ctx, id)
	if err != nil {
		h.fail(w, "mark chore done", err)
		return
	}
	h.sendOK(w, http.StatusOK, chore, "chore done")
}

func (h *Handler) DeleteChore(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), DeleteTimeout)
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Chores.Delete(ctx, id); err != nil {
		h.fail(w, "delete chore", err)
		return
	}
	h.sendOK(w, http.StatusOK, nil, "chore deleted")
}
