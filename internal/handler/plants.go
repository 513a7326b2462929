package handler

import (
	"context"
	"net/http"

	"life-dashboard/internal/service"
)

type plantRequest struct {
	Name          *string   `json:"name"`
	Type          *string   `json:"type"`
	WaterInterval *int      `json:"waterInterval"`
	LastWatered   *dateTime `json:"lastWatered"`
	Notes         *string   `json:"notes"`
	Image         *string   `json:"image"`
	HealthStatus  *string   `json:"healthStatus"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (h *Handler) ListPlants(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), ListTimeout)
	defer cancel()

	q := r.URL.Query()
	plants, err := h.svc.Plants.List(ctx, q.Get("filter"), q.Get("sort"))
	if err != nil {
		h.fail(w, "list plants", err)
		return
	}
	h.sendOK(w, http.StatusOK, plants, "")
}

func (h *Handler) CreatePlant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), CreateTimeout)
	defer cancel()

	var req plantRequest
	if !h.decode(w, r, &req) {
		return
	}
	plant, err := h.svc.Plants.Create(ctx, service.PlantInput{
		Name:          deref(req.Name),
		Type:          deref(req.Type),
		WaterInterval: req.WaterInterval,
		LastWatered:   req.LastWatered.ptr(),
		Notes:         deref(req.Notes),
		Image:         deref(req.Image),
		HealthStatus:  deref(req.HealthStatus),
	})
	if err != nil {
		h.fail(w, "create plant", err)
		return
	}
	h.sendOK(w, http.StatusCreated, plant, "plant created")
}

func (h *Handler) UpdatePlant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), UpdateTimeout)
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req plantRequest
	if !h.decode(w, r, &req) {
		return
	}
	plant, err := h.svc.Plants.Update(ctx, id, service.PlantPatch{
		Name:          req.Name,
		Type:          req.Type,
		WaterInterval: req.WaterInterval,
		LastWatered:   req.LastWatered.ptr(),
		Notes:         req.Notes,
		Image:         req.Image,
		HealthStatus:  req.HealthStatus,
	})
	if err != nil {
		h.fail(w, "update plant", err)
		return
	}
	h.sendOK(w, http.StatusOK, plant, "plant updated")
}

// WaterPlant answers POST /api/plants/{id}/water.
func (h *Handler) WaterPlant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), UpdateTimeout)
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	plant, err := h.svc.Plants.Water(ctx, id)
	if err != nil {
		h.fail(w, "water plant", err)
		return
	}
	h.sendOK(w, http.StatusOK, plant, "plant watered")
}

func (h *Handler) DeletePlant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), DeleteTimeout)
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Plants.Delete(ctx, id); err != nil {
		h.fail(w, "delete plant", err)
		return
	}
	h.sendOK(w, http.StatusOK, nil, "plant deleted")
}
