// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/health-inference/db"
	"github.com/danielhkuo/health-inference/middleware"
	"github.com/danielhkuo/health-inference/models"
	"github.com/danielhkuo/health-inference/store"
)

type ScenarioHandler struct {
	scenarios *store.ScenarioStore
}

func NewScenarioHandler(conn *db.Conn) *ScenarioHandler {
	return &ScenarioHandler{scenarios: store.NewScenarioStore(conn)}
}

// Create handles POST /scenarios
func (h *ScenarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateScenarioRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	in, err := req.Validate()
	if err != nil {
		writeError(w, r, err, "Failed to create scenario")
		return
	}

	id, err := h.scenarios.Insert(r.Context(), in)
	if err != nil {
		writeError(w, r, err, "Failed to create scenario")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateScenarioResponse{ScenarioID: id})
}

// List handles GET /scenarios
func (h *ScenarioHandler) List(w http.ResponseWriter, r *http.Request) {
	scenarios, err := h.scenarios.List(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to list scenarios")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, scenarios)
}

// Get handles GET /scenarios/{id}
func (h *ScenarioHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := scenarioID(r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	sc, found, err := h.scenarios.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to load scenario")
		return
	}
	if !found {
		writeError(w, r, &models.NotFoundError{ID: id}, "")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, sc)
}

// Update handles PATCH /scenarios/{id}. Only keys present in the body are
// written; unknown keys are ignored.
func (h *ScenarioHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := scenarioID(r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	var patch models.ScenarioPatch
	if err := middleware.ParseJSONBody(r, &patch); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.scenarios.Update(r.Context(), id, patch); err != nil {
		writeError(w, r, err, "Failed to update scenario")
		return
	}

	slog.Debug("scenario patch applied", "scenario_id", id, "empty", patch.Empty())
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /scenarios/{id}. Deleting an unknown id succeeds.
func (h *ScenarioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := scenarioID(r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	if err := h.scenarios.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "Failed to delete scenario")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
