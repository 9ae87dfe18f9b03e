// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/danielhkuo/health-inference/db"
	"github.com/danielhkuo/health-inference/inference"
	"github.com/danielhkuo/health-inference/middleware"
	"github.com/danielhkuo/health-inference/models"
	"github.com/danielhkuo/health-inference/store"
)

type InferenceHandler struct {
	runner *inference.Runner
}

func NewInferenceHandler(conn *db.Conn) *InferenceHandler {
	runner := inference.NewRunner(store.NewScenarioStore(conn), store.NewMetricsStore(conn), nil)
	return &InferenceHandler{runner: runner}
}

// Run handles POST /scenarios/{id}/inference
func (h *InferenceHandler) Run(w http.ResponseWriter, r *http.Request) {
	id, err := scenarioID(r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	metricsID, err := h.runner.RunInference(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to run inference")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RunInferenceResponse{
		ScenarioID: id,
		MetricsID:  metricsID,
	})
}

// Preview handles POST /inference/preview. The body is a raw scenario
// snapshot; the result is computed but not stored.
func (h *InferenceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Body must be a JSON object")
		return
	}

	snapshot, err := inference.ParseSnapshot(raw)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	result, err := inference.Infer(snapshot)
	if err != nil {
		writeError(w, r, err, "Failed to run inference")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}
