// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/health-inference/middleware"
	"github.com/danielhkuo/health-inference/models"
)

// writeError maps domain errors to status codes. Anything that is not a
// not-found or validation error is logged and reported as a 500 with msg.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error(msg,
			"error", err,
			"request_id", middleware.RequestID(r.Context()),
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msg)
	}
}

// scenarioID reads the {id} path value.
func scenarioID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &models.ValidationError{Field: "scenario_id", Reason: "must be a positive integer"}
	}
	return id, nil
}

// viewFilter reads scenario_id, country, start_date and end_date from the
// query string.
func viewFilter(r *http.Request) (models.ViewFilter, error) {
	q := r.URL.Query()
	f := models.ViewFilter{
		Country:   q.Get("country"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}
	if raw := q.Get("scenario_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.ViewFilter{}, &models.ValidationError{Field: "scenario_id", Reason: "must be an integer"}
		}
		f.ScenarioID = id
	}
	return f, nil
}
