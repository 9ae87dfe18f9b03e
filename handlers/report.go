// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/danielhkuo/health-inference/cliparse"
	"github.com/danielhkuo/health-inference/db"
	"github.com/danielhkuo/health-inference/export"
	"github.com/danielhkuo/health-inference/middleware"
	"github.com/danielhkuo/health-inference/models"
	"github.com/danielhkuo/health-inference/report"
)

type ReportHandler struct {
	view     *report.View
	exporter *export.Exporter
}

func NewReportHandler(conn *db.Conn, cfg cliparse.Config, opts ...export.Option) *ReportHandler {
	return &ReportHandler{
		view:     report.NewView(conn),
		exporter: export.NewExporter(cfg, opts...),
	}
}

// View handles GET /view
func (h *ReportHandler) View(w http.ResponseWriter, r *http.Request) {
	filter, err := viewFilter(r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	rows, err := h.view.Joined(r.Context(), filter)
	if err != nil {
		writeError(w, r, err, "Failed to load view")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, rows)
}

// Summary handles GET /view/summary?metric=...
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	metric := r.URL.Query().Get("metric")
	if !slices.Contains(report.MetricNames(), metric) {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("metric must be one of: %s", strings.Join(report.MetricNames(), ", ")))
		return
	}

	filter, err := viewFilter(r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	rows, err := h.view.Joined(r.Context(), filter)
	if err != nil {
		writeError(w, r, err, "Failed to load view")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, report.Summarize(rows, metric))
}

// ExportCSV handles GET /view/export.csv and streams the filtered view.
func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := viewFilter(r)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	rows, err := h.view.Joined(r.Context(), filter)
	if err != nil {
		writeError(w, r, err, "Failed to load view")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.DefaultFileName+`"`)
	w.WriteHeader(http.StatusOK)
	if err := export.WriteCSV(w, rows); err != nil {
		// Status already sent
		slog.Error("failed to stream CSV", "error", err)
	}
}

// Export handles POST /exports. The path may be relative to the export
// directory or s3://bucket/key; an empty path uses the default export file.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req models.ExportRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	dest, err := h.exporter.WithinDir(req.Path)
	if err != nil {
		writeError(w, r, err, "Invalid export path")
		return
	}

	rows, err := h.view.Joined(r.Context(), req.Filters)
	if err != nil {
		writeError(w, r, err, "Failed to load view")
		return
	}

	res, err := h.exporter.Export(r.Context(), rows, dest)
	if err != nil {
		writeError(w, r, err, "Failed to export")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, res)
}
