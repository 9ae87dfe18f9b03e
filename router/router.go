// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/health-inference/cliparse"
	"github.com/danielhkuo/health-inference/db"
	"github.com/danielhkuo/health-inference/export"
	"github.com/danielhkuo/health-inference/handlers"
	"github.com/danielhkuo/health-inference/metrics"
	"github.com/danielhkuo/health-inference/middleware"
)

func NewRouter(conn *db.Conn, cfg cliparse.Config, opts ...export.Option) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	scenarioHandler := handlers.NewScenarioHandler(conn)
	inferenceHandler := handlers.NewInferenceHandler(conn)
	reportHandler := handlers.NewReportHandler(conn, cfg, opts...)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := conn.DB.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Scenarios
	mux.HandleFunc("POST /scenarios", middleware.WithLogging(scenarioHandler.Create))
	mux.HandleFunc("GET /scenarios", middleware.WithLogging(scenarioHandler.List))
	mux.HandleFunc("GET /scenarios/{id}", middleware.WithLogging(scenarioHandler.Get))
	mux.HandleFunc("PATCH /scenarios/{id}", middleware.WithLogging(scenarioHandler.Update))
	mux.HandleFunc("DELETE /scenarios/{id}", middleware.WithLogging(scenarioHandler.Delete))

	// Inference
	mux.HandleFunc("POST /scenarios/{id}/inference", middleware.WithLogging(inferenceHandler.Run))
	mux.HandleFunc("POST /inference/preview", middleware.WithLogging(inferenceHandler.Preview))

	// Reporting
	mux.HandleFunc("GET /view", middleware.WithLogging(reportHandler.View))
	mux.HandleFunc("GET /view/summary", middleware.WithLogging(reportHandler.Summary))
	mux.HandleFunc("GET /view/export.csv", middleware.WithLogging(reportHandler.ExportCSV))
	mux.HandleFunc("POST /exports", middleware.WithLogging(reportHandler.Export))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("health-inference API v1"))
	})

	return mux
}
