// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the scenario inference API.

# Handler Types

Each handler is a struct built from a *db.Conn:

  - ScenarioHandler: scenario CRUD
  - InferenceHandler: stored inference runs and stateless previews
  - ReportHandler: joined view, summaries and CSV exports

	scenarioHandler := handlers.NewScenarioHandler(conn)
	reportHandler := handlers.NewReportHandler(conn, cfg)

# Scenarios

	POST   /scenarios       → Create (201, {"scenario_id": n})
	GET    /scenarios       → List
	GET    /scenarios/{id}  → Get (404 when absent)
	PATCH  /scenarios/{id}  → Update (204, only keys present in the body)
	DELETE /scenarios/{id}  → Delete (204, also removes the metrics row)

Updating a scenario does not refresh its metrics. Run inference again.

# Inference

	POST /scenarios/{id}/inference → Run (one metrics row per scenario)
	POST /inference/preview        → Preview (nothing is stored)

# Reporting

	GET  /view              → View (filters: scenario_id, country, start_date, end_date)
	GET  /view/summary      → Summary (metric plus the same filters)
	GET  /view/export.csv   → ExportCSV
	POST /exports           → Export to a file path or s3://bucket/key

# Errors

Not-found errors map to 404, validation errors to 400 and everything else
to 500. The error body is models.ErrorResponse.
*/
package handlers
