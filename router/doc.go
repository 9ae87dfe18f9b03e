// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the scenario inference API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(conn, cfg)

Options are passed through to the exporter, e.g. export.WithS3Client.

# Endpoints

Operational:

	GET /health  - OK when the database answers a ping
	GET /metrics - Prometheus exposition

Scenarios:

	POST   /scenarios      - Create scenario
	GET    /scenarios      - List scenarios
	GET    /scenarios/{id} - Get scenario
	PATCH  /scenarios/{id} - Partial update
	DELETE /scenarios/{id} - Delete scenario and its metrics

Inference:

	POST /scenarios/{id}/inference - Run and store
	POST /inference/preview        - Run on a raw snapshot, store nothing

Reporting:

	GET  /view            - Joined scenario and metrics rows
	GET  /view/summary    - count/mean/min/max of one metric
	GET  /view/export.csv - Joined rows as CSV
	POST /exports         - Write CSV to a path or S3 object

All API routes are wrapped with middleware.WithLogging.
*/
package router
