// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens database connections and creates the schema.

# Connections

Open selects a driver from the configured database type, pings the
database, and creates the schema:

	conn, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

Supported types:

  - sqlite: modernc.org/sqlite, the default embedded store
  - postgres: github.com/lib/pq
  - pgx: github.com/jackc/pgx/v5/stdlib

SQLite files are opened with foreign keys enabled and a busy timeout, and
missing parent directories are created. The pool is limited to a single
connection.

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes.

# Tables

  - scenarios: Recorded scenario inputs
  - inferred_metrics: Derived metrics, at most one row per scenario

# Relationships

	scenarios 1──0..1 inferred_metrics

inferred_metrics.scenario_id is UNIQUE and uses ON DELETE CASCADE.

# Placeholders

Queries are written with ? placeholders. Dialect.Rebind rewrites them to
$1, $2, ... for Postgres.
*/
package db
