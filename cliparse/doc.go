// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite file path or PostgreSQL connection string
    (default: public_health_inference.db)
  - DatabaseType: sqlite, postgres (lib/pq) or pgx (default: sqlite)
  - ExportDir: Directory used for exports given as a bare file name
    (default: data/exports)
  - LogLevel / LogFormat: slog settings (default: info / text)
  - Interactive: Run the terminal menu instead of the HTTP server
  - S3Region, S3Endpoint, S3PathStyle: Settings for s3:// export targets

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-export-dir   Export directory
	-log-level    Log level
	-log-format   Log format
	-i            Interactive menu
	-c            YAML config file

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	EXPORT_DIR    → -export-dir
	LOG_LEVEL     → -log-level
	LOG_FORMAT    → -log-format
	CONFIG_FILE   → -c
	S3_REGION, S3_ENDPOINT, S3_PATH_STYLE

A .env file in the working directory is loaded first. It never overrides
variables that are already set.

# Config File

Values not given by flag or environment are read from the YAML file:

	port: 3318
	database_url: data/health.db
	database_type: sqlite
	export_dir: data/exports
	log_level: info

CLI flags take precedence over environment variables, which take
precedence over the config file.
*/
package cliparse
