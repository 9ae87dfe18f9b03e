// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
	DatabasePGX      = "pgx"
)

const (
	DefaultPort        = 3318
	DefaultDatabaseURL = "public_health_inference.db"
	DefaultExportDir   = "data/exports"
)

type Config struct {
	Port         int    `yaml:"port"`
	DatabaseURL  string `yaml:"database_url"`
	DatabaseType string `yaml:"database_type"`
	ExportDir    string `yaml:"export_dir"`
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
	Interactive  bool   `yaml:"interactive"`

	S3Region    string `yaml:"s3_region"`
	S3Endpoint  string `yaml:"s3_endpoint"`
	S3PathStyle bool   `yaml:"s3_path_style"`

	ConfigFile string `yaml:"-"`
}

// ParseFlags builds the configuration. Precedence is flag, environment,
// .env file, YAML config file, then defaults.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("health-inference", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or SQLite file path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or pgx)")
	fs.StringVar(&cfg.ExportDir, "export-dir", "", "Default directory for CSV exports")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")
	fs.BoolVar(&cfg.Interactive, "i", false, "Run the interactive menu instead of the HTTP server")
	fs.StringVar(&cfg.ConfigFile, "c", "", "YAML config file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv("CONFIG_FILE")
	}
	var file Config
	if cfg.ConfigFile != "" {
		var err error
		file, err = loadFile(cfg.ConfigFile)
		if err != nil {
			return Config{}, err
		}
	}

	// Fall back to environment variables, then the config file
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else if file.Port != 0 {
			cfg.Port = file.Port
		} else {
			cfg.Port = DefaultPort
		}
	}

	cfg.DatabaseURL = firstNonEmpty(cfg.DatabaseURL, os.Getenv("DATABASE_URL"), file.DatabaseURL, DefaultDatabaseURL)
	cfg.DatabaseType = strings.ToLower(firstNonEmpty(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), file.DatabaseType, DatabaseSQLite))
	cfg.ExportDir = firstNonEmpty(cfg.ExportDir, os.Getenv("EXPORT_DIR"), file.ExportDir, DefaultExportDir)
	cfg.LogLevel = strings.ToLower(firstNonEmpty(cfg.LogLevel, os.Getenv("LOG_LEVEL"), file.LogLevel, "info"))
	cfg.LogFormat = strings.ToLower(firstNonEmpty(cfg.LogFormat, os.Getenv("LOG_FORMAT"), file.LogFormat, "text"))
	cfg.S3Region = firstNonEmpty(os.Getenv("S3_REGION"), file.S3Region)
	cfg.S3Endpoint = firstNonEmpty(os.Getenv("S3_ENDPOINT"), file.S3Endpoint)

	if !cfg.Interactive {
		cfg.Interactive = file.Interactive
	}
	if v := os.Getenv("S3_PATH_STYLE"); v != "" {
		cfg.S3PathStyle = strings.EqualFold(v, "true")
	} else {
		cfg.S3PathStyle = file.S3PathStyle
	}

	switch cfg.DatabaseType {
	case DatabaseSQLite, DatabasePostgres, DatabasePGX:
	default:
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}

	return cfg, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
