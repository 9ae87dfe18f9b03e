// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv blanks every variable ParseFlags reads
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "DATABASE_TYPE", "EXPORT_DIR", "LOG_LEVEL",
		"LOG_FORMAT", "CONFIG_FILE", "S3_REGION", "S3_ENDPOINT", "S3_PATH_STYLE",
	} {
		t.Setenv(key, "")
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("expected port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.DatabaseURL != DefaultDatabaseURL {
		t.Errorf("expected database %q, got %q", DefaultDatabaseURL, cfg.DatabaseURL)
	}
	if cfg.DatabaseType != DatabaseSQLite {
		t.Errorf("expected sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.ExportDir != DefaultExportDir {
		t.Errorf("expected export dir %q, got %q", DefaultExportDir, cfg.ExportDir)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("unexpected log settings %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Interactive {
		t.Error("interactive should default to false")
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "Postgres")
	t.Setenv("S3_PATH_STYLE", "true")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://test" {
		t.Errorf("expected env database url, got %q", cfg.DatabaseURL)
	}
	if cfg.DatabaseType != DatabasePostgres {
		t.Errorf("expected postgres, got %q", cfg.DatabaseType)
	}
	if !cfg.S3PathStyle {
		t.Error("expected S3 path style from env")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "env.db")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "cli.db", "-i", "-log-level", "debug"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "cli.db" {
		t.Errorf("CLI should override env: expected cli.db, got %q", cfg.DatabaseURL)
	}
	if !cfg.Interactive {
		t.Error("expected interactive mode")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug, got %q", cfg.LogLevel)
	}
}

func TestParseFlags_ConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
port: 4000
database_url: file.db
export_dir: out/csv
log_format: json
s3_region: eu-west-1
s3_path_style: true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DATABASE_URL", "env.db")

	cfg, err := ParseFlags([]string{"-c", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 4000 {
		t.Errorf("expected port from file, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "env.db" {
		t.Errorf("env should override file: got %q", cfg.DatabaseURL)
	}
	if cfg.ExportDir != "out/csv" {
		t.Errorf("expected export dir from file, got %q", cfg.ExportDir)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("expected json format, got %q", cfg.LogFormat)
	}
	if cfg.S3Region != "eu-west-1" || !cfg.S3PathStyle {
		t.Errorf("expected S3 settings from file, got %q/%v", cfg.S3Region, cfg.S3PathStyle)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"invalid port", map[string]string{"PORT": "abc"}, nil},
		{"unknown database type", nil, []string{"-t", "mysql"}},
		{"unknown log level", nil, []string{"-log-level", "verbose"}},
		{"unknown log format", map[string]string{"LOG_FORMAT": "xml"}, nil},
		{"missing config file", nil, []string{"-c", filepath.Join(os.TempDir(), "does-not-exist.yaml")}},
		{"unknown flag", nil, []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}
