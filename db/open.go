// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "github.com/lib/pq"              // registers "postgres"
	_ "modernc.org/sqlite"             // registers "sqlite"

	"github.com/danielhkuo/health-inference/cliparse"
)

// Dialect selects SQL placeholder style and schema flavor.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// Rebind rewrites ? placeholders into $N for Postgres. Queries must not
// contain literal question marks.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Conn is an open database handle plus its dialect.
type Conn struct {
	DB      *sql.DB
	Dialect Dialect
}

// Close closes the underlying handle.
func (c *Conn) Close() error {
	return c.DB.Close()
}

// Open connects to the configured database, verifies the connection and
// creates the schema.
func Open(ctx context.Context, cfg cliparse.Config) (*Conn, error) {
	var (
		driver  string
		dsn     = cfg.DatabaseURL
		dialect Dialect
	)

	switch cfg.DatabaseType {
	case cliparse.DatabaseSQLite, "":
		driver, dialect = "sqlite", SQLite
		if err := ensureDir(dsn); err != nil {
			return nil, err
		}
		dsn = SQLiteDSN(dsn)
	case cliparse.DatabasePostgres:
		driver, dialect = "postgres", Postgres
	case cliparse.DatabasePGX:
		driver, dialect = "pgx", Postgres
	default:
		return nil, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if dialect == SQLite {
		// One connection serializes writes and keeps per-connection pragmas
		// and :memory: databases consistent.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := CreateSchema(conn, dialect); err != nil {
		conn.Close()
		return nil, err
	}

	return &Conn{DB: conn, Dialect: dialect}, nil
}

// SQLiteDSN appends the pragmas every connection needs: foreign keys for
// the metrics cascade and a busy timeout.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func ensureDir(path string) error {
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create database dir: %w", err)
	}
	return nil
}
