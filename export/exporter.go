// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/danielhkuo/health-inference/cliparse"
	"github.com/danielhkuo/health-inference/metrics"
	"github.com/danielhkuo/health-inference/models"
)

// DefaultFileName is used when no destination is given.
const DefaultFileName = "joined_view.csv"

const contentTypeCSV = "text/csv"

// Result describes a finished export.
type Result struct {
	Destination string `json:"destination"`
	Rows        int    `json:"rows"`
	Bytes       int64  `json:"bytes"`
}

// Exporter writes joined rows to a local file or an S3 object.
type Exporter struct {
	dir   string
	s3cfg S3Config

	mu     sync.Mutex
	client PutObjectAPI
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithS3Client sets the client used for s3:// destinations instead of
// building one from the configuration on first use.
func WithS3Client(c PutObjectAPI) Option {
	return func(e *Exporter) { e.client = c }
}

func NewExporter(cfg cliparse.Config, opts ...Option) *Exporter {
	e := &Exporter{
		dir: cfg.ExportDir,
		s3cfg: S3Config{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultDestination is the path used for an empty destination.
func (e *Exporter) DefaultDestination() string {
	return filepath.Join(e.dir, DefaultFileName)
}

// WithinDir resolves a local destination against the export directory and
// rejects absolute paths or paths that climb out of it. s3:// destinations
// and the empty destination pass through unchanged.
func (e *Exporter) WithinDir(dest string) (string, error) {
	if dest == "" || strings.HasPrefix(dest, s3Scheme) {
		return dest, nil
	}
	if filepath.IsAbs(dest) || filepath.VolumeName(dest) != "" {
		return "", &models.ValidationError{Field: "path", Reason: "must be relative to the export directory"}
	}

	resolved := filepath.Join(e.dir, dest)
	rel, err := filepath.Rel(filepath.Clean(e.dir), resolved)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &models.ValidationError{Field: "path", Reason: "must stay inside the export directory"}
	}
	return resolved, nil
}

// Export serializes rows as CSV and writes them to dest.
func (e *Exporter) Export(ctx context.Context, rows []models.JoinedRow, dest string) (Result, error) {
	if dest == "" {
		dest = e.DefaultDestination()
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return Result{}, err
	}

	bucket, key, isS3, err := parseS3(dest)
	if err != nil {
		return Result{}, &models.ValidationError{Field: "path", Reason: err.Error()}
	}

	kind := "file"
	if isS3 {
		kind = "s3"
		err = e.upload(ctx, bucket, key, buf.Bytes())
	} else {
		err = writeFile(dest, buf.Bytes())
	}
	if err != nil {
		return Result{}, err
	}

	metrics.ExportedRows.WithLabelValues(kind).Add(float64(len(rows)))
	slog.Info("export written",
		"destination", dest,
		"rows", len(rows),
		"bytes", buf.Len(),
	)

	return Result{Destination: dest, Rows: len(rows), Bytes: int64(buf.Len())}, nil
}

func (e *Exporter) upload(ctx context.Context, bucket, key string, body []byte) error {
	client, err := e.s3Client(ctx)
	if err != nil {
		return err
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentTypeCSV),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

func (e *Exporter) s3Client(ctx context.Context) (PutObjectAPI, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client != nil {
		return e.client, nil
	}
	client, err := NewS3Client(ctx, e.s3cfg)
	if err != nil {
		return nil, err
	}
	e.client = client
	return client, nil
}

// writeFile replaces path with data via a temp file in the same directory.
func writeFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	info, statErr := os.Stat(path)
	if statErr == nil && info.IsDir() {
		return &models.ValidationError{Field: "path", Reason: "is a directory"}
	}
	if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
		return fmt.Errorf("failed to stat export path: %w", statErr)
	}

	tmp, err := os.CreateTemp(dir, ".export-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close export: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set export permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move export into place: %w", err)
	}
	return nil
}
