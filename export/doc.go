// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package export serializes the joined view as CSV.
//
// WriteCSV writes to any io.Writer. Exporter resolves a destination and
// writes the file there:
//
//   - a local path: parent directories are created and an existing file
//     is replaced atomically
//   - s3://bucket/key: the object is uploaded with PutObject
//
// An empty destination falls back to joined_view.csv in the configured
// export directory.
package export
