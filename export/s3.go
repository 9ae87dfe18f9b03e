// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Scheme = "s3://"

// PutObjectAPI is the slice of the S3 client the exporter needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config selects the S3 endpoint. Credentials come from the default
// AWS chain (environment, shared config, instance role).
type S3Config struct {
	Region    string
	Endpoint  string // optional, e.g. a MinIO URL
	PathStyle bool
}

// NewS3Client builds an S3 client from cfg. An empty region defaults to
// us-east-1.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		// Checksums only where the operation requires one
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	}), nil
}

// parseS3 splits s3://bucket/key. ok is false for anything that is not an
// s3 URL.
func parseS3(dest string) (bucket, key string, ok bool, err error) {
	if !strings.HasPrefix(dest, s3Scheme) {
		return "", "", false, nil
	}

	rest := strings.TrimPrefix(dest, s3Scheme)
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", true, fmt.Errorf("invalid S3 destination %q: want s3://bucket/key", dest)
	}
	return bucket, key, true, nil
}
