// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/agrostack/fieldsync/internal/config"
)

// s3Store implements Store on an S3-compatible backend (AWS S3 or MinIO).
// Single bucket; keys map to object keys directly under an optional prefix.
type s3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3 constructs an S3 blob store. Credentials come from the default AWS
// chain; cfg.Endpoint points the client at an S3-compatible service such as
// MinIO (path-style addressing is enabled in that case).
func NewS3(ctx context.Context, cfg config.Blob) (Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 blob driver requires a bucket")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Store{client: client, bucket: cfg.Bucket, prefix: cfg.KeyPrefix}, nil
}

func (s *s3Store) Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error) {
	objectKey := s.objectKey(key)

	// Create-only semantics, matching the fs and memory drivers.
	if _, err := s.head(ctx, objectKey); err == nil {
		return Info{}, fmt.Errorf("%w: %s", ErrAlreadyExists, key)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return Info{}, fmt.Errorf("put blob %s: %w", key, err)
	}

	return s.Stat(ctx, key)
}

func (s *s3Store) Get(ctx context.Context, key string) (Info, io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return Info{}, nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return Info{}, nil, fmt.Errorf("get blob %s: %w", key, err)
	}

	return infoFromObject(key, out.ContentLength, out.ContentType, out.LastModified), out.Body, nil
}

func (s *s3Store) Stat(ctx context.Context, key string) (Info, error) {
	out, err := s.head(ctx, s.objectKey(key))
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return Info{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return Info{}, fmt.Errorf("stat blob %s: %w", key, err)
	}

	return infoFromObject(key, out.ContentLength, out.ContentType, out.LastModified), nil
}

func (s *s3Store) Delete(ctx context.Context, key string) (bool, error) {
	objectKey := s.objectKey(key)

	if _, err := s.head(ctx, objectKey); err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("stat blob %s: %w", key, err)
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}); err != nil {
		return false, fmt.Errorf("delete blob %s: %w", key, err)
	}

	return true, nil
}

func (s *s3Store) Driver() Driver {
	return DriverS3
}

func (s *s3Store) head(ctx context.Context, objectKey string) (*s3.HeadObjectOutput, error) {
	return s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
}

func (s *s3Store) objectKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}

func infoFromObject(key string, length *int64, contentType *string, lastModified *time.Time) Info {
	info := Info{Key: key}
	if length != nil {
		info.SizeBytes = *length
	}
	if contentType != nil {
		info.ContentType = *contentType
	}
	if lastModified != nil {
		info.StoredAt = lastModified.UTC()
	}
	return info
}
