// Package minio stores uploaded resume files in an S3-compatible bucket.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/artem13815/hr/ingest/pkg/resume"
)

const DefaultMaxBytes int64 = 5 << 20

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	MaxBytes  int64
}

type Store struct {
	client   *minio.Client
	bucket   string
	region   string
	maxBytes int64
}

func New(opts Options) (*Store, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{client: client, bucket: opts.Bucket, region: opts.Region, maxBytes: maxBytes}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("make bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *Store) Save(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Fetch checks the object size before downloading it.
func (s *Store) Fetch(ctx context.Context, key string) ([]byte, error) {
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, classify(key, err)
	}
	if info.Size > s.maxBytes {
		return nil, resume.NewError(resume.KindOversize, strconv.FormatInt(info.Size, 10)+" bytes", nil)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, classify(key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, s.maxBytes+1))
	if err != nil {
		return nil, classify(key, err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, resume.NewError(resume.KindOversize, "", nil)
	}
	return data, nil
}

// Open streams an object for download.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if notFound(err) {
			return nil, 0, resume.ErrNotFound
		}
		return nil, 0, fmt.Errorf("stat %s: %w", key, err)
	}
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("get %s: %w", key, err)
	}
	return obj, info.Size, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil && !notFound(err) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Ping reports whether the bucket is reachable; used by readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}

func notFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" || resp.StatusCode == http.StatusNotFound
}

func classify(key string, err error) error {
	if notFound(err) {
		return resume.NewError(resume.KindFileNotFound, key, err)
	}
	return resume.NewError(resume.KindDownloadFailed, key, err)
}
