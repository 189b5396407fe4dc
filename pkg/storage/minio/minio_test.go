package minio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/hr/ingest/pkg/resume"
)

// fakeS3 answers just enough of the S3 API for Stat/Get on a fixed set of objects.
func fakeS3(t *testing.T, objects map[string]int64, body string) *Store {
	t.Helper()
	modified := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Format(http.TimeFormat)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(r.URL.Path, "/resumes/")
		size, ok := objects[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Last-Modified", modified)
		w.Header().Set("ETag", `"0123456789abcdef"`)
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(body[:size]))
		}
	}))
	t.Cleanup(srv.Close)

	s, err := New(Options{
		Endpoint:  strings.TrimPrefix(srv.URL, "http://"),
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "resumes",
		Region:    "us-east-1",
		MaxBytes:  8,
	})
	require.NoError(t, err)
	return s
}

func TestFetch(t *testing.T) {
	s := fakeS3(t, map[string]int64{"ok.pdf": 5, "big.pdf": 9}, "hello world")
	ctx := context.Background()

	data, err := s.Fetch(ctx, "ok.pdf")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = s.Fetch(ctx, "big.pdf")
	assert.ErrorIs(t, err, resume.ErrOversize)

	_, err = s.Fetch(ctx, "missing.pdf")
	assert.ErrorIs(t, err, resume.ErrFileNotFound)
}

func TestOpen_NotFound(t *testing.T) {
	s := fakeS3(t, map[string]int64{}, "")

	_, _, err := s.Open(context.Background(), "missing.pdf")

	assert.ErrorIs(t, err, resume.ErrNotFound)
}
