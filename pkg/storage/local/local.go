// Package local stores uploaded resume files on the local filesystem.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/artem13815/hr/ingest/pkg/resume"
)

// DefaultMaxBytes is the largest file Fetch will hand to the parser.
const DefaultMaxBytes int64 = 5 << 20

// Store keeps one flat directory of files named by storage key.
type Store struct {
	dir      string
	maxBytes int64
}

func New(dir string, maxBytes int64) (*Store, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("prepare upload dir %s: %w", dir, err)
	}
	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

func (s *Store) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}

func (s *Store) Save(_ context.Context, key string, data []byte, _ string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Fetch reads the whole file. A missing file is FileNotFound, a file over the
// limit is Oversize and any other failure is DownloadFailed.
func (s *Store) Fetch(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, resume.NewError(resume.KindDownloadFailed, err.Error(), err)
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, resume.NewError(resume.KindFileNotFound, key, err)
	}
	if err != nil {
		return nil, resume.NewError(resume.KindDownloadFailed, key, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, resume.NewError(resume.KindDownloadFailed, key, err)
	}
	if st.Size() > s.maxBytes {
		return nil, resume.NewError(resume.KindOversize, strconv.FormatInt(st.Size(), 10)+" bytes", nil)
	}

	// the file may grow between Stat and Read
	data, err := io.ReadAll(io.LimitReader(f, s.maxBytes+1))
	if err != nil {
		return nil, resume.NewError(resume.KindDownloadFailed, key, err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, resume.NewError(resume.KindOversize, "", nil)
	}
	return data, nil
}

// Open streams a file for download.
func (s *Store) Open(_ context.Context, key string) (io.ReadCloser, int64, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, resume.ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", key, err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("stat %s: %w", key, err)
	}
	return f, st.Size(), nil
}

// Delete is idempotent.
func (s *Store) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
