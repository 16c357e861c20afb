package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/okian/trailfeed/pkg/metrics"
)

const nanosecondsPerMillisecond = 1e6

// FileStore reads dataset files from the local file system. Contents are
// never cached; every Read observes the file as it is at call time.
type FileStore struct {
	fsys fs.FS // nil means the OS file system
}

// NewFileStore creates a FileStore.
func NewFileStore(opts ...Option) *FileStore {
	s := &FileStore{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read returns the full contents of path.
func (s *FileStore) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		metrics.RecordStoreReadError("canceled")
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}

	start := time.Now()
	defer func() {
		metrics.RecordStoreReadLatency(float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond)
	}()

	info, err := s.stat(path)
	if err != nil {
		return nil, s.classify(path, err)
	}
	if info.IsDir() {
		metrics.RecordStoreReadError("not_found")
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	data, err := s.readFile(path)
	if err != nil {
		return nil, s.classify(path, err)
	}
	return data, nil
}

// Stat describes path without reading it.
func (s *FileStore) Stat(ctx context.Context, path string) (FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return FileInfo{}, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	info, err := s.stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileInfo{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return FileInfo{}, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	if info.IsDir() {
		return FileInfo{}, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	return FileInfo{Path: path, Size: info.Size(), ModTime: info.ModTime()}, nil
}

func (s *FileStore) stat(path string) (fs.FileInfo, error) {
	if s.fsys != nil {
		return fs.Stat(s.fsys, path)
	}
	return os.Stat(path)
}

func (s *FileStore) readFile(path string) ([]byte, error) {
	if s.fsys != nil {
		return fs.ReadFile(s.fsys, path)
	}
	return os.ReadFile(path)
}

// classify maps a file system error onto the store's sentinel kinds.
func (s *FileStore) classify(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		metrics.RecordStoreReadError("not_found")
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	metrics.RecordStoreReadError("read_error")
	return fmt.Errorf("%w: %s: %w", ErrRead, path, err)
}
