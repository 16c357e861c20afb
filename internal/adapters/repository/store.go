// Package repository provides read access to the dataset files on disk.
package repository

import (
	"context"
	"time"
)

// FileInfo describes a dataset file at the time it was inspected.
type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Store provides read-only access to dataset files.
type Store interface {
	// Read returns the full contents of path.
	// Returns ErrNotFound if path does not exist or is a directory.
	Read(ctx context.Context, path string) ([]byte, error)

	// Stat describes path without reading it.
	Stat(ctx context.Context, path string) (FileInfo, error)
}
