package repository

import "io/fs"

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithFS reads through fsys instead of the operating system. Paths are then
// interpreted as fs.FS paths (slash separated, unrooted).
func WithFS(fsys fs.FS) Option {
	return func(s *FileStore) {
		if fsys != nil {
			s.fsys = fsys
		}
	}
}
