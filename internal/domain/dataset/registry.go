package dataset

import "path/filepath"

// Default file names produced by the data cleaning pipeline.
const (
	DefaultRacesFile   = "cleaned_race.json"
	DefaultRunnersFile = "cleaned_runner.json"
)

// Registry is the fixed mapping from dataset kind to file path.
// It is immutable once built and safe for concurrent use.
type Registry struct {
	dir   string
	files map[Kind]string
	paths map[Kind]string
}

// NewRegistry builds a registry rooted at dir.
func NewRegistry(dir string, opts ...Option) *Registry {
	r := &Registry{
		dir: dir,
		files: map[Kind]string{
			Races:   DefaultRacesFile,
			Runners: DefaultRunnersFile,
		},
	}
	for _, opt := range opts {
		opt(r)
	}

	r.paths = make(map[Kind]string, len(r.files))
	for kind, name := range r.files {
		r.paths[kind] = filepath.Join(dir, name)
	}
	return r
}

// Dir returns the base data directory.
func (r *Registry) Dir() string { return r.dir }

// Path returns the file path registered for kind.
func (r *Registry) Path(kind Kind) (string, error) {
	p, ok := r.paths[kind]
	if !ok {
		return "", ErrInvalidType
	}
	return p, nil
}
