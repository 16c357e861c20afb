package dataset

// Option applies a configuration option to the Registry.
type Option func(*Registry)

// WithFile overrides the file name used for kind. Empty names and unknown
// kinds are ignored.
func WithFile(kind Kind, name string) Option {
	return func(r *Registry) {
		if kind.Valid() && name != "" {
			r.files[kind] = name
		}
	}
}
