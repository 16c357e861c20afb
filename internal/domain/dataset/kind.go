// Package dataset defines the closed set of served datasets and the registry
// that maps each of them to a file on disk.
package dataset

// Kind identifies one of the served datasets.
type Kind int

// Known dataset kinds. The zero value is deliberately not a valid kind.
const (
	Races Kind = iota + 1
	Runners
)

// Default is served when a request does not name a dataset.
const Default = Runners

// Wire keys accepted in the type query parameter.
const (
	racesKey   = "races"
	runnersKey = "runners"
)

// Kinds returns every known kind in a stable order.
func Kinds() []Kind {
	return []Kind{Races, Runners}
}

// Parse maps a wire key to its Kind. Matching is exact and case-sensitive;
// anything else yields ErrInvalidType.
func Parse(s string) (Kind, error) {
	switch s {
	case racesKey:
		return Races, nil
	case runnersKey:
		return Runners, nil
	default:
		return 0, ErrInvalidType
	}
}

// String returns the wire key of k.
func (k Kind) String() string {
	switch k {
	case Races:
		return racesKey
	case Runners:
		return runnersKey
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == Races || k == Runners
}
