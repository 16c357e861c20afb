// Package probe exercises a running trailfeed instance and verifies the
// response contract of the dataset endpoint under concurrent load.
package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Path     string        // Endpoint path, /fetch_data by default
	Requests int           // Requests per check
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	Verbose  bool          // Log every response
}

// Check is one request shape issued by the probe.
type Check struct {
	Name    string // label used in reports
	Query   string // raw query string, without '?'
	Invalid bool   // the request names an unknown dataset
}

// Outcome classifies a single response.
type Outcome int

// Response outcomes.
const (
	OutcomeOK      Outcome = iota // dataset served, or the expected invalid-type error
	OutcomeMissing                // dataset file not found on the server
	OutcomeFailed                 // contract violated or transport error
)

// Result is the verdict on one response.
type Result struct {
	Check   string
	Outcome Outcome
	Status  int
	Bytes   int
	Reason  string
	Latency time.Duration
}

// Stats holds run statistics.
type Stats struct {
	Sent      int
	OK        int
	Missing   int
	Failed    int
	Failures  []Result
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// DefaultChecks returns the request shapes covering every dataset, the
// default branch and an unknown type.
func DefaultChecks() []Check {
	return []Check{
		{Name: "races", Query: "type=races"},
		{Name: "runners", Query: "type=runners"},
		{Name: "default", Query: ""},
		{Name: "invalid", Query: "type=__probe_invalid__", Invalid: true},
	}
}
