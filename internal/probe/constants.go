package probe

import "time"

// Response contract of the dataset endpoint.
const (
	contentTypeJSON  = "application/json"
	allowOriginHdr   = "Access-Control-Allow-Origin"
	invalidTypeBody  = `{"error":"Invalid type"}`
	fileNotFoundBody = `{"error":"File not found"}`
	healthPath       = "/healthz"
)

// Defaults applied by Normalize.
const (
	DefaultPath     = "/fetch_data"
	DefaultRequests = 100
	DefaultTimeout  = 10 * time.Second

	workerChannelMultiplier = 2
	maxReportedFailures     = 10
	percentageMultiplier    = 100
)
