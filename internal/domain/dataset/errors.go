package dataset

import "errors"

// Sentinel kinds for dataset resolution failures.
var (
	ErrInvalidType  = errors.New("invalid type")
	ErrFileNotFound = errors.New("file not found")
	ErrRead         = errors.New("read failed")
)

// Client-facing messages carried in the {"error": ...} payload.
const (
	MsgInvalidType  = "Invalid type"
	MsgFileNotFound = "File not found"
	MsgRead         = "Read failed"
)

// ErrorMessage returns the client-facing message for err.
// Errors outside the known kinds are reported as read failures.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidType):
		return MsgInvalidType
	case errors.Is(err, ErrFileNotFound):
		return MsgFileNotFound
	default:
		return MsgRead
	}
}
