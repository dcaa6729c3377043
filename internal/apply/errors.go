package apply

import "github.com/cockroachdb/errors"

// Per-item failure kinds. Each is caught at the item boundary, converted
// into an outcome with a human-readable detail, and never aborts the batch.
// Checked with errors.Is.
var (
	ErrGraphUnavailable = errors.New("node graph unavailable")
	ErrNodeOutOfRange   = errors.New("target node out of range")
	ErrLUTInvalid       = errors.New("lut file missing or unreadable")
	ErrHostRejected     = errors.New("rejected by host")
)
