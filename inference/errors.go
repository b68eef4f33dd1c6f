package inference

import "errors"

var (
	// ErrBackendStatus is returned when the backend answers with a
	// non-success HTTP status.
	ErrBackendStatus = errors.New("unexpected backend status")

	// ErrNotReady is returned when the liveness probe fails.
	ErrNotReady = errors.New("backend not ready")
)
