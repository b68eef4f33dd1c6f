package intake

import "errors"

var (
	// ErrEmptyPayload is returned when a submission carries no bytes.
	ErrEmptyPayload = errors.New("empty request body")
)
