package pipeline

import "errors"

var (
	// ErrInvokerRequired is returned when an inference invoker is not provided.
	ErrInvokerRequired = errors.New("inference invoker required")

	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")
)
