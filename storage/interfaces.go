package storage

import (
	"context"

	"github.com/Vividata-Research/Atlas-OCR/core"
)

// DocumentRepository persists registry records for processed documents.
// Implementations must be thread-safe and support concurrent access.
type DocumentRepository interface {
	// Put stores or replaces the record for record.ID.
	// The record is validated before writing.
	Put(ctx context.Context, record *core.DocumentRecord) error

	// Get retrieves the record for a document id.
	// Returns ErrNotFound if no record exists for the id.
	Get(ctx context.Context, id string) (*core.DocumentRecord, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
