package core

import (
	"time"

	"github.com/google/uuid"
)

// NewDocumentID generates a unique document identifier.
// The identifier is assigned at ingestion and used consistently through
// staging, consolidation and finalization, so two concurrent submissions
// can never collide on a working directory.
func NewDocumentID() string {
	return uuid.NewString()
}

// Status tracks a submission through the processing pipeline.
type Status int

const (
	// StatusStaged means the raw payload has been persisted to ephemeral storage.
	StatusStaged Status = iota + 1
	// StatusInvoked means the inference backend call is in flight.
	StatusInvoked
	// StatusPagesReady means the backend returned per-page results.
	StatusPagesReady
	// StatusInvokeFailed means the backend call raised an error.
	StatusInvokeFailed
	// StatusConsolidated means page artifacts were merged into one document.
	StatusConsolidated
	// StatusFinalized means the document was published to its final location.
	StatusFinalized
	// StatusCleaned is the terminal state, reached on every path.
	StatusCleaned
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusStaged:
		return "staged"
	case StatusInvoked:
		return "invoked"
	case StatusPagesReady:
		return "pages_ready"
	case StatusInvokeFailed:
		return "invoke_failed"
	case StatusConsolidated:
		return "consolidated"
	case StatusFinalized:
		return "finalized"
	case StatusCleaned:
		return "cleaned"
	default:
		return "unknown"
	}
}

// PageResult is one entry per page returned by the inference backend.
// MarkdownPath points at the written per-page markdown artifact, if any.
type PageResult struct {
	Page         int    `json:"page"`
	MarkdownPath string `json:"markdown_path,omitempty"`
}

// DocumentRecord is the registry entry kept for one document identifier.
// It records the outcome of the most recent submission published (or
// attempted) under that id.
type DocumentRecord struct {
	ID           string
	Status       Status
	Pages        int
	Assets       int
	DocumentPath string
	CreatedAt    time.Time
	PublishedAt  time.Time
}
