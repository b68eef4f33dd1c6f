package inference

import (
	"context"

	"github.com/Vividata-Research/Atlas-OCR/core"
)

// Request describes one inference call for a staged document.
type Request struct {
	// DocumentID is the identifier assigned at ingestion. Per-page
	// artifact filenames embed it.
	DocumentID string

	// FilePath is the staged input file handed to the backend.
	FilePath string

	// WorkDir is where per-page markdown artifacts are written.
	WorkDir string

	// Options is the fully resolved configuration for the call.
	Options Options
}

// Invoker performs the synchronous, blocking call to the recognition
// backend. Implementations must be thread-safe for concurrent use.
type Invoker interface {
	// Invoke runs recognition for the staged file and returns the ordered
	// per-page results, each optionally pointing at a written markdown
	// artifact. The call has no timeout of its own; cancellation is the
	// caller's context's business. Any failure wraps core.ErrInference.
	Invoke(ctx context.Context, req Request) ([]core.PageResult, error)
}
