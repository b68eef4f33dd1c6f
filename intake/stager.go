package intake

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Vividata-Research/Atlas-OCR/core"
)

// StagedInput is a handle to a persisted submission.
type StagedInput struct {
	// ID is the document identifier assigned at ingestion.
	ID string
	// Path is where the raw bytes were written.
	Path string
	// Format is the detected input format.
	Format Format
}

// Stager persists raw submissions under the output root's uploads area.
type Stager struct {
	layout core.Layout
	logger *slog.Logger
}

// Option configures a Stager.
type Option func(*Stager)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Stager) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewStager creates a Stager writing under the given layout.
func NewStager(layout core.Layout, opts ...Option) *Stager {
	s := &Stager{
		layout: layout,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stage persists the payload and returns a handle carrying the new
// document identifier. An empty payload is a client fault.
func (s *Stager) Stage(payload []byte) (*StagedInput, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: %w", core.ErrClientInput, ErrEmptyPayload)
	}

	format := DetectFormat(payload)
	id := core.NewDocumentID()
	path := s.layout.StagedInputPath(id, format.Suffix())

	if err := os.MkdirAll(s.layout.UploadsDir(), 0755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return nil, fmt.Errorf("stage input: %w", err)
	}

	s.logger.Debug("staged input",
		"document_id", id,
		"format", string(format),
		"bytes", len(payload))

	return &StagedInput{
		ID:     id,
		Path:   path,
		Format: format,
	}, nil
}
