package pipeline

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/Vividata-Research/Atlas-OCR/consolidate"
	"github.com/Vividata-Research/Atlas-OCR/core"
	"github.com/Vividata-Research/Atlas-OCR/inference"
	"github.com/Vividata-Research/Atlas-OCR/intake"
	"github.com/Vividata-Research/Atlas-OCR/publish"
	"github.com/Vividata-Research/Atlas-OCR/storage"
)

// Submission is one document to process.
type Submission struct {
	// Payload is the raw submitted bytes.
	Payload []byte
	// Options is the fully resolved configuration for the request.
	Options inference.Options
}

// Result is the outcome of a successful submission.
type Result struct {
	// ID is the document identifier assigned at ingestion.
	ID string
	// Pages are the ordered per-page results from the backend.
	Pages []core.PageResult
	// DocumentPath is the published document.md.
	DocumentPath string
	// DocumentDir is the published directory for the id.
	DocumentDir string
}

// Pipeline runs submissions through staging, inference, consolidation and
// publication. Submissions execute on a shared worker pool; the stages of
// one submission run sequentially.
type Pipeline struct {
	layout       core.Layout
	stager       *intake.Stager
	invoker      inference.Invoker
	consolidator *consolidate.Consolidator
	finalizer    *publish.Finalizer
	documents    storage.DocumentRepository
	pool         *ants.Pool
	logger       *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent submissions.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// New creates a processing pipeline rooted at layout.Root.
func New(
	layout core.Layout,
	invoker inference.Invoker,
	documents storage.DocumentRepository,
	opts ...Option,
) (*Pipeline, error) {
	if invoker == nil {
		return nil, ErrInvokerRequired
	}
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}

	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		layout:    layout,
		invoker:   invoker,
		documents: documents,
		pool:      pool,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.pool.Release()
			return nil, err
		}
	}

	p.stager = intake.NewStager(layout, intake.WithLogger(p.logger))
	p.consolidator = consolidate.New(layout.StagingRoot(), consolidate.WithLogger(p.logger))
	p.finalizer = publish.NewFinalizer(layout, publish.WithLogger(p.logger))
	return p, nil
}

// Release shuts down the worker pool. In-flight submissions finish first.
func (p *Pipeline) Release() {
	p.pool.Release()
}

// Submit runs one submission on the worker pool and blocks until it
// completes.
func (p *Pipeline) Submit(ctx context.Context, sub Submission) (*Result, error) {
	type outcome struct {
		result *Result
		err    error
	}
	done := make(chan outcome, 1)

	if err := p.pool.Submit(func() {
		result, err := p.process(ctx, sub)
		done <- outcome{result: result, err: err}
	}); err != nil {
		return nil, err
	}

	out := <-done
	return out.result, out.err
}

// process is the sequential state machine for one submission. Cleanup is
// deferred as soon as input is staged, so it runs on every exit path.
func (p *Pipeline) process(ctx context.Context, sub Submission) (*Result, error) {
	staged, err := p.stager.Stage(sub.Payload)
	if err != nil {
		return nil, err
	}
	defer p.cleanup(staged)

	record := &core.DocumentRecord{
		ID:        staged.ID,
		Status:    core.StatusStaged,
		CreatedAt: time.Now().UTC(),
	}

	record.Status = core.StatusInvoked
	pages, err := p.invoker.Invoke(ctx, inference.Request{
		DocumentID: staged.ID,
		FilePath:   staged.Path,
		WorkDir:    p.layout.WorkDir(staged.ID),
		Options:    sub.Options,
	})
	if err != nil {
		record.Status = core.StatusInvokeFailed
		p.saveRecord(ctx, record)
		return nil, err
	}
	record.Status = core.StatusPagesReady
	record.Pages = len(pages)

	consolidated, err := p.consolidator.Consolidate(p.layout.WorkDir(staged.ID), "")
	if err != nil {
		p.saveRecord(ctx, record)
		return nil, err
	}
	record.Status = core.StatusConsolidated
	record.Assets = consolidated.Assets

	published, err := p.finalizer.Publish(staged.ID, publish.Staged{
		DocumentPath: consolidated.DocumentPath,
		AssetsDir:    consolidated.AssetsDir,
		StagingDir:   consolidated.OutputDir,
	})
	if err != nil {
		p.saveRecord(ctx, record)
		return nil, err
	}

	record.Status = core.StatusFinalized
	record.DocumentPath = published.DocumentPath
	record.PublishedAt = time.Now().UTC()
	p.saveRecord(ctx, record)

	return &Result{
		ID:           staged.ID,
		Pages:        pages,
		DocumentPath: published.DocumentPath,
		DocumentDir:  published.OutputDir,
	}, nil
}

// saveRecord writes the registry record for the submission. Registry
// failures are bookkeeping failures: they are logged, never surfaced in
// place of the primary response.
func (p *Pipeline) saveRecord(ctx context.Context, record *core.DocumentRecord) {
	if err := p.documents.Put(ctx, record); err != nil {
		p.logger.Warn("failed to save document record",
			"document_id", record.ID,
			"status", record.Status.String(),
			"error", err)
	}
}
