package publish

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Vividata-Research/Atlas-OCR/core"
)

// Staged points at the consolidation output to publish.
type Staged struct {
	// DocumentPath is the staged consolidated markdown file.
	DocumentPath string
	// AssetsDir holds the extracted image files.
	AssetsDir string
	// StagingDir is the consolidation staging subdirectory, removed after
	// a successful publish.
	StagingDir string
}

// Result describes a completed publication.
type Result struct {
	// DocumentPath is the final document.md location.
	DocumentPath string
	// OutputDir is the final directory for the document id.
	OutputDir string
}

// Finalizer atomically publishes consolidated documents under the layout's
// final root.
type Finalizer struct {
	layout core.Layout
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Finalizer.
type Option func(*Finalizer)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Finalizer) {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
	}
}

// NewFinalizer creates a Finalizer publishing under the given layout.
func NewFinalizer(layout core.Layout, opts ...Option) *Finalizer {
	f := &Finalizer{
		layout: layout,
		logger: slog.Default(),
		locks:  make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// lockFor returns the mutex serializing publications for one document id.
func (f *Finalizer) lockFor(id string) *sync.Mutex {
	f.mu.Lock()
	defer f.mu.Unlock()
	lock, ok := f.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		f.locks[id] = lock
	}
	return lock
}

// Publish replaces the final content for the document id with the staged
// consolidation output and removes the staging subdirectory. Failures wrap
// core.ErrPostprocess.
func (f *Finalizer) Publish(id string, staged Staged) (*Result, error) {
	lock := f.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	finalRoot := f.layout.FinalRoot()
	if err := os.MkdirAll(finalRoot, 0755); err != nil {
		return nil, fmt.Errorf("%w: create final root: %w", core.ErrPostprocess, err)
	}

	// Populate a fresh tree next to the final one so the rename below is
	// a same-filesystem swap.
	tmpDir := filepath.Join(finalRoot, fmt.Sprintf(".tmp-%s-%d", id, time.Now().UnixNano()))
	if err := f.populate(tmpDir, staged); err != nil {
		os.RemoveAll(tmpDir)
		return nil, err
	}

	finalDir := f.layout.FinalDir(id)
	if err := os.RemoveAll(finalDir); err != nil {
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("%w: clear previous content: %w", core.ErrPostprocess, err)
	}
	if err := os.Rename(tmpDir, finalDir); err != nil {
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("%w: swap final directory: %w", core.ErrPostprocess, err)
	}

	if err := os.RemoveAll(staged.StagingDir); err != nil {
		f.logger.Warn("failed to remove staging dir", "dir", staged.StagingDir, "error", err)
	}

	result := &Result{
		DocumentPath: filepath.Join(finalDir, "document.md"),
		OutputDir:    finalDir,
	}
	f.logger.Info("published document", "document_id", id, "path", result.DocumentPath)
	return result, nil
}

func (f *Finalizer) populate(tmpDir string, staged Staged) error {
	assetsDir := filepath.Join(tmpDir, "assets")
	if err := os.MkdirAll(assetsDir, 0755); err != nil {
		return fmt.Errorf("%w: create publish dir: %w", core.ErrPostprocess, err)
	}

	if err := copyFile(staged.DocumentPath, filepath.Join(tmpDir, "document.md")); err != nil {
		return fmt.Errorf("%w: copy document: %w", core.ErrPostprocess, err)
	}

	entries, err := os.ReadDir(staged.AssetsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: read assets dir: %w", core.ErrPostprocess, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		src := filepath.Join(staged.AssetsDir, entry.Name())
		dst := filepath.Join(assetsDir, entry.Name())
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("%w: copy asset %s: %w", core.ErrPostprocess, entry.Name(), err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
