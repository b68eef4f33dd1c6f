package core

import "path/filepath"

// Layout derives every path used under the shared output root. All
// intermediate paths are scoped by document id so concurrently running
// submissions never collide; only the final tree survives a request.
type Layout struct {
	Root string
}

// UploadsDir holds staged input files, one per in-flight submission.
func (l Layout) UploadsDir() string {
	return filepath.Join(l.Root, "uploads")
}

// StagedInputPath is where the raw payload for a document is persisted.
func (l Layout) StagedInputPath(id, suffix string) string {
	return filepath.Join(l.UploadsDir(), id+suffix)
}

// WorkDir holds the per-page artifacts the backend writes for a document.
func (l Layout) WorkDir(id string) string {
	return filepath.Join(l.Root, "work", id)
}

// StagingRoot holds per-document consolidation output prior to publication.
func (l Layout) StagingRoot() string {
	return filepath.Join(l.Root, "staging")
}

// StagingDir is the consolidation staging subdirectory for one document.
func (l Layout) StagingDir(id string) string {
	return filepath.Join(l.StagingRoot(), id)
}

// FinalRoot holds the stable published tree, keyed by document id.
func (l Layout) FinalRoot() string {
	return filepath.Join(l.Root, "final")
}

// FinalDir is the published location for one document id. It contains
// document.md and an assets/ subdirectory.
func (l Layout) FinalDir(id string) string {
	return filepath.Join(l.FinalRoot(), id)
}
