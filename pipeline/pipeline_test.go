package pipeline

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vividata-Research/Atlas-OCR/core"
	"github.com/Vividata-Research/Atlas-OCR/inference"
	"github.com/Vividata-Research/Atlas-OCR/inference/mock"
	"github.com/Vividata-Research/Atlas-OCR/storage"
	storagebadger "github.com/Vividata-Research/Atlas-OCR/storage/badger"
)

func newTestPipeline(t *testing.T, invoker inference.Invoker) (*Pipeline, core.Layout, storage.DocumentRepository) {
	t.Helper()

	repo, backend, err := storagebadger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	layout := core.Layout{Root: t.TempDir()}
	p, err := New(layout, invoker, repo, WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(p.Release)

	return p, layout, repo
}

func inlineImage(alt string, data []byte) string {
	return fmt.Sprintf("![%s](data:image/png;base64,%s)",
		alt, base64.StdEncoding.EncodeToString(data))
}

func TestSubmitEndToEnd(t *testing.T) {
	invoker := mock.NewInvoker()
	invoker.Pages = map[int]string{
		1: "first page " + inlineImage("a", []byte{1}),
		2: "second page " + inlineImage("b", []byte{2}),
	}
	p, layout, repo := newTestPipeline(t, invoker)

	result, err := p.Submit(context.Background(), Submission{
		Payload: []byte("%PDF-1.4 body"),
		Options: inference.DefaultOptions(),
	})
	require.NoError(t, err)

	assert.Len(t, result.Pages, 2)
	assert.Equal(t, layout.FinalDir(result.ID), result.DocumentDir)

	content, err := os.ReadFile(result.DocumentPath)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(string(content), "\n\n---\n\n"),
		"exactly one rule between the two pages")
	assert.Contains(t, string(content), "<!-- Page 1 -->")
	assert.Contains(t, string(content), "<!-- Page 2 -->")
	assert.Contains(t, string(content), "![a](assets/image1.png)")
	assert.Contains(t, string(content), "![b](assets/image2.png)")

	// Intermediate state is gone.
	assert.NoDirExists(t, layout.WorkDir(result.ID))
	assert.NoDirExists(t, layout.StagingDir(result.ID))
	entries, err := os.ReadDir(layout.UploadsDir())
	require.NoError(t, err)
	assert.Empty(t, entries, "staged input must be deleted")

	// Registry records the publication.
	record, err := repo.Get(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusFinalized, record.Status)
	assert.Equal(t, 2, record.Pages)
	assert.Equal(t, 2, record.Assets)
	assert.Equal(t, result.DocumentPath, record.DocumentPath)
	assert.False(t, record.PublishedAt.IsZero())
}

func TestSubmitEmptyPayload(t *testing.T) {
	p, _, _ := newTestPipeline(t, mock.NewInvoker())

	_, err := p.Submit(context.Background(), Submission{
		Options: inference.DefaultOptions(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrClientInput)
}

func TestSubmitInferenceFailureStillCleansUp(t *testing.T) {
	invoker := mock.NewInvoker()
	invoker.Err = errors.New("backend exploded")
	p, layout, _ := newTestPipeline(t, invoker)

	_, err := p.Submit(context.Background(), Submission{
		Payload: []byte("%PDF-1.4 body"),
		Options: inference.DefaultOptions(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInference)

	// The staged input no longer exists.
	entries, readErr := os.ReadDir(layout.UploadsDir())
	require.NoError(t, readErr)
	assert.Empty(t, entries)

	// No temp-prefixed working directories remain under the output root.
	filepath.WalkDir(layout.Root, func(path string, d os.DirEntry, err error) error {
		require.NoError(t, err)
		if d.IsDir() {
			assert.False(t, strings.HasPrefix(d.Name(), "tmp"),
				"stray temp dir survived: %s", path)
		}
		return nil
	})
}

func TestSubmitInferenceFailureRecordsStatus(t *testing.T) {
	var failedID string
	invoker := mock.NewInvoker()
	invoker.InvokeFunc = func(ctx context.Context, req inference.Request) ([]core.PageResult, error) {
		failedID = req.DocumentID
		return nil, fmt.Errorf("%w: boom", core.ErrInference)
	}
	p, _, repo := newTestPipeline(t, invoker)

	_, err := p.Submit(context.Background(), Submission{
		Payload: []byte("%PDF-1.4 body"),
		Options: inference.DefaultOptions(),
	})
	require.Error(t, err)

	record, err := repo.Get(context.Background(), failedID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusInvokeFailed, record.Status)
}

func TestSubmitNoPagesIsPostprocessFailure(t *testing.T) {
	// The backend succeeded but wrote nothing; consolidation has no
	// artifacts to merge.
	invoker := mock.NewInvoker()
	p, _, _ := newTestPipeline(t, invoker)

	_, err := p.Submit(context.Background(), Submission{
		Payload: []byte("%PDF-1.4 body"),
		Options: inference.DefaultOptions(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrPostprocess)
}

func TestSubmitRepublishSameContentDistinctIDs(t *testing.T) {
	invoker := mock.NewInvoker()
	invoker.Pages = map[int]string{1: "only page"}
	p, _, _ := newTestPipeline(t, invoker)

	first, err := p.Submit(context.Background(), Submission{
		Payload: []byte("%PDF-1.4 body"),
		Options: inference.DefaultOptions(),
	})
	require.NoError(t, err)

	second, err := p.Submit(context.Background(), Submission{
		Payload: []byte("%PDF-1.4 body"),
		Options: inference.DefaultOptions(),
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.FileExists(t, first.DocumentPath)
	assert.FileExists(t, second.DocumentPath)
}

func TestNewRequiresCollaborators(t *testing.T) {
	repo, backend, err := storagebadger.NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	layout := core.Layout{Root: t.TempDir()}

	_, err = New(layout, nil, repo)
	assert.ErrorIs(t, err, ErrInvokerRequired)

	_, err = New(layout, mock.NewInvoker(), nil)
	assert.ErrorIs(t, err, ErrDocumentRepositoryRequired)
}
