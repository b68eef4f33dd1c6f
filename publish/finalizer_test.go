package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vividata-Research/Atlas-OCR/core"
)

// stage lays out a fake consolidation result with the given assets.
func stage(t *testing.T, layout core.Layout, id, doc string, assets map[string][]byte) Staged {
	t.Helper()
	stagingDir := layout.StagingDir(id)
	assetsDir := filepath.Join(stagingDir, "assets")
	require.NoError(t, os.MkdirAll(assetsDir, 0755))

	docPath := filepath.Join(stagingDir, id+"_consolidated.md")
	require.NoError(t, os.WriteFile(docPath, []byte(doc), 0644))
	for name, data := range assets {
		require.NoError(t, os.WriteFile(filepath.Join(assetsDir, name), data, 0644))
	}
	return Staged{DocumentPath: docPath, AssetsDir: assetsDir, StagingDir: stagingDir}
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestPublish(t *testing.T) {
	layout := core.Layout{Root: t.TempDir()}
	f := NewFinalizer(layout)

	staged := stage(t, layout, "doc-1", "hello", map[string][]byte{
		"image1.png": {1, 2},
		"image2.png": {3},
	})

	result, err := f.Publish("doc-1", staged)
	require.NoError(t, err)

	assert.Equal(t, layout.FinalDir("doc-1"), result.OutputDir)

	content, err := os.ReadFile(result.DocumentPath)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	assert.ElementsMatch(t, []string{"image1.png", "image2.png"},
		listNames(t, filepath.Join(result.OutputDir, "assets")))

	// Staging subdirectory is gone after a successful publish.
	_, err = os.Stat(staged.StagingDir)
	assert.True(t, os.IsNotExist(err))

	// No temp directories survive under the final root.
	for _, name := range listNames(t, layout.FinalRoot()) {
		assert.Equal(t, "doc-1", name)
	}
}

func TestPublishOverwriteLeavesNoStaleAssets(t *testing.T) {
	layout := core.Layout{Root: t.TempDir()}
	f := NewFinalizer(layout)

	first := stage(t, layout, "doc-1", "v1", map[string][]byte{
		"image1.png": {1},
		"image2.png": {2},
		"image3.png": {3},
	})
	_, err := f.Publish("doc-1", first)
	require.NoError(t, err)

	second := stage(t, layout, "doc-1", "v2", map[string][]byte{
		"image1.png": {9},
	})
	result, err := f.Publish("doc-1", second)
	require.NoError(t, err)

	content, err := os.ReadFile(result.DocumentPath)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(content))

	assert.Equal(t, []string{"image1.png"},
		listNames(t, filepath.Join(result.OutputDir, "assets")))
}

func TestPublishNoAssets(t *testing.T) {
	layout := core.Layout{Root: t.TempDir()}
	f := NewFinalizer(layout)

	stagingDir := layout.StagingDir("doc-1")
	require.NoError(t, os.MkdirAll(stagingDir, 0755))
	docPath := filepath.Join(stagingDir, "doc-1_consolidated.md")
	require.NoError(t, os.WriteFile(docPath, []byte("bare"), 0644))

	result, err := f.Publish("doc-1", Staged{
		DocumentPath: docPath,
		AssetsDir:    filepath.Join(stagingDir, "assets"), // never created
		StagingDir:   stagingDir,
	})
	require.NoError(t, err)

	content, err := os.ReadFile(result.DocumentPath)
	require.NoError(t, err)
	assert.Equal(t, "bare", string(content))
}

func TestPublishMissingDocument(t *testing.T) {
	layout := core.Layout{Root: t.TempDir()}
	f := NewFinalizer(layout)

	_, err := f.Publish("doc-1", Staged{
		DocumentPath: filepath.Join(t.TempDir(), "missing.md"),
		AssetsDir:    t.TempDir(),
		StagingDir:   t.TempDir(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrPostprocess)
}

func TestPublishConcurrentSameID(t *testing.T) {
	layout := core.Layout{Root: t.TempDir()}
	f := NewFinalizer(layout)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		// Each run stages into its own directory, as concurrent requests do.
		staged := stage(t, layout, fmt.Sprintf("run-%d", i), "run", map[string][]byte{
			"image1.png": {byte(i)},
		})
		wg.Add(1)
		go func(s Staged) {
			defer wg.Done()
			_, err := f.Publish("doc-1", s)
			assert.NoError(t, err)
		}(staged)
	}
	wg.Wait()

	// Whatever run won, the final tree is complete and consistent.
	content, err := os.ReadFile(filepath.Join(layout.FinalDir("doc-1"), "document.md"))
	require.NoError(t, err)
	assert.Equal(t, "run", string(content))
	assert.Equal(t, []string{"image1.png"},
		listNames(t, filepath.Join(layout.FinalDir("doc-1"), "assets")))
}
