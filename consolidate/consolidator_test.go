package consolidate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vividata-Research/Atlas-OCR/core"
)

func writeArtifacts(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func TestConsolidateOrdersAndSelectsPages(t *testing.T) {
	root := t.TempDir()
	inputDir := filepath.Join(root, "sample")
	writeArtifacts(t, inputDir, map[string]string{
		"sample_page_1.md":      "first page",
		"sample_page_2.md":      "second page",
		"sample_page_2_nohf.md": "second page without header",
		"sample_page_3.md":      "third page",
	})

	c := New(filepath.Join(root, "staging"))
	result, err := c.Consolidate(inputDir, "")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Pages)
	assert.Equal(t, filepath.Join(root, "staging", "sample", "sample_consolidated.md"), result.DocumentPath)

	content, err := os.ReadFile(result.DocumentPath)
	require.NoError(t, err)

	want := "<!-- Page 1 -->\nfirst page" +
		"\n\n---\n\n" +
		"<!-- Page 2 -->\nsecond page" +
		"\n\n---\n\n" +
		"<!-- Page 3 -->\nthird page"
	assert.Equal(t, want, string(content))
	assert.NotContains(t, string(content), "without header")
}

func TestConsolidateGlobalImageNumbering(t *testing.T) {
	root := t.TempDir()
	inputDir := filepath.Join(root, "imgs")
	writeArtifacts(t, inputDir, map[string]string{
		"imgs_page_1.md": inlineImage("a", "png", []byte{1}) + "\n" + inlineImage("b", "png", []byte{2}),
		"imgs_page_2.md": "no images here",
		"imgs_page_3.md": inlineImage("c", "jpeg", []byte{3}) + inlineImage("d", "png", []byte{4}) + inlineImage("e", "png", []byte{5}),
	})

	c := New(filepath.Join(root, "staging"))
	result, err := c.Consolidate(inputDir, "out.md")
	require.NoError(t, err)

	assert.Equal(t, 5, result.Assets)

	entries, err := os.ReadDir(result.AssetsDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"image1.png", "image2.png", "image3.jpeg", "image4.png", "image5.png",
	}, names)

	content, err := os.ReadFile(result.DocumentPath)
	require.NoError(t, err)
	for _, ref := range []string{
		"![a](assets/image1.png)",
		"![b](assets/image2.png)",
		"![c](assets/image3.jpeg)",
		"![d](assets/image4.png)",
		"![e](assets/image5.png)",
	} {
		assert.Contains(t, string(content), ref)
	}
}

func TestConsolidateIdempotent(t *testing.T) {
	root := t.TempDir()
	inputDir := filepath.Join(root, "doc")
	writeArtifacts(t, inputDir, map[string]string{
		"doc_page_1.md": "page one " + inlineImage("x", "png", []byte{7, 8, 9}),
		"doc_page_2.md": "page two",
	})

	c := New(filepath.Join(root, "staging"))

	first, err := c.Consolidate(inputDir, "")
	require.NoError(t, err)
	firstContent, err := os.ReadFile(first.DocumentPath)
	require.NoError(t, err)

	second, err := c.Consolidate(inputDir, "")
	require.NoError(t, err)
	secondContent, err := os.ReadFile(second.DocumentPath)
	require.NoError(t, err)

	assert.Equal(t, firstContent, secondContent)
}

func TestConsolidateBadImageKeptInline(t *testing.T) {
	root := t.TempDir()
	inputDir := filepath.Join(root, "doc")
	writeArtifacts(t, inputDir, map[string]string{
		"doc_page_1.md": "![bad](data:image/png;base64,???invalid???) then " +
			inlineImage("good", "png", []byte{1}),
	})

	c := New(filepath.Join(root, "staging"))
	result, err := c.Consolidate(inputDir, "")
	require.NoError(t, err)

	// Only the good image consumes a sequence number.
	assert.Equal(t, 1, result.Assets)

	content, err := os.ReadFile(result.DocumentPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "data:image/png;base64,???invalid???")
	assert.Contains(t, string(content), "![good](assets/image1.png)")
}

func TestConsolidateMissingInputDir(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "staging"))

	_, err := c.Consolidate(filepath.Join(t.TempDir(), "nope"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrPostprocess)
	assert.ErrorIs(t, err, ErrInputDir)
}

func TestConsolidateNoArtifacts(t *testing.T) {
	root := t.TempDir()
	inputDir := filepath.Join(root, "empty")
	writeArtifacts(t, inputDir, map[string]string{"data.json": "{}"})

	c := New(filepath.Join(root, "staging"))
	_, err := c.Consolidate(inputDir, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrPostprocess)
	assert.ErrorIs(t, err, ErrNoArtifacts)
}

func TestConsolidateMissingPageNumberIsPageZero(t *testing.T) {
	root := t.TempDir()
	inputDir := filepath.Join(root, "doc")
	writeArtifacts(t, inputDir, map[string]string{
		"preface.md":    "front matter",
		"doc_page_1.md": "page one",
	})

	c := New(filepath.Join(root, "staging"))
	result, err := c.Consolidate(inputDir, "")
	require.NoError(t, err)
	require.Equal(t, 2, result.Pages)

	content, err := os.ReadFile(result.DocumentPath)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(content), "<!-- Page 0 -->\nfront matter"))
}
