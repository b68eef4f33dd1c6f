package inference

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vividata-Research/Atlas-OCR/core"
)

func stageFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.pdf")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestClientInvoke(t *testing.T) {
	input := []byte("%PDF-1.4 fake")

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/parse", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req parseRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, base64.StdEncoding.EncodeToString(input), req.FileData)
		assert.Equal(t, "prompt_layout_all_en", req.Prompt)
		assert.Equal(t, 120, req.DPI)

		json.NewEncoder(w).Encode(parseResponse{
			Pages: []parsePage{
				{Page: 1, Markdown: "first"},
				{Page: 2, Markdown: "second", MarkdownNoHF: "second stripped"},
			},
		})
	}))
	defer backend.Close()

	opts := DefaultOptions()
	opts.BackendURL = backend.URL

	workDir := filepath.Join(t.TempDir(), "work")
	client := NewClient()
	results, err := client.Invoke(context.Background(), Request{
		DocumentID: "doc1",
		FilePath:   stageFile(t, input),
		WorkDir:    workDir,
		Options:    opts,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 1, results[0].Page)
	assert.Equal(t, filepath.Join(workDir, "doc1_page_1.md"), results[0].MarkdownPath)

	content, err := os.ReadFile(results[1].MarkdownPath)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))

	nohf, err := os.ReadFile(filepath.Join(workDir, "doc1_page_2_nohf.md"))
	require.NoError(t, err)
	assert.Equal(t, "second stripped", string(nohf))
}

func TestClientInvokeBackendError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model exploded", http.StatusInternalServerError)
	}))
	defer backend.Close()

	opts := DefaultOptions()
	opts.BackendURL = backend.URL

	client := NewClient()
	_, err := client.Invoke(context.Background(), Request{
		DocumentID: "doc1",
		FilePath:   stageFile(t, []byte("x")),
		WorkDir:    t.TempDir(),
		Options:    opts,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInference)
	assert.ErrorIs(t, err, ErrBackendStatus)
	assert.Contains(t, err.Error(), "model exploded")
}

func TestClientInvokeUnreachableBackend(t *testing.T) {
	opts := DefaultOptions()
	opts.BackendURL = "http://127.0.0.1:1"

	client := NewClient()
	_, err := client.Invoke(context.Background(), Request{
		DocumentID: "doc1",
		FilePath:   stageFile(t, []byte("x")),
		WorkDir:    t.TempDir(),
		Options:    opts,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInference)
}

func TestClientInvokeMissingStagedFile(t *testing.T) {
	client := NewClient()
	_, err := client.Invoke(context.Background(), Request{
		DocumentID: "doc1",
		FilePath:   filepath.Join(t.TempDir(), "missing.pdf"),
		WorkDir:    t.TempDir(),
		Options:    DefaultOptions(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInference)
}
