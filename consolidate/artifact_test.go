package consolidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageNumber(t *testing.T) {
	tests := []struct {
		filename string
		want     int
	}{
		{"sample_page_1.md", 1},
		{"sample_page_42.md", 42},
		{"sample_page_7_nohf.md", 7},
		{"sample.md", 0},
		{"notes.md", 0},
		{"sample_page_.md", 0},
		{"sample_page_3.txt", 0},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, PageNumber(tt.filename))
		})
	}
}

func TestSelectArtifacts(t *testing.T) {
	names := []string{
		"doc_page_3.md",
		"doc_page_2_nohf.md",
		"doc_page_1.md",
		"doc_page_2.md",
	}

	selected := selectArtifacts(names)

	assert.Len(t, selected, 3)
	assert.Equal(t, []artifact{
		{page: 1, name: "doc_page_1.md"},
		{page: 2, name: "doc_page_2.md"},
		{page: 3, name: "doc_page_3.md"},
	}, selected)
}

func TestSelectArtifactsVariantOnly(t *testing.T) {
	// With no plain rendition, the variant survives.
	selected := selectArtifacts([]string{"doc_page_5_nohf.md"})

	assert.Len(t, selected, 1)
	assert.Equal(t, artifact{page: 5, name: "doc_page_5_nohf.md"}, selected[0])
}

func TestSelectArtifactsIgnoresNonMarkdown(t *testing.T) {
	selected := selectArtifacts([]string{"doc_page_1.json", "doc_page_2.md"})

	assert.Len(t, selected, 1)
	assert.Equal(t, 2, selected[0].page)
}

func TestSelectArtifactsEmpty(t *testing.T) {
	assert.Empty(t, selectArtifacts(nil))
}
