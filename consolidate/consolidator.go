package consolidate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Vividata-Research/Atlas-OCR/core"
)

const pageSeparator = "\n\n---\n\n"

// Result describes one consolidation run.
type Result struct {
	// DocumentPath is the staged consolidated markdown file.
	DocumentPath string
	// OutputDir is the staging subdirectory dedicated to this document.
	OutputDir string
	// AssetsDir holds the extracted image files.
	AssetsDir string
	// Pages is the number of selected page artifacts.
	Pages int
	// Assets is the number of successfully extracted images.
	Assets int
}

// Consolidator merges a directory of per-page markdown artifacts into one
// consolidated document under a staging root.
type Consolidator struct {
	stagingRoot string
	logger      *slog.Logger
}

// Option configures a Consolidator.
type Option func(*Consolidator)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Consolidator) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// New creates a Consolidator writing staged output under stagingRoot.
func New(stagingRoot string, opts ...Option) *Consolidator {
	c := &Consolidator{
		stagingRoot: stagingRoot,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Consolidate merges the markdown artifacts in inputDir into one document.
// The result is written to <stagingRoot>/<base>/<outputFilename>, where
// base is inputDir's base name; an empty outputFilename defaults to
// "<base>_consolidated.md". Extracted images go to the assets subdirectory
// next to the document.
func (c *Consolidator) Consolidate(inputDir, outputFilename string) (*Result, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %s", core.ErrPostprocess, ErrInputDir, inputDir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".md") {
			names = append(names, entry.Name())
		}
	}

	selected := selectArtifacts(names)
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: %w: %s", core.ErrPostprocess, ErrNoArtifacts, inputDir)
	}
	c.logger.Debug("consolidating artifacts", "input_dir", inputDir, "pages", len(selected))

	base := filepath.Base(inputDir)
	outputDir := filepath.Join(c.stagingRoot, base)
	assetsDir := filepath.Join(outputDir, "assets")
	if err := os.MkdirAll(assetsDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create staging dir: %w", core.ErrPostprocess, err)
	}

	sink := func(filename string, data []byte) error {
		return os.WriteFile(filepath.Join(assetsDir, filename), data, 0644)
	}

	var doc strings.Builder
	counter := 1
	written := 0
	for _, art := range selected {
		content, err := os.ReadFile(filepath.Join(inputDir, art.name))
		if err != nil {
			c.logger.Warn("failed to read page artifact", "artifact", art.name, "error", err)
			continue
		}

		rewritten, next := ExtractImages(string(content), counter, sink, c.logger)
		counter = next

		if written > 0 {
			doc.WriteString(pageSeparator)
		}
		fmt.Fprintf(&doc, "<!-- Page %d -->\n", art.page)
		doc.WriteString(rewritten)
		written++
	}

	if outputFilename == "" {
		outputFilename = base + "_consolidated.md"
	}
	documentPath := filepath.Join(outputDir, outputFilename)
	if err := os.WriteFile(documentPath, []byte(doc.String()), 0644); err != nil {
		return nil, fmt.Errorf("%w: write consolidated document: %w", core.ErrPostprocess, err)
	}

	c.logger.Info("consolidated document",
		"document", documentPath,
		"pages", len(selected),
		"assets", counter-1)

	return &Result{
		DocumentPath: documentPath,
		OutputDir:    outputDir,
		AssetsDir:    assetsDir,
		Pages:        len(selected),
		Assets:       counter - 1,
	}, nil
}
