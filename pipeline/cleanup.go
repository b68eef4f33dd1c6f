package pipeline

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Vividata-Research/Atlas-OCR/core"
	"github.com/Vividata-Research/Atlas-OCR/intake"
)

// pageDataPattern matches leftover structured per-page data files the
// backend writes next to its markdown artifacts.
var pageDataPattern = regexp.MustCompile(`_page_\d+\.json$`)

// cleanup removes every intermediate artifact of one request: the staged
// input file, the working directory, an empty consolidation staging
// directory, and any stray temp artifacts under the output root. It runs
// on success and failure alike and swallows every error; cleanup must
// never replace or mask the primary response.
func (p *Pipeline) cleanup(staged *intake.StagedInput) {
	if err := os.Remove(staged.Path); err != nil && !os.IsNotExist(err) {
		p.logger.Warn("failed to remove staged input", "path", staged.Path, "error", err)
	}

	workDir := p.layout.WorkDir(staged.ID)
	if err := os.RemoveAll(workDir); err != nil {
		p.logger.Warn("failed to remove work dir", "dir", workDir, "error", err)
	}

	// The finalizer removes the staging dir on success; after an earlier
	// failure an empty one may remain. os.Remove refuses non-empty
	// directories, which is what we want here.
	if err := os.Remove(p.layout.StagingDir(staged.ID)); err != nil && !os.IsNotExist(err) {
		p.logger.Debug("staging dir not removed", "document_id", staged.ID, "error", err)
	}

	sweepStrays(p.layout.Root, p.logger)

	p.logger.Debug("request cleaned",
		"document_id", staged.ID,
		"state", core.StatusCleaned.String())
}

// sweepStrays removes leftover per-page data files and temp-named working
// directories anywhere under root. The backend and its libraries create
// tmp-prefixed scratch directories that survive a crashed call.
func sweepStrays(root string, logger *slog.Logger) {
	var strayFiles []string
	var strayDirs []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if strings.HasPrefix(name, "tmp") {
				strayDirs = append(strayDirs, path)
				return filepath.SkipDir
			}
			return nil
		}
		if pageDataPattern.MatchString(name) {
			strayFiles = append(strayFiles, path)
		}
		return nil
	})
	if err != nil {
		logger.Warn("stray sweep aborted", "root", root, "error", err)
		return
	}

	for _, path := range strayFiles {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to remove stray file", "path", path, "error", err)
		}
	}
	for _, path := range strayDirs {
		if err := os.RemoveAll(path); err != nil {
			logger.Warn("failed to remove stray dir", "path", path, "error", err)
		}
	}
}
