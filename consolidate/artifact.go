package consolidate

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// variantMarker tags a "no header/footer" rendition of a page artifact.
const variantMarker = "_nohf"

var pageNumberPattern = regexp.MustCompile(`_page_(\d+)(?:` + variantMarker + `)?\.md$`)

// PageNumber extracts the embedded page number from an artifact filename
// such as "sample_page_5.md" or "sample_page_5_nohf.md". Filenames without
// an embedded number belong to page 0.
func PageNumber(filename string) int {
	m := pageNumberPattern.FindStringSubmatch(filename)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// artifact is one selected per-page markdown file.
type artifact struct {
	page int
	name string
}

// selectArtifacts groups markdown filenames by page number and keeps
// exactly one artifact per page: the one without the variant marker if
// both renditions exist, otherwise any member of the group. The result
// is sorted by ascending page number.
func selectArtifacts(names []string) []artifact {
	groups := make(map[int][]string)
	for _, name := range names {
		if !strings.HasSuffix(name, ".md") {
			continue
		}
		page := PageNumber(name)
		groups[page] = append(groups[page], name)
	}

	selected := make([]artifact, 0, len(groups))
	for page, members := range groups {
		pick := members[0]
		for _, name := range members {
			if !strings.Contains(name, variantMarker) {
				pick = name
				break
			}
		}
		selected = append(selected, artifact{page: page, name: pick})
	}

	slices.SortFunc(selected, func(a, b artifact) int {
		return a.page - b.page
	})
	return selected
}
