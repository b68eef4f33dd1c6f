package consolidate

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// inlineImagePattern matches markdown image references embedding a base64
// payload, e.g. ![caption](data:image/png;base64,iVBOR...).
var inlineImagePattern = regexp.MustCompile(`(?s)!\[([^\]]*)\]\(data:image/([^;)]+);base64,([^)]+)\)`)

// AssetSink stores one decoded image under the given filename. A non-nil
// error leaves the original inline reference in place.
type AssetSink func(filename string, data []byte) error

// ExtractImages scans markdown content for inline base64 image references
// and hands each successfully decoded payload to sink as image<N>.<format>.
// N starts at counter and increments only when decode and store both
// succeed; failed matches keep their original text. It returns the
// rewritten content and the next counter value, so the numbering runs
// globally across a whole document.
func ExtractImages(content string, counter int, sink AssetSink, logger *slog.Logger) (string, int) {
	if logger == nil {
		logger = slog.Default()
	}

	rewritten := inlineImagePattern.ReplaceAllStringFunc(content, func(match string) string {
		sub := inlineImagePattern.FindStringSubmatch(match)
		alt, format, payload := sub[1], sub[2], sub[3]

		data, err := base64.StdEncoding.DecodeString(stripWhitespace(payload))
		if err != nil {
			logger.Warn("failed to decode inline image", "image", counter, "error", err)
			return match
		}

		filename := fmt.Sprintf("image%d.%s", counter, format)
		if err := sink(filename, data); err != nil {
			logger.Warn("failed to save extracted image", "filename", filename, "error", err)
			return match
		}

		counter++
		return fmt.Sprintf("![%s](assets/%s)", alt, filename)
	})

	return rewritten, counter
}

// stripWhitespace removes line breaks and spaces that markdown renderers
// may fold into a long data URI.
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
