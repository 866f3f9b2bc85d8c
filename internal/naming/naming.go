package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"wavextract/internal/media/ffprobe"
)

// Sanitize strips characters that are illegal in filenames, replacing each
// with "_", collapses whitespace runs to a single space, and trims the
// result. Whitespace-only input sanitizes to "".
func Sanitize(value string) string {
	var builder strings.Builder
	prevSpace := false
	for _, r := range value {
		switch {
		case r < 0x20 || strings.ContainsRune(`/\:*?"<>|`, r):
			builder.WriteRune('_')
			prevSpace = false
		case unicode.IsSpace(r):
			if !prevSpace {
				builder.WriteRune(' ')
			}
			prevSpace = true
		default:
			builder.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(builder.String())
}

// BuildOutputPath maps a source basename, absolute stream index, and stream
// tags to the output path inside outputDir:
//
//	{base}__idx{N}[__{language}[_{title}]]{ext}
//
// Language and title (handler_name when no title is tagged) are sanitized;
// empty components are omitted along with their separators.
func BuildOutputPath(sourceBase string, streamIndex int, tags ffprobe.Tags, outputDir, ext string) string {
	base := strings.TrimSuffix(sourceBase, filepath.Ext(sourceBase))

	parts := make([]string, 0, 2)
	if language := Sanitize(tags.Language()); language != "" {
		parts = append(parts, language)
	}
	if title := Sanitize(tags.Title()); title != "" {
		parts = append(parts, title)
	}
	suffix := ""
	if len(parts) > 0 {
		suffix = "__" + strings.Join(parts, "_")
	}

	name := fmt.Sprintf("%s__idx%d%s%s", base, streamIndex, suffix, ext)
	return filepath.Join(outputDir, name)
}
