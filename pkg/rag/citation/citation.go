package citation

import (
	"fmt"
	"strings"
)

// Source is the provenance of one retrieved chunk.
type Source struct {
	FolderPath *string
	SourceFile string
	PageNumber *int
}

// Format renders a source as a stable human-readable citation, joining the
// present parts with " > ". The same string backs both the inline context
// markers and the deduplicated sources list, so it must stay deterministic.
//
//	"docs > spec.docx"
//	"a.pdf > Page 1"
func Format(s Source) string {
	parts := make([]string, 0, 3)

	if s.FolderPath != nil && *s.FolderPath != "" {
		parts = append(parts, *s.FolderPath)
	}

	parts = append(parts, s.SourceFile)

	if s.PageNumber != nil {
		parts = append(parts, fmt.Sprintf("Page %d", *s.PageNumber))
	}

	return strings.Join(parts, " > ")
}

// Dedup returns citations in first-occurrence order with duplicates removed.
func Dedup(citations []string) []string {
	seen := make(map[string]struct{}, len(citations))
	out := make([]string, 0, len(citations))
	for _, c := range citations {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
