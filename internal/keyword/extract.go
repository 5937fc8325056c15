// Package keyword derives normalized, deduplicated keyword sets from file
// paths and file contents. Extraction is heuristic regex scanning over raw
// text: per-extension extractors produce unfiltered candidate lists, and a
// single shared normalize/filter/dedupe pipeline produces the final set.
// Extraction never fails - an extractor that matches nothing simply
// contributes no candidates.
package keyword

import (
	"path/filepath"
	"strings"
	"unicode"

	"tasklink/internal/logging"
)

// ExtractFromPath derives keywords from a file-system path. The filename
// (extension stripped) is emitted whole, split at camelCase boundaries, and
// split at -/_ delimiters; every directory component except "." and the root
// marker is also a candidate. An empty path yields an empty set.
func ExtractFromPath(path string) []string {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	segments := strings.Split(filepath.ToSlash(path), "/")
	filename := segments[len(segments)-1]

	// Strip the extension at the last dot. Extensionless names
	// (Dockerfile, Makefile) pass through unchanged.
	base := filename
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		base = filename[:idx]
	}

	candidates := []string{base}
	candidates = append(candidates, splitCamelCase(base)...)
	candidates = append(candidates, splitDelimiters(base)...)

	for _, dir := range segments[:len(segments)-1] {
		if dir == "" || dir == "." {
			continue
		}
		candidates = append(candidates, dir)
	}

	out := normalizeCandidates(candidates)
	logging.ExtractDebug("path %q -> %d keywords", path, len(out))
	return out
}

// ExtractFromContent derives keywords from file content, dispatching on the
// path's extension to a type-specific candidate extractor. Unknown
// extensions fall back to the generic capitalized-word extractor rather
// than failing.
func ExtractFromContent(content, path string) []string {
	if content == "" {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	extract, ok := contentExtractors[ext]
	if !ok {
		extract = extractGenericCandidates
	}

	out := normalizeCandidates(extract(content))
	logging.ExtractDebug("content of %q (%s) -> %d keywords", path, ext, len(out))
	return out
}

// Merge combines already-normalized keyword sets, deduplicating while
// preserving first-seen order.
func Merge(sets ...[]string) []string {
	var all []string
	for _, s := range sets {
		all = append(all, s...)
	}
	return uniqueStrings(all)
}

// normalizeCandidates applies the shared pipeline: lowercase, trim, drop
// short candidates, drop stop words, dedupe preserving first-seen order.
func normalizeCandidates(raw []string) []string {
	filtered := make([]string, 0, len(raw))
	for _, c := range raw {
		c = strings.ToLower(strings.TrimSpace(c))
		if len([]rune(c)) < minKeywordLen {
			continue
		}
		if stopWords[c] {
			continue
		}
		filtered = append(filtered, c)
	}
	return uniqueStrings(filtered)
}

// splitCamelCase breaks an identifier before every uppercase rune that is
// not at position 0: "PaymentController" -> ["Payment", "Controller"].
func splitCamelCase(s string) []string {
	var parts []string
	var current strings.Builder

	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

// splitDelimiters splits an identifier on - and _ characters.
func splitDelimiters(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_'
	})
}

// uniqueStrings removes duplicates from a string slice, keeping the first
// occurrence so output order is deterministic.
func uniqueStrings(ss []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(ss))
	for _, s := range ss {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	return result
}
