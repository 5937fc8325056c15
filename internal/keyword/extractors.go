package keyword

import (
	"path"
	"regexp"
	"strings"
)

// extractorFunc produces raw, unfiltered keyword candidates from file
// content. Filtering and normalization happen in the shared pipeline.
type extractorFunc func(content string) []string

// contentExtractors routes a file extension to its candidate extractor.
// Extensions absent from this table use extractGenericCandidates. The
// groupings mirror how editors treat the dialects: all JS/TS flavors share
// one extractor.
var contentExtractors = map[string]extractorFunc{
	".js":       extractCodeCandidates,
	".jsx":      extractCodeCandidates,
	".ts":       extractCodeCandidates,
	".tsx":      extractCodeCandidates,
	".mjs":      extractCodeCandidates,
	".cjs":      extractCodeCandidates,
	".php":      extractPHPCandidates,
	".py":       extractPythonCandidates,
	".md":       extractDocCandidates,
	".markdown": extractDocCandidates,
	".txt":      extractDocCandidates,
}

var (
	jsDeclPattern   = regexp.MustCompile(`\b(?:function|const|let|var)\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	jsClassPattern  = regexp.MustCompile(`\bclass\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	jsImportPattern = regexp.MustCompile(`\bimport\b[^\n]*?\bfrom\s+['"]([^'"]+)['"]`)

	phpClassPattern     = regexp.MustCompile(`\bclass\s+([A-Za-z_][A-Za-z0-9_]*)`)
	phpFunctionPattern  = regexp.MustCompile(`\bfunction\s+([A-Za-z_][A-Za-z0-9_]*)`)
	phpNamespacePattern = regexp.MustCompile(`\bnamespace\s+([A-Za-z_][A-Za-z0-9_\\]*)`)

	pyClassPattern = regexp.MustCompile(`(?m)^\s*class\s+([A-Za-z_][A-Za-z0-9_]*)`)
	pyDefPattern   = regexp.MustCompile(`(?m)^\s*def\s+([A-Za-z_][A-Za-z0-9_]*)`)

	headingPattern   = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)
	checklistPattern = regexp.MustCompile(`(?m)^\s*-\s+\[[ xX]\]\s+(.+)$`)

	// Capitalized words longer than 3 characters, anywhere in the text.
	capitalizedPattern = regexp.MustCompile(`\b[A-Z][A-Za-z]{3,}\b`)
)

// extractCodeCandidates handles JavaScript/TypeScript dialects: declared
// identifiers, class names, and the base names of imported modules.
func extractCodeCandidates(content string) []string {
	var candidates []string

	for _, m := range jsDeclPattern.FindAllStringSubmatch(content, -1) {
		candidates = append(candidates, m[1])
	}
	for _, m := range jsClassPattern.FindAllStringSubmatch(content, -1) {
		candidates = append(candidates, m[1])
	}
	for _, m := range jsImportPattern.FindAllStringSubmatch(content, -1) {
		candidates = append(candidates, moduleBaseName(m[1]))
	}

	return candidates
}

// moduleBaseName reduces an import specifier to its final path segment with
// any extension stripped: "./utils/stripe-helper.js" -> "stripe-helper".
func moduleBaseName(spec string) string {
	base := path.Base(spec)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base
}

// extractPHPCandidates handles PHP: class names, function names, and the
// final segment of backslash-delimited namespaces.
func extractPHPCandidates(content string) []string {
	var candidates []string

	for _, m := range phpClassPattern.FindAllStringSubmatch(content, -1) {
		candidates = append(candidates, m[1])
	}
	for _, m := range phpFunctionPattern.FindAllStringSubmatch(content, -1) {
		candidates = append(candidates, m[1])
	}
	for _, m := range phpNamespacePattern.FindAllStringSubmatch(content, -1) {
		ns := m[1]
		if idx := strings.LastIndex(ns, `\`); idx >= 0 {
			ns = ns[idx+1:]
		}
		candidates = append(candidates, ns)
	}

	return candidates
}

// extractPythonCandidates handles Python class and def declarations.
func extractPythonCandidates(content string) []string {
	var candidates []string

	for _, m := range pyClassPattern.FindAllStringSubmatch(content, -1) {
		candidates = append(candidates, m[1])
	}
	for _, m := range pyDefPattern.FindAllStringSubmatch(content, -1) {
		candidates = append(candidates, m[1])
	}

	return candidates
}

// extractDocCandidates handles structured text: markdown headings (leading
// hashes stripped) and checklist item text.
func extractDocCandidates(content string) []string {
	var candidates []string

	for _, m := range headingPattern.FindAllStringSubmatch(content, -1) {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}
	for _, m := range checklistPattern.FindAllStringSubmatch(content, -1) {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}

	return candidates
}

// extractGenericCandidates is the fallback for unknown file types:
// capitalized words of length > 3 found anywhere in the text.
func extractGenericCandidates(content string) []string {
	return capitalizedPattern.FindAllString(content, -1)
}
