package extract

import "strings"

// NormalizeText converts raw extracted text into the canonical form used
// for whole-text pattern search: carriage returns become newlines, nothing
// else is touched.
func NormalizeText(raw string) string {
	norm := strings.ReplaceAll(raw, "\r\n", "\n")
	return strings.ReplaceAll(norm, "\r", "\n")
}

// SplitLines produces the line-oriented view of normalized text: trimmed,
// non-empty lines in document order. Label and positional heuristics
// operate on this view only.
func SplitLines(norm string) []string {
	raw := strings.Split(norm, "\n")
	lines := make([]string, 0, len(raw))
	for _, ln := range raw {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		lines = append(lines, ln)
	}
	return lines
}
