// Package description edits activity descriptions section-by-section.
// Sections are identified by a header prefix (emoji + text, e.g.
// "🏃 Workout:"), so re-running the analyzer replaces its own section
// instead of appending a duplicate.
package description

import (
	"strings"
	"unicode"
)

// isSectionStart reports whether a trimmed line looks like the start of a
// section: an emoji or other symbol character.
func isSectionStart(s string) bool {
	r := []rune(s)
	if len(r) == 0 {
		return false
	}
	return r[0] > 127 || unicode.IsSymbol(r[0])
}

// FindSection locates a section by its header prefix. Returns start, end
// (exclusive) and whether the section was found. A section ends at a blank
// line followed by another section start, or at end of string; trailing
// whitespace is excluded.
func FindSection(desc, headerPrefix string) (start, end int, found bool) {
	if desc == "" || headerPrefix == "" {
		return 0, 0, false
	}
	start = strings.Index(desc, headerPrefix)
	if start == -1 {
		return 0, 0, false
	}

	end = len(desc)
	lines := strings.Split(desc[start:], "\n")
	offset := start
	for i, line := range lines {
		if strings.TrimSpace(line) == "" && i+1 < len(lines) && isSectionStart(strings.TrimSpace(lines[i+1])) {
			end = offset
			break
		}
		offset += len(line) + 1
	}

	for end > start && (desc[end-1] == '\n' || desc[end-1] == ' ') {
		end--
	}
	return start, end, true
}

// HasSection checks whether the description contains the section.
func HasSection(desc, headerPrefix string) bool {
	_, _, found := FindSection(desc, headerPrefix)
	return found
}

// ReplaceSection swaps the section's content for newContent, or appends the
// new content when the section does not exist yet.
func ReplaceSection(desc, headerPrefix, newContent string) string {
	start, end, found := FindSection(desc, headerPrefix)
	if !found {
		if desc == "" {
			return newContent
		}
		return desc + "\n\n" + newContent
	}

	before := strings.TrimRight(desc[:start], "\n ")
	after := strings.TrimLeft(desc[end:], "\n ")

	var b strings.Builder
	if before != "" {
		b.WriteString(before)
		b.WriteString("\n\n")
	}
	b.WriteString(newContent)
	if after != "" {
		b.WriteString("\n\n")
		b.WriteString(after)
	}
	return b.String()
}
