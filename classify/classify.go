// Package classify holds the line-level predicates that tell the skeleton
// scanner what kind of construct a log line opens.
package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// Marker is the glyph that prefixes tool-call and tool-result lines.
const Marker = "🛠️"

// Fence closes a tool-result body.
const Fence = "~~~"

// The variation selector after U+1F6E0 is optional; some exports drop it.

// toolResultRE matches "🛠️ toolu_..." (a result block identifier, no name).
var toolResultRE = regexp.MustCompile(`^\x{1F6E0}\x{FE0F}?\s+toolu_`)

// toolCallRE matches "🛠️ name (toolu_..." (a named call).
var toolCallRE = regexp.MustCompile(`^\x{1F6E0}\x{FE0F}?\s+\w+\s+\(toolu_`)

// metadataToolsRE matches the opening of the metadata tool list: the token
// "tools" followed eventually by ": [", as in "tools            : [" or
// "tools (3) : [".
var metadataToolsRE = regexp.MustCompile(`^tools\b.*?:\s\[`)

// omissionSummaryRE matches a summary line emitted by an earlier run.
var omissionSummaryRE = regexp.MustCompile(`^\.\.\. \((\d+) lines omitted\)$`)

// IsToolResultStart reports whether line opens a tool-result block.
func IsToolResultStart(line string) bool {
	return toolResultRE.MatchString(strings.TrimSpace(line))
}

// IsToolCallStart reports whether line opens a tool call. A call has a name
// and a parenthesized identifier, so it never matches IsToolResultStart.
func IsToolCallStart(line string) bool {
	return toolCallRE.MatchString(strings.TrimSpace(line))
}

// IsMetadataToolsStart reports whether line opens the metadata tools list.
func IsMetadataToolsStart(line string) bool {
	return metadataToolsRE.MatchString(strings.TrimSpace(line))
}

// IsFence reports whether line consists solely of the fence marker.
func IsFence(line string) bool {
	return strings.TrimSpace(line) == Fence
}

// IsOmissionSummary reports whether line is an omission summary such as
// "... (12 lines omitted)" and returns the count it carries.
func IsOmissionSummary(line string) (int, bool) {
	m := omissionSummaryRE.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// OmissionSummary formats the line that replaces n elided result lines.
func OmissionSummary(n int) string {
	return "... (" + strconv.Itoa(n) + " lines omitted)\n"
}

// Depth returns the nesting change contributed by s: occurrences of open
// minus occurrences of close. Quotes and escapes are not considered.
func Depth(s string, open, close byte) int {
	return strings.Count(s, string(open)) - strings.Count(s, string(close))
}

// BracketDepth is Depth for "[" and "]".
func BracketDepth(s string) int { return Depth(s, '[', ']') }

// BraceDepth is Depth for "{" and "}".
func BraceDepth(s string) int { return Depth(s, '{', '}') }
