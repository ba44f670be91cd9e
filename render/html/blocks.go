package html

import (
	"regexp"
	"strings"

	"github.com/sonnes/skeletonize/classify"
	"github.com/sonnes/skeletonize/core"
)

var toolNameRE = regexp.MustCompile(`^\S+\s+(\w+)\s+\(`)

// fenceToolCalls rewrites the skeleton as markdown goldmark can highlight.
// Tool-call bodies are bare JSON in the log, so each one is moved into a
// json code fence under its header. Text inside existing fences is left
// alone. It also returns the tool names in order of appearance.
func fenceToolCalls(text string) (string, []string) {
	lines := core.SplitLines(text)

	var b strings.Builder
	var calls []string
	var fence string

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if fence != "" {
			if strings.HasPrefix(trimmed, fence) && strings.Trim(trimmed, fence[:1]) == "" {
				fence = ""
			}
			b.WriteString(line)
			continue
		}
		if f := openingFence(trimmed); f != "" {
			fence = f
			b.WriteString(line)
			continue
		}

		brace := strings.IndexByte(line, '{')
		if !classify.IsToolCallStart(line) || brace < 0 {
			b.WriteString(line)
			continue
		}

		header := strings.TrimRight(line[:brace], " \t\r\n")
		if m := toolNameRE.FindStringSubmatch(strings.TrimSpace(header)); m != nil {
			calls = append(calls, m[1])
		}

		body := line[brace:]
		depth := classify.BraceDepth(body)
		for depth > 0 && i+1 < len(lines) {
			i++
			body += lines[i]
			depth += classify.BraceDepth(lines[i])
		}

		b.WriteString(header)
		b.WriteString("\n\n````json\n")
		b.WriteString(strings.TrimRight(body, "\n"))
		b.WriteString("\n````\n")
	}
	return b.String(), calls
}

// openingFence returns the fence marker that trimmed opens, or "".
func openingFence(trimmed string) string {
	for _, ch := range []string{"`", "~"} {
		n := 0
		for n < len(trimmed) && trimmed[n] == ch[0] {
			n++
		}
		if n >= 3 {
			return trimmed[:n]
		}
	}
	return ""
}
