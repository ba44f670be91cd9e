package core

import "strings"

// SplitLines splits content into lines, each keeping its trailing "\n".
// The last line has no terminator when content does not end with one.
// A "\r" before the newline stays part of the line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := make([]string, 0, strings.Count(content, "\n")+1)
	for content != "" {
		i := strings.IndexByte(content, '\n')
		if i < 0 {
			lines = append(lines, content)
			break
		}
		lines = append(lines, content[:i+1])
		content = content[i+1:]
	}
	return lines
}
