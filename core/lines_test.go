package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single line no newline", "hello", []string{"hello"}},
		{"single line with newline", "hello\n", []string{"hello\n"}},
		{"multiple lines", "a\nb\nc", []string{"a\n", "b\n", "c"}},
		{"blank lines kept", "a\n\n\nb\n", []string{"a\n", "\n", "\n", "b\n"}},
		{"crlf stays on line", "a\r\nb\r\n", []string{"a\r\n", "b\r\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, strings.Join(got, ""))
		})
	}
}
