// Package render defines the interface for presenting a skeletonization run:
// its statistics report or the condensed document itself.
package render

import (
	"fmt"
	"io"

	"github.com/sonnes/skeletonize/core"
)

// Renderer writes a skeleton to the given writer in a specific format.
type Renderer interface {
	Render(w io.Writer, s *core.Skeleton) error
}

// FormatNumber formats n with comma thousands separators.
func FormatNumber(n int) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return FormatNumber(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}
