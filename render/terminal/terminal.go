// Package terminal renders the statistics of a skeletonization run as a
// styled report.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-runewidth"

	"github.com/sonnes/skeletonize/core"
	"github.com/sonnes/skeletonize/render"
)

const defaultWidth = 100

// Renderer prints the run summary to the terminal.
type Renderer struct {
	// Width overrides terminal width detection. Zero means auto-detect.
	Width int
}

// New creates a terminal Renderer.
func New() *Renderer {
	return &Renderer{}
}

type row struct {
	label string
	value string
	style lipgloss.Style
}

// Render writes the report for s to w.
func (r *Renderer) Render(w io.Writer, s *core.Skeleton) error {
	st := s.Stats

	paths := []row{
		{"Input", s.Input, stylePath},
		{"Output", s.Output, stylePath},
	}
	counts := []row{
		{"Original lines", render.FormatNumber(st.OriginalLines), styleStat},
		{"Kept lines", render.FormatNumber(st.KeptLines), styleStat},
		{"Omitted lines", render.FormatNumber(st.OmittedLines), styleStat},
		{"Compression", fmt.Sprintf("%.1f%%", st.CompressionRatio()), styleRatio},
		{"Tool blocks", render.FormatNumber(st.ToolBlocksProcessed), styleStat},
	}
	if st.StringsTruncated > 0 {
		counts = append(counts,
			row{"Strings truncated", render.FormatNumber(st.StringsTruncated), styleStat},
			row{"Chars saved", render.FormatNumber(st.CharsSaved), styleStat},
		)
	}
	if st.MetadataToolsOmitted {
		counts = append(counts, row{"Tools list", "omitted", styleStat})
	}
	if st.PatternFallbacks > 0 {
		counts = append(counts, row{"Pattern fallbacks", render.FormatNumber(st.PatternFallbacks), styleFallback})
	}
	if st.Redactions > 0 {
		counts = append(counts, row{"Redactions", render.FormatNumber(st.Redactions), styleStat})
	}

	labelWidth := 0
	for _, rw := range append(paths, counts...) {
		labelWidth = max(labelWidth, runewidth.StringWidth(rw.label))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, " "+styleTitle.Render("Skeleton stats"))
	writeRows(w, paths, labelWidth)
	writeSeparator(w, min(r.termWidth()-3, labelWidth+32))
	writeRows(w, counts, labelWidth)
	return nil
}

func (r *Renderer) termWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

func writeRows(w io.Writer, rows []row, labelWidth int) {
	for _, rw := range rows {
		if rw.value == "" {
			continue
		}
		label := styleStatLabel.Render(runewidth.FillRight(rw.label, labelWidth))
		fmt.Fprintf(w, "   %s  %s\n", label, rw.style.Render(rw.value))
	}
}

func writeSeparator(w io.Writer, width int) {
	fmt.Fprintln(w, "   "+styleSeparator.Render(strings.Repeat("─", max(width, 8))))
}
