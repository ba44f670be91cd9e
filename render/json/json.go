// Package json renders the run summary as JSON for scripting.
package json

import (
	"encoding/json"
	"io"
	"math"

	"github.com/sonnes/skeletonize/core"
)

// Renderer renders a skeleton's summary to JSON.
type Renderer struct {
	// Indent controls pretty-printing. When true, output is indented.
	Indent bool
}

type report struct {
	Input            string     `json:"input"`
	Output           string     `json:"output"`
	Stats            core.Stats `json:"stats"`
	CompressionRatio float64    `json:"compression_ratio"`
}

// Render writes {input, output, stats, compression_ratio} to w. The ratio is
// rounded to one decimal.
func (r *Renderer) Render(w io.Writer, s *core.Skeleton) error {
	enc := json.NewEncoder(w)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report{
		Input:            s.Input,
		Output:           s.Output,
		Stats:            s.Stats,
		CompressionRatio: math.Round(s.Stats.CompressionRatio()*10) / 10,
	})
}
