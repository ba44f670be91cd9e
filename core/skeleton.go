// Package core defines the shared data model of a skeletonization run: the
// condensed document, the statistics every stage updates, and the Transformer
// hook used for post-processing.
package core

// Skeleton is the result of condensing one log document.
type Skeleton struct {
	Input  string `json:"input,omitempty"`  // source path, empty for in-memory input
	Output string `json:"output,omitempty"` // destination path once written
	Text   string `json:"-"`                // condensed document
	Stats  Stats  `json:"stats"`
}

// Stats accumulates counters for a single extraction run. It is owned by the
// run that created it and read-only once the run completes.
type Stats struct {
	OriginalLines        int  `json:"original_lines"`
	KeptLines            int  `json:"kept_lines"`
	OmittedLines         int  `json:"omitted_lines"`
	ToolBlocksProcessed  int  `json:"tool_blocks_processed"`
	StringsTruncated     int  `json:"strings_truncated,omitempty"`
	CharsSaved           int  `json:"chars_saved,omitempty"`
	MetadataToolsOmitted bool `json:"metadata_tools_omitted"`
	PatternFallbacks     int  `json:"pattern_fallbacks,omitempty"` // payloads truncated by the regex path
	Redactions           int  `json:"redactions,omitempty"`
}

// CompressionRatio returns the share of lines removed, as a percentage.
// It is 0 for an empty document.
func (s Stats) CompressionRatio() float64 {
	if s.OriginalLines == 0 {
		return 0
	}
	return (1 - float64(s.KeptLines)/float64(s.OriginalLines)) * 100
}
