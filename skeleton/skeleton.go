// Package skeleton condenses a line-oriented conversation log into its
// skeleton: the conversation's shape with tool results elided, tool-call
// arguments truncated and the metadata tool list collapsed.
package skeleton

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sonnes/skeletonize/classify"
	"github.com/sonnes/skeletonize/core"
	"github.com/sonnes/skeletonize/truncate"
)

// MetadataToolsElision replaces the whole metadata tools list.
const MetadataToolsElision = "tools            : [ ... tools list omitted ... ]\n"

// Config controls the extractor.
type Config struct {
	Policy truncate.Policy // zero value means truncate.DefaultPolicy()
	Logger *log.Logger     // defaults to log.Default()
}

// Extractor scans log documents. It holds no per-run state and can be reused.
type Extractor struct {
	truncator *truncate.Truncator
	logger    *log.Logger
}

// New creates an Extractor from the given config.
func New(cfg Config) (*Extractor, error) {
	policy := cfg.Policy
	if policy == (truncate.Policy{}) {
		policy = truncate.DefaultPolicy()
	}
	tr, err := truncate.New(policy)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Extractor{truncator: tr, logger: logger}, nil
}

// Extract condenses content and returns the skeleton with its statistics.
func (e *Extractor) Extract(content string) *core.Skeleton {
	var b strings.Builder
	// strings.Builder never fails, so neither does ExtractTo.
	stats, _ := e.ExtractTo(&b, content)
	return &core.Skeleton{Text: b.String(), Stats: stats}
}

// ExtractTo condenses content, writing the skeleton to w as it is produced.
// Line order and statistics match Extract. The only error is a write error.
func (e *Extractor) ExtractTo(w io.Writer, content string) (core.Stats, error) {
	lines := core.SplitLines(content)
	s := &scanner{
		truncator: e.truncator,
		logger:    e.logger,
		w:         bufio.NewWriter(w),
		lines:     lines,
		mode:      normal{},
	}
	s.stats.OriginalLines = len(lines)

	for s.i < len(s.lines) {
		s.step()
	}
	s.finish()

	if s.err == nil {
		s.err = s.w.Flush()
	}
	return s.stats, s.err
}

// mode is the scanner's current state. Exactly one is active at a time.
type mode interface{ isMode() }

type normal struct{}

// inMetadataTools discards lines until the tools list's brackets balance.
type inMetadataTools struct{ depth int }

// inToolResult discards a tool result body until the closing fence.
type inToolResult struct{ omitted int }

func (normal) isMode()           {}
func (*inMetadataTools) isMode() {}
func (*inToolResult) isMode()    {}

type scanner struct {
	truncator *truncate.Truncator
	logger    *log.Logger
	w         *bufio.Writer
	err       error

	lines []string
	i     int
	mode  mode
	stats core.Stats
}

// step consumes one or more lines starting at s.i.
func (s *scanner) step() {
	line := s.lines[s.i]
	switch m := s.mode.(type) {
	case *inMetadataTools:
		s.stats.OmittedLines++
		m.depth += classify.BracketDepth(line)
		if m.depth <= 0 {
			s.mode = normal{}
		}
		s.i++
	case *inToolResult:
		s.stepToolResult(m, line)
		s.i++
	default:
		s.stepNormal(line)
	}
}

func (s *scanner) stepNormal(line string) {
	switch {
	case classify.IsMetadataToolsStart(line):
		s.keep(MetadataToolsElision)
		s.stats.MetadataToolsOmitted = true
		// The opening bracket is on this line; a list that also closes here
		// needs no further skipping.
		if depth := classify.BracketDepth(line); depth > 0 {
			s.mode = &inMetadataTools{depth: depth}
		}
		s.i++

	case classify.IsToolResultStart(line):
		s.keep(line)
		s.stats.ToolBlocksProcessed++
		s.mode = &inToolResult{}
		s.i++

	case classify.IsToolCallStart(line):
		s.stepToolCall(line)

	default:
		s.keep(line)
		s.i++
	}
}

func (s *scanner) stepToolResult(m *inToolResult, line string) {
	if classify.IsFence(line) {
		if m.omitted > 0 {
			s.keep(classify.OmissionSummary(m.omitted))
		}
		s.keep(line)
		s.mode = normal{}
		return
	}
	// A summary left by an earlier run is the block's whole body: it follows
	// the header directly and is followed by the fence or end of input. It
	// stands for lines that are already gone, so its count is carried
	// forward without counting them again.
	if n, ok := classify.IsOmissionSummary(line); ok && n > 0 && m.omitted == 0 && s.nextClosesBlock() {
		m.omitted = n
		return
	}
	m.omitted++
	s.stats.OmittedLines++
}

// nextClosesBlock reports whether the line after the current one is a fence
// or the input ends.
func (s *scanner) nextClosesBlock() bool {
	return s.i+1 >= len(s.lines) || classify.IsFence(s.lines[s.i+1])
}

// stepToolCall collects the brace-balanced argument body that starts on line
// and emits the header followed by the truncated body.
func (s *scanner) stepToolCall(line string) {
	brace := strings.IndexByte(line, '{')
	if brace < 0 {
		s.keep(line)
		s.i++
		return
	}

	start := s.i + 1
	header := strings.TrimRight(line[:brace], " \t\r\n")
	first := strings.TrimSuffix(line[brace:], "\n")
	fragments := []string{first}
	depth := classify.BraceDepth(first)
	s.i++

	for depth > 0 && s.i < len(s.lines) {
		next := s.lines[s.i]
		fragments = append(fragments, strings.TrimSuffix(next, "\n"))
		depth += classify.BraceDepth(next)
		s.i++
	}
	if depth > 0 {
		s.logger.Debug("tool call body not closed before end of input", "line", start)
	}

	res := s.truncator.Payload(strings.Join(fragments, "\n"), &s.stats)
	if res.Fidelity == truncate.Pattern {
		s.logger.Debug("tool call payload truncated by pattern", "line", start, "err", res.Err)
	}

	// Counted as two kept lines: the header and the body.
	s.emit(header + " ")
	s.emit(res.Text + "\n")
	s.stats.KeptLines += 2
}

// finish flushes a pending omission summary for a result block that never
// saw its closing fence.
func (s *scanner) finish() {
	switch m := s.mode.(type) {
	case *inToolResult:
		s.logger.Debug("tool result block not closed before end of input", "omitted", m.omitted)
		if m.omitted > 0 {
			s.keep(classify.OmissionSummary(m.omitted))
		}
	case *inMetadataTools:
		s.logger.Debug("metadata tools list not closed before end of input", "depth", m.depth)
	}
	s.mode = normal{}
}

// keep emits a line and counts it as kept.
func (s *scanner) keep(line string) {
	s.emit(line)
	s.stats.KeptLines++
}

func (s *scanner) emit(text string) {
	if s.err != nil {
		return
	}
	_, s.err = s.w.WriteString(text)
}
