// Package truncate shortens long strings to a head/tail window, either one at
// a time or across every string leaf of a tool-call payload.
package truncate

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/sonnes/skeletonize/core"
)

// maxWindow bounds Head and Tail so the already-truncated check stays cheap.
const maxWindow = 1000

// Policy controls when and how much of a string is kept.
type Policy struct {
	Threshold int `yaml:"threshold"` // strings longer than this are truncated
	Head      int `yaml:"head"`      // characters kept from the start
	Tail      int `yaml:"tail"`      // characters kept from the end
}

// DefaultPolicy returns the stock policy: truncate past 100 characters,
// keeping 40 at each end.
func DefaultPolicy() Policy {
	return Policy{Threshold: 100, Head: 40, Tail: 40}
}

// Validate checks that every over-threshold string omits at least one
// character.
func (p Policy) Validate() error {
	switch {
	case p.Head < 0 || p.Tail < 0:
		return fmt.Errorf("head (%d) and tail (%d) must not be negative", p.Head, p.Tail)
	case p.Head > maxWindow || p.Tail > maxWindow:
		return fmt.Errorf("head (%d) and tail (%d) must not exceed %d", p.Head, p.Tail, maxWindow)
	case p.Threshold <= p.Head+p.Tail:
		return fmt.Errorf("threshold (%d) must exceed head + tail (%d)", p.Threshold, p.Head+p.Tail)
	}
	return nil
}

// markerRE matches exactly the omission marker inserted by String.
var markerRE = regexp.MustCompile(`^\.\.\. \(\d+ chars omitted\) \.\.\.$`)

// Truncator applies a Policy and records what it removed.
type Truncator struct {
	policy Policy
}

// New creates a Truncator, rejecting policies that fail Validate.
func New(p Policy) (*Truncator, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("truncation policy: %w", err)
	}
	return &Truncator{policy: p}, nil
}

// Policy returns the policy the truncator was built with.
func (t *Truncator) Policy() Policy { return t.policy }

// String returns s unchanged when it is within the threshold or already has
// the exact shape String produces. Otherwise it keeps Head characters, an
// omission marker and Tail characters, and adds the savings to stats. A
// marker elsewhere in s does not exempt it. Lengths are counted in runes.
func (t *Truncator) String(s string, stats *core.Stats) string {
	n := utf8.RuneCountInString(s)
	if n <= t.policy.Threshold {
		return s
	}

	runes := []rune(s)
	if markerRE.MatchString(string(runes[t.policy.Head : n-t.policy.Tail])) {
		return s
	}
	omitted := n - t.policy.Head - t.policy.Tail
	if stats != nil {
		stats.StringsTruncated++
		stats.CharsSaved += omitted
	}
	return fmt.Sprintf("%s... (%d chars omitted) ...%s",
		string(runes[:t.policy.Head]), omitted, string(runes[n-t.policy.Tail:]))
}

// ErrInvalidPayload reports a payload that could not be parsed as JSON. It is
// recovered by the pattern fallback and never returned to callers of the
// skeleton extractor.
var ErrInvalidPayload = errors.New("payload is not valid JSON")
