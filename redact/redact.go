package redact

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sonnes/skeletonize/core"
)

// Config controls which rules the Redactor applies.
type Config struct {
	Secrets    bool
	PII        bool
	ExtraRules []Rule
	Allowlist  []string // regex patterns whose matches are left alone
}

// ParseKinds builds a Config from rule kind names such as "secrets" or "pii".
func ParseKinds(kinds []string) (Config, error) {
	var cfg Config
	for _, k := range kinds {
		switch strings.TrimSpace(k) {
		case KindSecret:
			cfg.Secrets = true
		case KindPII:
			cfg.PII = true
		default:
			return Config{}, fmt.Errorf("unknown redaction rule %q", k)
		}
	}
	return cfg, nil
}

// Redactor replaces sensitive matches in skeleton text.
type Redactor struct {
	rules     []Rule
	allowlist []*regexp.Regexp
}

// New creates a Redactor from the given config. Allowlist patterns that do
// not compile are reported as an error.
func New(cfg Config) (*Redactor, error) {
	var rules []Rule
	if cfg.Secrets {
		rules = append(rules, SecretRules()...)
	}
	if cfg.PII {
		rules = append(rules, PIIRules()...)
	}
	rules = append(rules, cfg.ExtraRules...)

	allowlist := make([]*regexp.Regexp, 0, len(cfg.Allowlist))
	for _, pattern := range cfg.Allowlist {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("allowlist pattern %q: %w", pattern, err)
		}
		allowlist = append(allowlist, re)
	}

	return &Redactor{rules: rules, allowlist: allowlist}, nil
}

// Transform implements core.Transformer.
func (r *Redactor) Transform(s *core.Skeleton) error {
	text, n := r.Redact(s.Text)
	s.Text = text
	s.Stats.Redactions += n
	return nil
}

// Redact applies all rules to s and returns the result with the number of
// replacements made. Overlapping matches resolve to earliest start, then
// longest.
func (r *Redactor) Redact(s string) (string, int) {
	if s == "" || len(r.rules) == 0 {
		return s, 0
	}

	type replacement struct {
		start int
		end   int
		text  string
	}

	var reps []replacement
	for _, rule := range r.rules {
		for _, m := range rule.Detect(s) {
			if r.isAllowed(m.Value) {
				continue
			}
			reps = append(reps, replacement{start: m.Start, end: m.End, text: rule.Replacement(m)})
		}
	}
	if len(reps) == 0 {
		return s, 0
	}

	sort.Slice(reps, func(i, j int) bool {
		if reps[i].start != reps[j].start {
			return reps[i].start < reps[j].start
		}
		return reps[i].end > reps[j].end
	})

	var b strings.Builder
	b.Grow(len(s))
	pos, n := 0, 0
	for _, rep := range reps {
		if rep.start < pos {
			continue
		}
		b.WriteString(s[pos:rep.start])
		b.WriteString(rep.text)
		pos = rep.end
		n++
	}
	b.WriteString(s[pos:])
	return b.String(), n
}

func (r *Redactor) isAllowed(value string) bool {
	for _, re := range r.allowlist {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}
