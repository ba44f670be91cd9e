// Package redact scrubs secrets and PII from skeleton text before it is
// written or shared.
package redact

import (
	"fmt"
	"regexp"
)

// Rule detects sensitive data in a string and provides a replacement.
type Rule interface {
	Name() string
	Kind() string
	Detect(s string) []Match
	Replacement(m Match) string
}

// Match is one detected occurrence within a string.
type Match struct {
	Start int
	End   int
	Value string
}

// Rule kinds, as selected by the --redact flag.
const (
	KindSecret = "secrets"
	KindPII    = "pii"
)

type regexRule struct {
	name    string
	kind    string
	pattern *regexp.Regexp
}

func newRegexRule(name, kind, pattern string) *regexRule {
	return &regexRule{name: name, kind: kind, pattern: regexp.MustCompile(pattern)}
}

func (r *regexRule) Name() string { return r.name }
func (r *regexRule) Kind() string { return r.kind }

func (r *regexRule) Detect(s string) []Match {
	locs := r.pattern.FindAllStringIndex(s, -1)
	matches := make([]Match, len(locs))
	for i, loc := range locs {
		matches[i] = Match{Start: loc[0], End: loc[1], Value: s[loc[0]:loc[1]]}
	}
	return matches
}

func (r *regexRule) Replacement(_ Match) string {
	return fmt.Sprintf("[REDACTED:%s]", r.name)
}

// SecretRules returns the built-in credential detectors.
func SecretRules() []Rule {
	return []Rule{
		newRegexRule("aws_key", KindSecret, `AKIA[0-9A-Z]{16}`),
		newRegexRule("api_key", KindSecret, `(?:sk-[a-zA-Z0-9]{32,}|ghp_[a-zA-Z0-9]{36,}|gho_[a-zA-Z0-9]{36,}|github_pat_[a-zA-Z0-9_]{40,}|glpat-[a-zA-Z0-9\-]{20,})`),
		newRegexRule("private_key", KindSecret, `-----BEGIN [A-Z ]+PRIVATE KEY-----`),
		newRegexRule("connection_string", KindSecret, `(?:postgres|mongodb|mysql|redis)://[^\s"'`+"`"+`]+`),
		newRegexRule("jwt", KindSecret, `eyJ[A-Za-z0-9\-_]+\.eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_.+/=]+`),
	}
}

// PIIRules returns the built-in PII detectors.
func PIIRules() []Rule {
	return []Rule{
		newRegexRule("email", KindPII, `[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
		newRegexRule("ipv4", KindPII, `\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`),
		newRegexRule("phone", KindPII, `(?:\+\d{1,3}[\s\-]?)?\(?\d{3}\)?[\s\-]?\d{3}[\s\-]?\d{4}`),
	}
}
