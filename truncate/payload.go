package truncate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sonnes/skeletonize/core"
	"github.com/tidwall/gjson"
)

// Fidelity records which path produced a truncated payload.
type Fidelity int

const (
	// Structured means the payload parsed and was re-serialized.
	Structured Fidelity = iota
	// Pattern means the payload did not parse and string values were
	// rewritten in place by pattern matching.
	Pattern
)

func (f Fidelity) String() string {
	switch f {
	case Structured:
		return "structured"
	case Pattern:
		return "pattern"
	default:
		return fmt.Sprintf("Fidelity(%d)", int(f))
	}
}

// Result is the outcome of Payload.
type Result struct {
	Text     string
	Fidelity Fidelity
	Err      error // parse failure that forced the Pattern path
}

// Payload truncates every string in a tool-call argument body. A body that
// parses as JSON is walked in document order and re-serialized with two-space
// indentation. Anything else falls back to rewriting "key": "value" pairs in
// place. Both paths record truncations in stats the same way.
func (t *Truncator) Payload(raw string, stats *core.Stats) Result {
	if !gjson.Valid(raw) {
		if stats != nil {
			stats.PatternFallbacks++
		}
		return Result{
			Text:     t.patchPairs(raw, stats),
			Fidelity: Pattern,
			Err:      parseError(raw),
		}
	}

	var b strings.Builder
	t.writeValue(&b, gjson.Parse(raw), 0, stats)
	return Result{Text: b.String(), Fidelity: Structured}
}

// parseError describes why raw is not JSON, using the decoder's positional
// message when it has one.
func parseError(raw string) error {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return ErrInvalidPayload
}

func (t *Truncator) writeValue(b *strings.Builder, v gjson.Result, depth int, stats *core.Stats) {
	switch {
	case v.IsObject():
		var keys, vals []gjson.Result
		v.ForEach(func(k, val gjson.Result) bool {
			keys = append(keys, k)
			vals = append(vals, val)
			return true
		})
		if len(keys) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		for i := range keys {
			writeIndent(b, depth+1)
			writeQuoted(b, keys[i].Str)
			b.WriteString(": ")
			t.writeValue(b, vals[i], depth+1, stats)
			if i < len(keys)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte('}')

	case v.IsArray():
		elems := v.Array()
		if len(elems) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, elem := range elems {
			writeIndent(b, depth+1)
			t.writeValue(b, elem, depth+1, stats)
			if i < len(elems)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte(']')

	case v.Type == gjson.String:
		writeQuoted(b, t.String(v.Str, stats))

	default:
		// Numbers keep their literal spelling; true, false and null are
		// copied as-is.
		b.WriteString(strings.TrimSpace(v.Raw))
	}
}

func writeIndent(b *strings.Builder, depth int) {
	for range depth {
		b.WriteString("  ")
	}
}

// writeQuoted writes s as a JSON string. Only quotes, backslashes and control
// characters are escaped; non-ASCII and HTML characters are kept literally.
func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

// pairRE matches a "key": "value" pair whose key is made of word characters.
// The value may contain escape sequences and, since the payload failed to
// parse, raw control characters such as newlines.
var pairRE = regexp.MustCompile(`(?s)"(\w+)":\s*"((?:[^"\\]|\\.)*)"`)

var pairEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// patchPairs truncates string values in a payload that is not valid JSON.
// Truncated values are escaped before being spliced back; untouched pairs are
// left byte-for-byte as they were. Keys that are not word characters and
// nested JSON encoded inside string values are not handled.
func (t *Truncator) patchPairs(raw string, stats *core.Stats) string {
	return pairRE.ReplaceAllStringFunc(raw, func(m string) string {
		sub := pairRE.FindStringSubmatch(m)
		key, value := sub[1], sub[2]
		truncated := t.String(value, stats)
		if truncated == value {
			return m
		}
		return `"` + key + `": "` + pairEscaper.Replace(truncated) + `"`
	})
}
