package codeowners

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Rule is one compiled CODEOWNERS line: a pattern, the owners declared for
// it (order and duplicates preserved, possibly none), and its provenance.
type Rule struct {
	pattern    *Pattern
	Owners     []string
	LineNumber int
	Source     string
}

// Matches reports whether the rule's pattern selects path.
func (r *Rule) Matches(path string) bool {
	return r.pattern.Matches(path)
}

// RuleMatch is one entry of an explain trace: a rule that matched a path,
// with Effective set only on the rule FindOwners would have picked.
type RuleMatch struct {
	Owners     []string `json:"owners" toml:"owners"`
	LineNumber int      `json:"line" toml:"line"`
	Source     string   `json:"rule" toml:"rule"`
	Effective  bool     `json:"effective" toml:"effective"`
}

// Ruleset is an ordered collection of CODEOWNERS rules. It is built once
// from a line stream and immutable afterwards, so it is safe to share
// across concurrent readers.
type Ruleset struct {
	// rules are kept in declaration order; queries scan in reverse so the
	// last declared matching rule wins.
	rules []Rule
}

// ParseReader builds a Ruleset from CODEOWNERS file contents. Lines that
// fail pattern compilation are skipped with a warning; blank and
// comment-only lines are skipped silently. Building never fails as a
// whole.
func ParseReader(r io.Reader, warningWriter io.Writer) *Ruleset {
	rs := &Ruleset{rules: make([]Rule, 0)}

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()

		// The first # always starts a comment; no escaping is supported.
		text := line
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		pattern, err := NewPattern(fields[0])
		if err != nil {
			_, _ = fmt.Fprintf(warningWriter, "WARNING: line %d of CODEOWNERS: %s\n", lineNumber, err)
			continue
		}
		rs.rules = append(rs.rules, Rule{
			pattern:    pattern,
			Owners:     fields[1:],
			LineNumber: lineNumber,
			Source:     line,
		})
	}
	if err := scanner.Err(); err != nil {
		_, _ = fmt.Fprintf(warningWriter, "WARNING: reading CODEOWNERS: %s\n", err)
	}
	return rs
}

// ParseString builds a Ruleset from an in-memory CODEOWNERS blob.
func ParseString(contents string, warningWriter io.Writer) *Ruleset {
	return ParseReader(strings.NewReader(contents), warningWriter)
}

// Len returns the number of parsed rules.
func (rs *Ruleset) Len() int {
	return len(rs.rules)
}

// FindOwners returns the owners of the last declared rule matching path.
// The second return is false when no rule matches. A matching rule with no
// owner tokens returns an empty slice and true: the path is claimed by no
// one, which is different from unclaimed.
func (rs *Ruleset) FindOwners(path string) ([]string, bool) {
	for i := len(rs.rules) - 1; i >= 0; i-- {
		if rs.rules[i].Matches(path) {
			return rs.rules[i].Owners, true
		}
	}
	return nil, false
}

// Explain returns every rule matching path, in declaration order, with
// Effective set on the single rule FindOwners would return. The result is
// fully materialized.
func (rs *Ruleset) Explain(path string) []RuleMatch {
	matches := make([]RuleMatch, 0)
	for i := range rs.rules {
		rule := &rs.rules[i]
		if !rule.Matches(path) {
			continue
		}
		matches = append(matches, RuleMatch{
			Owners:     rule.Owners,
			LineNumber: rule.LineNumber,
			Source:     rule.Source,
		})
	}
	if len(matches) > 0 {
		matches[len(matches)-1].Effective = true
	}
	return matches
}
