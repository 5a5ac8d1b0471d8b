package pattern

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Match locates one forbidden call target within the searched string.
type Match struct {
	// Start and End delimit the call target, excluding the leading
	// whitespace and the trailing "(".
	Start int
	End   int
	Rule  Rule
}

// Matcher finds forbidden calls. It is immutable and safe for concurrent use.
type Matcher struct {
	re    *regexp.Regexp
	rules []Rule
}

// Capture groups: 1 is the leading boundary, 2 the call target, 3+i rule i.
const firstRuleGroup = 3

// Compile builds a Matcher for rules. A call matches only when preceded by
// the start of a line or whitespace and followed by optional whitespace and
// an opening parenthesis. Zero rules yield a Matcher that never matches.
func Compile(rules []Rule) (*Matcher, error) {
	if len(rules) == 0 {
		return &Matcher{}, nil
	}

	alts := make([]string, len(rules))
	for i, rule := range rules {
		if len(rule.Spec) == 0 {
			return nil, fmt.Errorf("%w: rule %d has no segments", ErrInvalidPath, i)
		}
		alts[i] = "(" + specPattern(rule.Spec) + ")"
	}

	src := `(?m)(^|\s)(` + strings.Join(alts, "|") + `)\s*\(`
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("pattern: compile: %w", err)
	}

	return &Matcher{re: re, rules: slices.Clone(rules)}, nil
}

// Find returns the leftmost forbidden call in s.
func (m *Matcher) Find(s string) (Match, bool) {
	if m == nil || m.re == nil {
		return Match{}, false
	}

	loc := m.re.FindStringSubmatchIndex(s)
	if loc == nil {
		return Match{}, false
	}

	match := Match{Start: loc[4], End: loc[5]}
	for i := range m.rules {
		if loc[2*(firstRuleGroup+i)] >= 0 {
			match.Rule = m.rules[i]
			break
		}
	}
	return match, true
}

// Rules returns a copy of the compiled rules.
func (m *Matcher) Rules() []Rule {
	if m == nil {
		return nil
	}
	return slices.Clone(m.rules)
}

// String returns the generated expression source.
func (m *Matcher) String() string {
	if m == nil || m.re == nil {
		return ""
	}
	return m.re.String()
}
