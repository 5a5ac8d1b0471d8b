// Package scan walks a text with a compiled matcher and turns each forbidden
// call into a position, a rendered context block and a display string.
package scan

import (
	"iter"
	"strings"

	"github.com/specvital/focusguard/pkg/pattern"
	"github.com/specvital/focusguard/pkg/text"
)

// Record is one forbidden call found in a text.
type Record struct {
	// Text is the matched call target as written, escapes and whitespace
	// included.
	Text string
	// Start is the raw byte offset of Text.
	Start int
	// RenderedStart is the offset of the same byte in the tab-expanded text.
	RenderedStart int
	// Lines is the number of raw lines Text spans.
	Lines int
	Rule  pattern.Rule
}

// End returns the raw offset just past the match.
func (r Record) End() int {
	return r.Start + len(r.Text)
}

// Scanner yields the forbidden calls of one text from left to right.
// It is single-use and must not be shared between goroutines.
type Scanner struct {
	m      *pattern.Matcher
	t      *text.Text
	cursor int
	done   bool
}

func NewScanner(m *pattern.Matcher, t *text.Text) *Scanner {
	return &Scanner{m: m, t: t}
}

// Next returns the next match at or after the cursor. Once it reports false
// the scanner is exhausted.
func (s *Scanner) Next() (Record, bool) {
	if s.done {
		return Record{}, false
	}

	raw := s.t.Raw()
	match, ok := s.m.Find(raw[s.cursor:])
	if !ok {
		s.done = true
		return Record{}, false
	}

	start := s.cursor + match.Start
	end := s.cursor + match.End
	s.cursor = end

	matched := raw[start:end]
	return Record{
		Text:          matched,
		Start:         start,
		RenderedStart: s.t.RenderOffset(start),
		Lines:         strings.Count(matched, "\n") + 1,
		Rule:          match.Rule,
	}, true
}

// All returns the matches of m in t as a sequence. Each call starts a fresh
// scan.
func All(m *pattern.Matcher, t *text.Text) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		s := NewScanner(m, t)
		for {
			rec, ok := s.Next()
			if !ok || !yield(rec) {
				return
			}
		}
	}
}
