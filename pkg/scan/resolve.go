package scan

import (
	"unicode/utf8"

	"github.com/specvital/focusguard/pkg/text"
)

// Position is where a Record sits in its text.
type Position struct {
	// Line and Column are 1-based raw coordinates. Column counts characters.
	Line   int
	Column int
	// EndLine is the last raw line the match touches.
	EndLine int
	// RenderedColumn is the display width of the rendered line before the
	// match. Context pads the first caret row with it.
	RenderedColumn int
}

// Locate resolves rec against t.
func Locate(t *text.Text, rec Record) Position {
	last := rec.End() - 1
	if last < rec.Start {
		last = rec.Start
	}
	line := max(1, t.LineAt(last)-(rec.Lines-1))

	rawPrefix := t.Raw()[t.LineStart(line):rec.Start]
	renderedPrefix := t.Rendered()[t.RenderedLineStart(line):rec.RenderedStart]

	return Position{
		Line:           line,
		Column:         max(1, utf8.RuneCountInString(rawPrefix)+1),
		EndLine:        line + rec.Lines - 1,
		RenderedColumn: cells.StringWidth(renderedPrefix),
	}
}
