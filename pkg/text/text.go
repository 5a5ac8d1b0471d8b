// Package text holds a source buffer in two coordinate systems: the raw bytes
// as read, and a rendering where every tab is expanded to a fixed run of
// spaces. Offsets are byte offsets; lines are 1-based.
package text

import (
	"sort"
	"strings"
)

// Text is an immutable source buffer with raw and rendered line tables.
// It is safe for concurrent reads.
type Text struct {
	raw      string
	rendered string
	tabWidth int

	rawStarts      []int
	renderedStarts []int
	tabs           []int
}

// New builds a Text from raw content. tabWidth is clamped to
// [MinTabWidth, MaxTabWidth].
func New(raw string, tabWidth int) *Text {
	w := ClampTabWidth(tabWidth)
	t := &Text{
		raw:      raw,
		rendered: Render(raw, w),
		tabWidth: w,
	}
	t.rawStarts = lineStarts(t.raw)
	t.renderedStarts = lineStarts(t.rendered)
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\t' {
			t.tabs = append(t.tabs, i)
		}
	}
	return t
}

// Render replaces every tab in s with width spaces.
func Render(s string, width int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", width))
}

// lineStarts returns the offset of the first byte of every line, where the
// start of line i+1 is the total length of lines 0..i plus one separator each.
func lineStarts(s string) []int {
	lines := strings.Split(s, "\n")
	starts := make([]int, len(lines))
	off := 0
	for i, line := range lines {
		starts[i] = off
		off += len(line) + 1
	}
	return starts
}

func (t *Text) Raw() string      { return t.raw }
func (t *Text) Rendered() string { return t.rendered }
func (t *Text) TabWidth() int    { return t.tabWidth }

// LineCount returns the number of lines. An empty buffer has one empty line,
// and a trailing newline starts a final empty line.
func (t *Text) LineCount() int { return len(t.rawStarts) }

// LineAt returns the 1-based raw line containing offset. Offsets past the end
// resolve to the last line; negative offsets to the first.
func (t *Text) LineAt(offset int) int {
	return lineAt(t.rawStarts, offset)
}

func lineAt(starts []int, offset int) int {
	i := sort.Search(len(starts), func(i int) bool { return starts[i] > offset })
	if i == 0 {
		return 1
	}
	return i
}

// LineStart returns the raw offset of the first byte of line n.
func (t *Text) LineStart(n int) int {
	return t.rawStarts[t.clampLine(n)-1]
}

// RenderedLineStart returns the rendered offset of the first byte of line n.
func (t *Text) RenderedLineStart(n int) int {
	return t.renderedStarts[t.clampLine(n)-1]
}

// RawLine returns raw line n without its newline.
func (t *Text) RawLine(n int) string {
	return lineText(t.raw, t.rawStarts, t.clampLine(n))
}

// Line returns rendered line n for display, without its line terminator.
func (t *Text) Line(n int) string {
	return strings.TrimSuffix(lineText(t.rendered, t.renderedStarts, t.clampLine(n)), "\r")
}

func lineText(s string, starts []int, n int) string {
	start := starts[n-1]
	end := len(s)
	if n < len(starts) {
		end = starts[n] - 1
	}
	return s[start:end]
}

func (t *Text) clampLine(n int) int {
	return max(1, min(n, len(t.rawStarts)))
}

// RenderOffset maps a raw offset to the rendered offset of the same byte.
// Each tab before offset grows by tabWidth-1 bytes.
func (t *Text) RenderOffset(offset int) int {
	offset = max(0, min(offset, len(t.raw)))
	n := sort.SearchInts(t.tabs, offset)
	return offset + n*(t.tabWidth-1)
}
