package scan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/specvital/focusguard/pkg/text"
)

// Styler decorates the two colored parts of a context block.
type Styler interface {
	Gutter(s string) string
	Caret(s string) string
}

type plain struct{}

func (plain) Gutter(s string) string { return s }
func (plain) Caret(s string) string  { return s }

const whitespace = " \t\r\n\v\f"

// cells measures display width. Ambiguous-width characters count as one cell
// whatever the locale.
var cells = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// Context renders the lines around rec: the previous line, every spanned
// line followed by a caret row, and the next line. Rows end with "\n".
// A nil styler renders without color.
func Context(t *text.Text, rec Record, pos Position, st Styler) string {
	if st == nil {
		st = plain{}
	}

	total := t.LineCount()
	width := len(strconv.Itoa(total)) + 1

	var b strings.Builder
	row := func(n int, content string) {
		b.WriteString(st.Gutter(fmt.Sprintf("%*d| ", width, n)))
		b.WriteString(content)
		b.WriteByte('\n')
	}
	carets := func(pad, n int) {
		b.WriteString(st.Gutter(strings.Repeat(" ", width) + "| "))
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(st.Caret(strings.Repeat("^", n)))
		b.WriteByte('\n')
	}

	if pos.Line > 1 {
		row(pos.Line-1, t.Line(pos.Line-1))
	}

	rendered := t.Rendered()[rec.RenderedStart:t.RenderOffset(rec.End())]
	for i, part := range strings.Split(rendered, "\n") {
		n := pos.Line + i
		row(n, t.Line(n))

		if i == 0 {
			carets(pos.RenderedColumn, cells.StringWidth(strings.TrimRight(part, whitespace)))
			continue
		}

		trimmed := strings.Trim(part, whitespace)
		if trimmed == "" {
			continue
		}
		lead := part[:len(part)-len(strings.TrimLeft(part, whitespace))]
		carets(cells.StringWidth(lead), cells.StringWidth(trimmed))
	}

	if pos.EndLine < total {
		row(pos.EndLine+1, t.Line(pos.EndLine+1))
	}

	return b.String()
}
