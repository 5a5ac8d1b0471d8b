package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		tabWidth int
		want     string
	}{
		{name: "no tabs", raw: "fit();", tabWidth: 4, want: "fit();"},
		{name: "default width", raw: "\tfit();", tabWidth: 4, want: "    fit();"},
		{name: "fixed run not tab stop", raw: "ab\tc", tabWidth: 4, want: "ab    c"},
		{name: "clamped low", raw: "\tx", tabWidth: 0, want: "  x"},
		{name: "clamped high", raw: "\tx", tabWidth: 20, want: "        x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			txt := New(tt.raw, tt.tabWidth)
			assert.Equal(t, tt.raw, txt.Raw())
			assert.Equal(t, tt.want, txt.Rendered())
		})
	}
}

func TestText_Lines(t *testing.T) {
	t.Parallel()

	txt := New("one\n\ttwo\r\nthree", 2)

	require.Equal(t, 3, txt.LineCount())
	assert.Equal(t, "one", txt.Line(1))
	assert.Equal(t, "  two", txt.Line(2))
	assert.Equal(t, "\ttwo\r", txt.RawLine(2))
	assert.Equal(t, "three", txt.Line(3))

	assert.Equal(t, 0, txt.LineStart(1))
	assert.Equal(t, 4, txt.LineStart(2))
	assert.Equal(t, 10, txt.LineStart(3))
	assert.Equal(t, 4, txt.RenderedLineStart(2))
	assert.Equal(t, 11, txt.RenderedLineStart(3))

	// out-of-range lines clamp
	assert.Equal(t, "one", txt.Line(0))
	assert.Equal(t, "three", txt.Line(99))
}

func TestText_LineAt(t *testing.T) {
	t.Parallel()

	raw := "iit();\nddescribe();\nfit();"
	txt := New(raw, 4)

	tests := []struct {
		offset int
		want   int
	}{
		{offset: -1, want: 1},
		{offset: 0, want: 1},
		{offset: 6, want: 1}, // the newline belongs to line 1
		{offset: 7, want: 2},
		{offset: strings.Index(raw, "fit"), want: 3},
		{offset: len(raw), want: 3},
		{offset: len(raw) + 10, want: 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, txt.LineAt(tt.offset), "offset %d", tt.offset)
	}
}

func TestText_EmptyAndTrailingNewline(t *testing.T) {
	t.Parallel()

	empty := New("", 4)
	assert.Equal(t, 1, empty.LineCount())
	assert.Equal(t, "", empty.Line(1))

	trailing := New("fit();\n", 4)
	assert.Equal(t, 2, trailing.LineCount())
	assert.Equal(t, "", trailing.Line(2))
}

func TestText_RenderOffset(t *testing.T) {
	t.Parallel()

	raw := "\tfoo\n\t\tfit();"
	txt := New(raw, 4)

	raws := []int{0, 1, strings.Index(raw, "fit"), len(raw)}
	for _, off := range raws {
		r := txt.RenderOffset(off)
		assert.Equal(t, raw[off:], strings.ReplaceAll(txt.Rendered()[r:], "    ", "\t"), "offset %d", off)
	}

	fit := strings.Index(raw, "fit")
	assert.Equal(t, fit+3*3, txt.RenderOffset(fit))
	assert.Equal(t, 2, txt.LineAt(fit))
}

func TestTabWidth(t *testing.T) {
	t.Parallel()

	t.Run("ClampTabWidth", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 2, ClampTabWidth(-3))
		assert.Equal(t, 2, ClampTabWidth(1))
		assert.Equal(t, 5, ClampTabWidth(5))
		assert.Equal(t, 8, ClampTabWidth(9))
	})

	t.Run("ParseTabWidth", func(t *testing.T) {
		t.Parallel()

		tests := map[string]int{
			"":      DefaultTabWidth,
			"abc":   DefaultTabWidth,
			"NaN":   DefaultTabWidth,
			"6":     6,
			" 3 ":   3,
			"1":     2,
			"100":   8,
			"6.7":   6,
			"-1e10": 2,
		}
		for in, want := range tests {
			assert.Equal(t, want, ParseTabWidth(in), "input %q", in)
		}
	})

	t.Run("TabWidthFrom", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			in   any
			want int
		}{
			{in: 3, want: 3},
			{in: int64(7), want: 7},
			{in: int64(1 << 40), want: 8},
			{in: uint64(5), want: 5},
			{in: 2.9, want: 2},
			{in: 12.0, want: 8},
			{in: "5", want: 5},
			{in: "wide", want: DefaultTabWidth},
			{in: true, want: DefaultTabWidth},
			{in: nil, want: DefaultTabWidth},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, TabWidthFrom(tt.in), "input %#v", tt.in)
		}
	})
}
