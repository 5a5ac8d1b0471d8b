// Package style colors diagnostic output. Whether color is used is decided
// by the caller; nothing here inspects the terminal or the environment.
package style

import "github.com/fatih/color"

// Palette colors the line-number gutter gray and the caret underline red.
// The zero value and a nil *Palette render plain text.
type Palette struct {
	gray *color.Color
	red  *color.Color
}

// New returns a Palette that emits ANSI codes when enabled is true.
func New(enabled bool) *Palette {
	if !enabled {
		return &Palette{}
	}
	gray := color.New(color.FgHiBlack)
	gray.EnableColor()
	red := color.New(color.FgRed)
	red.EnableColor()
	return &Palette{gray: gray, red: red}
}

// Enabled reports whether p emits color codes.
func (p *Palette) Enabled() bool {
	return p != nil && p.gray != nil
}

func (p *Palette) Gutter(s string) string {
	if !p.Enabled() {
		return s
	}
	return p.gray.Sprint(s)
}

func (p *Palette) Caret(s string) string {
	if !p.Enabled() || s == "" {
		return s
	}
	return p.red.Sprint(s)
}
