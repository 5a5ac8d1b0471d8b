package domain

import "fmt"

// Diagnostic is one forbidden call found in a file.
type Diagnostic struct {
	// File is the path as reported, relative to the base path when one is set.
	File string `json:"file"`
	// Str is the matched call target with escapes decoded (e.g. "it['only']").
	Str string `json:"str"`
	// Line is the 1-based line of the first matched token.
	Line int `json:"line"`
	// Column is the 1-based column of the first matched token in the raw text.
	Column int `json:"column"`
	// Context is the rendered source excerpt with caret underlines.
	Context string `json:"context"`
	// Status is the family of the pattern that matched.
	Status TestStatus `json:"status"`
}

// Location formats the diagnostic position as file:line:column.
func (d Diagnostic) Location() string {
	return fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
}
