// Package domain defines the core types shared by the checker, the reporter
// and the CLI.
package domain

import (
	"path/filepath"
	"strings"
)

// Language represents a programming language.
type Language string

// Languages whose test files are checked.
const (
	LanguageUnknown    Language = ""
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
)

// LanguageOf maps a file path to its language by extension.
func LanguageOf(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	case ".ts", ".tsx", ".mts", ".cts":
		return LanguageTypeScript
	default:
		return LanguageUnknown
	}
}
