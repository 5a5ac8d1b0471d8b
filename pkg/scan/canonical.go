package scan

import (
	"strings"

	"github.com/specvital/focusguard/pkg/pattern"
)

// Canonicalize turns a matched call target into its display form: all
// whitespace removed, escapes decoded to the characters they stand for.
// Escapes that name no character are kept as written.
func Canonicalize(s string) string {
	s = strings.Join(strings.Fields(s), "")
	out, _ := pattern.Unescape(s)
	return out
}
