// Package pattern compiles forbidden call paths such as "describe.only" or
// "it['only']" into a single matcher that understands every way JavaScript
// lets the same identifier or string key be spelled.
package pattern

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidPath is returned when a forbidden path cannot be parsed.
var ErrInvalidPath = errors.New("pattern: invalid path")

// Spec is an ordered list of member-access segments. "describe.only" is
// ["describe", "only"]; a bare identifier is a single-segment Spec.
type Spec []string

// Parse reads a dotted or bracketed path into a Spec.
// Bracket keys may use single or double quotes and JavaScript escapes.
func Parse(path string) (Spec, error) {
	rest := strings.TrimSpace(path)
	if rest == "" {
		return nil, invalid(path, "empty path")
	}

	end := identEnd(rest)
	if end == 0 {
		return nil, invalid(path, "missing leading identifier")
	}
	spec := Spec{rest[:end]}
	rest = rest[end:]

	for rest != "" {
		switch rest[0] {
		case '.':
			rest = rest[1:]
			end := identEnd(rest)
			if end == 0 {
				return nil, invalid(path, "empty segment after '.'")
			}
			spec = append(spec, rest[:end])
			rest = rest[end:]
		case '[':
			key, n, err := readKey(rest)
			if err != nil {
				return nil, invalid(path, err.Error())
			}
			spec = append(spec, key)
			rest = rest[n:]
		default:
			return nil, invalid(path, fmt.Sprintf("unexpected %q", rest[0]))
		}
	}

	return spec, nil
}

// MustParse is like Parse but panics on error.
func MustParse(path string) Spec {
	spec, err := Parse(path)
	if err != nil {
		panic(err)
	}
	return spec
}

// String renders the Spec in canonical form: dots for identifier segments,
// single-quoted brackets for everything else.
func (s Spec) String() string {
	if len(s) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(s[0])
	for _, seg := range s[1:] {
		if isIdentifier(seg) {
			b.WriteByte('.')
			b.WriteString(seg)
			continue
		}
		b.WriteString("['")
		b.WriteString(strings.ReplaceAll(seg, `'`, `\'`))
		b.WriteString("']")
	}
	return b.String()
}

func invalid(path, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidPath, path, reason)
}

func identEnd(s string) int {
	if i := strings.IndexAny(s, ".[]'\"()` \t\r\n"); i >= 0 {
		return i
	}
	return len(s)
}

// readKey consumes a bracket access like ['only'] or [ "only" ] from the
// start of s and returns the unquoted key and the number of bytes consumed.
func readKey(s string) (string, int, error) {
	i := 1
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	if i >= len(s) || (s[i] != '\'' && s[i] != '"') {
		return "", 0, errors.New("bracket key must be a quoted string")
	}
	quote := s[i]
	start := i
	i++
	for i < len(s) && s[i] != quote {
		if s[i] == '\\' {
			i++
		}
		i++
	}
	if i >= len(s) {
		return "", 0, errors.New("unterminated string in bracket key")
	}
	literal := s[start : i+1]
	i++
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	if i >= len(s) || s[i] != ']' {
		return "", 0, errors.New("missing ']' after bracket key")
	}

	key, err := Unescape(literal[1 : len(literal)-1])
	if err != nil {
		return "", 0, err
	}
	if key == "" {
		return "", 0, errors.New("empty bracket key")
	}
	return key, i + 1, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
