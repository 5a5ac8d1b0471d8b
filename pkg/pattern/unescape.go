package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrInvalidEscape is returned by Unescape for an escape that does not name
// a character.
var ErrInvalidEscape = errors.New("pattern: invalid escape")

// escapeRe alternates the escapes in precedence order. Octal escapes stop
// at \377 the way JavaScript reads them.
var escapeRe = regexp.MustCompile(
	`\\u\{([0-9a-fA-F]+)\}` +
		`|\\u([0-9a-fA-F]{4})` +
		`|\\x([0-9a-fA-F]{2})` +
		`|\\([0-3][0-7]{0,2}|[4-7][0-7]?)` +
		`|\\(.)`,
)

var controlEscapes = map[string]string{
	"b": "\b",
	"f": "\f",
	"n": "\n",
	"r": "\r",
	"t": "\t",
	"v": "\v",
}

// Unescape decodes JavaScript string and identifier escapes in a single
// left-to-right pass, so a decoded backslash never starts a new escape.
// A malformed \u or \x escape, or one naming an invalid code point, is kept
// as written and the first one is reported as ErrInvalidEscape.
func Unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var bad []string
	out := escapeRe.ReplaceAllStringFunc(s, func(esc string) string {
		sub := escapeRe.FindStringSubmatch(esc)
		var (
			digits string
			base   = 16
		)
		switch {
		case sub[1] != "":
			digits = sub[1]
		case sub[2] != "":
			digits = sub[2]
		case sub[3] != "":
			digits = sub[3]
		case sub[4] != "":
			digits, base = sub[4], 8
		case sub[5] == "u" || sub[5] == "x":
			bad = append(bad, esc)
			return esc
		default:
			if c, ok := controlEscapes[sub[5]]; ok {
				return c
			}
			return sub[5]
		}

		n, err := strconv.ParseUint(digits, base, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			bad = append(bad, esc)
			return esc
		}
		return string(rune(n))
	})

	if len(bad) > 0 {
		return out, fmt.Errorf("%w %q", ErrInvalidEscape, bad[0])
	}
	return out, nil
}
