package pattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Characters whose backslash escape inside a JS string means something other
// than the character itself.
const nonLiteralEscapes = "bfnrtvxu0123456789\r\n"

// identChar returns an expression matching c written literally or as a
// unicode escape, the only escapes JavaScript allows in identifiers.
func identChar(c rune) string {
	alts := []string{regexp.QuoteMeta(string(c))}
	alts = append(alts, unicodeEscapes(c)...)
	return group(alts)
}

// keyChar returns an expression matching c inside a string literal delimited
// by quote: literal, backslash-escaped, unicode, hex or octal.
func keyChar(c, quote rune) string {
	var alts []string
	if c != quote && c != '\\' && c != '\n' && c != '\r' {
		alts = append(alts, regexp.QuoteMeta(string(c)))
	}
	if !strings.ContainsRune(nonLiteralEscapes, c) {
		alts = append(alts, `\\`+regexp.QuoteMeta(string(c)))
	}
	alts = append(alts, unicodeEscapes(c)...)
	if c <= 0xff {
		alts = append(alts, `\\x`+hexDigits(fmt.Sprintf("%02x", c)))
	}
	if c <= 0377 {
		alts = append(alts, `\\`+octalDigits(c))
	}
	return group(alts)
}

func unicodeEscapes(c rune) []string {
	var alts []string
	if c <= 0xffff {
		alts = append(alts, `\\u`+hexDigits(fmt.Sprintf("%04x", c)))
	}
	alts = append(alts, `\\u\{0*`+hexDigits(strconv.FormatInt(int64(c), 16))+`\}`)
	return alts
}

// hexDigits makes every hex letter in s match either case.
func hexDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'f' {
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteRune(r - 'a' + 'A')
			b.WriteByte(']')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// octalDigits matches the 1-3 digit octal form of c, with optional
// leading zeros up to three digits.
func octalDigits(c rune) string {
	o := strconv.FormatInt(int64(c), 8)
	if pad := 3 - len(o); pad > 0 {
		return fmt.Sprintf("0{0,%d}%s", pad, o)
	}
	return o
}

func identPattern(seg string) string {
	var b strings.Builder
	for _, c := range seg {
		b.WriteString(identChar(c))
	}
	return b.String()
}

func keyPattern(seg string, quote rune) string {
	var b strings.Builder
	for _, c := range seg {
		b.WriteString(keyChar(c, quote))
	}
	return b.String()
}

// specPattern matches a whole path: the leading identifier, then for each
// further segment either `.ident` or `["key"]` / `['key']`, with whitespace
// and newlines allowed around the separators.
func specPattern(spec Spec) string {
	var b strings.Builder
	b.WriteString(identPattern(spec[0]))
	for _, seg := range spec[1:] {
		b.WriteString(`(?:\s*\.\s*`)
		b.WriteString(identPattern(seg))
		b.WriteString(`|\s*\[\s*(?:"`)
		b.WriteString(keyPattern(seg, '"'))
		b.WriteString(`"|'`)
		b.WriteString(keyPattern(seg, '\''))
		b.WriteString(`')\s*\])`)
	}
	return b.String()
}

func group(alts []string) string {
	return "(?:" + strings.Join(alts, "|") + ")"
}
