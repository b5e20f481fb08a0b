// Package normalize converts markup-bearing question text into clean
// plain text. Line and paragraph breaks become newlines, every other tag
// is dropped, and a fixed set of named entities is decoded.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// Whitespace inside <br> follows the ECMAScript \s class, which
	// includes no-break and other Unicode spaces.
	lineBreakRegex = regexp.MustCompile(`(?i)<br[\t\n\v\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}]*/?>`)
	paraCloseRegex = regexp.MustCompile(`(?i)</p>`)
	paraOpenRegex  = regexp.MustCompile(`(?i)<p[^>]*>`)
	// An unterminated "<" swallows the rest of the string.
	tagRegex = regexp.MustCompile(`<[^>]*>?`)
)

// entityReplacer decodes in a single left-to-right pass, so "&amp;lt;"
// becomes "&lt;" and not "<".
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&quot;", `"`,
	"&#39;", "'",
	"&lt;", "<",
	"&gt;", ">",
	"&ldquo;", `"`,
	"&rdquo;", `"`,
	"&lsquo;", "'",
	"&rsquo;", "'",
	"&ndash;", "-",
	"&mdash;", "—",
)

// TextNormalizer strips markup from free-text fields.
type TextNormalizer struct{}

// New creates a TextNormalizer.
func New() *TextNormalizer {
	return &TextNormalizer{}
}

// Normalize returns the plain-text form of markup. It never fails.
func (n *TextNormalizer) Normalize(markup string) string {
	return Text(markup)
}

// Text is the package-level form of TextNormalizer.Normalize.
func Text(markup string) string {
	if markup == "" {
		return ""
	}
	text := lineBreakRegex.ReplaceAllLiteralString(markup, "\n")
	text = paraCloseRegex.ReplaceAllLiteralString(text, "\n")
	text = paraOpenRegex.ReplaceAllLiteralString(text, "")
	text = tagRegex.ReplaceAllLiteralString(text, "")
	text = entityReplacer.Replace(text)
	return strings.TrimFunc(text, isTrimSpace)
}

// isTrimSpace matches the characters ECMAScript trim() removes: Unicode
// white space plus U+FEFF, but not U+0085.
func isTrimSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}
