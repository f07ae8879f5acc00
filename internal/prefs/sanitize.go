package prefs

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	octets     = regexp.MustCompile(`%[a-fA-F0-9]{2}`) //nolint:gochecknoglobals
	whitespace = regexp.MustCompile(`[\r\n\t ]+`)     //nolint:gochecknoglobals
)

// Sanitize applies the write-time policy to r. String fields are reduced to
// plain text; no enum fallback happens here, see Record.Normalize.
// Sanitize is idempotent.
func Sanitize(r Record) Record {
	r.LineHeight = LineHeight(PlainText(string(r.LineHeight)))
	r.LetterSpacing = LetterSpacing(PlainText(string(r.LetterSpacing)))
	r.Contrast = Contrast(PlainText(string(r.Contrast)))
	r.CursorSize = CursorSize(PlainText(string(r.CursorSize)))
	r.TextAlignment = TextAlignment(PlainText(string(r.TextAlignment)))

	return r
}

// PlainText strips markup from s. Tags are dropped, script and style bodies
// are dropped with them, percent-encoded octets and stray angle brackets are
// removed and runs of whitespace collapse to one space. Invalid UTF-8 yields
// an empty string.
func PlainText(s string) string {
	if s == "" || !utf8.ValidString(s) {
		return ""
	}

	var (
		b    strings.Builder
		skip int
		z    = html.NewTokenizer(strings.NewReader(s))
	)

	for tt := z.Next(); tt != html.ErrorToken; tt = z.Next() {
		switch tt { //nolint:exhaustive
		case html.StartTagToken:
			if isRawText(z) {
				skip++
			}
		case html.EndTagToken:
			if isRawText(z) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Raw())
			}
		}
	}

	out := strings.NewReplacer("<", "", ">", "").Replace(b.String())

	for octets.MatchString(out) {
		out = octets.ReplaceAllString(out, "")
	}

	return strings.TrimSpace(whitespace.ReplaceAllString(out, " "))
}

func isRawText(z *html.Tokenizer) bool {
	name, _ := z.TagName()

	switch atom.Lookup(name) { //nolint:exhaustive
	case atom.Script, atom.Style:
		return true
	default:
		return false
	}
}
