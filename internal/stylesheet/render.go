// Package stylesheet turns a settings record into the CSS text that applies
// it to a page. Render is pure and deterministic, so the same function
// produces the server rendered initial style block and the live block the
// browser client rewrites on every change.
package stylesheet

import (
	"strconv"
	"strings"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/prefs"
)

const (
	// DyslexiaFontFamily is used when dyslexia mode is on. The page is
	// expected to load the Lexend font itself.
	DyslexiaFontFamily = `"Lexend", sans-serif`

	// InheritFontFamily leaves the page's own font untouched.
	InheritFontFamily = "inherit"

	// PanelFontSize and friends pin the panel's own controls.
	PanelFontSize      = "14px"
	PanelFontFamily    = `-apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Oxygen-Sans, Ubuntu, Cantarell, "Helvetica Neue", sans-serif`
	PanelLineHeight    = "1.6"
	PanelLetterSpacing = "0"

	bodySelector = "body"
	important    = " !important"
)

// DefaultPanelSelectors match the panel, everything inside it and the
// floating toggle button.
var DefaultPanelSelectors = []string{"#wpac-panel", "#wpac-panel *", "#wpac-toggle-btn"} //nolint:gochecknoglobals

type options struct {
	cursorAsset string
	selectors   []string
}

// Option customizes Render.
type Option func(*options)

// WithCursorAsset enables the custom cursor rule. When url is empty, or the
// record asks for the normal cursor size, no cursor rule is emitted.
func WithCursorAsset(url string) Option {
	return func(o *options) {
		o.cursorAsset = url
	}
}

// WithPanelSelectors replaces the selectors of the panel exclusion rules.
func WithPanelSelectors(selectors ...string) Option {
	return func(o *options) {
		if len(selectors) > 0 {
			o.selectors = selectors
		}
	}
}

// Render returns the stylesheet for r: the body rule, the optional cursor
// rule and the panel exclusion rules, one rule per line.
func Render(r prefs.Record, opts ...Option) string {
	o := options{selectors: DefaultPanelSelectors}
	for _, opt := range opts {
		opt(&o)
	}

	r = r.Normalize()

	var b strings.Builder

	writePrimary(&b, r)
	writeCursor(&b, r, o.cursorAsset)
	writeExclusion(&b, o.selectors)

	return b.String()
}

// Primary returns only the body rule for r.
func Primary(r prefs.Record) string {
	var b strings.Builder

	writePrimary(&b, r.Normalize())

	return b.String()
}

func writePrimary(b *strings.Builder, r prefs.Record) {
	fontFamily := InheritFontFamily
	if r.DyslexiaMode {
		fontFamily = DyslexiaFontFamily
	}

	decls := []declaration{
		{"font-size", strconv.Itoa(r.FontSize) + "px"},
		{"font-family", fontFamily},
		{"line-height", lookup(LineHeights, r.LineHeight, prefs.LineHeightNormal)},
		{"letter-spacing", lookup(LetterSpacings, r.LetterSpacing, prefs.LetterSpacingNormal)},
	}

	if filter := lookup(ContrastFilters, r.Contrast, prefs.ContrastNormal); filter != "" {
		decls = append(decls, declaration{"filter", filter})
	}

	decls = append(decls, declaration{"text-align", string(r.TextAlignment)})

	writeRule(b, bodySelector, decls)
}

func writeCursor(b *strings.Builder, r prefs.Record, asset string) {
	if asset == "" || r.CursorSize == prefs.CursorSizeNormal {
		return
	}

	writeRule(b, "*", []declaration{{"cursor", "url(" + quote(asset) + "), auto"}})
}

func writeExclusion(b *strings.Builder, selectors []string) {
	selector := strings.Join(selectors, ", ")

	writeRule(b, selector, []declaration{
		{"font-size", PanelFontSize},
		{"font-family", PanelFontFamily},
		{"line-height", PanelLineHeight},
		{"letter-spacing", PanelLetterSpacing},
	})

	writeRule(b, selector, []declaration{{"filter", "none"}})
}

type declaration struct {
	property string
	value    string
}

func writeRule(b *strings.Builder, selector string, decls []declaration) {
	b.WriteString(selector)
	b.WriteString(" {")

	for i, d := range decls {
		if i > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(d.property)
		b.WriteString(": ")
		b.WriteString(d.value)
		b.WriteString(important)
		b.WriteByte(';')
	}

	b.WriteString("}\n")
}

// quote returns s as a double quoted CSS string.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", "", "\r", "", "<", `\3c `)

	return `"` + r.Replace(s) + `"`
}
