// Package prefs defines the accessibility settings record shared by the
// server, the settings store and the style synthesizer.
//
// A Record is value data. Every read materializes a fresh Record merged
// against Default, so no storage tier ever holds a reference to another
// tier's copy.
package prefs

import (
	"encoding/json"
)

const (
	// MinFontSize is the smallest font size offered by the panel slider.
	MinFontSize = 16
	// MaxFontSize is the largest font size offered by the panel slider.
	MaxFontSize = 70
	// DefaultFontSize is the font size of a fresh record.
	DefaultFontSize = 16
)

// Field names as they appear on the wire, in cookies and in form posts.
const (
	FieldDyslexiaMode  = "dyslexia_mode"
	FieldFontSize      = "font_size"
	FieldLineHeight    = "line_height"
	FieldLetterSpacing = "letter_spacing"
	FieldContrast      = "contrast"
	FieldCursorSize    = "cursor_size"
	FieldTextAlignment = "text_alignment"
)

// Fields lists every record field in wire order.
var Fields = []string{ //nolint:gochecknoglobals
	FieldDyslexiaMode,
	FieldFontSize,
	FieldLineHeight,
	FieldLetterSpacing,
	FieldContrast,
	FieldCursorSize,
	FieldTextAlignment,
}

// Record is the complete set of accessibility preferences of one visitor.
type Record struct {
	DyslexiaMode  bool          `json:"dyslexia_mode"`
	FontSize      int           `json:"font_size"`
	LineHeight    LineHeight    `json:"line_height"`
	LetterSpacing LetterSpacing `json:"letter_spacing"`
	Contrast      Contrast      `json:"contrast"`
	CursorSize    CursorSize    `json:"cursor_size"`
	TextAlignment TextAlignment `json:"text_alignment"`
}

// Default returns the record of a first-time visitor.
func Default() Record {
	return Record{
		DyslexiaMode:  false,
		FontSize:      DefaultFontSize,
		LineHeight:    LineHeightNormal,
		LetterSpacing: LetterSpacingNormal,
		Contrast:      ContrastNormal,
		CursorSize:    CursorSizeNormal,
		TextAlignment: TextAlignLeft,
	}
}

// Normalize applies the read-time policy: enum values outside their domain
// fall back to the field default and the font size is clamped to the slider
// range. Values on disk are never rewritten by this, so a record written by
// a newer release with an extra enum option survives a round trip.
func (r Record) Normalize() Record {
	r.FontSize = ClampFontSize(r.FontSize)
	r.LineHeight = r.LineHeight.OrDefault()
	r.LetterSpacing = r.LetterSpacing.OrDefault()
	r.Contrast = r.Contrast.OrDefault()
	r.CursorSize = r.CursorSize.OrDefault()
	r.TextAlignment = r.TextAlignment.OrDefault()

	return r
}

// IsDefault reports whether r equals the default record.
func (r Record) IsDefault() bool {
	return r == Default()
}

// JSON returns the wire encoding of r.
func (r Record) JSON() []byte {
	// a Record holds only bools, ints and strings, marshalling cannot fail
	out, _ := json.Marshal(r) //nolint:errchkjson

	return out
}

// ClampFontSize pins size into [MinFontSize, MaxFontSize].
func ClampFontSize(size int) int {
	return min(max(size, MinFontSize), MaxFontSize)
}
