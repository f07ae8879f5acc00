package prefs

import (
	"slices"
)

// LineHeight selects the body line height.
type LineHeight string

// LetterSpacing selects the body letter spacing.
type LetterSpacing string

// Contrast selects the page contrast filter.
type Contrast string

// CursorSize selects the cursor size. It is stored but only rendered when a
// custom cursor asset is configured.
type CursorSize string

// TextAlignment selects the body text alignment.
type TextAlignment string

const (
	LineHeightTight   LineHeight = "tight"
	LineHeightNormal  LineHeight = "normal"
	LineHeightRelaxed LineHeight = "relaxed"

	LetterSpacingTight     LetterSpacing = "tight"
	LetterSpacingNormal    LetterSpacing = "normal"
	LetterSpacingWide      LetterSpacing = "wide"
	LetterSpacingExtraWide LetterSpacing = "extra-wide"

	ContrastLow      Contrast = "low"
	ContrastNormal   Contrast = "normal"
	ContrastHigh     Contrast = "high"
	ContrastInverted Contrast = "inverted"

	CursorSizeSmall  CursorSize = "small"
	CursorSizeNormal CursorSize = "normal"
	CursorSizeLarge  CursorSize = "large"

	TextAlignLeft    TextAlignment = "left"
	TextAlignCenter  TextAlignment = "center"
	TextAlignRight   TextAlignment = "right"
	TextAlignJustify TextAlignment = "justify"
)

// Enum domains in the order the panel lists them.
var (
	LineHeights    = []LineHeight{LineHeightTight, LineHeightNormal, LineHeightRelaxed}                                      //nolint:gochecknoglobals
	LetterSpacings = []LetterSpacing{LetterSpacingTight, LetterSpacingNormal, LetterSpacingWide, LetterSpacingExtraWide}    //nolint:gochecknoglobals
	Contrasts      = []Contrast{ContrastLow, ContrastNormal, ContrastHigh, ContrastInverted}                                //nolint:gochecknoglobals
	CursorSizes    = []CursorSize{CursorSizeSmall, CursorSizeNormal, CursorSizeLarge}                                       //nolint:gochecknoglobals
	TextAlignments = []TextAlignment{TextAlignLeft, TextAlignCenter, TextAlignRight, TextAlignJustify}                      //nolint:gochecknoglobals
)

func orDefault[T ~string](v T, domain []T, def T) T {
	if slices.Contains(domain, v) {
		return v
	}

	return def
}

// Valid reports whether v is part of the domain.
func (v LineHeight) Valid() bool { return slices.Contains(LineHeights, v) }

// OrDefault returns v, or LineHeightNormal when v is unknown.
func (v LineHeight) OrDefault() LineHeight { return orDefault(v, LineHeights, LineHeightNormal) }

// Valid reports whether v is part of the domain.
func (v LetterSpacing) Valid() bool { return slices.Contains(LetterSpacings, v) }

// OrDefault returns v, or LetterSpacingNormal when v is unknown.
func (v LetterSpacing) OrDefault() LetterSpacing {
	return orDefault(v, LetterSpacings, LetterSpacingNormal)
}

// Valid reports whether v is part of the domain.
func (v Contrast) Valid() bool { return slices.Contains(Contrasts, v) }

// OrDefault returns v, or ContrastNormal when v is unknown.
func (v Contrast) OrDefault() Contrast { return orDefault(v, Contrasts, ContrastNormal) }

// Valid reports whether v is part of the domain.
func (v CursorSize) Valid() bool { return slices.Contains(CursorSizes, v) }

// OrDefault returns v, or CursorSizeNormal when v is unknown.
func (v CursorSize) OrDefault() CursorSize { return orDefault(v, CursorSizes, CursorSizeNormal) }

// Valid reports whether v is part of the domain.
func (v TextAlignment) Valid() bool { return slices.Contains(TextAlignments, v) }

// OrDefault returns v, or TextAlignLeft when v is unknown.
func (v TextAlignment) OrDefault() TextAlignment {
	return orDefault(v, TextAlignments, TextAlignLeft)
}
