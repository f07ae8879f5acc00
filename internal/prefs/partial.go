package prefs

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Partial is a possibly incomplete settings record as read from one tier.
// A nil field is absent and is filled from Default by Merge.
type Partial struct {
	DyslexiaMode  *bool
	FontSize      *int
	LineHeight    *LineHeight
	LetterSpacing *LetterSpacing
	Contrast      *Contrast
	CursorSize    *CursorSize
	TextAlignment *TextAlignment
}

// Decode parses a JSON settings object leniently. Fields that cannot be
// coerced to their type are left absent. A JSON null or empty input decodes
// to an empty Partial; anything that is not a JSON object is ErrMalformed.
func Decode(data []byte) (Partial, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Partial{}, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Partial{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return FromMap(raw), nil
}

// FromMap builds a Partial from loosely typed values, as found in decoded
// JSON or form posts. Booleans accept "1", "true", 1 and friends; the font
// size accepts numbers and numeric strings.
func FromMap(raw map[string]any) Partial {
	var p Partial

	if v, ok := raw[FieldDyslexiaMode]; ok && v != nil {
		if b, err := toBool(v); err == nil {
			p.DyslexiaMode = &b
		}
	}

	if v, ok := raw[FieldFontSize]; ok && v != nil {
		if n, err := toInt(v); err == nil {
			p.FontSize = &n
		}
	}

	p.LineHeight = enumField[LineHeight](raw, FieldLineHeight)
	p.LetterSpacing = enumField[LetterSpacing](raw, FieldLetterSpacing)
	p.Contrast = enumField[Contrast](raw, FieldContrast)
	p.CursorSize = enumField[CursorSize](raw, FieldCursorSize)
	p.TextAlignment = enumField[TextAlignment](raw, FieldTextAlignment)

	return p
}

// FromForm builds a Partial from form values keyed by field name.
func FromForm(values map[string]string) Partial {
	raw := make(map[string]any, len(values))
	for k, v := range values {
		raw[k] = v
	}

	return FromMap(raw)
}

// Merge completes p field by field from Default.
func (p Partial) Merge() Record {
	r := Default()

	if p.DyslexiaMode != nil {
		r.DyslexiaMode = *p.DyslexiaMode
	}

	if p.FontSize != nil {
		r.FontSize = *p.FontSize
	}

	if p.LineHeight != nil {
		r.LineHeight = *p.LineHeight
	}

	if p.LetterSpacing != nil {
		r.LetterSpacing = *p.LetterSpacing
	}

	if p.Contrast != nil {
		r.Contrast = *p.Contrast
	}

	if p.CursorSize != nil {
		r.CursorSize = *p.CursorSize
	}

	if p.TextAlignment != nil {
		r.TextAlignment = *p.TextAlignment
	}

	return r
}

// IsEmpty reports whether no field is present.
func (p Partial) IsEmpty() bool {
	return p == Partial{}
}

// fontSizeBound keeps absurd numeric input representable as an int.
const fontSizeBound = 1 << 16

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case float64:
		return b != 0, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "on", "yes":
			return true, nil
		case "off", "no":
			return false, nil
		}

		return cast.ToBoolE(strings.TrimSpace(b))
	default:
		return cast.ToBoolE(v)
	}
}

// toInt truncates numbers and base 10 numeric strings and bounds the result
// to ±fontSizeBound.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		return boundedInt(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || strings.ContainsAny(n, "xXpP") {
			return 0, fmt.Errorf("%w: font size %q", ErrMalformed, n)
		}

		return boundedInt(f)
	default:
		return cast.ToIntE(v)
	}
}

func boundedInt(f float64) (int, error) {
	if math.IsNaN(f) {
		return 0, fmt.Errorf("%w: font size is not a number", ErrMalformed)
	}

	return int(math.Max(-fontSizeBound, math.Min(fontSizeBound, math.Trunc(f)))), nil
}

func enumField[T ~string](raw map[string]any, field string) *T {
	v, ok := raw[field]
	if !ok || v == nil {
		return nil
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return nil
	}

	out := T(s)

	return &out
}
