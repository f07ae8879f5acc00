package prefs

import (
	"strconv"

	"github.com/pkg/errors"
)

// With returns a copy of r with one field replaced by a raw control value.
// Values are coerced the same way a form post is; a value that cannot be
// coerced leaves the field unchanged.
func (r Record) With(field, value string) (Record, error) {
	p := FromForm(map[string]string{field: value})

	switch field {
	case FieldDyslexiaMode:
		if p.DyslexiaMode != nil {
			r.DyslexiaMode = *p.DyslexiaMode
		}
	case FieldFontSize:
		if p.FontSize != nil {
			r.FontSize = *p.FontSize
		}
	case FieldLineHeight:
		r.LineHeight = *p.LineHeight
	case FieldLetterSpacing:
		r.LetterSpacing = *p.LetterSpacing
	case FieldContrast:
		r.Contrast = *p.Contrast
	case FieldCursorSize:
		r.CursorSize = *p.CursorSize
	case FieldTextAlignment:
		r.TextAlignment = *p.TextAlignment
	default:
		return r, errors.Wrapf(ErrUnknownField, "field %q", field)
	}

	return r, nil
}

// Values returns the record as raw control values keyed by field name.
func (r Record) Values() map[string]string {
	return map[string]string{
		FieldDyslexiaMode:  strconv.FormatBool(r.DyslexiaMode),
		FieldFontSize:      strconv.Itoa(r.FontSize),
		FieldLineHeight:    string(r.LineHeight),
		FieldLetterSpacing: string(r.LetterSpacing),
		FieldContrast:      string(r.Contrast),
		FieldCursorSize:    string(r.CursorSize),
		FieldTextAlignment: string(r.TextAlignment),
	}
}
