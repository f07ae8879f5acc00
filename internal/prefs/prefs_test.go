package prefs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	r := Default()

	assert.False(t, r.DyslexiaMode)
	assert.Equal(t, 16, r.FontSize)
	assert.Equal(t, LineHeightNormal, r.LineHeight)
	assert.Equal(t, LetterSpacingNormal, r.LetterSpacing)
	assert.Equal(t, ContrastNormal, r.Contrast)
	assert.Equal(t, CursorSizeNormal, r.CursorSize)
	assert.Equal(t, TextAlignLeft, r.TextAlignment)
	assert.True(t, r.IsDefault())
}

func TestDecode_FillsAbsentFieldsFromDefaults(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  Record
	}{
		{
			name:  "empty input",
			input: "",
			want:  Default(),
		},
		{
			name:  "json null",
			input: "null",
			want:  Default(),
		},
		{
			name:  "empty object",
			input: "{}",
			want:  Default(),
		},
		{
			name:  "font size only",
			input: `{"font_size":24}`,
			want: func() Record {
				r := Default()
				r.FontSize = 24

				return r
			}(),
		},
		{
			name:  "string encoded values from a form post",
			input: `{"dyslexia_mode":"true","font_size":"32","contrast":"high"}`,
			want: func() Record {
				r := Default()
				r.DyslexiaMode = true
				r.FontSize = 32
				r.Contrast = ContrastHigh

				return r
			}(),
		},
		{
			name:  "uncoercible values are absent",
			input: `{"dyslexia_mode":"maybe","font_size":"big","line_height":null}`,
			want:  Default(),
		},
		{
			name:  "unknown enum kept for render time fallback",
			input: `{"line_height":"huge"}`,
			want: func() Record {
				r := Default()
				r.LineHeight = "huge"

				return r
			}(),
		},
		{
			name:  "unknown keys ignored",
			input: `{"font_family":"comic","font_size":20.0}`,
			want: func() Record {
				r := Default()
				r.FontSize = 20

				return r
			}(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Decode([]byte(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.Merge())
		})
	}
}

func TestDecode_Coercion(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		dyslexia bool
		fontSize int
	}{
		{name: "checkbox on", input: `{"dyslexia_mode":"on"}`, dyslexia: true, fontSize: DefaultFontSize},
		{name: "yes", input: `{"dyslexia_mode":"Yes"}`, dyslexia: true, fontSize: DefaultFontSize},
		{name: "off", input: `{"dyslexia_mode":"off"}`, dyslexia: false, fontSize: DefaultFontSize},
		{name: "leading zero is decimal", input: `{"font_size":"010"}`, fontSize: 10},
		{name: "decimal string truncated", input: `{"font_size":"24.9"}`, fontSize: 24},
		{name: "hex string is absent", input: `{"font_size":"0x20"}`, fontSize: DefaultFontSize},
		{name: "nan string is absent", input: `{"font_size":"NaN"}`, fontSize: DefaultFontSize},
		{name: "huge number is bounded", input: `{"font_size":1e30}`, fontSize: fontSizeBound},
		{name: "huge negative number is bounded", input: `{"font_size":-1e30}`, fontSize: -fontSizeBound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Decode([]byte(tc.input))
			require.NoError(t, err)

			r := p.Merge()
			assert.Equal(t, tc.dyslexia, r.DyslexiaMode)
			assert.Equal(t, tc.fontSize, r.FontSize)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, input := range []string{"{not valid", `"a string"`, "[1,2]", "42"} {
		t.Run(input, func(t *testing.T) {
			p, err := Decode([]byte(input))
			require.Error(t, err)
			require.ErrorIs(t, err, ErrMalformed)
			assert.True(t, p.IsEmpty())
		})
	}
}

func TestNormalize(t *testing.T) {
	r := Record{
		DyslexiaMode:  true,
		FontSize:      200,
		LineHeight:    "huge",
		LetterSpacing: "<b>wide</b>",
		Contrast:      "",
		CursorSize:    "giant",
		TextAlignment: "start",
	}

	got := r.Normalize()

	assert.True(t, got.DyslexiaMode)
	assert.Equal(t, MaxFontSize, got.FontSize)
	assert.Equal(t, LineHeightNormal, got.LineHeight)
	assert.Equal(t, LetterSpacingNormal, got.LetterSpacing)
	assert.Equal(t, ContrastNormal, got.Contrast)
	assert.Equal(t, CursorSizeNormal, got.CursorSize)
	assert.Equal(t, TextAlignLeft, got.TextAlignment)

	// the receiver is a value, the original is untouched
	assert.Equal(t, LineHeight("huge"), r.LineHeight)
}

func TestClampFontSize(t *testing.T) {
	assert.Equal(t, 16, ClampFontSize(0))
	assert.Equal(t, 16, ClampFontSize(-5))
	assert.Equal(t, 24, ClampFontSize(24))
	assert.Equal(t, 70, ClampFontSize(71))
}

func TestEnumDomains(t *testing.T) {
	for _, v := range LineHeights {
		assert.True(t, v.Valid(), v)
		assert.Equal(t, v, v.OrDefault())
	}

	for _, v := range LetterSpacings {
		assert.True(t, v.Valid(), v)
	}

	for _, v := range Contrasts {
		assert.True(t, v.Valid(), v)
	}

	for _, v := range CursorSizes {
		assert.True(t, v.Valid(), v)
	}

	for _, v := range TextAlignments {
		assert.True(t, v.Valid(), v)
	}

	assert.False(t, LineHeight("loose").Valid())
	assert.False(t, Contrast("HIGH").Valid())
	assert.True(t, Default().Normalize().IsDefault())
}

func TestPlainText(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"normal", "normal"},
		{"  wide \n", "wide"},
		{"<b>high</b>", "high"},
		{"<script>alert(1)</script>center", "center"},
		{"extra-\t\twide", "extra- wide"},
		{"a%3Cb", "ab"},
		{"<<b>x", "x"},
		{"&amp;", "&amp;"},
		{"\xff\xfe", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := PlainText(tc.input)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, PlainText(got), "PlainText must be idempotent")
		})
	}
}

func TestSanitize_KeepsUnknownEnumsAndIsIdempotent(t *testing.T) {
	r := Record{
		DyslexiaMode:  true,
		FontSize:      90,
		LineHeight:    "<i>relaxed</i>",
		LetterSpacing: "super-wide",
		Contrast:      ContrastInverted,
		CursorSize:    CursorSizeLarge,
		TextAlignment: " justify ",
	}

	once := Sanitize(r)

	assert.Equal(t, LineHeightRelaxed, once.LineHeight)
	assert.Equal(t, LetterSpacing("super-wide"), once.LetterSpacing)
	assert.Equal(t, TextAlignJustify, once.TextAlignment)
	assert.Equal(t, 90, once.FontSize, "no clamp at write time")
	assert.Equal(t, once, Sanitize(once))
}

func TestRecord_With(t *testing.T) {
	r := Default()

	got, err := r.With(FieldFontSize, "24")
	require.NoError(t, err)
	assert.Equal(t, 24, got.FontSize)

	got, err = got.With(FieldDyslexiaMode, "true")
	require.NoError(t, err)
	assert.True(t, got.DyslexiaMode)

	got, err = got.With(FieldTextAlignment, "center")
	require.NoError(t, err)
	assert.Equal(t, TextAlignCenter, got.TextAlignment)

	got, err = got.With(FieldFontSize, "not a number")
	require.NoError(t, err)
	assert.Equal(t, 24, got.FontSize)

	_, err = got.With("font_family", "arial")
	require.ErrorIs(t, err, ErrUnknownField)

	// the original record is value data
	assert.True(t, r.IsDefault())
}

func TestRecord_JSON(t *testing.T) {
	r := Default()
	r.LetterSpacing = LetterSpacingExtraWide

	var raw map[string]any
	require.NoError(t, json.Unmarshal(r.JSON(), &raw))

	for _, field := range Fields {
		assert.Contains(t, raw, field)
	}

	assert.Equal(t, "extra-wide", raw[FieldLetterSpacing])

	values := r.Values()
	assert.Equal(t, "16", values[FieldFontSize])
	assert.Equal(t, "false", values[FieldDyslexiaMode])
}

func TestEnvelope(t *testing.T) {
	env := Success(Default())
	assert.True(t, env.Success)

	p, err := Decode(env.Data)
	require.NoError(t, err)
	assert.Equal(t, Default(), p.Merge())

	fail := Failure("nope")
	assert.False(t, fail.Success)
	assert.JSONEq(t, `"nope"`, string(fail.Data))
}
