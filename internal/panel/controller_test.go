package panel

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/prefs"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/prefstore"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/stylesheet"
)

type recordingSink struct {
	css  []string
	fail bool
}

func (s *recordingSink) Inject(css string) error {
	if s.fail {
		return errors.New("quota")
	}

	s.css = append(s.css, css)

	return nil
}

func (s *recordingSink) last() string {
	if len(s.css) == 0 {
		return ""
	}

	return s.css[len(s.css)-1]
}

type recordingView struct {
	reflected []prefs.Record
	open      []bool
}

func (v *recordingView) Reflect(r prefs.Record) { v.reflected = append(v.reflected, r) }
func (v *recordingView) SetOpen(open bool)      { v.open = append(v.open, open) }

// orderingStore records the stylesheet that was live when each record was persisted.
type orderingStore struct {
	sink      *recordingSink
	resolved  prefs.Record
	persisted []prefs.Record
	liveCSS   []string
	resets    int
}

func (o *orderingStore) Resolve() prefs.Record { return o.resolved }

func (o *orderingStore) Persist(r prefs.Record) {
	o.persisted = append(o.persisted, r)
	o.liveCSS = append(o.liveCSS, o.sink.last())
}

func (o *orderingStore) Reset() prefs.Record {
	o.resets++

	return prefs.Default()
}

func newTestController(store Persister) (*Controller, *recordingSink, *recordingView) {
	sink := &recordingSink{}
	view := &recordingView{}

	if o, ok := store.(*orderingStore); ok {
		o.sink = sink
	}

	ctx := NewContext(store, sink, view)
	ctx.Log = zerolog.Nop()

	return New(ctx), sink, view
}

func TestLoad_ReflectsAndInjectsResolvedRecord(t *testing.T) {
	resolved := prefs.Default()
	resolved.FontSize = 30
	resolved.Contrast = prefs.ContrastInverted

	store := &orderingStore{resolved: resolved}
	c, sink, view := newTestController(store)

	got := c.Load()

	assert.Equal(t, resolved, got)
	assert.Equal(t, resolved, c.Record())
	require.Len(t, sink.css, 1)
	assert.Equal(t, stylesheet.Render(resolved), sink.css[0])
	assert.Equal(t, []prefs.Record{resolved}, view.reflected)
	assert.Equal(t, []bool{false}, view.open)
	assert.Empty(t, store.persisted)
}

func TestSet_RendersBeforePersisting(t *testing.T) {
	store := &orderingStore{resolved: prefs.Default()}
	c, sink, _ := newTestController(store)
	c.Load()

	require.NoError(t, c.Set(prefs.FieldLineHeight, "relaxed"))
	c.SetFontSize(24)
	c.SetDyslexia(true)

	want := prefs.Default()
	want.LineHeight = prefs.LineHeightRelaxed
	want.FontSize = 24
	want.DyslexiaMode = true

	assert.Equal(t, want, c.Record())
	require.Len(t, store.persisted, 3)
	assert.Equal(t, want, store.persisted[2])

	for i, r := range store.persisted {
		assert.Equal(t, stylesheet.Render(r), store.liveCSS[i], "edit %d persisted before its styles were live", i)
	}

	assert.Contains(t, sink.last(), `font-family: "Lexend", sans-serif !important`)
	assert.Contains(t, sink.last(), "line-height: 2 !important")
}

func TestSet_EachEditSubmitsFullRecord(t *testing.T) {
	store := &orderingStore{resolved: prefs.Default()}
	c, _, _ := newTestController(store)
	c.Load()

	require.NoError(t, c.Set(prefs.FieldContrast, "high"))
	require.NoError(t, c.Set(prefs.FieldTextAlignment, "center"))

	require.Len(t, store.persisted, 2)
	assert.Equal(t, prefs.ContrastHigh, store.persisted[1].Contrast)
	assert.Equal(t, prefs.TextAlignCenter, store.persisted[1].TextAlignment)
}

func TestSet_SanitizesControlValues(t *testing.T) {
	store := &orderingStore{resolved: prefs.Default()}
	c, _, _ := newTestController(store)
	c.Load()

	require.NoError(t, c.Set(prefs.FieldLetterSpacing, "<i>wide</i>"))

	assert.Equal(t, prefs.LetterSpacingWide, c.Record().LetterSpacing)
}

func TestSet_UnknownField(t *testing.T) {
	store := &orderingStore{resolved: prefs.Default()}
	c, sink, _ := newTestController(store)
	c.Load()

	err := c.Set("background", "red")

	require.ErrorIs(t, err, prefs.ErrUnknownField)
	assert.Len(t, sink.css, 1)
	assert.Empty(t, store.persisted)
}

func TestReset(t *testing.T) {
	resolved := prefs.Default()
	resolved.FontSize = 50

	store := &orderingStore{resolved: resolved}
	c, sink, _ := newTestController(store)
	c.Load()

	got := c.Reset()

	assert.Equal(t, prefs.Default(), got)
	assert.Equal(t, prefs.Default(), c.Record())
	assert.Equal(t, 1, store.resets)
	assert.Equal(t, stylesheet.Render(prefs.Default()), sink.last())
}

func TestVisibility(t *testing.T) {
	testCases := []struct {
		name   string
		events func(c *Controller)
		open   bool
	}{
		{name: "starts closed", events: func(*Controller) {}, open: false},
		{name: "toggle opens", events: func(c *Controller) { c.Toggle() }, open: true},
		{name: "toggle twice closes", events: func(c *Controller) { c.Toggle(); c.Toggle() }, open: false},
		{name: "escape closes", events: func(c *Controller) { c.Toggle(); c.Key(KeyEscape) }, open: false},
		{name: "other keys are ignored", events: func(c *Controller) { c.Toggle(); c.Key("Enter") }, open: true},
		{name: "outside click closes", events: func(c *Controller) { c.Toggle(); c.OutsideClick(false) }, open: false},
		{name: "inside click keeps open", events: func(c *Controller) { c.Toggle(); c.OutsideClick(true) }, open: true},
		{name: "close is idempotent", events: func(c *Controller) { c.Close(); c.Close() }, open: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, _, view := newTestController(&orderingStore{resolved: prefs.Default()})

			tc.events(c)

			assert.Equal(t, tc.open, c.Open())

			if len(view.open) > 0 {
				assert.Equal(t, tc.open, view.open[len(view.open)-1])
			}
		})
	}
}

func TestSinkFailureIsNotFatal(t *testing.T) {
	store := &orderingStore{resolved: prefs.Default()}
	c, sink, _ := newTestController(store)
	sink.fail = true

	c.Load()
	c.SetFontSize(40)

	assert.Equal(t, 40, c.Record().FontSize)
	assert.Len(t, store.persisted, 1)
}

func TestWithSettingsStore(t *testing.T) {
	cache := &mapCache{data: map[string][]byte{}}
	store := prefstore.New(cache, nil, prefstore.WithLogger(zerolog.Nop()))

	sink := &recordingSink{}
	ctx := NewContext(store, sink, nil, stylesheet.WithCursorAsset("/static/img/cursor.svg"))
	ctx.Log = zerolog.Nop()

	c := New(ctx)
	c.Load()

	require.NoError(t, c.Set(prefs.FieldCursorSize, "large"))

	reloaded := New(NewContext(store, sink, nil))
	assert.Equal(t, prefs.CursorSizeLarge, reloaded.Load().CursorSize)

	assert.Contains(t, sink.css[1], `cursor: url("/static/img/cursor.svg"), auto`)
}

type mapCache struct {
	data map[string][]byte
}

func (m *mapCache) Get(key string) ([]byte, error) { return m.data[key], nil }

func (m *mapCache) Set(key string, val []byte, _ time.Duration) error {
	m.data[key] = val

	return nil
}

func (m *mapCache) Delete(key string) error {
	delete(m.data, key)

	return nil
}
