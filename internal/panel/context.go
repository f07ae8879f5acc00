// Package panel wires the settings panel controls to the style synthesizer
// and the settings store.
package panel

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/prefs"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/stylesheet"
)

// StyleSink receives the rendered stylesheet, typically the live style
// element of the page.
type StyleSink interface {
	Inject(css string) error
}

// Persister resolves and persists the record. *prefstore.Store satisfies it.
type Persister interface {
	Resolve() prefs.Record
	Persist(r prefs.Record)
	Reset() prefs.Record
}

// View reflects controller state into the panel markup.
type View interface {
	Reflect(r prefs.Record)
	SetOpen(open bool)
}

// Context is the single owner of the live record and the style sink of a
// page. It is created once at startup and handed to the Controller.
type Context struct {
	Store Persister
	Sink  StyleSink
	View  View
	Style []stylesheet.Option
	Log   zerolog.Logger

	record prefs.Record
}

// NewContext returns a Context holding the default record.
func NewContext(store Persister, sink StyleSink, view View, style ...stylesheet.Option) *Context {
	return &Context{
		Store:  store,
		Sink:   sink,
		View:   view,
		Style:  style,
		Log:    log.Logger.With().Str("component", "panel").Logger(),
		record: prefs.Default(),
	}
}

// apply replaces the live record, renders it and injects the result.
func (c *Context) apply(r prefs.Record) {
	c.record = r

	if c.View != nil {
		c.View.Reflect(r)
	}

	if c.Sink == nil {
		return
	}

	if err := c.Sink.Inject(stylesheet.Render(r, c.Style...)); err != nil {
		c.Log.Error().Err(err).Msg("can't inject accessibility styles")
	}
}
