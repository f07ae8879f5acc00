package panel

import (
	"strconv"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/prefs"
)

// KeyEscape closes an open panel.
const KeyEscape = "Escape"

// Controller handles panel events. Every mutation replaces the whole record,
// re-renders and injects it before returning, and only then hands the
// record to the store.
type Controller struct {
	ctx  *Context
	open bool
}

// New returns a closed Controller over ctx.
func New(ctx *Context) *Controller {
	return &Controller{ctx: ctx}
}

// Load resolves the record, reflects it into the controls and applies it.
func (c *Controller) Load() prefs.Record {
	r := prefs.Default()
	if c.ctx.Store != nil {
		r = c.ctx.Store.Resolve()
	}

	c.ctx.apply(r)
	c.reflectOpen()

	return r
}

// Set changes one field from a raw control value.
func (c *Controller) Set(field, value string) error {
	r, err := c.ctx.record.With(field, value)
	if err != nil {
		c.ctx.Log.Warn().Err(err).Str("field", field).Msg("ignoring unknown control")
		return err
	}

	c.commit(r)

	return nil
}

// SetFontSize changes the font size.
func (c *Controller) SetFontSize(size int) {
	_ = c.Set(prefs.FieldFontSize, strconv.Itoa(size))
}

// SetDyslexia toggles the dyslexia friendly font.
func (c *Controller) SetDyslexia(on bool) {
	_ = c.Set(prefs.FieldDyslexiaMode, strconv.FormatBool(on))
}

// Reset restores the defaults and clears every persisted copy.
func (c *Controller) Reset() prefs.Record {
	r := prefs.Default()
	if c.ctx.Store != nil {
		r = c.ctx.Store.Reset()
	}

	c.ctx.apply(r)

	return r
}

// Toggle opens a closed panel and closes an open one.
func (c *Controller) Toggle() {
	c.open = !c.open
	c.reflectOpen()
}

// Close closes the panel.
func (c *Controller) Close() {
	if !c.open {
		return
	}

	c.open = false
	c.reflectOpen()
}

// OutsideClick closes the panel on a click that landed outside of it and
// outside of the toggle button.
func (c *Controller) OutsideClick(insidePanel bool) {
	if !insidePanel {
		c.Close()
	}
}

// Key handles a key press on the document.
func (c *Controller) Key(name string) {
	if name == KeyEscape {
		c.Close()
	}
}

// Open reports whether the panel is open.
func (c *Controller) Open() bool {
	return c.open
}

// Record returns a copy of the live record.
func (c *Controller) Record() prefs.Record {
	return c.ctx.record
}

func (c *Controller) commit(r prefs.Record) {
	r = prefs.Sanitize(r)

	c.ctx.apply(r)

	if c.ctx.Store != nil {
		c.ctx.Store.Persist(r)
	}
}

func (c *Controller) reflectOpen() {
	if c.ctx.View != nil {
		c.ctx.View.SetOpen(c.open)
	}
}
