//go:build js && wasm

package main

import (
	"strconv"
	"syscall/js"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/prefs"
)

const (
	dataID          = "wpac-data"
	panelID         = "wpac-panel"
	toggleID        = "wpac-toggle-btn"
	resetID         = "wpac-reset"
	initialStyleID  = "wp-accessibility-controls-css"
	dynamicStyleID  = "wpac-dynamic-styles"
	controlIDPrefix = "wpac-"
)

func byID(id string) js.Value {
	return js.Global().Get("document").Call("getElementById", id)
}

func present(v js.Value) bool {
	return !v.IsNull() && !v.IsUndefined()
}

// styleSink writes the rendered stylesheet into the dynamic style element.
// The server rendered block is emptied on the first write.
type styleSink struct {
	initial js.Value
	dynamic js.Value
}

func newStyleSink() (*styleSink, error) {
	s := &styleSink{initial: byID(initialStyleID), dynamic: byID(dynamicStyleID)}

	if !present(s.dynamic) {
		doc := js.Global().Get("document")

		s.dynamic = doc.Call("createElement", "style")
		s.dynamic.Set("id", dynamicStyleID)

		head := doc.Get("head")
		if !present(head) {
			return nil, errElementMissing
		}

		head.Call("appendChild", s.dynamic)
	}

	return s, nil
}

func (s *styleSink) Inject(css string) error {
	s.dynamic.Set("textContent", css)

	if present(s.initial) {
		s.initial.Set("textContent", "")
		s.initial = js.Null()
	}

	return nil
}

// domView mirrors the record and the visibility state into the panel markup.
type domView struct {
	panel  js.Value
	toggle js.Value
}

// Reflect shows the normalized record; an unknown enum value selects its
// default option.
func (v domView) Reflect(r prefs.Record) {
	r = r.Normalize()

	for field, value := range r.Values() {
		el := byID(controlIDPrefix + field)
		if !present(el) {
			continue
		}

		switch field {
		case prefs.FieldDyslexiaMode:
			el.Set("checked", r.DyslexiaMode)
		default:
			el.Set("value", value)
		}
	}

	if out := byID(controlIDPrefix + prefs.FieldFontSize + "-value"); present(out) {
		out.Set("textContent", strconv.Itoa(r.FontSize)+"px")
	}
}

func (v domView) SetOpen(open bool) {
	v.panel.Set("hidden", !open)
	v.toggle.Call("setAttribute", "aria-expanded", strconv.FormatBool(open))
}

// seedData is what the page embedded into the #wpac-data element.
type seedData struct {
	settings string
	nonce    string
	endpoint string
	cacheKey string
	cursor   string
}

func readSeedData() seedData {
	el := byID(dataID)
	if !present(el) {
		return seedData{endpoint: origin()}
	}

	ds := el.Get("dataset")
	str := func(name string) string {
		v := ds.Get(name)
		if !present(v) {
			return ""
		}

		return v.String()
	}

	d := seedData{
		settings: str("settings"),
		nonce:    str("nonce"),
		endpoint: str("endpoint"),
		cacheKey: str("cacheKey"),
		cursor:   str("cursor"),
	}

	if d.endpoint == "" {
		d.endpoint = origin()
	}

	return d
}

func origin() string {
	return js.Global().Get("location").Get("origin").String()
}
