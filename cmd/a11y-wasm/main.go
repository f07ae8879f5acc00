//go:build js && wasm

// Command a11y-wasm is the browser side of the accessibility panel. It
// resolves the visitor's record, keeps the page stylesheet in sync with the
// panel controls and persists every change to localStorage and the host.
package main

import (
	"os"
	"strconv"
	"syscall/js"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/panel"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/prefs"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/prefstore"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/stylesheet"
)

// selectFields are the controls bound to a change event.
var selectFields = []string{ //nolint:gochecknoglobals
	prefs.FieldLineHeight,
	prefs.FieldLetterSpacing,
	prefs.FieldContrast,
	prefs.FieldCursorSize,
	prefs.FieldTextAlignment,
}

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		With().Timestamp().Str("app", "a11y-wasm").Logger()

	seed := readSeedData()

	opts := []prefstore.Option{
		prefstore.WithSeed([]byte(seed.settings)),
		prefstore.WithCacheKey(seed.cacheKey),
		prefstore.WithLogger(log.Logger.With().Str("component", "prefstore").Logger()),
	}

	var cache prefstore.Cache

	if c, err := newLocalCache(); err != nil {
		log.Warn().Err(err).Msg("settings are not remembered on this device")
	} else {
		cache = c
	}

	store := prefstore.New(cache, &prefstore.HTTPRemote{BaseURL: seed.endpoint, Token: seed.nonce}, opts...)

	sink, err := newStyleSink()
	if err != nil {
		log.Error().Err(err).Msg("can't inject styles")
		return
	}

	panelEl, toggleEl := byID(panelID), byID(toggleID)
	if !present(panelEl) || !present(toggleEl) {
		log.Error().Err(errElementMissing).Msg("panel markup not found")
		return
	}

	ctx := panel.NewContext(store, sink, domView{panel: panelEl, toggle: toggleEl},
		stylesheet.WithCursorAsset(seed.cursor))
	ctx.Log = log.Logger.With().Str("component", "panel").Logger()

	ctrl := panel.New(ctx)
	ctrl.Load()

	bind(ctrl, panelEl, toggleEl)

	select {}
}

func on(target js.Value, event string, fn func(ev js.Value)) {
	if !present(target) {
		return
	}

	target.Call("addEventListener", event, js.FuncOf(func(_ js.Value, args []js.Value) any {
		fn(args[0])

		return nil
	}))
}

func bind(ctrl *panel.Controller, panelEl, toggleEl js.Value) {
	doc := js.Global().Get("document")

	on(toggleEl, "click", func(ev js.Value) {
		ev.Call("stopPropagation")
		ctrl.Toggle()
	})

	on(panelEl.Call("querySelector", ".wpac-close"), "click", func(js.Value) {
		ctrl.Close()
	})

	on(doc, "click", func(ev js.Value) {
		target := ev.Get("target")
		inside := panelEl.Call("contains", target).Bool() || toggleEl.Call("contains", target).Bool()

		ctrl.OutsideClick(inside)
	})

	on(doc, "keydown", func(ev js.Value) {
		ctrl.Key(ev.Get("key").String())
	})

	on(byID(controlIDPrefix+prefs.FieldFontSize), "input", func(ev js.Value) {
		size, err := strconv.Atoi(ev.Get("target").Get("value").String())
		if err != nil {
			return
		}

		ctrl.SetFontSize(size)
	})

	on(byID(controlIDPrefix+prefs.FieldDyslexiaMode), "change", func(ev js.Value) {
		ctrl.SetDyslexia(ev.Get("target").Get("checked").Bool())
	})

	for _, field := range selectFields {
		on(byID(controlIDPrefix+field), "change", func(ev js.Value) {
			_ = ctrl.Set(field, ev.Get("target").Get("value").String())
		})
	}

	on(byID(resetID), "click", func(js.Value) {
		ctrl.Reset()
	})
}
