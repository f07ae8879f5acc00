// Package main provides the entry point of Go Accessibility Controls.
// It runs a Fiber web server that renders pages with a floating
// accessibility panel, applies each visitor's stored preferences in the
// initial style block and stores changes in a cookie for anonymous
// visitors or in the database for logged in users. The browser side of
// the panel is the js/wasm client in cmd/a11y-wasm.
package main
