//go:build js && wasm

package main

import "errors"

var (
	errStorageUnavailable = errors.New("local storage is unavailable")
	errElementMissing     = errors.New("element is missing")
)
