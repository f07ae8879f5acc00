package prefs

import (
	"encoding/json"
)

// Endpoint paths and headers of the remote persistence contract.
const (
	SettingsPath = "/api/accessibility/settings"
	ResetPath    = "/api/accessibility/reset"
	StylePath    = "/accessibility.css"

	// TokenHeader carries the per-session anti-forgery token.
	TokenHeader = "X-CSRF-Token"
	// TokenField carries the anti-forgery token in form posts.
	TokenField = "nonce"

	// CacheKey is the fixed key of the device scoped cache and the visitor cookie.
	CacheKey = "wpac_settings"
)

// Envelope is the response body of the persistence endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Success wraps r in a successful envelope.
func Success(r Record) Envelope {
	return Envelope{Success: true, Data: r.JSON()}
}

// Failure wraps an error message in an unsuccessful envelope.
func Failure(msg string) Envelope {
	data, _ := json.Marshal(msg) //nolint:errchkjson

	return Envelope{Success: false, Data: data}
}
