package config

import (
	"time"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration `mapstructure:"expiryTime" toml:"expiryTime" validate:"gt=0"`
	CookieName string        `mapstructure:"cookieName" toml:"cookieName" validate:"required"`
}

// CSRF settings of the persistence endpoint.
type CSRF struct {
	CookieName string        `mapstructure:"cookieName" toml:"cookieName" validate:"required"`
	Expiration time.Duration `mapstructure:"expiration" toml:"expiration" validate:"gt=0"`
}

// Config overall data structure.
type Config struct {
	DevMode       bool          `mapstructure:"devMode"       toml:"devMode"` // enable dev mode for development
	Title         string        `mapstructure:"title"         toml:"title"   validate:"required"`
	DB            DB            `mapstructure:"db"            toml:"db"`
	Log           logger.Log    `mapstructure:"log"           toml:"log"`
	Webserver     Webserver     `mapstructure:"webserver"     toml:"webserver"`
	Accessibility Accessibility `mapstructure:"accessibility" toml:"accessibility"`
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic bool    `mapstructure:"browseStatic" toml:"browseStatic"` // enable static file browsing (for development purposes only)
	Domain       string  `mapstructure:"domain"       toml:"domain"`       // cookie domain
	Port         int     `mapstructure:"port"         toml:"port"`         // listening port for the webserver
	ShutDownTime int     `mapstructure:"shutDownTime" toml:"shutDownTime"` // seconds to return 503 before stopping
	URL          string  `mapstructure:"url"          toml:"url"`          // base url for the webserver
	Session      Session `mapstructure:"session"      toml:"session"`
	CSRF         CSRF    `mapstructure:"csrf"         toml:"csrf"`
}

// Accessibility settings of the preference panel.
type Accessibility struct {
	// CookieName of the anonymous visitor tier.
	CookieName string `mapstructure:"cookieName" toml:"cookieName" validate:"required"`
	// CookieMaxAge of the anonymous visitor tier, one year by default.
	CookieMaxAge time.Duration `mapstructure:"cookieMaxAge" toml:"cookieMaxAge" validate:"gt=0"`
	// CacheKey of the browser local storage entry.
	CacheKey string `mapstructure:"cacheKey" toml:"cacheKey" validate:"required"`
	// FontStylesheetURL loads the dyslexia friendly font.
	FontStylesheetURL string `mapstructure:"fontStylesheetURL" toml:"fontStylesheetURL" validate:"omitempty,url"`
	// CursorAssetURL enables the custom cursor for non default cursor sizes.
	CursorAssetURL string `mapstructure:"cursorAssetURL" toml:"cursorAssetURL"`
}
