package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/config"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/handler/login"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/session"
)

// IdentityMiddleware resolves the visitor behind the session cookie and
// stores it for the handlers. Anonymous visitors pass through, they are
// served from the cookie tier.
func IdentityMiddleware(cfg *config.Config) fiber.Handler {
	cookieName := session.CookieName
	if cfg != nil && cfg.Webserver.Session.CookieName != "" {
		cookieName = cfg.Webserver.Session.CookieName
	}

	return func(c *fiber.Ctx) error {
		originalURL := strings.ToLower(c.OriginalURL())
		if strings.HasPrefix(originalURL, "/static") {
			return c.Next()
		}

		visitor := session.Resolve(c.Cookies(cookieName))
		session.SetIdentity(c, visitor)

		if visitor.IsAuthenticated() && IsLoginPage(c) {
			return c.Redirect("/")
		}

		return c.Next()
	}
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	originalURL := strings.ToLower(c.OriginalURL())
	return strings.HasPrefix(originalURL, login.Path)
}
