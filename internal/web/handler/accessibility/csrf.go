package accessibility

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/config"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/prefs"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/uniuri"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/handler"
)

// CSRF returns the anti-forgery middleware. Safe requests receive a token
// cookie and the token in Locals; unsafe requests must echo the token in
// the X-CSRF-Token header or in the nonce form field, otherwise they get a
// 403.
func CSRF(cfg *config.Config) fiber.Handler {
	fromHeader := csrf.CsrfFromHeader(prefs.TokenHeader)
	fromForm := csrf.CsrfFromForm(prefs.TokenField)

	return csrf.New(csrf.Config{
		CookieName:     cfg.Webserver.CSRF.CookieName,
		CookieDomain:   cfg.Webserver.Domain,
		CookieSecure:   !cfg.DevMode,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		Expiration:     cfg.Webserver.CSRF.Expiration,
		KeyGenerator:   uniuri.Token,
		ContextKey:     handler.CSRFContextKey,
		Extractor: func(c *fiber.Ctx) (string, error) {
			if token, err := fromHeader(c); err == nil {
				return token, nil
			}

			return fromForm(c)
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			logger(c).Warn().Err(err).Str("path", c.Path()).Msg("rejected request without valid anti-forgery token")

			return c.Status(fiber.StatusForbidden).JSON(prefs.Failure("invalid security token"))
		},
	})
}

// Token returns the anti-forgery token of the current request.
func Token(c *fiber.Ctx) string {
	token, _ := c.Locals(handler.CSRFContextKey).(string)

	return token
}
