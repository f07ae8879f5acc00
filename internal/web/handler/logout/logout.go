// Package logout ends the session of a logged in visitor. The visitor
// falls back to the cookie tier afterwards.
package logout

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/config"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/handler"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/navigation"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/session"
)

// Path is the logout route.
const Path = navigation.LogoutPath

// Service is the logout handler service.
type Service struct {
	handler.Service
	cfg *config.Config
}

// Handler is the logout handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, _ *gorm.DB) error {
	if app == nil || cfg == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg

	app.Get(Path, s.Logout)
	app.Post(Path, s.Logout)

	return nil
}

// Logout handles user logout by clearing the session.
func (s *Service) Logout(c *fiber.Ctx) error {
	name := s.cfg.Webserver.Session.CookieName
	if name == "" {
		name = session.CookieName
	}

	if sessionID := c.Cookies(name); sessionID != "" {
		if err := session.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete session")
		}
	}

	// Clear the session cookie
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   s.cfg.Webserver.Domain,
		Expires:  time.Now().Add(-time.Hour),
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect(navigation.HomePath)
}
