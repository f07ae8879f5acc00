// Package accessibility implements the persistence endpoint of the
// accessibility panel: it stores the record of logged in users in the
// database and the record of anonymous visitors in a cookie.
package accessibility

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/config"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/prefs"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/prefstore"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/stylesheet"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/handler"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/session"
)

const (
	settingsKey = "settings"
	formPrefix  = settingsKey + "["
)

// Service is the accessibility handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	user   Tier
	cookie Tier
}

// Handler is the accessibility handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init registers the endpoint routes. The CSRF middleware must run before
// them.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.user = UserTier{DB: db}
	s.cookie = CookieTier{
		CookieName: cfg.Accessibility.CookieName,
		MaxAge:     cfg.Accessibility.CookieMaxAge,
		Domain:     cfg.Webserver.Domain,
		Secure:     !cfg.DevMode,
	}

	app.Get(prefs.SettingsPath, s.Get)
	app.Post(prefs.SettingsPath, s.Save)
	app.Post(prefs.ResetPath, s.Reset)
	app.Get(prefs.StylePath, s.Stylesheet)

	return nil
}

// Tier returns the tier that applies to the current visitor.
func (s *Service) Tier(c *fiber.Ctx) Tier {
	if session.IdentityFrom(c).IsAuthenticated() {
		return s.user
	}

	return s.cookie
}

// Seed returns the raw record stored for the current visitor, nil when
// there is none or it can't be read.
func (s *Service) Seed(c *fiber.Ctx) []byte {
	tier := s.Tier(c)

	raw, err := tier.Load(c)
	if err != nil {
		logger(c).Warn().Err(err).Str("tier", tier.Name()).Msg("can't load stored settings")

		return nil
	}

	return raw
}

// Resolve returns the effective record of the current visitor.
func (s *Service) Resolve(c *fiber.Ctx) prefs.Record {
	return prefstore.New(nil, nil,
		prefstore.WithSeed(s.Seed(c)),
		prefstore.WithLogger(*logger(c)),
	).Resolve()
}

// StyleOptions returns the synthesizer options from the configuration.
func (s *Service) StyleOptions() []stylesheet.Option {
	return []stylesheet.Option{stylesheet.WithCursorAsset(s.cfg.Accessibility.CursorAssetURL)}
}

// Get returns the effective record.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.JSON(prefs.Success(s.Resolve(c)))
}

// Save stores a full record and returns it sanitized.
func (s *Service) Save(c *fiber.Ctx) error {
	p, err := parseSubmission(c)
	if err != nil {
		logger(c).Warn().Err(err).Msg("ignoring malformed settings submission")

		return c.Status(fiber.StatusBadRequest).JSON(prefs.Failure(ErrMalformedBody.Error()))
	}

	r := prefs.Sanitize(p.Merge())
	tier := s.Tier(c)

	if err = tier.Save(c, r); err != nil {
		logger(c).Error().Err(err).Str("tier", tier.Name()).Msg("can't save settings")

		return c.Status(fiber.StatusInternalServerError).JSON(prefs.Failure(ErrPersist.Error()))
	}

	savesTotal.WithLabelValues(tier.Name()).Inc()

	return c.JSON(prefs.Success(r))
}

// Reset clears the stored record and returns the defaults.
func (s *Service) Reset(c *fiber.Ctx) error {
	tier := s.Tier(c)

	if err := tier.Clear(c); err != nil {
		logger(c).Error().Err(err).Str("tier", tier.Name()).Msg("can't reset settings")

		return c.Status(fiber.StatusInternalServerError).JSON(prefs.Failure(ErrPersist.Error()))
	}

	resetsTotal.WithLabelValues(tier.Name()).Inc()

	return c.JSON(prefs.Success(prefs.Default()))
}

// Stylesheet serves the rendered stylesheet of the effective record.
func (s *Service) Stylesheet(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/css; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, "no-store")

	return c.SendString(stylesheet.Render(s.Resolve(c), s.StyleOptions()...))
}

// parseSubmission accepts a JSON body holding either {"settings":{...}} or
// the record itself, and form posts of settings[field]=value pairs.
func parseSubmission(c *fiber.Ctx) (prefs.Partial, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return parseJSON(c.Body())
	}

	values := map[string]string{}

	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if field, ok := strings.CutPrefix(k, formPrefix); ok {
			values[strings.TrimSuffix(field, "]")] = string(value)
		}
	})

	if len(values) > 0 {
		return prefs.FromForm(values), nil
	}

	// a form post may carry the record as JSON string in the settings field
	if raw := c.FormValue(settingsKey); raw != "" {
		return prefs.Decode([]byte(raw))
	}

	return prefs.Partial{}, nil
}

func parseJSON(body []byte) (prefs.Partial, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return prefs.Partial{}, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return prefs.Partial{}, errors.Join(ErrMalformedBody, err)
	}

	if inner, ok := envelope[settingsKey]; ok {
		return prefs.Decode(inner)
	}

	return prefs.Decode(body)
}

func logger(c *fiber.Ctx) *zerolog.Logger {
	lc := log.Logger.With().Str("component", "accessibility")

	if id, ok := c.Locals("requestid").(string); ok {
		lc = lc.Str("requestID", id)
	}

	l := lc.Logger()

	return &l
}
