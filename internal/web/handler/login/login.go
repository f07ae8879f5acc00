package login

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/auth"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/config"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/db/models"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/handler"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/handler/accessibility"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/navigation"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = navigation.LoginPath

	// SuccessPath is where a successful login lands.
	SuccessPath = navigation.HomePath
)

// Form is the submitted login form.
type Form struct {
	Username string `form:"username" json:"username" validate:"required,max=100"`
	Password string `form:"password" json:"password" validate:"required"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	local    *auth.LocalProvider
	validate *validator.Validate
}

// Handler is the login handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.local = auth.NewLocalProvider(db)
	s.cfg = cfg
	s.validate = validator.New(validator.WithRequiredStructEnabled())

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, nil)
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		return s.render(c, ErrInvalidFormData)
	}

	if err := s.validate.Struct(form); err != nil {
		return s.render(c, ErrInvalidFormData)
	}

	user, err := s.authenticate(form.Username, form.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", form.Username).Msg("login failed")

		return s.render(c, err)
	}

	sessionID := session.GenerateSessionID()

	userSession := &session.Data{
		UserID:   user.ID,
		Username: user.Username,
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")

		return s.render(c, ErrInternalServerError)
	}

	// set login cookie
	c.Cookie(&fiber.Cookie{
		Name:     s.cookieName(),
		Value:    sessionID,
		Path:     "/",
		Domain:   s.cfg.Webserver.Domain,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect(SuccessPath)
}

// authenticate checks the credentials against the local accounts.
func (s *Service) authenticate(username, password string) (*models.User, error) {
	user, err := s.local.Authenticate(username, password)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrInvalidPassword):
		return nil, ErrInvalidCredentials
	case errors.Is(err, auth.ErrUserAccountDisabled):
		return nil, ErrInactiveUser
	default:
		log.Error().Err(err).Msg("failed to authenticate user")

		return nil, ErrInternalServerError
	}
}

func (s *Service) cookieName() string {
	if s.cfg.Webserver.Session.CookieName != "" {
		return s.cfg.Webserver.Session.CookieName
	}

	return session.CookieName
}

func (s *Service) render(c *fiber.Ctx, err error) error {
	data := fiber.Map{
		"Title": s.cfg.Title,
		"Nav":   navigation.ForVisitor("Log in", Path, ""),
		"Path":  Path,
		"Nonce": accessibility.Token(c),
	}

	if err != nil {
		data["error"] = err.Error()
	}

	return c.Render("login", data, handler.BaseLayout)
}
