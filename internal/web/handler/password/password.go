// Package password lets a logged in user replace their password.
package password

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/auth"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/config"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/handler"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/handler/accessibility"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/navigation"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/session"
)

// Path is the password change page.
const Path = navigation.PasswordPath

const changedMsg = "Your password was changed."

// Form is the submitted password change form.
type Form struct {
	Current string `form:"current_password" json:"current_password" validate:"required"`
	New     string `form:"new_password"     json:"new_password"     validate:"required,min=8,max=128"`
	Confirm string `form:"confirm_password" json:"confirm_password" validate:"required,eqfield=New"`
}

// Service is the password handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	local    *auth.LocalProvider
	validate *validator.Validate
}

// Handler is the password handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the password handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.local = auth.NewLocalProvider(db)
	s.validate = validator.New(validator.WithRequiredStructEnabled())

	app.Route(Path, func(router fiber.Router) {
		router.Use(requireLogin)
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// requireLogin sends anonymous visitors to the login page.
func requireLogin(c *fiber.Ctx) error {
	if !session.IdentityFrom(c).IsAuthenticated() {
		return c.Redirect(navigation.LoginPath)
	}

	return c.Next()
}

// Get renders the password change form.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, nil, "")
}

// Post checks the form and replaces the password of the current user.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		return s.render(c, ErrInvalidFormData, "")
	}

	if err := s.validate.Struct(form); err != nil {
		return s.render(c, formError(err), "")
	}

	userID := session.IdentityFrom(c).CurrentUserID()

	err := s.local.ChangePassword(userID, form.Current, form.New)

	switch {
	case err == nil:
		log.Info().Uint64("userID", userID).Msg("password changed")

		return s.render(c, nil, changedMsg)
	case errors.Is(err, auth.ErrInvalidOldPassword):
		log.Warn().Uint64("userID", userID).Msg("password change with wrong current password")

		return s.render(c, ErrWrongPassword, "")
	default:
		log.Error().Err(err).Uint64("userID", userID).Msg("failed to change password")

		return s.render(c, ErrInternalServerError, "")
	}
}

// formError tells a mismatched confirmation apart from other invalid input.
func formError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "Confirm" && fe.Tag() == "eqfield" {
				return ErrPasswordMismatch
			}
		}
	}

	return ErrInvalidFormData
}

func (s *Service) render(c *fiber.Ctx, err error, msg string) error {
	username := ""
	if v, ok := session.IdentityFrom(c).(session.Visitor); ok {
		username = v.Username
	}

	data := fiber.Map{
		"Title": s.cfg.Title,
		"Nav":   navigation.ForVisitor("Password", Path, username),
		"Path":  Path,
		"Nonce": accessibility.Token(c),
	}

	if err != nil {
		data["error"] = err.Error()
	}

	if msg != "" {
		data["message"] = msg
	}

	return c.Render("password", data, handler.BaseLayout)
}
