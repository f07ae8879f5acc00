// Package home renders the page that hosts the accessibility panel.
package home

import (
	"errors"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/config"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/prefs"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/stylesheet"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/handler"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/handler/accessibility"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/navigation"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/session"
)

// Path is the path of the home page.
const Path = navigation.HomePath

// Option is one entry of a panel select control.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Control is a select control of the panel.
type Control struct {
	Field   string
	Label   string
	Options []Option
}

// Service is the home handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	acc *accessibility.Service
}

// Handler is the home handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init registers the home page. The accessibility handler must be
// initialized first, the page is rendered from the record it resolves.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg

	if s.acc == nil {
		s.acc = &accessibility.Handler
	}

	app.Get(Path, s.Get)

	return nil
}

// Get renders the page with the initial style block and the seed data of
// the browser client.
func (s *Service) Get(c *fiber.Ctx) error {
	r := s.acc.Resolve(c)
	shown := r.Normalize()
	identity := session.IdentityFrom(c)

	username := ""
	if v, ok := identity.(session.Visitor); ok {
		username = v.Username
	}

	return c.Render("index", fiber.Map{
		"Title":             s.cfg.Title,
		"Nav":               navigation.ForVisitor("Home", Path, username),
		"CSS":               stylesheet.Render(r, s.acc.StyleOptions()...),
		"Settings":          string(r.JSON()),
		"Record":            shown,
		"Controls":          Controls(shown),
		"Nonce":             accessibility.Token(c),
		"Endpoint":          strings.TrimSuffix(s.cfg.Webserver.URL, "/"),
		"CacheKey":          s.cfg.Accessibility.CacheKey,
		"CursorAssetURL":    s.cfg.Accessibility.CursorAssetURL,
		"FontStylesheetURL": template.URL(s.cfg.Accessibility.FontStylesheetURL), //nolint:gosec
		"Authenticated":     identity.IsAuthenticated(),
		"MinFontSize":       prefs.MinFontSize,
		"MaxFontSize":       prefs.MaxFontSize,
	}, handler.BaseLayout)
}

// Controls lists the select controls of the panel with the options of r
// selected.
func Controls(r prefs.Record) []Control {
	return []Control{
		control(prefs.FieldLineHeight, "Line Height", prefs.LineHeights, r.LineHeight),
		control(prefs.FieldLetterSpacing, "Letter Spacing", prefs.LetterSpacings, r.LetterSpacing),
		control(prefs.FieldContrast, "Contrast", prefs.Contrasts, r.Contrast),
		control(prefs.FieldCursorSize, "Cursor Size", prefs.CursorSizes, r.CursorSize),
		control(prefs.FieldTextAlignment, "Text Alignment", prefs.TextAlignments, r.TextAlignment),
	}
}

func control[T ~string](field, label string, domain []T, current T) Control {
	c := Control{Field: field, Label: label, Options: make([]Option, 0, len(domain))}

	for _, v := range domain {
		c.Options = append(c.Options, Option{
			Value:    string(v),
			Label:    optionLabel(string(v)),
			Selected: v == current,
		})
	}

	return c
}

// optionLabel turns "extra-wide" into "Extra Wide".
func optionLabel(v string) string {
	words := strings.Split(v, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}

	return strings.Join(words, " ")
}
