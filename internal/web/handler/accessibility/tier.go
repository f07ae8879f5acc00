package accessibility

import (
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/db/controller/preference"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/prefs"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/session"
)

// Tier names, used as metric labels.
const (
	TierUser   = "user"
	TierCookie = "cookie"
)

// Tier stores the record of the current visitor.
type Tier interface {
	Name() string
	// Load returns the stored raw record, nil when there is none.
	Load(c *fiber.Ctx) ([]byte, error)
	Save(c *fiber.Ctx, r prefs.Record) error
	Clear(c *fiber.Ctx) error
}

// UserTier keeps the record of logged in users in the preferences table.
type UserTier struct {
	DB *gorm.DB
}

// Name implements Tier.
func (UserTier) Name() string { return TierUser }

// Load implements Tier.
func (t UserTier) Load(c *fiber.Ctx) ([]byte, error) {
	pref, err := preference.Get(t.DB, session.IdentityFrom(c).CurrentUserID())
	if errors.Is(err, preference.ErrPreferenceNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return pref.Value, nil
}

// Save implements Tier.
func (t UserTier) Save(c *fiber.Ctx, r prefs.Record) error {
	_, err := preference.Set(t.DB, session.IdentityFrom(c).CurrentUserID(), r.JSON())

	return err
}

// Clear implements Tier.
func (t UserTier) Clear(c *fiber.Ctx) error {
	return preference.Delete(t.DB, session.IdentityFrom(c).CurrentUserID())
}

// CookieTier keeps the record of anonymous visitors in a cookie holding
// the url escaped JSON record.
type CookieTier struct {
	CookieName string
	MaxAge     time.Duration
	Domain     string
	Secure     bool
}

// Name implements Tier.
func (CookieTier) Name() string { return TierCookie }

// Load implements Tier.
func (t CookieTier) Load(c *fiber.Ctx) ([]byte, error) {
	raw := c.Cookies(t.CookieName)
	if raw == "" {
		return nil, nil
	}

	value, err := url.QueryUnescape(raw)
	if err != nil {
		return nil, err
	}

	return []byte(value), nil
}

// Save implements Tier.
func (t CookieTier) Save(c *fiber.Ctx, r prefs.Record) error {
	cookie := t.cookie(url.QueryEscape(string(r.JSON())))
	cookie.MaxAge = int(t.MaxAge.Seconds())
	cookie.Expires = time.Now().Add(t.MaxAge)

	c.Cookie(cookie)

	return nil
}

// Clear implements Tier.
func (t CookieTier) Clear(c *fiber.Ctx) error {
	cookie := t.cookie("")
	cookie.Expires = time.Now().Add(-time.Hour)

	c.Cookie(cookie)

	return nil
}

func (t CookieTier) cookie(value string) *fiber.Cookie {
	// readable by the browser client, it mirrors the record into local storage
	return &fiber.Cookie{
		Name:     t.CookieName,
		Value:    value,
		Path:     "/",
		Domain:   t.Domain,
		Secure:   t.Secure,
		HTTPOnly: false,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
