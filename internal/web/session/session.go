// Package session keeps logged in users in fiber session storage and
// tells handlers who the current visitor is.
package session

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/uniuri"
)

const (
	// CookieName is the default name of the session cookie.
	CookieName = "session"

	identityLocalsKey = "identity"
)

// ErrNotInitialized is returned when the store is used before Init.
var ErrNotInitialized = errors.New("session store is not initialized")

// Store is the global session store instance.
var Store *session.Store //nolint:gochecknoglobals

// Data represents the session data structure.
type Data struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
}

// Write writes the session data for the given session ID with an expiration duration.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	if Store == nil {
		return ErrNotInitialized
	}

	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
func (s *Data) Read(sessionID string) error {
	if Store == nil {
		return ErrNotInitialized
	}

	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	if len(byteData) == 0 {
		return nil
	}

	return json.Unmarshal(byteData, s)
}

// Delete removes the session data for the given session ID.
func Delete(sessionID string) error {
	if Store == nil {
		return ErrNotInitialized
	}

	return Store.Storage.Delete(sessionID)
}

// Init initializes the session store. A nil storage keeps sessions in memory.
func Init(storage fiber.Storage) {
	Store = session.New(session.Config{
		Storage: storage,
	})
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() string {
	return uniuri.SessionID()
}

// Identity tells which persistence tier applies to the current visitor.
type Identity interface {
	IsAuthenticated() bool
	CurrentUserID() uint64
}

// Visitor is the Identity resolved from the session cookie.
type Visitor struct {
	Data
}

// IsAuthenticated reports whether the visitor is logged in.
func (v Visitor) IsAuthenticated() bool {
	return v.UserID > 0
}

// CurrentUserID returns the user id, 0 for anonymous visitors.
func (v Visitor) CurrentUserID() uint64 {
	return v.UserID
}

// Resolve reads the visitor behind a session id. Unknown or unreadable
// sessions are anonymous.
func Resolve(sessionID string) Visitor {
	var v Visitor

	if sessionID == "" {
		return v
	}

	if err := v.Read(sessionID); err != nil {
		return Visitor{}
	}

	return v
}

// SetIdentity stores id for the rest of the request.
func SetIdentity(c *fiber.Ctx, id Identity) {
	c.Locals(identityLocalsKey, id)
}

// IdentityFrom returns the identity stored by SetIdentity, anonymous when
// none was stored.
func IdentityFrom(c *fiber.Ctx) Identity {
	if id, ok := c.Locals(identityLocalsKey).(Identity); ok {
		return id
	}

	return Visitor{}
}
