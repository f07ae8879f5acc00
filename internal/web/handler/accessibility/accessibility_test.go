package accessibility

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/config"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/db/controller/preference"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/db/models"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/prefs"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/web/session"
)

const testUserHeader = "X-Test-User"

func newTestConfig() *config.Config {
	return &config.Config{
		DevMode: true,
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Minute, CookieName: "session"},
			CSRF:    config.CSRF{CookieName: "csrf_", Expiration: time.Hour},
		},
		Accessibility: config.Accessibility{
			CookieName:     "wpac_settings",
			CookieMaxAge:   365 * 24 * time.Hour,
			CacheKey:       "wpac_settings",
			CursorAssetURL: "/static/img/cursor.svg",
		},
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open sqlite in-memory db")
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Preference{}))

	return db
}

// newTestApp wires the endpoint behind the CSRF middleware. The identity of
// a request is taken from the X-Test-User header.
func newTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()

	cfg := newTestConfig()
	app := fiber.New()

	app.Use(func(c *fiber.Ctx) error {
		if id, err := strconv.ParseUint(c.Get(testUserHeader), 10, 64); err == nil {
			session.SetIdentity(c, session.Visitor{Data: session.Data{UserID: id}})
		}

		return c.Next()
	})
	app.Use(CSRF(cfg))

	var s Service
	require.NoError(t, s.Init(app, cfg, db))

	return app
}

type client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
	token   string
	user    string
}

func newClient(t *testing.T, app *fiber.App) *client {
	t.Helper()

	cl := &client{t: t, app: app, cookies: map[string]string{}}

	resp := cl.do(http.MethodGet, prefs.SettingsPath, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	cl.token = cl.cookies["csrf_"]
	require.NotEmpty(t, cl.token, "csrf cookie must be issued on safe requests")

	return cl
}

func (cl *client) do(method, target, contentType string, body io.Reader) *http.Response {
	cl.t.Helper()

	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}

	return cl.send(req)
}

func (cl *client) postJSON(target, body string) *http.Response {
	cl.t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(prefs.TokenHeader, cl.token)

	return cl.send(req)
}

// send adds the identity and the cookie jar to req and updates the jar
// from the response.
func (cl *client) send(req *http.Request) *http.Response {
	cl.t.Helper()

	if cl.user != "" {
		req.Header.Set(testUserHeader, cl.user)
	}

	for name, value := range cl.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := cl.app.Test(req, -1)
	require.NoError(cl.t, err)

	for _, c := range resp.Cookies() {
		if c.Value == "" || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
			delete(cl.cookies, c.Name)
			continue
		}

		cl.cookies[c.Name] = c.Value
	}

	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) (bool, prefs.Record) {
	t.Helper()

	defer func() {
		_ = resp.Body.Close()
	}()

	var env prefs.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))

	if !env.Success {
		return false, prefs.Record{}
	}

	p, err := prefs.Decode(env.Data)
	require.NoError(t, err)

	return true, p.Merge()
}

func TestSave_RequiresToken(t *testing.T) {
	app := newTestApp(t, newTestDB(t))
	cl := newClient(t, app)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "missing token", token: ""},
		{name: "wrong token", token: "not-the-token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, prefs.SettingsPath, strings.NewReader(`{"settings":{"font_size":30}}`))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			req.AddCookie(&http.Cookie{Name: "csrf_", Value: cl.token})

			if tc.token != "" {
				req.Header.Set(prefs.TokenHeader, tc.token)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

			ok, _ := decodeEnvelope(t, resp)
			assert.False(t, ok)
		})
	}

	resp := cl.do(http.MethodPost, prefs.ResetPath, "", nil)
	_ = resp.Body.Close()

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "reset needs a token too")
}

func TestSave_Anonymous_SetsCookie(t *testing.T) {
	app := newTestApp(t, newTestDB(t))
	cl := newClient(t, app)

	resp := cl.postJSON(prefs.SettingsPath, `{"settings":{"dyslexia_mode":"1","font_size":"24","line_height":"relaxed","contrast":"<b>high</b>"}}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored *http.Cookie

	for _, c := range resp.Cookies() {
		if c.Name == "wpac_settings" {
			stored = c
		}
	}

	require.NotNil(t, stored, "anonymous visitors are stored in a cookie")
	assert.Equal(t, int((365 * 24 * time.Hour).Seconds()), stored.MaxAge)
	assert.Equal(t, "/", stored.Path)

	ok, saved := decodeEnvelope(t, resp)
	require.True(t, ok)

	want := prefs.Default()
	want.DyslexiaMode = true
	want.FontSize = 24
	want.LineHeight = prefs.LineHeightRelaxed
	want.Contrast = prefs.ContrastHigh

	assert.Equal(t, want, saved)

	raw, err := url.QueryUnescape(stored.Value)
	require.NoError(t, err)
	assert.JSONEq(t, string(want.JSON()), raw)

	ok, resolved := decodeEnvelope(t, cl.do(http.MethodGet, prefs.SettingsPath, "", nil))
	require.True(t, ok)
	assert.Equal(t, want, resolved)
}

func TestSave_FormEncoded(t *testing.T) {
	app := newTestApp(t, newTestDB(t))
	cl := newClient(t, app)

	form := url.Values{
		"nonce":                    {cl.token},
		"settings[text_alignment]": {"center"},
		"settings[font_size]":      {"30"},
		"settings[dyslexia_mode]":  {"true"},
	}

	resp := cl.do(http.MethodPost, prefs.SettingsPath, fiber.MIMEApplicationForm, strings.NewReader(form.Encode()))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	ok, saved := decodeEnvelope(t, resp)
	require.True(t, ok)

	assert.Equal(t, prefs.TextAlignCenter, saved.TextAlignment)
	assert.Equal(t, 30, saved.FontSize)
	assert.True(t, saved.DyslexiaMode)
	assert.Equal(t, prefs.ContrastNormal, saved.Contrast, "absent fields are defaults")
}

func TestSave_RawRecordBody(t *testing.T) {
	app := newTestApp(t, newTestDB(t))
	cl := newClient(t, app)

	ok, saved := decodeEnvelope(t, cl.postJSON(prefs.SettingsPath, `{"letter_spacing":"extra-wide"}`))
	require.True(t, ok)

	assert.Equal(t, prefs.LetterSpacingExtraWide, saved.LetterSpacing)
}

func TestSave_Malformed(t *testing.T) {
	app := newTestApp(t, newTestDB(t))
	cl := newClient(t, app)

	resp := cl.postJSON(prefs.SettingsPath, `{not valid`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	ok, _ := decodeEnvelope(t, resp)
	assert.False(t, ok)

	_, stored := cl.cookies["wpac_settings"]
	assert.False(t, stored)
}

func TestSave_Authenticated_WritesUserRecord(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.User{ID: 11, Username: "alice", Active: true}).Error)

	app := newTestApp(t, db)
	cl := newClient(t, app)
	cl.user = "11"

	resp := cl.postJSON(prefs.SettingsPath, `{"settings":{"contrast":"inverted","cursor_size":"large"}}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		assert.NotEqual(t, "wpac_settings", c.Name, "logged in users are not stored in a cookie")
	}

	_ = resp.Body.Close()

	pref, err := preference.Get(db, 11)
	require.NoError(t, err)

	p, err := prefs.Decode(pref.Value)
	require.NoError(t, err)
	assert.Equal(t, prefs.ContrastInverted, p.Merge().Contrast)

	css := cl.do(http.MethodGet, prefs.StylePath, "", nil)
	require.Equal(t, fiber.StatusOK, css.StatusCode)
	assert.Contains(t, css.Header.Get(fiber.HeaderContentType), "text/css")

	body, err := io.ReadAll(css.Body)
	require.NoError(t, err)

	_ = css.Body.Close()

	assert.Contains(t, string(body), "filter: invert(1) hue-rotate(180deg) !important")
	assert.Contains(t, string(body), `cursor: url("/static/img/cursor.svg"), auto !important`)

	resp = cl.postJSON(prefs.ResetPath, `{}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	ok, reset := decodeEnvelope(t, resp)
	require.True(t, ok)
	assert.Equal(t, prefs.Default(), reset)

	_, err = preference.Get(db, 11)
	require.ErrorIs(t, err, preference.ErrPreferenceNotFound)
}

func TestReset_Anonymous_ExpiresCookie(t *testing.T) {
	app := newTestApp(t, newTestDB(t))
	cl := newClient(t, app)

	resp := cl.postJSON(prefs.SettingsPath, `{"settings":{"font_size":40}}`)
	_ = resp.Body.Close()

	require.Contains(t, cl.cookies, "wpac_settings")

	resp = cl.postJSON(prefs.ResetPath, `{}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	assert.NotContains(t, cl.cookies, "wpac_settings")

	ok, resolved := decodeEnvelope(t, cl.do(http.MethodGet, prefs.SettingsPath, "", nil))
	require.True(t, ok)
	assert.Equal(t, prefs.Default(), resolved)
}

func TestResolve_MalformedCookieFallsBackToDefaults(t *testing.T) {
	app := newTestApp(t, newTestDB(t))
	cl := newClient(t, app)
	cl.cookies["wpac_settings"] = url.QueryEscape("{not valid")

	ok, resolved := decodeEnvelope(t, cl.do(http.MethodGet, prefs.SettingsPath, "", nil))
	require.True(t, ok)
	assert.Equal(t, prefs.Default(), resolved)
}

func TestSave_Malformed_LogsRequestID(t *testing.T) {
	var out bytes.Buffer

	saved := log.Logger
	log.Logger = zerolog.New(&out)

	t.Cleanup(func() {
		log.Logger = saved
	})

	cfg := newTestConfig()
	app := fiber.New()
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return "req-7" },
	}))
	app.Use(CSRF(cfg))

	var s Service
	require.NoError(t, s.Init(app, cfg, newTestDB(t)))

	cl := newClient(t, app)
	out.Reset()

	resp := cl.postJSON(prefs.SettingsPath, `{not valid`)
	_ = resp.Body.Close()

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var entry struct {
		Level     string `json:"level"`
		Component string `json:"component"`
		RequestID string `json:"requestID"`
		Message   string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(out.Bytes()), &entry))

	assert.Equal(t, "warn", entry.Level)
	assert.Equal(t, "accessibility", entry.Component)
	assert.Equal(t, "req-7", entry.RequestID)
	assert.Equal(t, "ignoring malformed settings submission", entry.Message)
}
