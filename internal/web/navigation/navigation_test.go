package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext("Test Page", "/page")

	assert.Equal(t, "Test Page", ctx.PageTitle)
	assert.Equal(t, "/page", ctx.ActivePage)
	assert.NotNil(t, ctx.Links)
	assert.Empty(t, ctx.Links)
}

func TestContext_AddLink_Chaining(t *testing.T) {
	ctx := NewContext("Test Page", "/b").
		AddLink("A", "/a").
		AddLink("B", "/b")

	assert.Len(t, ctx.Links, 2)
	assert.False(t, ctx.Links[0].Active)
	assert.True(t, ctx.Links[1].Active)
	assert.True(t, ctx.IsActive("/b"))
	assert.False(t, ctx.IsActive("/a"))
}

func TestForVisitor(t *testing.T) {
	testCases := []struct {
		name     string
		active   string
		username string
		want     []Link
	}{
		{
			name:   "anonymous on home",
			active: HomePath,
			want: []Link{
				{Title: "Home", URL: HomePath, Active: true},
				{Title: "Log in", URL: LoginPath},
			},
		},
		{
			name:   "anonymous on login",
			active: LoginPath,
			want: []Link{
				{Title: "Home", URL: HomePath},
				{Title: "Log in", URL: LoginPath, Active: true},
			},
		},
		{
			name:     "logged in",
			active:   HomePath,
			username: "alice",
			want: []Link{
				{Title: "Home", URL: HomePath, Active: true},
				{Title: "Password", URL: PasswordPath},
				{Title: "Log out", URL: LogoutPath},
			},
		},
		{
			name:     "logged in on password",
			active:   PasswordPath,
			username: "alice",
			want: []Link{
				{Title: "Home", URL: HomePath},
				{Title: "Password", URL: PasswordPath, Active: true},
				{Title: "Log out", URL: LogoutPath},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := ForVisitor("Title", tc.active, tc.username)

			assert.Equal(t, tc.want, ctx.Links)
			assert.Equal(t, tc.username, ctx.Username)
		})
	}
}
