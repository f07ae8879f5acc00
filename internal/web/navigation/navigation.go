// Package navigation builds the header links of a page.
package navigation

// Paths of the pages every header links to.
const (
	HomePath     = "/"
	LoginPath    = "/login"
	LogoutPath   = "/logout"
	PasswordPath = "/password"
)

// Link represents a single header link.
type Link struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	PageTitle  string
	ActivePage string
	Username   string
	Links      []Link
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activePage string) *Context {
	return &Context{
		PageTitle:  pageTitle,
		ActivePage: activePage,
		Links:      make([]Link, 0),
	}
}

// AddLink adds a link to the context. It is active when url is the
// active page.
func (c *Context) AddLink(title, url string) *Context {
	c.Links = append(c.Links, Link{
		Title:  title,
		URL:    url,
		Active: url == c.ActivePage,
	})

	return c
}

// IsActive checks if the given page is the current one.
func (c *Context) IsActive(page string) bool {
	return c.ActivePage == page
}

// ForVisitor returns the header of activePage: home plus log in for
// anonymous visitors, home, password and log out for username.
func ForVisitor(pageTitle, activePage, username string) *Context {
	c := NewContext(pageTitle, activePage).AddLink("Home", HomePath)
	c.Username = username

	if username == "" {
		return c.AddLink("Log in", LoginPath)
	}

	return c.AddLink("Password", PasswordPath).AddLink("Log out", LogoutPath)
}
