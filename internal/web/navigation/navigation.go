// Package navigation builds the blog navigation state of a rendered page.
package navigation

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/inkpost/inkpost/internal/settings"
)

// Item is a single navigation link.
type Item struct {
	Label   string
	URL     string
	Slug    string
	Current bool
}

// Context represents the navigation context for a page.
type Context struct {
	PageTitle  string
	ActivePath string
	Items      []Item
}

// NewContext creates a navigation context and marks the items pointing to
// activePath. blogURL is used to relativize absolute item urls.
func NewContext(pageTitle, activePath, blogURL string, items []settings.NavigationItem) *Context {
	c := &Context{
		PageTitle:  pageTitle,
		ActivePath: normalize(activePath),
		Items:      make([]Item, 0, len(items)),
	}

	for _, item := range items {
		c.Items = append(c.Items, Item{
			Label:   item.Label,
			URL:     item.URL,
			Slug:    Slugify(item.Label),
			Current: c.IsActive(relative(item.URL, blogURL)),
		})
	}

	return c
}

// IsActive checks if the given path is the current page.
func (c *Context) IsActive(path string) bool {
	return normalize(path) == c.ActivePath
}

// Slugify turns a label into a css friendly slug, e.g. "About Us" to "about-us".
func Slugify(label string) string {
	var b strings.Builder

	dash := false

	for _, r := range strings.ToLower(strings.TrimSpace(label)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)

			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')

			dash = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// relative strips the blog url from absolute item urls.
func relative(itemURL, blogURL string) string {
	if blogURL == "" {
		return itemURL
	}

	base, err := url.Parse(blogURL)
	if err != nil {
		return itemURL
	}

	u, err := url.Parse(itemURL)
	if err != nil || !u.IsAbs() || u.Host != base.Host {
		return itemURL
	}

	return strings.TrimPrefix(u.Path, strings.TrimSuffix(base.Path, "/"))
}

// normalize makes "/about" and "/about/" compare equal.
func normalize(path string) string {
	if path == "" {
		return "/"
	}

	if !strings.HasSuffix(path, "/") {
		path += "/"
	}

	return path
}
