package settings

import (
	"time"
)

// Type is the category of a setting.
type Type string

const (
	// TypeCore settings are internal to the application.
	TypeCore Type = "core"
	// TypeBlog settings are public blog metadata.
	TypeBlog Type = "blog"
	// TypeTheme settings configure the active theme.
	TypeTheme Type = "theme"
	// TypeApp settings configure installed apps.
	TypeApp Type = "app"
	// TypePlugin settings belong to plugins.
	TypePlugin Type = "plugin"
)

// Valid reports whether t is one of the known setting categories.
func (t Type) Valid() bool {
	switch t {
	case TypeCore, TypeBlog, TypeTheme, TypeApp, TypePlugin:
		return true
	default:
		return false
	}
}

// Well known keys.
const (
	KeyTitle           = "title"
	KeyDescription     = "description"
	KeyLogo            = "logo"
	KeyCover           = "cover"
	KeyNavigation      = "navigation"
	KeyActiveTheme     = "activeTheme"
	KeyActiveApps      = "activeApps"
	KeyAvailableThemes = "availableThemes"
	KeyAvailableApps   = "availableApps"

	// keyTypeTag is the pseudo setting used to tag an edit result.
	keyTypeTag = "type"
)

// Action names a permission checked against the Permissions collaborator.
type Action string

const (
	// ActionBrowseSetting allows listing settings.
	ActionBrowseSetting Action = "setting.browse"
	// ActionReadSetting allows reading a single setting.
	ActionReadSetting Action = "setting.read"
	// ActionEditSetting allows editing a setting.
	ActionEditSetting Action = "setting.edit"
	// ActionBrowseTheme allows listing installed themes.
	ActionBrowseTheme Action = "theme.browse"
	// ActionEditTheme allows switching the active theme.
	ActionEditTheme Action = "theme.edit"
)

// Context identifies the caller of a store operation.
// A nil *Context is an anonymous, public caller.
type Context struct {
	UserID   uint64 `json:"user_id,omitempty"`
	Internal bool   `json:"internal,omitempty"`
}

// Internal returns a context that bypasses external permission checks.
func Internal() *Context {
	return &Context{Internal: true}
}

// IsInternal reports whether c is an internal caller.
func (c *Context) IsInternal() bool {
	return c != nil && c.Internal
}

// Actor returns the user id recorded in audit fields.
func (c *Context) Actor() uint64 {
	if c == nil || c.UserID == 0 {
		return SystemUserID
	}

	return c.UserID
}

// SystemUserID is recorded as actor for writes without a user.
const SystemUserID uint64 = 1

// Setting is a single cached configuration entry.
// Value is a string for persisted settings and []PathEntry for derived ones.
type Setting struct {
	Key       string    `json:"key"`
	Value     any       `json:"value"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy uint64    `json:"created_by"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy uint64    `json:"updated_by"`
}

// StringValue returns the value if it is a string, empty string otherwise.
func (s Setting) StringValue() string {
	if v, ok := s.Value.(string); ok {
		return v
	}

	return ""
}

// Row is a setting as exchanged with the Persistence collaborator.
type Row struct {
	Key       string
	Value     string
	Type      Type
	CreatedAt time.Time
	CreatedBy uint64
	UpdatedAt time.Time
	UpdatedBy uint64
}

// Options are passed to Browse, Read and Edit.
type Options struct {
	Context *Context
	// Type is an optional comma separated category filter, e.g. "blog,theme".
	Type string
	Key  string
}

// Filters describes the filters applied to a Result.
type Filters struct {
	Type string `json:"type"`
}

// Meta carries result metadata.
type Meta struct {
	Filters *Filters `json:"filters,omitempty"`
}

// Result is returned by every store operation.
type Result struct {
	Settings []Setting `json:"settings"`
	Meta     Meta      `json:"meta"`
}

// Get returns the setting with the given key from the result.
func (r *Result) Get(key string) (Setting, bool) {
	if r == nil {
		return Setting{}, false
	}

	for _, s := range r.Settings {
		if s.Key == key {
			return s, true
		}
	}

	return Setting{}, false
}

// EditItem is a single key/value pair of an edit batch.
type EditItem struct {
	Key   string `json:"key"   validate:"required,max=150"`
	Value any    `json:"value"`
}

// EditRequest is the batch form accepted by Edit.
type EditRequest struct {
	Settings []EditItem `json:"settings" validate:"required,dive"`
}

// PathEntry describes an installed theme or app.
// Package holds the decoded package.json or false if there is none.
type PathEntry struct {
	Name    string `json:"name"`
	Package any    `json:"package"`
	Active  bool   `json:"active"`
}

// NavigationItem is one entry of the blog navigation.
type NavigationItem struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// ThemeConfig holds the theme variables derived from the settings.
type ThemeConfig struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Logo        string           `json:"logo"`
	Cover       string           `json:"cover"`
	Navigation  []NavigationItem `json:"navigation"`
}
