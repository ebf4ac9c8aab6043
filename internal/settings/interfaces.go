package settings

import (
	"context"
)

// Persistence stores setting rows.
type Persistence interface {
	// FindAll returns every stored row.
	FindAll(ctx context.Context) ([]Row, error)
	// Edit writes the values of rows atomically and returns the stored rows.
	Edit(ctx context.Context, rows []Row, actor uint64) ([]Row, error)
	// PopulateDefault materializes the default row for key.
	// It fails with ErrNotFound if no default exists.
	PopulateDefault(ctx context.Context, key string) (Row, error)
	// PopulateDefaults materializes every missing default row.
	PopulateDefaults(ctx context.Context) error
}

// Permissions decides whether a caller may perform an action.
// A nil error means the action is allowed.
type Permissions interface {
	CanPerform(ctx context.Context, caller *Context, action Action, key string) error
}

// Entry is one item of a directory listing.
// Package is the decoded package.json or nil if the entry has none.
type Entry struct {
	Name    string
	Package map[string]any
}

// Listing is an ordered directory listing.
type Listing []Entry

// Lister lists the installed themes and apps.
type Lister interface {
	Themes() (Listing, error)
	Apps() (Listing, error)
}

// ThemeSink receives the theme variables every time the cache changes.
type ThemeSink interface {
	PublishTheme(ctx context.Context, cfg ThemeConfig) error
}

// Listener is notified after an edit has been committed.
type Listener interface {
	SettingsEdited(ctx context.Context, caller *Context, edited []Setting)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(ctx context.Context, caller *Context, edited []Setting)

// SettingsEdited calls f.
func (f ListenerFunc) SettingsEdited(ctx context.Context, caller *Context, edited []Setting) {
	f(ctx, caller, edited)
}
