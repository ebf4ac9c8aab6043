package themes

import (
	"context"
	"encoding/json"
	"maps"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/inkpost/inkpost/internal/settings"
)

// Theme is an installed theme as returned by the API.
// It marshals to its package.json fields plus uuid and active.
type Theme struct {
	UUID    string
	Package map[string]any
	Active  bool
}

// MarshalJSON merges the package fields with uuid and active.
func (t Theme) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.Package)+2) //nolint:mnd
	out["uuid"] = t.UUID
	maps.Copy(out, t.Package)
	out["active"] = t.Active

	return json.Marshal(out)
}

// Ref references a theme in an edit request.
type Ref struct {
	UUID string `json:"uuid"`
}

// EditRequest is the body of a theme edit.
type EditRequest struct {
	Themes []Ref `json:"themes"`
}

// Result wraps the themes of a response.
type Result struct {
	Themes []Theme `json:"themes"`
}

// API implements browsing and activating themes.
type API struct {
	store       *settings.Store
	lister      settings.Lister
	permissions settings.Permissions
}

// NewAPI returns a themes API.
func NewAPI(store *settings.Store, lister settings.Lister, permissions settings.Permissions) *API {
	return &API{store: store, lister: lister, permissions: permissions}
}

// Browse lists installed themes and marks the active one.
func (a *API) Browse(ctx context.Context, caller *settings.Context) (*Result, error) {
	if err := a.permissions.CanPerform(ctx, caller, settings.ActionBrowseTheme, ""); err != nil {
		return nil, errors.Wrap(settings.ErrNoPermission, "you do not have permission to browse themes")
	}

	active, err := a.store.Read(ctx, settings.Options{Key: settings.KeyActiveTheme, Context: settings.Internal()})
	if err != nil {
		return nil, err
	}

	listing, err := a.lister.Themes()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list installed themes")
	}

	activeName := active.Settings[0].StringValue()
	res := &Result{Themes: []Theme{}}

	for _, entry := range settings.FilterPaths(listing, activeName) {
		theme := Theme{UUID: entry.Name, Active: entry.Active}
		if pkg, ok := entry.Package.(map[string]any); ok {
			theme.Package = pkg
		}

		res.Themes = append(res.Themes, theme)
	}

	return res, nil
}

// Edit activates the first theme of the request.
func (a *API) Edit(ctx context.Context, req EditRequest, caller *settings.Context) (*Result, error) {
	if req.Themes == nil {
		return nil, errors.Wrap(settings.ErrBadRequest, "invalid request")
	}

	if len(req.Themes) == 0 || req.Themes[0].UUID == "" {
		return nil, errors.Wrap(settings.ErrBadRequest, "theme does not exist")
	}

	name := req.Themes[0].UUID

	if err := a.permissions.CanPerform(ctx, caller, settings.ActionEditTheme, settings.KeyActiveTheme); err != nil {
		return nil, errors.Wrap(settings.ErrNoPermission, "you do not have permission to edit themes")
	}

	available, err := a.Browse(ctx, caller)
	if err != nil {
		return nil, err
	}

	var theme *Theme

	for i := range available.Themes {
		if available.Themes[i].UUID == name {
			theme = &available.Themes[i]
			break
		}
	}

	if theme == nil {
		return nil, errors.Wrap(settings.ErrBadRequest, "theme does not exist")
	}

	internal := &settings.Context{Internal: true}
	if caller != nil {
		internal.UserID = caller.UserID
	}

	if _, err = a.store.EditKey(ctx, settings.KeyActiveTheme, name, settings.Options{Context: internal}); err != nil {
		return nil, err
	}

	log.Info().Str("theme", name).Uint64("actor", internal.Actor()).Msg("theme activated")

	theme.Active = true

	return &Result{Themes: []Theme{*theme}}, nil
}
