package settings

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/inkpost/inkpost/internal/settings/defaults"
)

// Deps are the collaborators of a Store.
// Persistence and Permissions are required, the others are optional.
type Deps struct {
	Persistence Persistence
	Permissions Permissions
	Lister      Lister
	Sink        ThemeSink
	Schema      *defaults.Schema
	Listeners   []Listener
}

// Store is the settings cache and the only way to read or change settings.
type Store struct {
	mu    sync.RWMutex
	cache *cache

	// writeMu serializes persistence writes with full reloads.
	writeMu sync.Mutex

	// publishMu serializes theme publication.
	publishMu sync.Mutex

	listenersMu sync.RWMutex
	listeners   []Listener

	persistence Persistence
	permissions Permissions
	lister      Lister
	sink        ThemeSink
	schema      *defaults.Schema
}

// New creates a Store, populates missing default settings and loads the cache.
func New(ctx context.Context, deps Deps) (*Store, error) {
	if deps.Persistence == nil || deps.Permissions == nil {
		return nil, ErrNilDependency
	}

	if deps.Schema == nil {
		deps.Schema = defaults.Load()
	}

	s := &Store{
		cache:       newCache(),
		listeners:   slices.Clone(deps.Listeners),
		persistence: deps.Persistence,
		permissions: deps.Permissions,
		lister:      deps.Lister,
		sink:        deps.Sink,
		schema:      deps.Schema,
	}

	if err := s.persistence.PopulateDefaults(ctx); err != nil {
		return nil, err
	}

	if _, err := s.UpdateCache(ctx, nil); err != nil {
		return nil, err
	}

	return s, nil
}

// Subscribe registers a listener notified after every committed edit.
func (s *Store) Subscribe(l Listener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	s.listeners = append(s.listeners, l)
}

// Snapshot returns a copy of the cache in key order.
func (s *Store) Snapshot() []Setting {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cache.values()
}

// Len returns the number of cached settings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.cache.order)
}

func (s *Store) get(key string) (Setting, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cache.get(key)
}

// Browse lists settings.
//
// Without a caller context only blog settings are returned. Otherwise the
// caller needs the browse permission, and core settings are only included
// for internal callers.
func (s *Store) Browse(ctx context.Context, opts Options) (*Result, error) {
	result := settingsResult(s.Snapshot(), opts.Type)

	if opts.Context == nil {
		result.Settings = filterSettings(result.Settings, func(setting Setting) bool {
			return setting.Type == TypeBlog
		})

		return result, nil
	}

	if err := s.permissions.CanPerform(ctx, opts.Context, ActionBrowseSetting, ""); err != nil {
		log.Warn().Err(err).Uint64("user_id", opts.Context.UserID).Msg("browse settings denied")

		return nil, errors.Wrap(ErrNoPermission, "you do not have permission to browse settings")
	}

	if !opts.Context.IsInternal() {
		result.Settings = filterSettings(result.Settings, func(setting Setting) bool {
			return setting.Type != TypeCore
		})
	}

	return result, nil
}

// ReadKey reads a single setting as an anonymous caller.
func (s *Store) ReadKey(ctx context.Context, key string) (*Result, error) {
	return s.Read(ctx, Options{Key: key})
}

// Read returns a single setting.
//
// A missing key is populated from its default first. Core settings need an
// internal caller, blog settings are always readable and every other type
// needs the read permission.
func (s *Store) Read(ctx context.Context, opts Options) (*Result, error) {
	setting, ok := s.get(opts.Key)
	if !ok {
		if err := s.populateDefault(ctx, opts.Key); err != nil {
			return nil, err
		}

		if setting, ok = s.get(opts.Key); !ok {
			return nil, errors.Wrapf(ErrNotFound, "problem finding setting: %s", opts.Key)
		}
	}

	if setting.Type == TypeCore && !opts.Context.IsInternal() {
		return nil, errors.Wrap(ErrNoPermission, "attempted to access core setting from external request")
	}

	if setting.Type != TypeBlog {
		if err := s.permissions.CanPerform(ctx, opts.Context, ActionReadSetting, opts.Key); err != nil {
			return nil, errors.Wrap(ErrNoPermission, "you do not have permission to read settings")
		}
	}

	return settingsResult([]Setting{setting}, ""), nil
}

// EditKey is the shorthand form of Edit for a single setting.
func (s *Store) EditKey(ctx context.Context, key string, value any, opts Options) (*Result, error) {
	return s.Edit(ctx, EditRequest{Settings: []EditItem{{Key: key, Value: value}}}, opts)
}

// Edit updates a batch of settings.
//
// Non-string values are stored as JSON. A "type" item only tags the result
// and the derived availableThemes/availableApps keys are ignored. Every key
// must pass its permission check before anything is written.
func (s *Store) Edit(ctx context.Context, req EditRequest, opts Options) (*Result, error) {
	if req.Settings == nil {
		return nil, errors.Wrap(ErrBadRequest, "no settings in request")
	}

	items, typeTag, err := cleanEditItems(req.Settings)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return settingsResult([]Setting{}, typeTag), nil
	}

	if err = s.canEditAll(ctx, items, opts.Context); err != nil {
		return nil, err
	}

	if err = s.validateAll(items); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, Row{Key: item.Key, Value: item.Value.(string)}) //nolint:forcetypeassert // cleaned
	}

	edited, err := s.commit(ctx, rows, opts.Context.Actor())
	if err != nil {
		return nil, err
	}

	s.notify(ctx, opts.Context, persistedOnly(edited))

	return settingsResult(edited, typeTag), nil
}

// commit writes rows and merges the stored result into the cache.
func (s *Store) commit(ctx context.Context, rows []Row, actor uint64) ([]Setting, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	written, err := s.persistence.Edit(ctx, rows, actor)
	if err != nil {
		return nil, err
	}

	edited := s.readSettingsResult(written)
	s.merge(ctx, edited)

	return edited, nil
}

// persistedOnly drops the derived availableThemes/availableApps entries.
func persistedOnly(in []Setting) []Setting {
	return filterSettings(in, func(setting Setting) bool {
		return setting.Key != KeyAvailableThemes && setting.Key != KeyAvailableApps
	})
}

// cleanEditItems encodes values to strings, extracts the type tag and drops
// derived keys.
func cleanEditItems(in []EditItem) ([]EditItem, string, error) {
	var typeTag string

	out := make([]EditItem, 0, len(in))

	for _, item := range in {
		value, err := encodeValue(item.Value)
		if err != nil {
			return nil, "", errors.Wrapf(ErrBadRequest, "value of %s: %v", item.Key, err)
		}

		switch item.Key {
		case keyTypeTag:
			typeTag = value
			continue
		case KeyAvailableThemes, KeyAvailableApps:
			continue
		case "":
			return nil, "", errors.Wrap(ErrBadRequest, "setting key can not be empty")
		}

		out = append(out, EditItem{Key: item.Key, Value: value})
	}

	return out, typeTag, nil
}

func encodeValue(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// canEditAll checks the edit permission of every item. Missing keys are
// populated from their defaults first. The checks run concurrently and the
// first failure aborts the batch.
func (s *Store) canEditAll(ctx context.Context, items []EditItem, caller *Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, item := range items {
		g.Go(func() error {
			setting, ok := s.get(item.Key)
			if !ok {
				if err := s.populateDefault(gctx, item.Key); err != nil {
					return err
				}

				if setting, ok = s.get(item.Key); !ok {
					return errors.Wrapf(ErrNotFound, "problem finding setting: %s", item.Key)
				}
			}

			return s.canEdit(gctx, setting, caller)
		})
	}

	return g.Wait()
}

func (s *Store) canEdit(ctx context.Context, setting Setting, caller *Context) error {
	if setting.Type == TypeCore && !caller.IsInternal() {
		return errors.Wrap(ErrNoPermission, "attempted to access core setting from external request")
	}

	if err := s.permissions.CanPerform(ctx, caller, ActionEditSetting, setting.Key); err != nil {
		log.Warn().Err(err).Str("key", setting.Key).Msg("edit setting denied")

		return errors.Wrap(ErrNoPermission, "you do not have permission to edit settings")
	}

	return nil
}

func (s *Store) validateAll(items []EditItem) error {
	for _, item := range items {
		value := item.Value.(string) //nolint:forcetypeassert // cleaned

		if err := s.schema.Validate(item.Key, value); err != nil {
			return errors.Wrap(ErrValidation, err.Error())
		}

		if item.Key == KeyActiveTheme {
			if err := s.validateActiveTheme(value); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Store) validateActiveTheme(name string) error {
	if s.lister == nil {
		return nil
	}

	themes, err := s.lister.Themes()
	if err != nil {
		return errors.Wrap(err, "failed to list installed themes")
	}

	for _, theme := range themes {
		if theme.Name == name {
			return nil
		}
	}

	return errors.Wrapf(ErrValidation, "%s cannot be activated because it is not currently installed", name)
}

func (s *Store) notify(ctx context.Context, caller *Context, edited []Setting) {
	s.listenersMu.RLock()
	listeners := slices.Clone(s.listeners)
	s.listenersMu.RUnlock()

	for _, l := range listeners {
		l.SettingsEdited(ctx, caller, edited)
	}
}

// settingsResult wraps settings into a Result, keeping only the types named
// in the comma separated filter.
func settingsResult(in []Setting, filter string) *Result {
	result := &Result{Settings: in}

	if filter == "" {
		if result.Settings == nil {
			result.Settings = []Setting{}
		}

		return result
	}

	types := strings.Split(filter, ",")
	result.Settings = filterSettings(in, func(setting Setting) bool {
		return slices.Contains(types, string(setting.Type))
	})
	result.Meta.Filters = &Filters{Type: filter}

	return result
}

func filterSettings(in []Setting, keep func(Setting) bool) []Setting {
	out := make([]Setting, 0, len(in))
	for _, setting := range in {
		if keep(setting) {
			out = append(out, setting)
		}
	}

	return out
}
