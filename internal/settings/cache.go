package settings

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// cache is an insertion ordered map of settings.
// It is not safe for concurrent use; Store guards it.
type cache struct {
	entries map[string]Setting
	order   []string
}

func newCache() *cache {
	return &cache{entries: make(map[string]Setting)}
}

func (c *cache) get(key string) (Setting, bool) {
	s, ok := c.entries[key]
	return s, ok
}

func (c *cache) put(s Setting) {
	if _, exists := c.entries[s.Key]; !exists {
		c.order = append(c.order, s.Key)
	}

	c.entries[s.Key] = s
}

func (c *cache) values() []Setting {
	out := make([]Setting, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.entries[key])
	}

	return out
}

func (c *cache) stringValue(key string) string {
	if s, ok := c.entries[key]; ok {
		return s.StringValue()
	}

	return ""
}

// UpdateCache maintains the settings cache.
//
// With a non-empty partial set the entries are merged into the cache by key,
// untouched keys are kept. With an empty partial set the cache is rebuilt from
// every stored row. In both cases the theme variables are republished.
// The returned slice is a snapshot of the whole cache.
func (s *Store) UpdateCache(ctx context.Context, partial []Setting) ([]Setting, error) {
	if len(partial) > 0 {
		return s.merge(ctx, partial), nil
	}

	return s.reload(ctx)
}

// merge folds settings into the cache by key.
func (s *Store) merge(ctx context.Context, partial []Setting) []Setting {
	if len(partial) == 0 {
		return s.Snapshot()
	}

	s.mu.Lock()
	for _, setting := range partial {
		s.cache.put(setting)
	}
	snapshot := s.cache.values()
	s.mu.Unlock()

	s.publishTheme(ctx)

	return snapshot
}

// reload replaces the cache with every stored row. writeMu is held from the
// read to the swap so no committed edit is lost in between.
func (s *Store) reload(ctx context.Context) ([]Setting, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	rows, err := s.persistence.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load settings")
	}

	rebuilt := newCache()
	for _, setting := range s.readSettingsResult(rows) {
		rebuilt.put(setting)
	}

	s.mu.Lock()
	s.cache = rebuilt
	snapshot := s.cache.values()
	s.mu.Unlock()

	log.Debug().Int("settings", len(snapshot)).Msg("settings cache reloaded")

	s.publishTheme(ctx)

	return snapshot, nil
}

// readSettingsResult converts rows to settings, keeping the first row of a
// duplicated key, and derives availableThemes/availableApps when the active
// theme or active apps are part of the rows.
func (s *Store) readSettingsResult(rows []Row) []Setting {
	seen := make(map[string]struct{}, len(rows))
	out := make([]Setting, 0, len(rows)+2) //nolint:mnd // two derived settings

	var (
		hasTheme, hasApps     bool
		themeValue, appsValue string
	)

	for _, row := range rows {
		if _, dup := seen[row.Key]; dup {
			continue
		}

		seen[row.Key] = struct{}{}

		out = append(out, Setting{
			Key:       row.Key,
			Value:     row.Value,
			Type:      row.Type,
			CreatedAt: row.CreatedAt,
			CreatedBy: row.CreatedBy,
			UpdatedAt: row.UpdatedAt,
			UpdatedBy: row.UpdatedBy,
		})

		switch row.Key {
		case KeyActiveTheme:
			hasTheme, themeValue = true, row.Value
		case KeyActiveApps:
			hasApps, appsValue = true, row.Value
		}
	}

	if s.lister == nil {
		return out
	}

	if hasTheme {
		if themes, err := s.lister.Themes(); err != nil {
			log.Warn().Err(err).Msg("failed to list installed themes")
		} else {
			out = append(out, Setting{
				Key:   KeyAvailableThemes,
				Value: FilterPaths(themes, themeValue),
				Type:  TypeTheme,
			})
		}
	}

	if hasApps {
		if apps, err := s.lister.Apps(); err != nil {
			log.Warn().Err(err).Msg("failed to list installed apps")
		} else {
			out = append(out, Setting{
				Key:   KeyAvailableApps,
				Value: FilterPaths(apps, decodeActiveApps(appsValue)),
				Type:  TypeApp,
			})
		}
	}

	return out
}

func decodeActiveApps(raw string) any {
	var names []any
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		log.Warn().Err(err).Str("value", raw).Msg("activeApps is not a JSON array")
		return raw
	}

	return names
}

// themeConfig extracts the theme variables from the cache.
func (s *Store) themeConfig() ThemeConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg := ThemeConfig{
		Title:       s.cache.stringValue(KeyTitle),
		Description: s.cache.stringValue(KeyDescription),
		Logo:        s.cache.stringValue(KeyLogo),
		Cover:       s.cache.stringValue(KeyCover),
		Navigation:  []NavigationItem{},
	}

	if raw := s.cache.stringValue(KeyNavigation); raw != "" {
		var nav []NavigationItem
		if err := json.Unmarshal([]byte(raw), &nav); err != nil {
			log.Warn().Err(err).Msg("navigation setting is not valid JSON")
		} else if nav != nil {
			cfg.Navigation = nav
		}
	}

	return cfg
}

// publishTheme sends the current theme variables to the sink.
// Publishing is serialized so the sink never receives an older state last.
func (s *Store) publishTheme(ctx context.Context) {
	if s.sink == nil {
		return
	}

	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	if err := s.sink.PublishTheme(ctx, s.themeConfig()); err != nil {
		log.Error().Err(err).Msg("failed to publish theme configuration")
	}
}

// populateDefault materializes the default of key and adds it to the cache.
func (s *Store) populateDefault(ctx context.Context, key string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	row, err := s.persistence.PopulateDefault(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}

		log.Debug().Err(err).Str("key", key).Msg("populating default setting failed")

		return errors.Wrapf(ErrNotFound, "problem finding setting: %s", key)
	}

	log.Info().Str("key", key).Msg("populated default setting")

	s.merge(ctx, s.readSettingsResult([]Row{row}))

	return nil
}
