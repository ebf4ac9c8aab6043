// Package themeconfig keeps the theme variables published by the settings
// store in a fiber.Storage, so the blog renderer reads them without touching
// the settings cache.
package themeconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/inkpost/inkpost/internal/settings"
)

// storageKey is the key the configuration is stored under.
const storageKey = "theme:config"

// ErrNotPublished is returned by Current before the first publication.
var ErrNotPublished = errors.New("theme configuration not published yet")

// Store implements settings.ThemeSink.
type Store struct {
	storage fiber.Storage

	mu      sync.RWMutex
	current *settings.ThemeConfig
}

// New returns a Store writing to storage.
func New(storage fiber.Storage) *Store {
	return &Store{storage: storage}
}

// PublishTheme implements settings.ThemeSink.
func (s *Store) PublishTheme(_ context.Context, cfg settings.ThemeConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode theme configuration: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.storage.Set(storageKey, data, 0); err != nil {
		return fmt.Errorf("store theme configuration: %w", err)
	}

	s.current = &cfg

	return nil
}

// Current returns the last published configuration. It falls back to the
// storage when this process has not published yet.
func (s *Store) Current(_ context.Context) (settings.ThemeConfig, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current != nil {
		return *current, nil
	}

	data, err := s.storage.Get(storageKey)
	if err != nil {
		return settings.ThemeConfig{}, fmt.Errorf("load theme configuration: %w", err)
	}

	if len(data) == 0 {
		return settings.ThemeConfig{}, ErrNotPublished
	}

	var cfg settings.ThemeConfig
	if err = json.Unmarshal(data, &cfg); err != nil {
		return settings.ThemeConfig{}, fmt.Errorf("decode theme configuration: %w", err)
	}

	return cfg, nil
}

// Close closes the underlying storage.
func (s *Store) Close() error {
	return s.storage.Close()
}
