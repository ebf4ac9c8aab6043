// Package blog renders the public blog index from the published theme
// configuration.
package blog

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/inkpost/inkpost/internal/config"
	"github.com/inkpost/inkpost/internal/settings"
	"github.com/inkpost/inkpost/internal/web/handler"
	"github.com/inkpost/inkpost/internal/web/navigation"
)

const (
	// Path is the blog index.
	Path = "/"

	// Template is the view rendered for the index.
	Template = "index"
)

// Source provides the published theme configuration.
type Source interface {
	Current(ctx context.Context) (settings.ThemeConfig, error)
}

// Service is the blog handler service.
type Service struct {
	cfg    *config.Config
	source Source
}

var _ handler.Service = (*Service)(nil)

// New creates the blog handler.
func New(cfg *config.Config, source Source) *Service {
	return &Service{cfg: cfg, source: source}
}

// Init registers the routes.
func (s *Service) Init(router fiber.Router) error {
	if router == nil || s.cfg == nil || s.source == nil {
		return errors.New("router, cfg or theme source is nil")
	}

	router.Get(Path, s.Get)

	return nil
}

// Get renders the blog index.
func (s *Service) Get(c *fiber.Ctx) error {
	theme, err := s.source.Current(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to load theme configuration")

		return c.Status(fiber.StatusServiceUnavailable).SendString("blog is not ready")
	}

	nav := navigation.NewContext(theme.Title, c.Path(), s.cfg.Webserver.URL, theme.Navigation)

	c.Set(fiber.HeaderCacheControl, "public, max-age="+strconv.Itoa(s.cfg.Webserver.BlogMaxAge))

	return c.Render(Template, fiber.Map{
		"Theme":      theme,
		"Navigation": nav,
		"URL":        s.cfg.Webserver.URL,
	}, handler.BaseLayout)
}
