// Package themes serves the themes JSON API.
package themes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/inkpost/inkpost/internal/settings"
	core "github.com/inkpost/inkpost/internal/themes"
	"github.com/inkpost/inkpost/internal/web/handler"
	authmiddleware "github.com/inkpost/inkpost/internal/web/middleware/auth"
)

const (
	// Path is the route group of the themes API below the api prefix.
	Path = "/themes"
)

// Service is the themes API handler service.
type Service struct {
	api *core.API
}

var _ handler.Service = (*Service)(nil)

// New creates the themes handler.
func New(api *core.API) *Service {
	return &Service{api: api}
}

// Init registers the routes.
func (s *Service) Init(router fiber.Router) error {
	if router == nil || s.api == nil {
		return errors.New("router or themes api is nil")
	}

	router.Route(Path, func(r fiber.Router) {
		r.Get(handler.RouterRootPath, s.Browse)
		r.Put(handler.RouterRootPath, s.Edit)
	})

	return nil
}

// Browse handles GET /themes.
func (s *Service) Browse(c *fiber.Ctx) error {
	res, err := s.api.Browse(c.UserContext(), authmiddleware.Caller(c))
	if err != nil {
		return handler.SendError(c, err)
	}

	return c.JSON(res)
}

// Edit handles PUT /themes.
func (s *Service) Edit(c *fiber.Ctx) error {
	var req core.EditRequest
	if err := c.BodyParser(&req); err != nil {
		return handler.SendError(c, errors.Wrap(settings.ErrBadRequest, "invalid request body"))
	}

	res, err := s.api.Edit(c.UserContext(), req, authmiddleware.Caller(c))
	if err != nil {
		return handler.SendError(c, err)
	}

	return c.JSON(res)
}
