// Package settings serves the settings JSON API.
package settings

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	core "github.com/inkpost/inkpost/internal/settings"
	"github.com/inkpost/inkpost/internal/web/handler"
	authmiddleware "github.com/inkpost/inkpost/internal/web/middleware/auth"
)

const (
	// Path is the route group of the settings API below the api prefix.
	Path = "/settings"
)

// valueRequest is the body of a single key edit.
type valueRequest struct {
	Value *json.RawMessage `json:"value" validate:"required"`
}

// Service is the settings API handler service.
type Service struct {
	store     *core.Store
	validator *validator.Validate
}

var _ handler.Service = (*Service)(nil)

// New creates the settings handler.
func New(store *core.Store) *Service {
	return &Service{store: store, validator: validator.New()}
}

// Init registers the routes.
func (s *Service) Init(router fiber.Router) error {
	if router == nil || s.store == nil {
		return errors.New("router or store is nil")
	}

	router.Route(Path, func(r fiber.Router) {
		r.Get(handler.RouterRootPath, s.Browse)
		r.Put(handler.RouterRootPath, s.Edit)
		r.Get("/:key", s.Read)
		r.Put("/:key", s.EditKey)
	})

	return nil
}

// Browse handles GET /settings?type=.
func (s *Service) Browse(c *fiber.Ctx) error {
	res, err := s.store.Browse(c.UserContext(), core.Options{
		Context: authmiddleware.Caller(c),
		Type:    c.Query("type"),
	})
	if err != nil {
		return handler.SendError(c, err)
	}

	return c.JSON(res)
}

// Read handles GET /settings/:key.
func (s *Service) Read(c *fiber.Ctx) error {
	res, err := s.store.Read(c.UserContext(), core.Options{
		Context: authmiddleware.Caller(c),
		Key:     c.Params("key"),
	})
	if err != nil {
		return handler.SendError(c, err)
	}

	return c.JSON(res)
}

// Edit handles PUT /settings with a batch body.
func (s *Service) Edit(c *fiber.Ctx) error {
	var req core.EditRequest
	if err := c.BodyParser(&req); err != nil {
		return handler.SendError(c, errors.Wrap(core.ErrBadRequest, "invalid request body"))
	}

	if err := s.validator.Struct(&req); err != nil {
		return handler.SendError(c, err)
	}

	res, err := s.store.Edit(c.UserContext(), req, core.Options{
		Context: authmiddleware.Caller(c),
	})
	if err != nil {
		return handler.SendError(c, err)
	}

	return c.JSON(res)
}

// EditKey handles PUT /settings/:key with a {"value": ...} body.
func (s *Service) EditKey(c *fiber.Ctx) error {
	var req valueRequest
	if err := c.BodyParser(&req); err != nil {
		return handler.SendError(c, errors.Wrap(core.ErrBadRequest, "invalid request body"))
	}

	if err := s.validator.Struct(&req); err != nil {
		return handler.SendError(c, err)
	}

	var value any
	if err := json.Unmarshal(*req.Value, &value); err != nil {
		return handler.SendError(c, errors.Wrap(core.ErrBadRequest, "invalid value"))
	}

	res, err := s.store.EditKey(c.UserContext(), c.Params("key"), value, core.Options{
		Context: authmiddleware.Caller(c),
	})
	if err != nil {
		return handler.SendError(c, err)
	}

	return c.JSON(res)
}
