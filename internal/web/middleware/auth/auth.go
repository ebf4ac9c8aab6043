package auth

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/inkpost/inkpost/internal/db/models"
	"github.com/inkpost/inkpost/internal/settings"
)

const (
	// HeaderUser carries the user id of the caller.
	HeaderUser = "X-Inkpost-User"
	// HeaderKey carries the API key of the caller.
	HeaderKey = "X-Inkpost-Key"

	localsCaller = "caller"
)

// Authenticator verifies user credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, userID uint64, apiKey string) (*models.User, error)
}

// New returns the identity middleware.
func New(authenticator Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userHeader := c.Get(HeaderUser)
		key := c.Get(HeaderKey)

		if userHeader == "" && key == "" {
			return c.Next()
		}

		if userHeader == "" || key == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "both "+HeaderUser+" and "+HeaderKey+" are required")
		}

		userID, err := strconv.ParseUint(userHeader, 10, 64)
		if err != nil || userID == 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid user id")
		}

		user, err := authenticator.Authenticate(c.UserContext(), userID, key)
		if err != nil {
			log.Warn().Err(err).Uint64("user_id", userID).Str("ip", c.IP()).Msg("authentication failed")

			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}

		c.Locals(localsCaller, &settings.Context{UserID: user.ID})

		return c.Next()
	}
}

// Caller returns the caller set by the middleware, nil for public requests.
func Caller(c *fiber.Ctx) *settings.Context {
	caller, _ := c.Locals(localsCaller).(*settings.Context)

	return caller
}
