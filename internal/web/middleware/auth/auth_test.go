package auth

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpost/inkpost/internal/db/models"
)

type fakeAuthenticator struct {
	users map[uint64]string
}

func (f fakeAuthenticator) Authenticate(_ context.Context, userID uint64, apiKey string) (*models.User, error) {
	key, ok := f.users[userID]
	if !ok || key != apiKey {
		return nil, errors.New("invalid")
	}

	return &models.User{ID: userID, Active: true}, nil
}

func TestMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(New(fakeAuthenticator{users: map[uint64]string{7: "secret"}}))
	app.Get("/", func(c *fiber.Ctx) error {
		caller := Caller(c)
		if caller == nil {
			return c.SendString("public")
		}

		return c.SendString(strconv.FormatUint(caller.UserID, 10))
	})

	tests := []struct {
		name       string
		user       string
		key        string
		wantStatus int
		wantBody   string
	}{
		{name: "public", wantStatus: fiber.StatusOK, wantBody: "public"},
		{name: "valid", user: "7", key: "secret", wantStatus: fiber.StatusOK, wantBody: "7"},
		{name: "wrong key", user: "7", key: "nope", wantStatus: fiber.StatusUnauthorized},
		{name: "unknown user", user: "8", key: "secret", wantStatus: fiber.StatusUnauthorized},
		{name: "missing key", user: "7", wantStatus: fiber.StatusUnauthorized},
		{name: "missing user", key: "secret", wantStatus: fiber.StatusUnauthorized},
		{name: "bad user id", user: "abc", key: "secret", wantStatus: fiber.StatusUnauthorized},
		{name: "zero user id", user: "0", key: "secret", wantStatus: fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/", nil)
			if tt.user != "" {
				req.Header.Set(HeaderUser, tt.user)
			}

			if tt.key != "" {
				req.Header.Set(HeaderKey, tt.key)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() {
				_ = resp.Body.Close()
			}()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantBody != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}
