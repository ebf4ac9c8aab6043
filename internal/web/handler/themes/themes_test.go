package themes

import (
	"io"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpost/inkpost/internal/web/handler"
	authmiddleware "github.com/inkpost/inkpost/internal/web/middleware/auth"
	"github.com/inkpost/inkpost/internal/web/webtest"
)

func TestThemes(t *testing.T) {
	stack := webtest.New(t)

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	app.Use(authmiddleware.New(stack.Auth))
	require.NoError(t, New(stack.Themes).Init(app))

	tests := []struct {
		name       string
		method     string
		body       string
		id         *webtest.Identity
		wantStatus int
		wantBody   string
	}{
		{
			name:       "public browse is denied",
			method:     fiber.MethodGet,
			wantStatus: fiber.StatusForbidden,
		},
		{
			name:       "admin browses",
			method:     fiber.MethodGet,
			id:         &stack.Admin,
			wantStatus: fiber.StatusOK,
			wantBody: `{"themes":[
				{"uuid":"casper","name":"Casper","version":"1.0.0","active":true},
				{"uuid":"london","name":"London","active":false}
			]}`,
		},
		{
			name:       "author may not activate",
			method:     fiber.MethodPut,
			body:       `{"themes":[{"uuid":"london"}]}`,
			id:         &stack.Author,
			wantStatus: fiber.StatusForbidden,
		},
		{
			name:       "missing themes",
			method:     fiber.MethodPut,
			body:       `{}`,
			id:         &stack.Admin,
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "unknown theme",
			method:     fiber.MethodPut,
			body:       `{"themes":[{"uuid":"missing"}]}`,
			id:         &stack.Admin,
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "admin activates london",
			method:     fiber.MethodPut,
			body:       `{"themes":[{"uuid":"london"}]}`,
			id:         &stack.Admin,
			wantStatus: fiber.StatusOK,
			wantBody:   `{"themes":[{"uuid":"london","name":"London","active":true}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(webtest.Request(tt.method, Path, tt.body, tt.id))
			require.NoError(t, err)
			defer func() {
				_ = resp.Body.Close()
			}()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode, string(body))

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, string(body))
			}
		})
	}
}
