package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpost/inkpost/internal/logger"
	adapter "github.com/inkpost/inkpost/internal/logger/adapter/fiber"
)

type accessLine struct {
	IP     string `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Host   string `json:"host"`
	User   string `json:"user"`
}

func consoleConfig() adapter.Config {
	return adapter.Config{
		Config: logger.Log{
			EnableAccessLogToConsole: true,
			Console:                  logger.Console{Enabled: true},
		},
		SkipURIs: []string{"/metrics"},
	}
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name       string
		config     adapter.Config
		targetPath string
		user       string
		want       *accessLine
	}{
		{
			name:       "console disabled no output",
			targetPath: "/",
		},
		{
			name:       "get root",
			config:     consoleConfig(),
			targetPath: "/",
			want:       &accessLine{Status: 200, URI: "/", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "query string is kept",
			config:     consoleConfig(),
			targetPath: "/api/settings?type=blog",
			want:       &accessLine{Status: 200, URI: "/api/settings?type=blog", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "unknown path",
			config:     consoleConfig(),
			targetPath: "/nope",
			want:       &accessLine{Status: 404, URI: "/nope", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "user header",
			config:     consoleConfig(),
			targetPath: "/",
			user:       "2",
			want:       &accessLine{Status: 200, URI: "/", Method: fiber.MethodGet, Host: "example.com", User: "2"},
		},
		{
			name:       "skipped uri",
			config:     consoleConfig(),
			targetPath: "/metrics",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := serve(t, tc.targetPath, tc.user, tc.config)

			if tc.want == nil {
				assert.Empty(t, out)
				return
			}

			var got accessLine
			require.NoError(t, json.Unmarshal([]byte(out), &got), out)
			assert.Equal(t, tc.want.Status, got.Status)
			assert.Equal(t, tc.want.URI, got.URI)
			assert.Equal(t, tc.want.Method, got.Method)
			assert.Equal(t, tc.want.Host, got.Host)
			assert.Equal(t, tc.want.User, got.User)
		})
	}
}

// serve sends one request through the middleware and returns what it
// wrote to stdout.
func serve(t *testing.T, targetPath, user string, cfg adapter.Config) string {
	t.Helper()

	stdout := os.Stdout

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w

	app := fiber.New()
	app.Use(adapter.New(cfg))

	ok := func(ctx *fiber.Ctx) error { return ctx.SendString("ok") }
	app.Get("/", ok)
	app.Get("/api/settings", ok)
	app.Get("/metrics", ok)

	req := httptest.NewRequest(fiber.MethodGet, targetPath, nil)
	if user != "" {
		req.Header.Set("X-Inkpost-User", user)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	outC := make(chan string)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout

	return <-outC
}
