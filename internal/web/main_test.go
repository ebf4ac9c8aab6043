package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpost/inkpost/internal/config"
	"github.com/inkpost/inkpost/internal/metrics"
	"github.com/inkpost/inkpost/internal/web/webtest"
)

func newService(t *testing.T) (*Service, *webtest.Stack) {
	t.Helper()

	stack := webtest.New(t)
	reg := prometheus.NewRegistry()
	stack.Store.Subscribe(metrics.NewSettings(reg, stack.Store.Len))

	cfg := &config.Config{
		Title:     "Inkpost",
		Webserver: config.Webserver{Port: 2368, URL: "http://localhost:2368", CleanPath: true, BlogMaxAge: 30},
	}

	s, err := New(cfg, Deps{
		Store:         stack.Store,
		Themes:        stack.Themes,
		ThemeSource:   stack.Sink,
		Authenticator: stack.Auth,
		Gatherer:      reg,
	})
	require.NoError(t, err)

	return s, stack
}

func do(t *testing.T, s *Service, req *http.Request) (*http.Response, string) {
	t.Helper()

	resp, err := s.App.Test(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestNew_NilDependencies(t *testing.T) {
	_, err := New(nil, Deps{})
	require.ErrorIs(t, err, errNilDependency)

	_, err = New(&config.Config{}, Deps{})
	require.ErrorIs(t, err, errNilDependency)
}

func TestService_Addr(t *testing.T) {
	s, _ := newService(t)
	assert.Equal(t, ":2368", s.Addr())
}

func TestCheckAlive(t *testing.T) {
	s, _ := newService(t)

	resp, body := do(t, s, httptest.NewRequest(fiber.MethodGet, CheckAlivePath, nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)

	s.alive.Store(false)

	resp, _ = do(t, s, httptest.NewRequest(fiber.MethodGet, CheckAlivePath, nil))
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestAPI_CacheControl(t *testing.T) {
	s, _ := newService(t)

	resp, _ := do(t, s, webtest.Request(fiber.MethodGet, "/api/settings", "", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-cache, private", resp.Header.Get(fiber.HeaderCacheControl))

	resp, _ = do(t, s, webtest.Request(fiber.MethodGet, "//api//settings/title", "", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestBlogIndex(t *testing.T) {
	s, stack := newService(t)

	resp, body := do(t, s, webtest.Request(fiber.MethodPut, "/api/settings",
		`{"settings":[{"key":"title","value":"Field Notes"},{"key":"navigation","value":[{"label":"Home","url":"/"},{"label":"About","url":"/about/"}]}]}`,
		&stack.Admin))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)

	resp, body = do(t, s, httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)

	assert.Equal(t, "public, max-age=30", resp.Header.Get(fiber.HeaderCacheControl))
	assert.Contains(t, body, "<title>Field Notes</title>")
	assert.Contains(t, body, `class="nav-home nav-current"`)
	assert.Contains(t, body, `class="nav-about"`)
}

func TestMetrics(t *testing.T) {
	s, stack := newService(t)

	resp, body := do(t, s, webtest.Request(fiber.MethodPut, "/api/settings/title", `{"value":"x"}`, &stack.Admin))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)

	resp, body = do(t, s, httptest.NewRequest(fiber.MethodGet, MetricsPath, nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `inkpost_settings_edits_total{type="blog"} 1`)
	assert.Contains(t, body, "inkpost_settings_cache_size")
}
