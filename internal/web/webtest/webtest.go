// Package webtest builds a complete settings stack on in-memory SQLite for
// handler tests.
package webtest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/storage/memory/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/inkpost/inkpost/internal/auth"
	"github.com/inkpost/inkpost/internal/db/controller/setting"
	"github.com/inkpost/inkpost/internal/db/models"
	"github.com/inkpost/inkpost/internal/settings"
	"github.com/inkpost/inkpost/internal/themeconfig"
	"github.com/inkpost/inkpost/internal/themes"
)

// Identity is a seeded user and its API key.
type Identity struct {
	ID  uint64
	Key string
}

// Stack holds the wired collaborators.
type Stack struct {
	DB     *gorm.DB
	Auth   *auth.Service
	Store  *settings.Store
	Themes *themes.API
	Lister themes.DirLister
	Sink   *themeconfig.Store

	Admin  Identity
	Author Identity
}

// New creates a stack with the themes casper and london installed and one
// Administrator and one Author user.
func New(t testing.TB) *Stack {
	t.Helper()

	ctx := context.Background()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))
	require.NoError(t, auth.Seed(ctx, db))

	authService := auth.NewService(db)

	admin, adminKey, err := authService.CreateUser(ctx, "admin", "admin@example.com", auth.RoleAdministrator, "")
	require.NoError(t, err)

	author, authorKey, err := authService.CreateUser(ctx, "author", "author@example.com", auth.RoleAuthor, "")
	require.NoError(t, err)

	root := t.TempDir()
	for name, content := range map[string]string{
		"themes/casper/package.json": `{"name":"Casper","version":"1.0.0"}`,
		"themes/london/package.json": `{"name":"London"}`,
	} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	lister := themes.DirLister{
		ThemesPath: filepath.Join(root, "themes"),
		AppsPath:   filepath.Join(root, "apps"),
	}

	sink := themeconfig.New(memory.New())

	store, err := settings.New(ctx, settings.Deps{
		Persistence: setting.NewProvider(db, nil),
		Permissions: authService,
		Lister:      lister,
		Sink:        sink,
	})
	require.NoError(t, err)

	return &Stack{
		DB:     db,
		Auth:   authService,
		Store:  store,
		Themes: themes.NewAPI(store, lister, authService),
		Lister: lister,
		Sink:   sink,
		Admin:  Identity{ID: admin.ID, Key: adminKey},
		Author: Identity{ID: author.ID, Key: authorKey},
	}
}

// Request builds a JSON request. A nil identity sends a public request.
func Request(method, target, body string, id *Identity) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if id != nil {
		req.Header.Set("X-Inkpost-User", strconv.FormatUint(id.ID, 10))
		req.Header.Set("X-Inkpost-Key", id.Key)
	}

	return req
}
