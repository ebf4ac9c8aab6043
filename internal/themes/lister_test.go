package themes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpost/inkpost/internal/settings"
)

// writeContent creates a themes directory with the given files.
func writeContent(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	return dir
}

func TestDirLister(t *testing.T) {
	dir := writeContent(t, map[string]string{
		"casper/package.json": `{"name":"Casper","version":"1.0.0"}`,
		"plain/index.hbs":     "",
		"broken/package.json": `{`,
		"README.md":           "# themes",
		".git/HEAD":           "",
	})

	listing, err := DirLister{ThemesPath: dir}.Themes()
	require.NoError(t, err)

	assert.Equal(t, settings.Listing{
		{Name: ".git"},
		{Name: "README.md"},
		{Name: "broken"},
		{Name: "casper", Package: map[string]any{"name": "Casper", "version": "1.0.0"}},
		{Name: "plain"},
	}, listing)

	assert.Equal(t, []settings.PathEntry{
		{Name: "broken", Package: false, Active: false},
		{Name: "casper", Package: map[string]any{"name": "Casper", "version": "1.0.0"}, Active: true},
		{Name: "plain", Package: false, Active: false},
	}, settings.FilterPaths(listing, "casper"))
}

func TestDirLister_MissingDirectory(t *testing.T) {
	listing, err := DirLister{AppsPath: filepath.Join(t.TempDir(), "missing")}.Apps()
	require.NoError(t, err)
	assert.Empty(t, listing)
}
