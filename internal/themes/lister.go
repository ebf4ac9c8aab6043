package themes

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/inkpost/inkpost/internal/settings"
)

const packageFile = "package.json"

// DirLister implements settings.Lister by reading two directories.
// Every entry is reported; hidden ones are filtered by the store.
type DirLister struct {
	ThemesPath string
	AppsPath   string
}

// Themes lists the themes directory.
func (l DirLister) Themes() (settings.Listing, error) {
	return readListing(l.ThemesPath)
}

// Apps lists the apps directory.
func (l DirLister) Apps() (settings.Listing, error) {
	return readListing(l.AppsPath)
}

// readListing returns one entry per directory item in name order. A missing
// directory is an empty listing.
func readListing(dir string) (settings.Listing, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("path", dir).Msg("content directory does not exist")
		return settings.Listing{}, nil
	}

	if err != nil {
		return nil, err
	}

	listing := make(settings.Listing, 0, len(entries))

	for _, e := range entries {
		entry := settings.Entry{Name: e.Name()}

		if e.IsDir() {
			entry.Package = readPackage(filepath.Join(dir, e.Name(), packageFile))
		}

		listing = append(listing, entry)
	}

	return listing, nil
}

// readPackage decodes a package.json. Missing or broken files yield nil.
func readPackage(path string) map[string]any {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var pkg map[string]any
	if err = json.Unmarshal(data, &pkg); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("invalid package.json")
		return nil
	}

	return pkg
}
