package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrThemeStorageEngine is returned when the db theme storage is used with sqlite.
	ErrThemeStorageEngine = errors.New("toml config themeStorage.driver db needs a mysql or postgres database")
)
