package config

import (
	"github.com/inkpost/inkpost/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode      bool         `mapstructure:"devMode"`
	Title        string       `mapstructure:"title"        validate:"required"`
	DB           DB           `mapstructure:"db"`
	Log          logger.Log   `mapstructure:"log"`
	Webserver    Webserver    `mapstructure:"webserver"`
	Content      Content      `mapstructure:"content"`
	ThemeStorage ThemeStorage `mapstructure:"themeStorage"`
	Admin        Admin        `mapstructure:"admin"`
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool   `mapstructure:"cleanPath"`                                       // allow multi slash requests
	DisableRecover bool   `mapstructure:"disableRecover"`                                  // disable recover middleware
	Port           int    `mapstructure:"port"           validate:"required,min=1,max=65535"` // listening port
	ShutDownTime   int    `mapstructure:"shutDownTime"`                                    // seconds to wait on shutdown
	URL            string `mapstructure:"url"            validate:"required,url"`             // public base url of the blog
	// BlogMaxAge is the public Cache-Control max-age of the blog index in seconds.
	BlogMaxAge int `mapstructure:"blogMaxAge" validate:"min=0"`
}

// Content points to the installed themes and apps.
type Content struct {
	ThemesPath string `mapstructure:"themesPath" validate:"required"`
	AppsPath   string `mapstructure:"appsPath"   validate:"required"`
}

// ThemeStorage selects where published theme variables are kept.
type ThemeStorage struct {
	// Driver is "memory" or "db". With "db" the configured database engine
	// is used, which must be mysql or postgres.
	Driver string `mapstructure:"driver" validate:"required,oneof=memory db"`
	Table  string `mapstructure:"table"`
}

// Admin is the bootstrap administrator created on first start.
type Admin struct {
	Name  string `mapstructure:"name"  validate:"required"`
	Email string `mapstructure:"email" validate:"omitempty,email"`
	// APIKey of the administrator. A random key is generated and logged
	// once if empty.
	APIKey string `mapstructure:"apiKey"`
}
