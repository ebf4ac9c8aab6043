// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	envPrefix     = "INKPOST"
	envConfigJSON = "INKPOST_CONFIG_JSON"
	mainFile      = "main.toml"
	defaultDir    = "./etc/"

	defaultShutDownTime = 5
)

// ReadConfig reads main.toml from the directory path.
//
// Single values are overridden by INKPOST_<SECTION>_<KEY> environment
// variables, the whole document by the JSON in INKPOST_CONFIG_JSON.
func ReadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultDir
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(path, mainFile))
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	if JSONConfigEnv := os.Getenv(envConfigJSON); JSONConfigEnv != "" {
		if err := json.Unmarshal([]byte(JSONConfigEnv), &c); err != nil {
			return Config{}, errors.Wrap(err, "failed to read "+envConfigJSON)
		}
	}

	return c, validate(&c)
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer

	if err := toml.NewEncoder(&buffer).Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the config and fills in defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.ThemeStorage.Driver == "" {
		c.ThemeStorage.Driver = "memory"
	}

	if c.DB.Engine == "" {
		c.DB.Engine = EngineSQLite
	}

	if c.ThemeStorage.Driver == "db" && c.DB.Engine == EngineSQLite {
		return errors.Wrap(ErrThemeStorageEngine, invalidErrMessage)
	}

	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	return nil
}
