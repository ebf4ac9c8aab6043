package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpost/inkpost/internal/logger"
)

func configDir(t *testing.T) string {
	t.Helper()

	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	return filepath.Join(projectRoot, "etc")
}

func validConfig() Config {
	return Config{
		Title: "Test",
		DB:    DB{Engine: EngineSQLite, Path: "test.db"},
		Log:   logger.Log{LogLevel: "info", AppName: "test", ServiceName: "test"},
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
		Content:      Content{ThemesPath: "themes", AppsPath: "apps"},
		ThemeStorage: ThemeStorage{Driver: "memory"},
		Admin:        Admin{Name: "admin"},
	}
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(configDir(t))
	require.NoError(t, err)

	assert.Equal(t, "Inkpost", cfg.Title)
	assert.Equal(t, 2368, cfg.Webserver.Port)
	assert.Equal(t, "http://localhost:2368", cfg.Webserver.URL)
	assert.Equal(t, EngineSQLite, cfg.DB.Engine)
	assert.NotEmpty(t, cfg.DB.Path)
	assert.Equal(t, "memory", cfg.ThemeStorage.Driver)
	assert.Equal(t, "./content/themes", cfg.Content.ThemesPath)
	assert.Equal(t, "inkpost", cfg.Log.AppName)
	assert.True(t, cfg.Log.Console.Enabled)
	assert.Equal(t, "access.log", cfg.Log.File.AccessLog)
}

func TestReadConfig_MissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir())
	require.Error(t, err)
}

func TestReadConfigWithEnvOverride(t *testing.T) {
	t.Setenv("INKPOST_WEBSERVER_PORT", "9091")
	t.Setenv("INKPOST_TITLE", "From Env")

	cfg, err := ReadConfig(configDir(t))
	require.NoError(t, err)

	assert.Equal(t, 9091, cfg.Webserver.Port)
	assert.Equal(t, "From Env", cfg.Title)
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	t.Setenv("INKPOST_CONFIG_JSON", `{"Title":"Test Override","Webserver":{"Port":9090}}`)

	cfg, err := ReadConfig(configDir(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.Title)
	assert.Equal(t, 9090, cfg.Webserver.Port)
	// untouched values survive the merge
	assert.Equal(t, "http://localhost:2368", cfg.Webserver.URL)
}

func TestReadConfigWithBrokenJSONOverride(t *testing.T) {
	t.Setenv("INKPOST_CONFIG_JSON", `{"Title":`)

	_, err := ReadConfig(configDir(t))
	require.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr error
	}{
		{
			name:   "valid config",
			modify: func(*Config) {},
		},
		{
			name:    "missing port",
			modify:  func(c *Config) { c.Webserver.Port = 0 },
			wantErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name:    "missing URL",
			modify:  func(c *Config) { c.Webserver.URL = "" },
			wantErr: ErrEmptyURL,
		},
		{
			name:    "db theme storage on sqlite",
			modify:  func(c *Config) { c.ThemeStorage.Driver = "db" },
			wantErr: ErrThemeStorageEngine,
		},
		{
			name:   "unknown engine",
			modify: func(c *Config) { c.DB.Engine = "oracle" },
		},
		{
			name:   "mysql without host",
			modify: func(c *Config) { c.DB.Engine = EngineMySQL },
		},
		{
			name:   "missing title",
			modify: func(c *Config) { c.Title = "" },
		},
		{
			name:   "missing log app name",
			modify: func(c *Config) { c.Log.AppName = "" },
		},
		{
			name:   "invalid theme storage driver",
			modify: func(c *Config) { c.ThemeStorage.Driver = "redis" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)

			err := validate(&cfg)

			switch {
			case tt.name == "valid config":
				require.NoError(t, err)
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			default:
				require.Error(t, err)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ThemeStorage.Driver = ""
	cfg.Webserver.ShutDownTime = 0

	require.NoError(t, validate(&cfg))
	assert.Equal(t, "memory", cfg.ThemeStorage.Driver)
	assert.Equal(t, defaultShutDownTime, cfg.Webserver.ShutDownTime)
}

func TestDumpConfig(t *testing.T) {
	cfg := validConfig()

	tomlStr, err := DumpConfig(&cfg)
	require.NoError(t, err)
	assert.True(t, strings.Contains(tomlStr, `Title = "Test"`), tomlStr)
	assert.Contains(t, tomlStr, "[Webserver]")
}

func TestDumpConfigJSON(t *testing.T) {
	cfg := validConfig()

	jsonStr, err := DumpConfigJSON(&cfg)
	require.NoError(t, err)
	assert.Contains(t, jsonStr, `"Title": "Test"`)
	assert.Contains(t, jsonStr, `"Port": 8080`)
}
