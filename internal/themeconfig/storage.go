package themeconfig

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"
	mysqlstorage "github.com/gofiber/storage/mysql/v2"
	postgresstorage "github.com/gofiber/storage/postgres/v3"

	"github.com/inkpost/inkpost/internal/config"
	"github.com/inkpost/inkpost/internal/db/dsn"
)

const defaultTable = "theme_config"

// NewStorage opens the storage selected by cfg.ThemeStorage.
// The db driver uses the configured mysql or postgres database.
func NewStorage(cfg *config.Config) (fiber.Storage, error) {
	table := cfg.ThemeStorage.Table
	if table == "" {
		table = defaultTable
	}

	switch cfg.ThemeStorage.Driver {
	case "", "memory":
		return memory.New(), nil
	case "db":
		switch cfg.DB.Engine {
		case config.EngineMySQL:
			return mysqlstorage.New(mysqlstorage.Config{
				ConnectionURI: dsn.MySQL(&cfg.DB),
				Table:         table,
			}), nil
		case config.EnginePostgres:
			return postgresstorage.New(postgresstorage.Config{
				ConnectionURI: dsn.PostgresURL(&cfg.DB),
				Table:         table,
			}), nil
		default:
			return nil, fmt.Errorf("%w: %s", config.ErrThemeStorageEngine, cfg.DB.Engine)
		}
	default:
		return nil, fmt.Errorf("unknown theme storage driver %q", cfg.ThemeStorage.Driver)
	}
}
