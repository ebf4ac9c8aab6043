package daemon

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/inkpost/inkpost/internal/config"
	"github.com/inkpost/inkpost/internal/db/dsn"
	"github.com/inkpost/inkpost/internal/db/models"
	gormadapter "github.com/inkpost/inkpost/internal/logger/adapter/gorm"
)

const slowQueryThreshold = 200 * time.Millisecond

// OpenDB opens the configured database and migrates the schema.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DB.Engine {
	case config.EngineMySQL:
		dialector = gormmysql.Open(dsn.MySQL(&cfg.DB))
	case config.EnginePostgres:
		dialector = postgres.Open(dsn.Postgres(&cfg.DB))
	case config.EngineSQLite, "":
		dialector = sqlite.Open(dsn.SQLite(&cfg.DB))
	default:
		return nil, fmt.Errorf("unsupported database engine %q", cfg.DB.Engine)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormadapter.New(gormadapter.ParseLevel(cfg.DB.LogLevel), slowQueryThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if cfg.DB.Engine == config.EngineSQLite || cfg.DB.Engine == "" {
		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return nil, dbErr
		}

		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}

	if err = db.AutoMigrate(models.All()...); err != nil {
		_ = closeDB(db)

		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// closeDB closes the connection pool behind db.
func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
