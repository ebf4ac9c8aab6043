// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/inkpost/inkpost/internal/config"
)

// MySQL builds a go-sql-driver/mysql DSN.
func MySQL(db *config.DB) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		db.User,
		db.Password,
		db.Host,
		port(db, 3306), //nolint:mnd
		db.Name,
	)

	if db.Extras != "" {
		out += "?" + db.Extras
	}

	return out
}

// Postgres builds a libpq keyword/value DSN.
func Postgres(db *config.DB) string {
	parts := []string{
		"host=" + db.Host,
		fmt.Sprintf("port=%d", port(db, 5432)), //nolint:mnd
		"user=" + db.User,
		"password=" + db.Password,
		"dbname=" + db.Name,
	}

	if db.SSLMode != "" {
		parts = append(parts, "sslmode="+db.SSLMode)
	}

	if db.Extras != "" {
		parts = append(parts, db.Extras)
	}

	return strings.Join(parts, " ")
}

// PostgresURL builds a postgres:// connection URL.
func PostgresURL(db *config.DB) string {
	out := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		db.User,
		db.Password,
		db.Host,
		port(db, 5432), //nolint:mnd
		db.Name,
	)

	if db.SSLMode != "" {
		out += "?sslmode=" + db.SSLMode
	}

	return out
}

// SQLite returns the sqlite file path with the optional extras as query.
func SQLite(db *config.DB) string {
	if db.Extras == "" {
		return db.Path
	}

	return db.Path + "?" + db.Extras
}

func port(db *config.DB, fallback int) int {
	if db.Port == 0 {
		return fallback
	}

	return db.Port
}
