// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/config"
)

// ErrUnknownEngine is returned for a db.gormEngine no driver exists for.
var ErrUnknownEngine = errors.New("unknown gorm engine")

// Create builds the mysql Data Source Name from the configuration.
func Create(dbCfg *config.Config) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.Name,
		dbCfg.DB.Extras,
	)

	return out
}

// PostgresURI builds a postgres connection URI from the configuration.
// DB.Extras is appended as query string, e.g. "sslmode=disable".
func PostgresURI(dbCfg *config.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(dbCfg.DB.User, dbCfg.DB.Password),
		Host:     net.JoinHostPort(dbCfg.DB.Host, strconv.Itoa(dbCfg.DB.Port)),
		Path:     "/" + dbCfg.DB.Name,
		RawQuery: dbCfg.DB.Extras,
	}

	return u.String()
}

// Dialector returns the gorm dialector of the configured engine.
func Dialector(dbCfg *config.Config) (gorm.Dialector, error) {
	switch dbCfg.DB.GormEngine {
	case config.EngineMySQL:
		return mysql.Open(Create(dbCfg)), nil
	case config.EnginePostgres:
		return postgres.Open(PostgresURI(dbCfg)), nil
	case config.EngineSQLite:
		return sqlite.Open(dbCfg.DB.Path), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, dbCfg.DB.GormEngine)
	}
}
