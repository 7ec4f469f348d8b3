// Package dsn builds the data source names of the supported database engines.
package dsn

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/labrocante/brocante/internal/config"
)

// Create builds the data source name for the configured engine.
// For sqlite it is the database file name.
func Create(cfg *config.Config) string {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return MySQL(cfg.DB)
	case config.EnginePostgres:
		return Postgres(cfg.DB)
	default:
		return cfg.DB.Name
	}
}

// MySQL returns a go-sql-driver/mysql DSN, e.g. user:pass@tcp(host:3306)/brocante?parseTime=true.
func MySQL(db config.DB) string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s",
		db.User,
		db.Password,
		net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
		db.Name,
		db.Extras,
	)
}

// Postgres returns a postgres:// URL understood by pgx and gofiber/storage/postgres.
func Postgres(db config.DB) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
		Path:     "/" + db.Name,
		RawQuery: db.Extras,
	}

	return u.String()
}
