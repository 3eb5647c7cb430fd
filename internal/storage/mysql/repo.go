// Package mysql implements the apply backend for MySQL and MariaDB using
// database/sql and go-sql-driver/mysql. Statements must be rendered in the
// mysql dialect (INSERT IGNORE).
package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-sql-driver/mysql"
)

// Config holds MySQL repository configuration.
type Config struct {
	// DSN in go-sql-driver form, e.g. "user:pass@tcp(localhost:3306)/shop".
	DSN string
}

// Repository executes statements on a MySQL connection pool.
type Repository struct {
	db *sql.DB
}

// New wraps an already-open pool.
func New(db *sql.DB) *Repository { return &Repository{db: db} }

// NewRepository validates the DSN, opens a pool and pings it.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	mc, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, nil, errors.Wrap(err, "mysql: parse dsn")
	}
	// The seed statement is large and carries multibyte text.
	if mc.Params == nil {
		mc.Params = map[string]string{}
	}
	if _, ok := mc.Params["charset"]; !ok {
		mc.Params["charset"] = "utf8mb4"
	}

	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, nil, errors.Wrap(err, "mysql: connector")
	}
	db := sql.OpenDB(connector)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "mysql: ping")
	}

	closeFn := func() { db.Close() }
	return New(db), closeFn, nil
}

// Exec executes sql as-is. Server errors keep their MySQL error number.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, sql); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) {
			return errors.Errorf("mysql: exec: error %d: %s", me.Number, me.Message)
		}
		return errors.Wrap(err, "mysql: exec")
	}
	return nil
}
