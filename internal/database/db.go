package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// Open dials a fresh connection and verifies it with a ping. Every pipeline
// step that touches the database opens its own connection and closes it before
// returning; nothing is pooled across questions.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("database name is required")
	}

	dsn, driverName, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s connection: %w", cfg.Driver, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s at %s: %w", cfg.Driver, cfg.Host, err)
	}

	return db, nil
}

func buildDSN(cfg Config) (dsn string, driverName string, err error) {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	switch cfg.Driver {
	case DriverMySQL:
		port := cfg.Port
		if port == 0 {
			port = 3306
		}
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			cfg.User, cfg.Password, host, port, cfg.Name)
		return dsn, "mysql", nil
	case DriverPostgres:
		port := cfg.Port
		if port == 0 {
			port = 5432
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.User, cfg.Password),
			Host:     fmt.Sprintf("%s:%d", host, port),
			Path:     "/" + cfg.Name,
			RawQuery: "sslmode=disable",
		}
		return u.String(), "pgx", nil
	default:
		return "", "", fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}
