// Package schema captures the live table definitions of the configured
// database as a single DDL text block, one CREATE TABLE statement per table in
// lexicographic name order. The snapshot is rebuilt for every question so the
// model always sees the current schema; staleness between questions is
// accepted.
package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/askdb/askdb/internal/database"
)

type dialect interface {
	listTables(ctx context.Context, db *sql.DB) ([]string, error)
	tableDDL(ctx context.Context, db *sql.DB, table string) (string, error)
}

type Introspector struct {
	dialect dialect
	open    func(ctx context.Context) (*sql.DB, error)
}

func NewIntrospector(cfg database.Config) (*Introspector, error) {
	var d dialect
	switch cfg.Driver {
	case database.DriverMySQL:
		d = mysqlDialect{schemaName: cfg.Name}
	case database.DriverPostgres:
		d = postgresDialect{schemaName: "public"}
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
	return &Introspector{
		dialect: d,
		open: func(ctx context.Context) (*sql.DB, error) {
			return database.Open(ctx, cfg)
		},
	}, nil
}

// SnapshotDDL opens a short-lived connection, reads every table definition and
// returns them joined with blank lines. The connection is closed on every exit
// path.
func (in *Introspector) SnapshotDDL(ctx context.Context) (string, error) {
	db, err := in.open(ctx)
	if err != nil {
		return "", fmt.Errorf("connect for schema snapshot: %w", err)
	}
	defer func() { _ = db.Close() }()

	tables, err := in.dialect.listTables(ctx, db)
	if err != nil {
		return "", fmt.Errorf("list tables: %w", err)
	}

	parts := make([]string, 0, len(tables))
	for _, table := range tables {
		ddl, err := in.dialect.tableDDL(ctx, db, table)
		if err != nil {
			return "", fmt.Errorf("definition of table %q: %w", table, err)
		}
		ddl = strings.TrimSpace(ddl)
		if !strings.HasSuffix(ddl, ";") {
			ddl += ";"
		}
		parts = append(parts, ddl)
	}

	return strings.Join(parts, "\n\n"), nil
}
