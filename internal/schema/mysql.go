package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type mysqlDialect struct {
	schemaName string
}

func (d mysqlDialect) listTables(ctx context.Context, db *sql.DB) ([]string, error) {
	const query = "SELECT table_name FROM information_schema.tables " +
		"WHERE table_schema = ? AND table_type = 'BASE TABLE' ORDER BY table_name"

	rows, err := db.QueryContext(ctx, query, d.schemaName)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (d mysqlDialect) tableDDL(ctx context.Context, db *sql.DB, table string) (string, error) {
	var name, createStmt string
	err := db.QueryRowContext(ctx, "SHOW CREATE TABLE "+quoteMySQLIdent(table)).Scan(&name, &createStmt)
	if err != nil {
		return "", fmt.Errorf("show create table: %w", err)
	}
	return createStmt, nil
}

func quoteMySQLIdent(value string) string {
	return "`" + strings.ReplaceAll(value, "`", "``") + "`"
}
