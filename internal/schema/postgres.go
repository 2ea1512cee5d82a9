package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PostgreSQL has no SHOW CREATE TABLE, so the canonical definition is
// reconstructed from information_schema: column list in ordinal order plus the
// primary-key constraint.
type postgresDialect struct {
	schemaName string
}

func (d postgresDialect) listTables(ctx context.Context, db *sql.DB) ([]string, error) {
	const query = "SELECT table_name FROM information_schema.tables " +
		"WHERE table_schema = $1 AND table_type = 'BASE TABLE' ORDER BY table_name"

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

func (d postgresDialect) tableDDL(ctx context.Context, db *sql.DB, table string) (string, error) {
	columns, err := d.columnClauses(ctx, db, table)
	if err != nil {
		return "", err
	}
	if len(columns) == 0 {
		return "", fmt.Errorf("table %q has no columns", table)
	}

	pkCols, err := d.primaryKeyColumns(ctx, db, table)
	if err != nil {
		return "", err
	}
	if len(pkCols) > 0 {
		quoted := make([]string, 0, len(pkCols))
		for _, col := range pkCols {
			quoted = append(quoted, quotePostgresIdent(col))
		}
		columns = append(columns, "  PRIMARY KEY ("+strings.Join(quoted, ", ")+")")
	}

	return "CREATE TABLE " + quotePostgresIdent(table) + " (\n" +
		strings.Join(columns, ",\n") + "\n)", nil
}

func (d postgresDialect) columnClauses(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	const query = "SELECT column_name, data_type, is_nullable, column_default " +
		"FROM information_schema.columns " +
		"WHERE table_schema = $1 AND table_name = $2 ORDER BY ordinal_position"

	rows, err := db.QueryContext(ctx, query, d.schemaName, table)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var clauses []string
	for rows.Next() {
		var name, dataType, nullable string
		var columnDefault sql.NullString
		if err := rows.Scan(&name, &dataType, &nullable, &columnDefault); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}

		clause := "  " + quotePostgresIdent(name) + " " + dataType
		if nullable == "NO" {
			clause += " NOT NULL"
		}
		if columnDefault.Valid {
			clause += " DEFAULT " + columnDefault.String
		}
		clauses = append(clauses, clause)
	}
	return clauses, rows.Err()
}

func (d postgresDialect) primaryKeyColumns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	const query = "SELECT kcu.column_name " +
		"FROM information_schema.table_constraints tc " +
		"JOIN information_schema.key_column_usage kcu ON tc.constraint_name = kcu.constraint_name " +
		"WHERE tc.table_schema = $1 AND tc.table_name = $2 AND tc.constraint_type = 'PRIMARY KEY' " +
		"ORDER BY kcu.ordinal_position"

	rows, err := db.QueryContext(ctx, query, d.schemaName, table)
	if err != nil {
		return nil, fmt.Errorf("list primary key columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan primary key column: %w", err)
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

func quotePostgresIdent(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
