// Package executor runs one approved SQL statement against the configured
// database and fetches the result eagerly.
package executor

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/askdb/askdb/internal/database"
)

type Result struct {
	Columns  []string
	Rows     [][]any
	Duration time.Duration
}

type Executor struct {
	open func(ctx context.Context) (*sql.DB, error)
}

func New(cfg database.Config) *Executor {
	return &Executor{
		open: func(ctx context.Context) (*sql.DB, error) {
			return database.Open(ctx, cfg)
		},
	}
}

// Execute opens a fresh connection, runs the statement and returns all rows.
// The connection is released unconditionally; database errors propagate
// untouched beyond wrapping.
func (e *Executor) Execute(ctx context.Context, sqlText string) (Result, error) {
	if strings.TrimSpace(sqlText) == "" {
		return Result{}, fmt.Errorf("sql is required")
	}

	db, err := e.open(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("connect for query: %w", err)
	}
	defer func() { _ = db.Close() }()

	start := time.Now()
	rows, err := db.QueryContext(ctx, sqlText)
	if err != nil {
		return Result{}, fmt.Errorf("execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return Result{}, fmt.Errorf("query columns: %w", err)
	}

	resultRows := make([][]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return Result{}, fmt.Errorf("scan row: %w", err)
		}
		resultRows = append(resultRows, normalizeValues(values))
	}
	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("iterate rows: %w", err)
	}

	return Result{
		Columns:  columns,
		Rows:     resultRows,
		Duration: time.Since(start),
	}, nil
}

// Drivers hand back []byte for text-ish columns; keep row values printable.
func normalizeValues(values []any) []any {
	normalized := make([]any, len(values))
	for i, value := range values {
		switch typed := value.(type) {
		case []byte:
			normalized[i] = string(typed)
		default:
			normalized[i] = typed
		}
	}
	return normalized
}
