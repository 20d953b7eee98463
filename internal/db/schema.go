package db

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
)

// Querier is the read side shared by *sql.DB, *sql.Tx and *sql.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var identPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidIdentifier reports whether name can be spliced into SQL as a column.
func ValidIdentifier(name string) bool {
	return identPattern.MatchString(name)
}

// QuoteIdent wraps a validated identifier in backticks.
func QuoteIdent(name string) string {
	return "`" + name + "`"
}

func HasTable(ctx context.Context, q Querier, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// ListColumns returns the columns of table in ordinal order, minus the
// excluded ones (case-insensitive).
func ListColumns(ctx context.Context, q Querier, table string, exclude ...string) ([]string, error) {
	skip := make(map[string]bool, len(exclude))
	for _, c := range exclude {
		skip[strings.ToLower(c)] = true
	}

	rows, err := q.QueryContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		ORDER BY ordinal_position
	`, table)
	if err != nil {
		return nil, fmt.Errorf("list columns of %s: %w", table, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column of %s: %w", table, err)
		}
		if skip[strings.ToLower(name)] || !ValidIdentifier(name) {
			continue
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// InPlaceholders builds "?,?,?" and the matching args for an IN clause.
func InPlaceholders[T any](values []T) (string, []any) {
	marks := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		marks[i] = "?"
		args[i] = v
	}
	return strings.Join(marks, ","), args
}
