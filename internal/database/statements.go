package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	commentRegex = regexp.MustCompile(`(?m)^\s*--.*$`)
	stringRegex  = regexp.MustCompile(`'(?:[^']|'')*'|"(?:[^"]|"")*"|` + "`(?:[^`]|``)*`")
)

// SplitStatements splits a SQL script on semicolons that sit outside quoted
// text. Whole-line comments and trailing "--" comments outside quotes are dropped.
func SplitStatements(script string) []string {
	script = commentRegex.ReplaceAllString(script, "")

	inString := make(map[int]bool)
	for _, match := range stringRegex.FindAllStringIndex(script, -1) {
		for i := match[0]; i < match[1]; i++ {
			inString[i] = true
		}
	}

	statements := make([]string, 0, strings.Count(script, ";")+1)
	var current strings.Builder

	for i := 0; i < len(script); i++ {
		c := script[i]
		switch {
		case inString[i]:
			current.WriteByte(c)
		case c == '-' && i+1 < len(script) && script[i+1] == '-':
			for i < len(script) && script[i] != '\n' {
				i++
			}
			if i < len(script) {
				current.WriteByte('\n')
			}
		case c == ';':
			if stmt := strings.TrimSpace(current.String()); stmt != "" {
				statements = append(statements, stmt)
			}
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}

	if stmt := strings.TrimSpace(current.String()); stmt != "" {
		statements = append(statements, stmt)
	}
	return statements
}

// ApplyScript executes every statement of script inside one transaction.
func ApplyScript(ctx context.Context, db *sql.DB, script string) (int, error) {
	statements := SplitStatements(script)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("statement %d failed: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return len(statements), nil
}

// ApplySchemaFile runs the DDL script at path, e.g. the schema written by init.
func ApplySchemaFile(ctx context.Context, db *sql.DB, path string) (int, error) {
	script, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema %s: %w", path, err)
	}
	n, err := ApplyScript(ctx, db, string(script))
	if err != nil {
		return 0, fmt.Errorf("failed to apply schema %s: %w", path, err)
	}
	return n, nil
}
