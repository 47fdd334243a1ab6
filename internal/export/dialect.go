package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/hotelgen/internal/seeder"
	"github.com/Masterminds/squirrel"
)

// Dialect captures how one database wants dates, placeholders and the
// surrounding transaction boilerplate.
type Dialect struct {
	Name string
	// Title appears in the generated file banner.
	Title string
	// Driver is the database/sql driver name, empty when no driver is bundled.
	Driver   string
	dateExpr string
	// escape prepares string literals for file output; nil means Escape.
	escape   func(string) string
	qb       squirrel.StatementBuilderType
	header   func() []string
	footer   func() []string
}

const (
	Oracle     = "oracle"
	PostgreSQL = "postgresql"
	MySQL      = "mysql"
	SQLite     = "sqlite"
)

var dialects = map[string]*Dialect{
	Oracle: {
		Name:     Oracle,
		Title:    "Oracle 11g",
		dateExpr: "TO_DATE(?, 'YYYY-MM-DD')",
		qb:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		header: func() []string {
			lines := []string{"-- Disable PK triggers to allow explicit ID insertion"}
			lines = append(lines, triggerToggles("DISABLE")...)
			return append(lines, "", "SET DEFINE OFF;")
		},
		footer: func() []string {
			lines := []string{"SET DEFINE ON;", "", "-- Re-enable PK triggers after insertion"}
			lines = append(lines, triggerToggles("ENABLE")...)
			return append(lines, "", "COMMIT;")
		},
	},
	PostgreSQL: {
		Name:     PostgreSQL,
		Title:    "PostgreSQL",
		Driver:   "pgx",
		dateExpr: "TO_DATE(?, 'YYYY-MM-DD')",
		qb:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		header:   func() []string { return []string{"BEGIN;"} },
		footer:   func() []string { return []string{"COMMIT;"} },
	},
	MySQL: {
		Name:     MySQL,
		Title:    "MySQL",
		Driver:   "mysql",
		dateExpr: "STR_TO_DATE(?, '%Y-%m-%d')",
		escape:   EscapeMySQL,
		qb:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		header: func() []string {
			return []string{"SET FOREIGN_KEY_CHECKS = 0;", "START TRANSACTION;"}
		},
		footer: func() []string {
			return []string{"COMMIT;", "SET FOREIGN_KEY_CHECKS = 1;"}
		},
	},
	SQLite: {
		Name:     SQLite,
		Title:    "SQLite",
		Driver:   "sqlite3",
		dateExpr: "DATE(?)",
		qb:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		header:   func() []string { return []string{"BEGIN TRANSACTION;"} },
		footer:   func() []string { return []string{"COMMIT;"} },
	},
}

// LookupDialect resolves a dialect by name, accepting the usual aliases.
func LookupDialect(name string) (*Dialect, error) {
	switch strings.ToLower(name) {
	case "", Oracle:
		return dialects[Oracle], nil
	case PostgreSQL, "postgres":
		return dialects[PostgreSQL], nil
	case MySQL:
		return dialects[MySQL], nil
	case SQLite, "sqlite3":
		return dialects[SQLite], nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %s. Supported dialects: %v", name, DialectNames())
	}
}

func DialectNames() []string {
	return []string{Oracle, PostgreSQL, MySQL, SQLite}
}

func triggerToggles(state string) []string {
	var lines []string
	for _, e := range seeder.Entities {
		if e.Trigger != "" {
			lines = append(lines, fmt.Sprintf("ALTER TRIGGER %s %s;", e.Trigger, state))
		}
	}
	return lines
}

// Date wraps a calendar date in the dialect's parse expression.
func (d *Dialect) Date(t time.Time) squirrel.Sqlizer {
	return squirrel.Expr(d.dateExpr, t.Format(time.DateOnly))
}

// Insert builds a parameterized INSERT for one or more rows of the same table.
func (d *Dialect) Insert(entity seeder.Entity, rows ...[]any) squirrel.InsertBuilder {
	b := d.qb.Insert(entity.Table).Columns(entity.Columns...)
	for _, values := range rows {
		bound := make([]any, len(values))
		for i, v := range values {
			if t, ok := v.(time.Time); ok {
				bound[i] = d.Date(t)
			} else {
				bound[i] = v
			}
		}
		b = b.Values(bound...)
	}
	return b
}

// Statement renders rows as a single literal SQL statement with every
// placeholder replaced by an escaped value.
func (d *Dialect) Statement(entity seeder.Entity, rows ...[]any) (string, error) {
	query, args, err := d.Insert(entity, rows...).PlaceholderFormat(squirrel.Question).ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build insert for %s: %w", entity.Table, err)
	}
	escape := d.escape
	if escape == nil {
		escape = Escape
	}
	inlined, err := inline(query, args, escape)
	if err != nil {
		return "", fmt.Errorf("failed to render insert for %s: %w", entity.Table, err)
	}
	return inlined + ";", nil
}

// Header returns the boilerplate written before any insert.
func (d *Dialect) Header() []string {
	lines := []string{
		"-- ====================================================================",
		fmt.Sprintf("-- Generated OLTP Insert Data for %s", d.Title),
		"-- ====================================================================",
		"",
	}
	return append(lines, d.header()...)
}

// Footer returns the boilerplate written after the last insert.
func (d *Dialect) Footer() []string {
	return d.footer()
}
