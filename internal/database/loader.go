package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/Lumos-Labs-HQ/hotelgen/internal/export"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/seeder"
	"github.com/fatih/color"
)

const DefaultBatchSize = 100

var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Loader is a seeder.Sink that inserts rows into a live database using
// multi-row INSERT statements inside a single transaction.
type Loader struct {
	db      *sql.DB
	dialect *export.Dialect
	batch   int
	quiet   bool

	tx      *sql.Tx
	entity  seeder.Entity
	pending [][]any
}

func NewLoader(db *sql.DB, dialect *export.Dialect, batch int) *Loader {
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	return &Loader{db: db, dialect: dialect, batch: batch}
}

// Quiet suppresses per-table progress output.
func (l *Loader) Quiet() *Loader {
	l.quiet = true
	return l
}

// Load runs gen against the database. Any failure rolls back every row.
func (l *Loader) Load(ctx context.Context, gen *seeder.Generator, truncate bool) (*seeder.Summary, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	l.tx = tx
	defer func() { l.tx = nil }()

	if truncate {
		if err := l.truncate(ctx, gen.Order()); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	summary, err := gen.Run(ctx, l)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return nil, fmt.Errorf("seed failed and rollback failed: %v (original: %w)", rbErr, err)
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return summary, nil
}

func (l *Loader) BeginEntity(_ context.Context, _ int, e seeder.Entity) error {
	if l.tx == nil {
		return fmt.Errorf("loader has no open transaction")
	}
	if !validIdentifier.MatchString(e.Table) {
		return fmt.Errorf("invalid table name: %s", e.Table)
	}
	l.entity = e
	l.pending = l.pending[:0]
	if !l.quiet {
		color.Cyan("  📝 Seeding %s...", e.Table)
	}
	return nil
}

func (l *Loader) WriteRow(ctx context.Context, row seeder.Row) error {
	l.pending = append(l.pending, row.Values)
	if len(l.pending) >= l.batch {
		return l.flush(ctx)
	}
	return nil
}

func (l *Loader) EndEntity(ctx context.Context, _ seeder.Entity) error {
	return l.flush(ctx)
}

func (l *Loader) flush(ctx context.Context) error {
	if len(l.pending) == 0 {
		return nil
	}

	query, args, err := l.dialect.Insert(l.entity, l.pending...).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}
	if _, err := l.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert batch into %s: %w", l.entity.Table, err)
	}
	l.pending = l.pending[:0]
	return nil
}

// truncate clears tables in reverse insertion order.
func (l *Loader) truncate(ctx context.Context, order []string) error {
	if !l.quiet {
		color.Yellow("🗑️  Truncating tables...")
	}
	for i := len(order) - 1; i >= 0; i-- {
		table := order[i]
		if !validIdentifier.MatchString(table) {
			return fmt.Errorf("invalid table name: %s", table)
		}

		var query string
		switch l.dialect.Name {
		case export.PostgreSQL:
			query = fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)
		default:
			query = fmt.Sprintf("DELETE FROM %s", table)
		}
		if _, err := l.tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}
