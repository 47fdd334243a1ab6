package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/hotelgen/internal/export"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// alternateDrivers lists drivers accepted in place of a dialect's default.
var alternateDrivers = map[string][]string{
	export.PostgreSQL: {"postgres"},
}

// DriverFor picks the database/sql driver for dialect. An empty name selects
// the dialect's default.
func DriverFor(dialect *export.Dialect, name string) (string, error) {
	if dialect.Driver == "" {
		return "", fmt.Errorf("no database driver bundled for %s; generate a script instead", dialect.Name)
	}
	if name == "" || name == dialect.Driver {
		return dialect.Driver, nil
	}
	for _, alt := range alternateDrivers[dialect.Name] {
		if name == alt {
			return alt, nil
		}
	}
	return "", fmt.Errorf("driver %s cannot serve %s", name, dialect.Title)
}

// Open connects to url and pings it. driver may be empty to use the
// dialect's default.
func Open(ctx context.Context, dialect *export.Dialect, url, driver string) (*sql.DB, error) {
	driverName, err := DriverFor(dialect, driver)
	if err != nil {
		return nil, err
	}

	dsn, err := DSN(dialect.Name, url)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", dialect.Title, err)
	}

	switch dialect.Name {
	case export.SQLite:
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(4)
		db.SetConnMaxLifetime(15 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// DSN converts a URL-style connection string into the form the driver expects.
func DSN(dialect, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("database URL is empty")
	}

	switch dialect {
	case export.SQLite:
		path := strings.TrimPrefix(url, "sqlite://")
		if !strings.Contains(path, "?") {
			path += "?_foreign_keys=on"
		}
		return path, nil
	case export.MySQL:
		return mysqlDSN(url), nil
	default:
		return url, nil
	}
}

func mysqlDSN(url string) string {
	if !strings.HasPrefix(url, "mysql://") {
		return url
	}
	dsn := strings.TrimPrefix(url, "mysql://")

	atIndex := strings.LastIndex(dsn, "@")
	if atIndex <= 0 {
		return dsn
	}
	credentials := dsn[:atIndex]
	remainder := dsn[atIndex+1:]

	slashIndex := strings.Index(remainder, "/")
	if slashIndex <= 0 {
		return dsn
	}
	hostPort := remainder[:slashIndex]
	dbAndParams := remainder[slashIndex+1:]

	dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=REQUIRED", "tls=skip-verify")
	dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=DISABLED", "tls=false")
	dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=require", "tls=skip-verify")
	dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=disable", "tls=false")

	return fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, dbAndParams)
}
