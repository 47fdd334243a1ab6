package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/hotelgen/internal/export"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/faker"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/seeder"
	"github.com/Lumos-Labs-HQ/hotelgen/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan() seeder.Plan {
	return seeder.Plan{
		Hotels:              2,
		Guests:              25,
		Jobs:                15,
		RoomsPerHotel:       3,
		ServicesPerHotel:    4,
		DepartmentsPerHotel: 2,
		EmployeesPerHotel:   5,
		Bookings:            20,
		BookingDetails:      30,
		GuestServices:       40,
		Start:               time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		End:                 time.Date(2021, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

func openSQLite(t *testing.T) (*export.Dialect, *Loader, func() *seeder.Generator) {
	t.Helper()
	ctx := context.Background()

	dialect, err := export.LookupDialect("sqlite")
	require.NoError(t, err)

	url := "sqlite://" + filepath.Join(t.TempDir(), "hotel.sqlite")
	db, err := Open(ctx, dialect, url, "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	n, err := ApplyScript(ctx, db, template.NewProjectTemplate(template.SQLite).GetSchema())
	require.NoError(t, err)
	require.Equal(t, len(seeder.Entities), n)

	newGen := func() *seeder.Generator {
		gen, err := seeder.NewGenerator(testPlan(), faker.NewBasicProvider(9), 9)
		require.NoError(t, err)
		return gen
	}
	return dialect, NewLoader(db, dialect, 7).Quiet(), newGen
}

func count(t *testing.T, l *Loader, table string) int {
	t.Helper()
	var n int
	require.NoError(t, l.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestLoaderSeedsEveryTable(t *testing.T) {
	_, loader, newGen := openSQLite(t)

	summary, err := loader.Load(context.Background(), newGen(), false)
	require.NoError(t, err)

	for table, want := range testPlan().Counts() {
		assert.Equal(t, want, summary.Counts[table], table)
		assert.Equal(t, want, count(t, loader, table), table)
	}

	var orphans int
	require.NoError(t, loader.db.QueryRow(`
		SELECT COUNT(*) FROM Employee e
		LEFT JOIN Department d ON d.department_id = e.department_id
		WHERE d.department_id IS NULL`).Scan(&orphans))
	assert.Zero(t, orphans)

	var mismatched int
	require.NoError(t, loader.db.QueryRow(`
		SELECT COUNT(*) FROM GuestService gs
		JOIN Service s ON s.service_id = gs.service_id
		WHERE ROUND(gs.quantity * s.service_price, 2) <> ROUND(gs.total_amount, 2)`).Scan(&mismatched))
	assert.Zero(t, mismatched)
}

func TestLoaderTruncateReplacesRows(t *testing.T) {
	_, loader, newGen := openSQLite(t)
	ctx := context.Background()

	_, err := loader.Load(ctx, newGen(), false)
	require.NoError(t, err)

	_, err = loader.Load(ctx, newGen(), false)
	require.Error(t, err, "second load without truncate collides on primary keys")
	assert.Equal(t, testPlan().Hotels, count(t, loader, seeder.Hotel))

	_, err = loader.Load(ctx, newGen(), true)
	require.NoError(t, err)
	assert.Equal(t, testPlan().Bookings, count(t, loader, seeder.Booking))
}

func TestLoaderRollsBackOnCancel(t *testing.T) {
	_, loader, newGen := openSQLite(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx, newGen(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, count(t, loader, seeder.Hotel))
}

func TestOpenWithoutDriver(t *testing.T) {
	dialect, err := export.LookupDialect("oracle")
	require.NoError(t, err)

	_, err = Open(context.Background(), dialect, "oracle://localhost", "")
	assert.ErrorContains(t, err, "no database driver")
}

func TestDriverFor(t *testing.T) {
	pg, err := export.LookupDialect("postgres")
	require.NoError(t, err)

	name, err := DriverFor(pg, "")
	require.NoError(t, err)
	assert.Equal(t, "pgx", name)

	name, err = DriverFor(pg, "postgres")
	require.NoError(t, err)
	assert.Equal(t, "postgres", name)

	lite, err := export.LookupDialect("sqlite")
	require.NoError(t, err)
	_, err = DriverFor(lite, "postgres")
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	tests := []struct {
		dialect string
		url     string
		want    string
	}{
		{export.SQLite, "sqlite://./hotel.sqlite", "./hotel.sqlite?_foreign_keys=on"},
		{export.SQLite, "file.db?cache=shared", "file.db?cache=shared"},
		{export.MySQL, "mysql://root:pw@localhost:3306/hotel", "root:pw@tcp(localhost:3306)/hotel"},
		{export.MySQL, "mysql://u:p@db:3306/hotel?sslmode=disable", "u:p@tcp(db:3306)/hotel?tls=false"},
		{export.PostgreSQL, "postgres://u:p@localhost/hotel", "postgres://u:p@localhost/hotel"},
	}
	for _, tt := range tests {
		got, err := DSN(tt.dialect, tt.url)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := DSN(export.PostgreSQL, "")
	assert.Error(t, err)
}

func TestSplitStatements(t *testing.T) {
	script := `
-- create things
CREATE TABLE a (x TEXT);
INSERT INTO a VALUES ('semi;colon');  -- trailing
INSERT INTO a VALUES ('it''s');
`
	stmts := SplitStatements(script)
	require.Len(t, stmts, 3)
	assert.Equal(t, "INSERT INTO a VALUES ('semi;colon')", stmts[1])
	assert.Equal(t, "INSERT INTO a VALUES ('it''s')", stmts[2])
}

func TestSplitStatementsKeepsDashesInsideLiterals(t *testing.T) {
	stmts := SplitStatements("INSERT INTO Guest (city) VALUES ('Stratford--upon--Avon');\nSELECT 1;")
	require.Len(t, stmts, 2)
	assert.Equal(t, "INSERT INTO Guest (city) VALUES ('Stratford--upon--Avon')", stmts[0])
	assert.Equal(t, "SELECT 1", stmts[1])

	stmts = SplitStatements("SELECT '--;--' AS x; -- done;\nSELECT 2")
	require.Len(t, stmts, 2)
	assert.Equal(t, "SELECT '--;--' AS x", stmts[0])
	assert.Equal(t, "SELECT 2", stmts[1])
}

func TestApplySchemaFile(t *testing.T) {
	ctx := context.Background()
	dialect, err := export.LookupDialect("sqlite")
	require.NoError(t, err)

	db, err := Open(ctx, dialect, "sqlite://"+filepath.Join(t.TempDir(), "hotel.sqlite"), "")
	require.NoError(t, err)
	defer db.Close()

	path := filepath.Join(t.TempDir(), "schema.sql")
	require.NoError(t, os.WriteFile(path, []byte(template.NewProjectTemplate(template.SQLite).GetSchema()), 0644))

	n, err := ApplySchemaFile(ctx, db, path)
	require.NoError(t, err)
	assert.Equal(t, len(seeder.Entities), n)

	var tables int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'").Scan(&tables))
	assert.Equal(t, len(seeder.Entities), tables)

	_, err = ApplySchemaFile(ctx, db, filepath.Join(t.TempDir(), "missing.sql"))
	assert.ErrorContains(t, err, "failed to read schema")
}
