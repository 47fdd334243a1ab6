package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/hotelgen/internal/faker"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/seeder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entity(t *testing.T, table string) seeder.Entity {
	t.Helper()
	e, ok := seeder.Lookup(table)
	require.True(t, ok)
	return e
}

func testPlan() seeder.Plan {
	return seeder.Plan{
		Hotels: 2, Guests: 10, Jobs: 15,
		RoomsPerHotel: 3, ServicesPerHotel: 4, DepartmentsPerHotel: 5, EmployeesPerHotel: 2,
		Bookings: 8, BookingDetails: 10, GuestServices: 12,
		Start: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2021, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "O''Brien", Escape("O'Brien"))
	assert.Equal(t, "Trinidad and Tobago", Escape("Trinidad & Tobago"))
	assert.Equal(t, "plain", Escape("plain"))
}

func TestLiteral(t *testing.T) {
	assert.Equal(t, "NULL", Literal(nil))
	assert.Equal(t, "'it''s'", Literal("it's"))
	assert.Equal(t, "42", Literal(42))
	assert.Equal(t, "7", Literal(int64(7)))
	assert.Equal(t, "4.5", Literal(4.5))
	assert.Equal(t, "19.90", Literal(seeder.Money(1990)))
	assert.Equal(t, "1", Literal(true))
}

func TestInline(t *testing.T) {
	out, err := Inline("INSERT INTO t (a,b,c) VALUES (?,TO_DATE(?, 'YYYY-MM-DD'),?)", []any{1, "2020-01-02", nil})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO t (a,b,c) VALUES (1,TO_DATE('2020-01-02', 'YYYY-MM-DD'),NULL)", out)

	_, err = Inline("VALUES (?, ?)", []any{1})
	assert.Error(t, err)
	_, err = Inline("VALUES (?)", []any{1, 2})
	assert.Error(t, err)

	out, err = Inline("SELECT '?' , ?", []any{"x"})
	require.NoError(t, err)
	assert.Equal(t, "SELECT '?' , 'x'", out)
}

func TestStatementPerDialect(t *testing.T) {
	booking := entity(t, seeder.Booking)
	values := []any{1, seeder.Money(12345), "Credit Card", time.Date(2015, 3, 9, 0, 0, 0, 0, time.UTC), 7}

	tests := []struct {
		dialect string
		want    string
	}{
		{Oracle, "INSERT INTO Booking (booking_id,total_price,payment_method,payment_date,guest_id) VALUES (1,123.45,'Credit Card',TO_DATE('2015-03-09', 'YYYY-MM-DD'),7);"},
		{PostgreSQL, "INSERT INTO Booking (booking_id,total_price,payment_method,payment_date,guest_id) VALUES (1,123.45,'Credit Card',TO_DATE('2015-03-09', 'YYYY-MM-DD'),7);"},
		{MySQL, "INSERT INTO Booking (booking_id,total_price,payment_method,payment_date,guest_id) VALUES (1,123.45,'Credit Card',STR_TO_DATE('2015-03-09', '%Y-%m-%d'),7);"},
		{SQLite, "INSERT INTO Booking (booking_id,total_price,payment_method,payment_date,guest_id) VALUES (1,123.45,'Credit Card',DATE('2015-03-09'),7);"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			d, err := LookupDialect(tt.dialect)
			require.NoError(t, err)
			stmt, err := d.Statement(booking, values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stmt)
		})
	}
}

func TestMySQLEscapesBackslashes(t *testing.T) {
	department := entity(t, seeder.Department)
	values := []any{1, `R&D \ Ops\`, 2}

	mysql, err := LookupDialect(MySQL)
	require.NoError(t, err)
	stmt, err := mysql.Statement(department, values)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO Department (department_id,department_name,hotel_id) VALUES (1,'RandD \\ Ops\\',2);`, stmt)

	oracle, err := LookupDialect(Oracle)
	require.NoError(t, err)
	stmt, err = oracle.Statement(department, values)
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO Department (department_id,department_name,hotel_id) VALUES (1,'RandD \ Ops\',2);`, stmt)

	assert.Equal(t, `O''Brien\\`, EscapeMySQL(`O'Brien\`))
}

func TestPostgresInsertUsesDollarPlaceholders(t *testing.T) {
	d, err := LookupDialect("postgres")
	require.NoError(t, err)

	query, args, err := d.Insert(entity(t, seeder.Department), []any{1, "Management", 1}, []any{2, "Front Office", 1}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO Department (department_id,department_name,hotel_id) VALUES ($1,$2,$3),($4,$5,$6)", query)
	assert.Len(t, args, 6)
}

func TestLookupDialect(t *testing.T) {
	d, err := LookupDialect("")
	require.NoError(t, err)
	assert.Equal(t, Oracle, d.Name)

	d, err = LookupDialect("SQLITE3")
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", d.Driver)

	_, err = LookupDialect("db2")
	assert.Error(t, err)
}

func TestOracleBoilerplate(t *testing.T) {
	d, err := LookupDialect(Oracle)
	require.NoError(t, err)

	header := strings.Join(d.Header(), "\n")
	assert.Contains(t, header, "ALTER TRIGGER trg_hotel_pk DISABLE;")
	assert.Contains(t, header, "ALTER TRIGGER trg_service_pk DISABLE;")
	assert.Contains(t, header, "SET DEFINE OFF;")
	assert.Equal(t, 8, strings.Count(header, "ALTER TRIGGER"))

	footer := d.Footer()
	assert.Equal(t, "SET DEFINE ON;", footer[0])
	assert.Equal(t, "COMMIT;", footer[len(footer)-1])
}

func TestGenerateFile(t *testing.T) {
	plan := testPlan()
	gen, err := seeder.NewGenerator(plan, faker.NewBasicProvider(3), 3)
	require.NoError(t, err)
	d, err := LookupDialect(Oracle)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "data.sql")
	summary, err := GenerateFile(context.Background(), gen, d, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	script := string(data)

	total := 0
	for _, n := range plan.Counts() {
		total += n
	}
	assert.Equal(t, total, strings.Count(script, "INSERT INTO "))
	assert.Equal(t, total, summary.Total())

	hotels := strings.Index(script, "-- (1) Hotels")
	usage := strings.Index(script, "-- (10) GuestServices")
	assert.Greater(t, hotels, 0)
	assert.Greater(t, usage, hotels)
	assert.True(t, strings.HasSuffix(script, "COMMIT;\n"))
	assert.NotContains(t, script, "&")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestWriteFileAtomicRemovesTempOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.sql")

	err := WriteFileAtomic(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return errors.New("boom")
	})
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestManifestRoundTrip(t *testing.T) {
	plan := testPlan()
	summary := &seeder.Summary{
		Order:    []string{seeder.Hotel, seeder.Guest},
		Counts:   map[string]int{seeder.Hotel: 2, seeder.Guest: 10},
		Duration: 1500 * time.Millisecond,
	}

	m := NewManifest(plan, summary, 99, Oracle, faker.Basic, "data.sql")
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, m.Write(path))

	got, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, m.RunID, got.RunID)
	assert.Equal(t, int64(99), got.Seed)
	assert.Equal(t, "2021-01-01", got.StartDate)
	assert.Equal(t, 12, got.TotalRows)
	assert.Equal(t, []TableCount{{seeder.Hotel, 2}, {seeder.Guest, 10}}, got.Tables)
}

func TestManifestCheckCounts(t *testing.T) {
	plan := testPlan()
	gen, err := seeder.NewGenerator(plan, faker.NewBasicProvider(5), 5)
	require.NoError(t, err)
	d, err := LookupDialect(SQLite)
	require.NoError(t, err)

	summary, err := GenerateFile(context.Background(), gen, d, filepath.Join(t.TempDir(), "data.sql"))
	require.NoError(t, err)
	m := NewManifest(plan, summary, 5, SQLite, faker.Basic, "data.sql")

	require.NoError(t, m.CheckCounts(plan.Counts()))

	changed := plan
	changed.Guests++
	err = m.CheckCounts(changed.Counts())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Guest: manifest 10, config 11")

	partial := &Manifest{RunID: "r1", Tables: m.Tables[:3]}
	err = partial.CheckCounts(plan.Counts())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GuestService missing from manifest")
}
