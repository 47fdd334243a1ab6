package template

import (
	"fmt"
	"strings"
)

type columnKind int

const (
	kindInt columnKind = iota
	kindMoney
	kindRating
	kindText
	kindDate
)

// ColumnDef defines a single column of the hotel schema.
type ColumnDef struct {
	Name     string
	Kind     columnKind
	Size     int
	Nullable bool
}

// FKDef defines a foreign key reference.
type FKDef struct {
	Column    string
	RefTable  string
	RefColumn string
}

// TableTemplate defines a table's schema for DDL generation.
type TableTemplate struct {
	Name        string
	Columns     []ColumnDef
	PrimaryKey  []string
	Unique      []string
	ForeignKeys []FKDef
	Sequence    string
}

func id(name string) ColumnDef { return ColumnDef{Name: name, Kind: kindInt} }
func text(name string, size int) ColumnDef { return ColumnDef{Name: name, Kind: kindText, Size: size} }
func money(name string) ColumnDef { return ColumnDef{Name: name, Kind: kindMoney} }
func date(name string) ColumnDef { return ColumnDef{Name: name, Kind: kindDate} }

func location() []ColumnDef {
	return []ColumnDef{
		text("phone", 25),
		text("city", 100),
		{Name: "region", Kind: kindText, Size: 100, Nullable: true},
		text("state", 100),
		text("country", 100),
		text("postal_code", 20),
	}
}

// Tables returns the hotel schema in creation order.
func Tables() []TableTemplate {
	hotelCols := []ColumnDef{id("hotel_id"), text("email", 150)}
	hotelCols = append(hotelCols, location()[:1]...)
	hotelCols = append(hotelCols, ColumnDef{Name: "rating", Kind: kindRating})
	hotelCols = append(hotelCols, location()[1:]...)

	guestCols := []ColumnDef{id("guest_id"), text("first_name", 100), text("last_name", 100), text("email", 150)}
	guestCols = append(guestCols, location()...)

	return []TableTemplate{
		{Name: "Hotel", Columns: hotelCols, PrimaryKey: []string{"hotel_id"}, Unique: []string{"email"}, Sequence: "hotel"},
		{Name: "Guest", Columns: guestCols, PrimaryKey: []string{"guest_id"}, Unique: []string{"email"}, Sequence: "guest"},
		{
			Name:       "Jobs",
			Columns:    []ColumnDef{id("job_id"), text("job_title", 100), id("min_salary"), id("max_salary")},
			PrimaryKey: []string{"job_id"},
			Sequence:   "jobs",
		},
		{
			Name:        "Department",
			Columns:     []ColumnDef{id("department_id"), text("department_name", 100), id("hotel_id")},
			PrimaryKey:  []string{"department_id"},
			ForeignKeys: []FKDef{{"hotel_id", "Hotel", "hotel_id"}},
			Sequence:    "department",
		},
		{
			Name:        "Room",
			Columns:     []ColumnDef{id("room_id"), text("room_type", 50), id("bed_count"), money("price"), id("hotel_id")},
			PrimaryKey:  []string{"room_id"},
			ForeignKeys: []FKDef{{"hotel_id", "Hotel", "hotel_id"}},
			Sequence:    "room",
		},
		{
			Name: "Service",
			Columns: []ColumnDef{
				id("service_id"), text("description", 255), text("service_name", 100),
				money("service_price"), text("service_type", 50), id("hotel_id"),
			},
			PrimaryKey:  []string{"service_id"},
			ForeignKeys: []FKDef{{"hotel_id", "Hotel", "hotel_id"}},
			Sequence:    "service",
		},
		{
			Name: "Employee",
			Columns: []ColumnDef{
				id("employee_id"), text("first_name", 100), text("last_name", 100), text("email", 150),
				id("job_id"), id("department_id"),
			},
			PrimaryKey: []string{"employee_id"},
			Unique:     []string{"email"},
			ForeignKeys: []FKDef{
				{"job_id", "Jobs", "job_id"},
				{"department_id", "Department", "department_id"},
			},
			Sequence: "employee",
		},
		{
			Name:        "Booking",
			Columns:     []ColumnDef{id("booking_id"), money("total_price"), text("payment_method", 50), date("payment_date"), id("guest_id")},
			PrimaryKey:  []string{"booking_id"},
			ForeignKeys: []FKDef{{"guest_id", "Guest", "guest_id"}},
			Sequence:    "booking",
		},
		{
			Name: "BookingDetail",
			Columns: []ColumnDef{
				id("booking_id"), id("room_id"), id("duration_days"),
				date("checkin_date"), date("checkout_date"), id("num_of_guest"),
			},
			PrimaryKey: []string{"booking_id", "room_id"},
			ForeignKeys: []FKDef{
				{"booking_id", "Booking", "booking_id"},
				{"room_id", "Room", "room_id"},
			},
		},
		{
			Name: "GuestService",
			Columns: []ColumnDef{
				id("guest_id"), id("service_id"), date("booking_date"), date("usage_date"),
				id("quantity"), money("total_amount"),
			},
			PrimaryKey: []string{"guest_id", "service_id", "usage_date"},
			ForeignKeys: []FKDef{
				{"guest_id", "Guest", "guest_id"},
				{"service_id", "Service", "service_id"},
			},
		},
	}
}

func (pt *ProjectTemplate) columnType(c ColumnDef) string {
	cfg := dbConfigs[pt.DatabaseType]
	switch c.Kind {
	case kindMoney:
		return cfg.moneyType
	case kindRating:
		return cfg.ratingType
	case kindText:
		return fmt.Sprintf(cfg.textType, c.Size)
	case kindDate:
		return cfg.dateType
	default:
		return cfg.intType
	}
}

// GetSchema renders CREATE TABLE statements for every table. Oracle also
// gets the sequences and primary-key triggers the insert script toggles.
func (pt *ProjectTemplate) GetSchema() string {
	var b strings.Builder
	for _, t := range Tables() {
		fmt.Fprintf(&b, "CREATE TABLE %s (\n", t.Name)
		for _, c := range t.Columns {
			null := " NOT NULL"
			if c.Nullable {
				null = ""
			}
			fmt.Fprintf(&b, "    %s %s%s,\n", c.Name, pt.columnType(c), null)
		}
		for _, u := range t.Unique {
			fmt.Fprintf(&b, "    UNIQUE (%s),\n", u)
		}
		for _, fk := range t.ForeignKeys {
			fmt.Fprintf(&b, "    FOREIGN KEY (%s) REFERENCES %s (%s),\n", fk.Column, fk.RefTable, fk.RefColumn)
		}
		fmt.Fprintf(&b, "    PRIMARY KEY (%s)\n);\n\n", strings.Join(t.PrimaryKey, ", "))
	}

	if pt.DatabaseType == Oracle {
		for _, t := range Tables() {
			if t.Sequence == "" {
				continue
			}
			fmt.Fprintf(&b, "CREATE SEQUENCE seq_%s START WITH 1 INCREMENT BY 1;\n", t.Sequence)
			fmt.Fprintf(&b, "CREATE OR REPLACE TRIGGER trg_%s_pk\nBEFORE INSERT ON %s\nFOR EACH ROW\nBEGIN\n", t.Sequence, t.Name)
			fmt.Fprintf(&b, "    SELECT seq_%s.NEXTVAL INTO :NEW.%s FROM dual;\nEND;\n/\n\n", t.Sequence, t.PrimaryKey[0])
		}
	}
	return b.String()
}

// ColumnNames lists the column names of a table in declaration order.
func (t TableTemplate) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}
