package seeder

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidPlan = errors.New("invalid generation plan")
)

const (
	Hotel         = "Hotel"
	Guest         = "Guest"
	Job           = "Jobs"
	Department    = "Department"
	Room          = "Room"
	Service       = "Service"
	Employee      = "Employee"
	Booking       = "Booking"
	BookingDetail = "BookingDetail"
	GuestService  = "GuestService"
)

// Entity describes one generated table.
type Entity struct {
	Table        string
	Plural       string
	Columns      []string
	PrimaryKey   []string
	Dependencies []string
	// Trigger names the sequence trigger that must be disabled for explicit ids.
	Trigger string
}

// Entities lists every table in declaration order. The insertion order is
// derived from Dependencies; declaration order breaks ties.
var Entities = []Entity{
	{
		Table:      Hotel,
		Plural:     "Hotels",
		Columns:    []string{"hotel_id", "email", "phone", "rating", "city", "region", "state", "country", "postal_code"},
		PrimaryKey: []string{"hotel_id"},
		Trigger:    "trg_hotel_pk",
	},
	{
		Table:      Guest,
		Plural:     "Guests",
		Columns:    []string{"guest_id", "first_name", "last_name", "email", "phone", "city", "region", "state", "country", "postal_code"},
		PrimaryKey: []string{"guest_id"},
		Trigger:    "trg_guest_pk",
	},
	{
		Table:      Job,
		Plural:     "Jobs",
		Columns:    []string{"job_id", "job_title", "min_salary", "max_salary"},
		PrimaryKey: []string{"job_id"},
		Trigger:    "trg_jobs_pk",
	},
	{
		Table:        Department,
		Plural:       "Departments",
		Columns:      []string{"department_id", "department_name", "hotel_id"},
		PrimaryKey:   []string{"department_id"},
		Dependencies: []string{Hotel},
		Trigger:      "trg_department_pk",
	},
	{
		Table:        Room,
		Plural:       "Rooms",
		Columns:      []string{"room_id", "room_type", "bed_count", "price", "hotel_id"},
		PrimaryKey:   []string{"room_id"},
		Dependencies: []string{Hotel},
		Trigger:      "trg_room_pk",
	},
	{
		Table:        Service,
		Plural:       "Services",
		Columns:      []string{"service_id", "description", "service_name", "service_price", "service_type", "hotel_id"},
		PrimaryKey:   []string{"service_id"},
		Dependencies: []string{Hotel},
		Trigger:      "trg_service_pk",
	},
	{
		Table:        Employee,
		Plural:       "Employees",
		Columns:      []string{"employee_id", "first_name", "last_name", "email", "job_id", "department_id"},
		PrimaryKey:   []string{"employee_id"},
		Dependencies: []string{Job, Department},
		Trigger:      "trg_employee_pk",
	},
	{
		Table:        Booking,
		Plural:       "Bookings",
		Columns:      []string{"booking_id", "total_price", "payment_method", "payment_date", "guest_id"},
		PrimaryKey:   []string{"booking_id"},
		Dependencies: []string{Guest},
		Trigger:      "trg_booking_pk",
	},
	{
		Table:        BookingDetail,
		Plural:       "BookingDetails",
		Columns:      []string{"booking_id", "room_id", "duration_days", "checkin_date", "checkout_date", "num_of_guest"},
		PrimaryKey:   []string{"booking_id", "room_id"},
		Dependencies: []string{Booking, Room},
	},
	{
		Table:        GuestService,
		Plural:       "GuestServices",
		Columns:      []string{"guest_id", "service_id", "booking_date", "usage_date", "quantity", "total_amount"},
		PrimaryKey:   []string{"guest_id", "service_id", "usage_date"},
		Dependencies: []string{Guest, Service},
	},
}

// Lookup returns the entity for a table name.
func Lookup(table string) (Entity, bool) {
	for _, e := range Entities {
		if e.Table == table {
			return e, true
		}
	}
	return Entity{}, false
}

// Row is one generated record; Values line up with Entity.Columns.
// Values are nil, int, float64, string, Money or time.Time (a calendar date).
type Row struct {
	Entity Entity
	Values []any
}

// Get returns the value stored under column, or nil.
func (r Row) Get(column string) any {
	for i, c := range r.Entity.Columns {
		if c == column {
			return r.Values[i]
		}
	}
	return nil
}

// Sink receives rows in generation order.
type Sink interface {
	BeginEntity(ctx context.Context, ordinal int, e Entity) error
	WriteRow(ctx context.Context, row Row) error
	EndEntity(ctx context.Context, e Entity) error
}

// Money is an amount in cents.
type Money int64

func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%d.%02d", sign, int64(m)/100, int64(m)%100)
}

func (m Money) Float64() float64 {
	return float64(m) / 100
}

// Value lets database/sql bind Money as a decimal number.
func (m Money) Value() (driver.Value, error) {
	return m.Float64(), nil
}

// Summary reports what a run produced.
type Summary struct {
	Order    []string
	Counts   map[string]int
	Duration time.Duration
}

func (s *Summary) Total() int {
	total := 0
	for _, n := range s.Counts {
		total += n
	}
	return total
}
