package seeder

import (
	"errors"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/hotelgen/internal/catalog"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/faker"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/registry"
)

// MaxStay is the longest booking-detail duration in days. Check-in dates leave
// MaxStay+1 days of headroom before the end of the range.
const MaxStay = 14

// MaxLookback is how many days before usage a service may be booked.
const MaxLookback = 60

// Plan fixes record counts and the date range for one generation pass.
type Plan struct {
	Hotels              int
	Guests              int
	Jobs                int
	RoomsPerHotel       int
	ServicesPerHotel    int
	DepartmentsPerHotel int
	EmployeesPerHotel   int
	Bookings            int
	BookingDetails      int
	GuestServices       int
	Start               time.Time
	End                 time.Time
}

// DefaultPlan mirrors the volumes of the reference data warehouse load.
func DefaultPlan() Plan {
	return Plan{
		Hotels:              20,
		Guests:              10000,
		Jobs:                len(catalog.JobTitles),
		RoomsPerHotel:       50,
		ServicesPerHotel:    len(catalog.Services),
		DepartmentsPerHotel: len(catalog.DepartmentNames),
		EmployeesPerHotel:   30,
		Bookings:            100000,
		BookingDetails:      120000,
		GuestServices:       100000,
		Start:               time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC),
		End:                 time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func (p Plan) Rooms() int       { return p.Hotels * p.RoomsPerHotel }
func (p Plan) Services() int    { return p.Hotels * p.ServicesPerHotel }
func (p Plan) Departments() int { return p.Hotels * p.DepartmentsPerHotel }
func (p Plan) Employees() int   { return p.Hotels * p.EmployeesPerHotel }

// Days is the number of calendar days in the inclusive range.
func (p Plan) Days() int {
	return faker.DaysBetween(p.Start, p.End) + 1
}

// CheckinEnd is the latest check-in date that keeps every checkout in range.
func (p Plan) CheckinEnd() time.Time {
	return faker.Day(p.End).AddDate(0, 0, -(MaxStay + 1))
}

// Counts returns the number of rows each table will receive.
func (p Plan) Counts() map[string]int {
	return map[string]int{
		Hotel:         p.Hotels,
		Guest:         p.Guests,
		Job:           p.Jobs,
		Department:    p.Departments(),
		Room:          p.Rooms(),
		Service:       p.Services(),
		Employee:      p.Employees(),
		Booking:       p.Bookings,
		BookingDetail: p.BookingDetails,
		GuestService:  p.GuestServices,
	}
}

// Validate rejects plans that would mis-title catalog rows, leave foreign keys
// dangling or exhaust a composite key space. It runs before any output.
func (p Plan) Validate() error {
	positive := []struct {
		name string
		n    int
	}{
		{"hotels", p.Hotels},
		{"guests", p.Guests},
		{"rooms per hotel", p.RoomsPerHotel},
		{"employees per hotel", p.EmployeesPerHotel},
		{"bookings", p.Bookings},
	}
	for _, c := range positive {
		if c.n < 1 {
			return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalidPlan, c.name, c.n)
		}
	}
	if p.BookingDetails < 0 || p.GuestServices < 0 {
		return fmt.Errorf("%w: booking details and guest services cannot be negative", ErrInvalidPlan)
	}

	if err := errors.Join(
		catalog.CheckJobs(p.Jobs),
		catalog.CheckDepartments(p.DepartmentsPerHotel),
		catalog.CheckServices(p.ServicesPerHotel),
	); err != nil {
		return err
	}

	if p.Start.IsZero() || p.End.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidPlan)
	}
	if p.CheckinEnd().Before(faker.Day(p.Start)) {
		return fmt.Errorf("%w: date range %s..%s must span at least %d days", ErrInvalidPlan,
			p.Start.Format(time.DateOnly), p.End.Format(time.DateOnly), MaxStay+1)
	}

	if space := uint64(p.Bookings) * uint64(p.Rooms()); uint64(p.BookingDetails) > space {
		return fmt.Errorf("%w: %d booking details requested but only %d booking/room pairs exist",
			registry.ErrKeySpaceExhausted, p.BookingDetails, space)
	}
	if space := uint64(p.Guests) * uint64(p.Services()) * uint64(p.Days()); uint64(p.GuestServices) > space {
		return fmt.Errorf("%w: %d guest services requested but only %d guest/service/date triplets exist",
			registry.ErrKeySpaceExhausted, p.GuestServices, space)
	}

	return nil
}
