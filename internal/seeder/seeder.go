package seeder

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/hotelgen/internal/catalog"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/faker"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/registry"
)

const maxPhoneLength = 25

// Generator produces every table of a Plan in dependency order. A Generator
// is single use: its registries are scratch state for one pass.
type Generator struct {
	plan   Plan
	faker  faker.Provider
	rand   *rand.Rand
	emails *registry.EmailRegistry
	prices *registry.PriceBook
	ids    map[string]*registry.Sequence
	parts  Partitions
	graph  *DependencyGraph
	used   bool
}

// NewGenerator validates the plan and wires the scratch registries. A zero
// seed draws one from the clock.
func NewGenerator(plan Plan, provider faker.Provider, seed int64) (*Generator, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	plan.Start = faker.Day(plan.Start)
	plan.End = faker.Day(plan.End)

	graph := NewDependencyGraph()
	ids := make(map[string]*registry.Sequence, len(Entities))
	for _, e := range Entities {
		graph.AddTable(e)
		ids[e.Table] = &registry.Sequence{}
	}
	if _, err := graph.BuildInsertionOrder(); err != nil {
		return nil, fmt.Errorf("failed to build insertion order: %w", err)
	}

	return &Generator{
		plan:   plan,
		faker:  provider,
		rand:   rand.New(rand.NewSource(seed)),
		emails: registry.NewEmailRegistry(),
		prices: registry.NewPriceBook(),
		ids:    ids,
		parts:  NewPartitions(plan.Hotels, plan.DepartmentsPerHotel, plan.EmployeesPerHotel),
		graph:  graph,
	}, nil
}

func (g *Generator) Plan() Plan {
	return g.plan
}

func (g *Generator) Partitions() Partitions {
	return g.parts
}

// Order is the table insertion order.
func (g *Generator) Order() []string {
	return g.graph.GetOrder()
}

// Run streams every row to sink. Any error aborts the pass.
func (g *Generator) Run(ctx context.Context, sink Sink) (*Summary, error) {
	if g.used {
		return nil, fmt.Errorf("generator has already run")
	}
	g.used = true

	started := time.Now()
	summary := &Summary{
		Order:  g.Order(),
		Counts: make(map[string]int, len(Entities)),
	}

	generators := map[string]func(emit func(Row) error) error{
		Hotel:         g.generateHotels,
		Guest:         g.generateGuests,
		Job:           g.generateJobs,
		Department:    g.generateDepartments,
		Room:          g.generateRooms,
		Service:       g.generateServices,
		Employee:      g.generateEmployees,
		Booking:       g.generateBookings,
		BookingDetail: g.generateBookingDetails,
		GuestService:  g.generateGuestServices,
	}

	for i, table := range summary.Order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entity, _ := Lookup(table)
		generate, ok := generators[table]
		if !ok {
			return nil, fmt.Errorf("no generator registered for table %s", table)
		}

		if err := sink.BeginEntity(ctx, i+1, entity); err != nil {
			return nil, fmt.Errorf("failed to start %s: %w", table, err)
		}

		emit := func(row Row) error {
			row.Entity = entity
			if len(row.Values) != len(entity.Columns) {
				return fmt.Errorf("%s row has %d values for %d columns", table, len(row.Values), len(entity.Columns))
			}
			if err := sink.WriteRow(ctx, row); err != nil {
				return err
			}
			summary.Counts[table]++
			return nil
		}

		if err := generate(emit); err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", table, err)
		}

		if err := sink.EndEntity(ctx, entity); err != nil {
			return nil, fmt.Errorf("failed to finish %s: %w", table, err)
		}
	}

	summary.Duration = time.Since(started)
	return summary, nil
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rand.Intn(hi-lo+1)
}

func (g *Generator) pick(values []string) string {
	return values[g.rand.Intn(len(values))]
}

// pickID returns a uniform id among those issued for table.
func (g *Generator) pickID(table string) int {
	return g.between(1, g.ids[table].Last())
}

func emailLocal(first, last string) string {
	return strings.ToLower(strings.ReplaceAll(first+"."+last, " ", "."))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func (g *Generator) generateHotels(emit func(Row) error) error {
	seq := g.ids[Hotel]
	for i := 0; i < g.plan.Hotels; i++ {
		id := seq.Next()
		email := g.emails.Claim(fmt.Sprintf("hotel.%d", id), g.faker.EmailDomain)
		rating := float64(g.between(35, 50)) / 10
		loc := g.faker.Location()

		if err := emit(Row{Values: []any{
			id, email, truncate(g.faker.Phone(), maxPhoneLength), rating,
			loc.City, nil, loc.State, loc.Country, loc.PostalCode,
		}}); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateGuests(emit func(Row) error) error {
	seq := g.ids[Guest]
	for i := 0; i < g.plan.Guests; i++ {
		id := seq.Next()
		first, last := g.faker.FirstName(), g.faker.LastName()
		email := g.emails.Claim(emailLocal(first, last), g.faker.EmailDomain)
		loc := g.faker.Location()

		if err := emit(Row{Values: []any{
			id, first, last, email, truncate(g.faker.Phone(), maxPhoneLength),
			loc.City, nil, loc.State, loc.Country, loc.PostalCode,
		}}); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateJobs(emit func(Row) error) error {
	if err := catalog.CheckJobs(g.plan.Jobs); err != nil {
		return err
	}
	seq := g.ids[Job]
	for i := 0; i < g.plan.Jobs; i++ {
		id := seq.Next()
		minSalary := g.between(30000, 50000)
		maxSalary := minSalary + g.between(10000, 30000)

		if err := emit(Row{Values: []any{id, catalog.JobTitles[id-1], minSalary, maxSalary}}); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateDepartments(emit func(Row) error) error {
	seq := g.ids[Department]
	names := catalog.DepartmentNames[:g.plan.DepartmentsPerHotel]
	for hotel := 1; hotel <= g.ids[Hotel].Last(); hotel++ {
		for _, name := range names {
			if err := emit(Row{Values: []any{seq.Next(), name, hotel}}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) generateRooms(emit func(Row) error) error {
	seq := g.ids[Room]
	for hotel := 1; hotel <= g.ids[Hotel].Last(); hotel++ {
		for i := 0; i < g.plan.RoomsPerHotel; i++ {
			roomType := g.pick(catalog.RoomTypes)
			beds, fixed := catalog.BedCount(roomType)
			if !fixed {
				beds = g.between(2, 4)
			}
			price := Money(g.between(8000, 50000))

			if err := emit(Row{Values: []any{seq.Next(), roomType, beds, price, hotel}}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) generateServices(emit func(Row) error) error {
	seq := g.ids[Service]
	services := catalog.Services[:g.plan.ServicesPerHotel]
	for hotel := 1; hotel <= g.ids[Hotel].Last(); hotel++ {
		for _, svc := range services {
			id := seq.Next()
			price := Money(g.between(1500, 20000))
			g.prices.Set(id, int64(price))

			if err := emit(Row{Values: []any{id, svc.Describe(), svc.Name, price, svc.Type, hotel}}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) generateEmployees(emit func(Row) error) error {
	seq := g.ids[Employee]
	for i := 0; i < g.plan.Employees(); i++ {
		id := seq.Next()
		first, last := g.faker.FirstName(), g.faker.LastName()
		email := g.emails.Claim(emailLocal(first, last), g.faker.EmailDomain)
		job := g.pickID(Job)

		hotel := g.parts.HotelOfEmployee(id)
		if hotel == 0 {
			return fmt.Errorf("employee %d falls outside every hotel partition", id)
		}
		depts := g.parts.DepartmentsOf(hotel)
		dept := g.between(depts.First, depts.Last)

		if err := emit(Row{Values: []any{id, first, last, email, job, dept}}); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateBookings(emit func(Row) error) error {
	seq := g.ids[Booking]
	for i := 0; i < g.plan.Bookings; i++ {
		id := seq.Next()
		guest := g.pickID(Guest)
		method := g.pick(catalog.PaymentMethods)
		paid := g.faker.DateBetween(g.plan.Start, g.plan.End)
		total := Money(g.between(10000, 250000))

		if err := emit(Row{Values: []any{id, total, method, paid, guest}}); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateBookingDetails(emit func(Row) error) error {
	keys, err := registry.NewKeySpace(g.ids[Booking].Last(), g.ids[Room].Last())
	if err != nil {
		return err
	}
	if err := keys.Reserve(g.plan.BookingDetails); err != nil {
		return err
	}

	checkinEnd := g.plan.CheckinEnd()
	for i := 0; i < g.plan.BookingDetails; i++ {
		key, err := keys.Draw(g.rand)
		if err != nil {
			return err
		}
		booking, room := key[0]+1, key[1]+1

		duration := g.between(1, MaxStay)
		guests := g.between(1, 5)
		checkin := g.faker.DateBetween(g.plan.Start, checkinEnd)
		checkout := checkin.AddDate(0, 0, duration)

		if err := emit(Row{Values: []any{booking, room, duration, checkin, checkout, guests}}); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateGuestServices(emit func(Row) error) error {
	keys, err := registry.NewKeySpace(g.ids[Guest].Last(), g.ids[Service].Last(), g.plan.Days())
	if err != nil {
		return err
	}
	if err := keys.Reserve(g.plan.GuestServices); err != nil {
		return err
	}

	for i := 0; i < g.plan.GuestServices; i++ {
		key, err := keys.Draw(g.rand)
		if err != nil {
			return err
		}
		guest, service := key[0]+1, key[1]+1
		used := g.plan.Start.AddDate(0, 0, key[2])

		booked := used.AddDate(0, 0, -g.between(0, MaxLookback))
		if booked.Before(g.plan.Start) {
			booked = g.plan.Start
		}

		unitPrice, ok := g.prices.Get(service)
		if !ok {
			return fmt.Errorf("no price recorded for service %d", service)
		}
		quantity := g.between(1, 3)
		total := Money(int64(quantity) * unitPrice)

		if err := emit(Row{Values: []any{guest, service, booked, used, quantity, total}}); err != nil {
			return err
		}
	}
	return nil
}
