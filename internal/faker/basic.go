package faker

import (
	"fmt"
	"math/rand"
	"time"
)

// BasicProvider draws from small built-in word lists. It has no external
// data dependency and is handy for reproducible fixtures.
type BasicProvider struct {
	rand *rand.Rand
}

func NewBasicProvider(seed int64) *BasicProvider {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &BasicProvider{rand: rand.New(rand.NewSource(seed))}
}

var (
	firstNames = []string{"John", "Jane", "Alice", "Bob", "Charlie", "Diana", "Eve", "Frank", "Grace", "Henry", "Mary Ann", "Sean"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez", "O'Brien"}
	cities     = []string{"Springfield", "Riverside", "Fairview", "Madison", "Georgetown", "Salem", "Franklin", "Clinton"}
	states     = []string{"California", "Texas", "Florida", "New York", "Ohio", "Oregon", "Georgia", "Virginia"}
	countries  = []string{"United States", "Canada", "United Kingdom", "Australia", "Germany", "France", "Trinidad & Tobago"}
)

func (g *BasicProvider) FirstName() string {
	return firstNames[g.rand.Intn(len(firstNames))]
}

func (g *BasicProvider) LastName() string {
	return lastNames[g.rand.Intn(len(lastNames))]
}

func (g *BasicProvider) EmailDomain() string {
	return freeEmailDomains[g.rand.Intn(len(freeEmailDomains))]
}

func (g *BasicProvider) Phone() string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", g.rand.Intn(1000), g.rand.Intn(1000), g.rand.Intn(10000))
}

func (g *BasicProvider) Location() Location {
	return Location{
		City:       cities[g.rand.Intn(len(cities))],
		State:      states[g.rand.Intn(len(states))],
		Country:    countries[g.rand.Intn(len(countries))],
		PostalCode: fmt.Sprintf("%05d", g.rand.Intn(100000)),
	}
}

func (g *BasicProvider) DateBetween(start, end time.Time) time.Time {
	span := DaysBetween(start, end)
	if span <= 0 {
		return Day(start)
	}
	return Day(start).AddDate(0, 0, g.rand.Intn(span+1))
}
