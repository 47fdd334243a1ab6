// Package faker supplies realistic-looking field values for generated rows.
package faker

import (
	"fmt"
	"time"
)

type Location struct {
	City       string
	State      string
	Country    string
	PostalCode string
}

// Provider is the capability the generator uses for names, contact details
// and dates. Implementations must be deterministic for a given seed.
type Provider interface {
	FirstName() string
	LastName() string
	EmailDomain() string
	Phone() string
	Location() Location
	// DateBetween returns a calendar date in [start, end], both inclusive.
	DateBetween(start, end time.Time) time.Time
}

const (
	Gofakeit = "gofakeit"
	Basic    = "basic"
)

var freeEmailDomains = []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "aol.com", "icloud.com"}

// New returns the provider registered under name.
func New(name string, seed int64) (Provider, error) {
	switch name {
	case Gofakeit, "":
		return NewGofakeitProvider(seed), nil
	case Basic:
		return NewBasicProvider(seed), nil
	default:
		return nil, fmt.Errorf("unknown faker %q (supported: %s, %s)", name, Gofakeit, Basic)
	}
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours() / 24)
}
