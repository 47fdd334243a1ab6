package faker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func providers(t *testing.T) map[string]Provider {
	t.Helper()
	out := make(map[string]Provider)
	for _, name := range []string{Gofakeit, Basic} {
		p, err := New(name, 42)
		require.NoError(t, err)
		out[name] = p
	}
	return out
}

func TestNewUnknownFaker(t *testing.T) {
	_, err := New("lorem", 1)
	assert.Error(t, err)
}

func TestProvidersFillFields(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			assert.NotEmpty(t, p.FirstName())
			assert.NotEmpty(t, p.LastName())
			assert.Contains(t, freeEmailDomains, p.EmailDomain())
			assert.NotEmpty(t, p.Phone())

			loc := p.Location()
			assert.NotEmpty(t, loc.City)
			assert.NotEmpty(t, loc.State)
			assert.NotEmpty(t, loc.Country)
			assert.NotEmpty(t, loc.PostalCode)
		})
	}
}

func TestDateBetweenStaysInRange(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC)

	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 500; i++ {
				d := p.DateBetween(start, end)
				assert.False(t, d.Before(start), "%s before start", d)
				assert.False(t, d.After(end), "%s after end", d)
				assert.Equal(t, d, Day(d))
			}
			assert.Equal(t, start, p.DateBetween(start, start))
		})
	}
}

func TestBasicProviderIsDeterministic(t *testing.T) {
	a := NewBasicProvider(7)
	b := NewBasicProvider(7)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.FirstName(), b.FirstName())
		assert.Equal(t, a.Location(), b.Location())
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 5478, DaysBetween(start, end))
}
