package faker

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// GofakeitProvider backs Provider with gofakeit's locale data.
type GofakeitProvider struct {
	faker *gofakeit.Faker
}

// NewGofakeitProvider seeds gofakeit; a zero seed picks a random one.
func NewGofakeitProvider(seed int64) *GofakeitProvider {
	return &GofakeitProvider{faker: gofakeit.New(uint64(seed))}
}

func (p *GofakeitProvider) FirstName() string {
	return p.faker.FirstName()
}

func (p *GofakeitProvider) LastName() string {
	return p.faker.LastName()
}

func (p *GofakeitProvider) EmailDomain() string {
	return p.faker.RandomString(freeEmailDomains)
}

func (p *GofakeitProvider) Phone() string {
	return p.faker.PhoneFormatted()
}

func (p *GofakeitProvider) Location() Location {
	return Location{
		City:       p.faker.City(),
		State:      p.faker.State(),
		Country:    p.faker.Country(),
		PostalCode: p.faker.Zip(),
	}
}

func (p *GofakeitProvider) DateBetween(start, end time.Time) time.Time {
	span := DaysBetween(start, end)
	if span <= 0 {
		return Day(start)
	}
	return Day(start).AddDate(0, 0, p.faker.IntRange(0, span))
}
