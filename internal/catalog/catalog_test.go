package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogSizes(t *testing.T) {
	assert.Len(t, JobTitles, 15)
	assert.Len(t, DepartmentNames, 5)
	assert.Len(t, Services, 10)
}

func TestCheckJobs(t *testing.T) {
	assert.NoError(t, CheckJobs(15))
	for _, n := range []int{0, 1, 14, 16} {
		assert.ErrorIs(t, CheckJobs(n), ErrCatalogMismatch, "count %d", n)
	}
}

func TestCheckPerHotelPrefixes(t *testing.T) {
	tests := []struct {
		name    string
		check   func(int) error
		n       int
		wantErr bool
	}{
		{"one department", CheckDepartments, 1, false},
		{"all departments", CheckDepartments, 5, false},
		{"too many departments", CheckDepartments, 6, true},
		{"zero departments", CheckDepartments, 0, true},
		{"one service", CheckServices, 1, false},
		{"all services", CheckServices, 10, false},
		{"too many services", CheckServices, 11, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.n)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCatalogMismatch)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBedCount(t *testing.T) {
	beds, ok := BedCount("Single")
	assert.True(t, ok)
	assert.Equal(t, 1, beds)

	for _, rt := range []string{"Double", "Deluxe"} {
		beds, ok = BedCount(rt)
		assert.True(t, ok)
		assert.Equal(t, 2, beds)
	}

	_, ok = BedCount("Suite")
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	s := Service{Name: "Pet Care", Type: "Convenience"}
	assert.Equal(t, "Provides convenient Pet Care for our valued guests.", s.Describe())
}
