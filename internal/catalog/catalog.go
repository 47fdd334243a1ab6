// Package catalog holds the static reference data consumed during generation.
// Job titles map to job ids by position, department names and services are
// repeated for every hotel.
package catalog

import (
	"errors"
	"fmt"
)

// ErrCatalogMismatch is returned when a requested count cannot be served by a catalog.
var ErrCatalogMismatch = errors.New("catalog size mismatch")

var JobTitles = []string{
	"General Manager",
	"Front Desk Clerk",
	"Concierge",
	"Housekeeper",
	"Executive Chef",
	"Sous Chef",
	"Bartender",
	"Waiter/Waitress",
	"Maintenance Manager",
	"Security Guard",
	"Hotel Accountant",
	"Marketing Manager",
	"Events Coordinator",
	"IT Specialist",
	"HR Manager",
}

var DepartmentNames = []string{
	"Management",
	"Front Office",
	"Housekeeping",
	"Food and Beverage",
	"Maintenance",
}

type Service struct {
	Name string
	Type string
}

var Services = []Service{
	{Name: "Airport Shuttle", Type: "Transport"},
	{Name: "Room Service", Type: "Dining"},
	{Name: "Laundry Service", Type: "Convenience"},
	{Name: "Spa Treatment", Type: "Wellness"},
	{Name: "Gym Access", Type: "Recreation"},
	{Name: "Valet Parking", Type: "Transport"},
	{Name: "Conference Room Rental", Type: "Business"},
	{Name: "Bike Rental", Type: "Recreation"},
	{Name: "City Tour Package", Type: "Recreation"},
	{Name: "Pet Care", Type: "Convenience"},
}

var RoomTypes = []string{"Single", "Double", "Suite", "Deluxe", "Family"}

var PaymentMethods = []string{"Credit Card", "Debit Card", "Cash", "Bank Transfer"}

// Describe returns the marketing blurb stored with each service row.
func (s Service) Describe() string {
	return fmt.Sprintf("Provides convenient %s for our valued guests.", s.Name)
}

// CheckJobs requires an exact match because titles are assigned by job id.
func CheckJobs(count int) error {
	if count != len(JobTitles) {
		return fmt.Errorf("%w: %d jobs requested but the title catalog has %d entries", ErrCatalogMismatch, count, len(JobTitles))
	}
	return nil
}

// CheckDepartments allows any per-hotel count from 1 up to the catalog size.
func CheckDepartments(perHotel int) error {
	return checkPrefix("departments per hotel", perHotel, len(DepartmentNames))
}

// CheckServices allows any per-hotel count from 1 up to the catalog size.
func CheckServices(perHotel int) error {
	return checkPrefix("services per hotel", perHotel, len(Services))
}

func checkPrefix(what string, n, size int) error {
	if n < 1 || n > size {
		return fmt.Errorf("%w: %s must be between 1 and %d, got %d", ErrCatalogMismatch, what, size, n)
	}
	return nil
}

// BedCount derives the bed count for fixed room types. ok is false when the
// type leaves the count to chance.
func BedCount(roomType string) (beds int, ok bool) {
	switch roomType {
	case "Single":
		return 1, true
	case "Double", "Deluxe":
		return 2, true
	default:
		return 0, false
	}
}
