package seeder

// Span is the contiguous id range owned by one hotel.
type Span struct {
	Hotel int
	First int
	Last  int
}

func (s Span) Len() int {
	return s.Last - s.First + 1
}

func (s Span) Contains(id int) bool {
	return id >= s.First && id <= s.Last
}

// Partitions maps hotels to the department and employee id blocks they own.
// Both pools are generated hotel by hotel, so each hotel owns one block of
// fixed size in each.
type Partitions struct {
	Departments []Span
	Employees   []Span
}

func NewPartitions(hotels, departmentsPerHotel, employeesPerHotel int) Partitions {
	return Partitions{
		Departments: blocks(hotels, departmentsPerHotel),
		Employees:   blocks(hotels, employeesPerHotel),
	}
}

func blocks(hotels, size int) []Span {
	spans := make([]Span, hotels)
	for i := range spans {
		spans[i] = Span{Hotel: i + 1, First: i*size + 1, Last: (i + 1) * size}
	}
	return spans
}

// HotelOfEmployee returns the hotel owning the employee id, or 0.
func (p Partitions) HotelOfEmployee(employeeID int) int {
	return hotelOf(p.Employees, employeeID)
}

// HotelOfDepartment returns the hotel owning the department id, or 0.
func (p Partitions) HotelOfDepartment(departmentID int) int {
	return hotelOf(p.Departments, departmentID)
}

// DepartmentsOf returns the department block of a hotel.
func (p Partitions) DepartmentsOf(hotel int) Span {
	return p.Departments[hotel-1]
}

func hotelOf(spans []Span, id int) int {
	if len(spans) == 0 || id < 1 {
		return 0
	}
	size := spans[0].Len()
	idx := (id - 1) / size
	if idx >= len(spans) {
		return 0
	}
	return spans[idx].Hotel
}
