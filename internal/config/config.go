package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Lumos-Labs-HQ/hotelgen/internal/consolidate"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/database"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/export"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/faker"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/seeder"
	"github.com/spf13/viper"
)

const FileName = "hotelgen.config.json"

type Config struct {
	Version     string      `json:"version" mapstructure:"version"`
	Output      string      `json:"output" mapstructure:"output"`
	Manifest    string      `json:"manifest,omitempty" mapstructure:"manifest"`
	Dialect     string      `json:"dialect" mapstructure:"dialect"`
	Faker       string      `json:"faker" mapstructure:"faker"`
	Seed        int64       `json:"seed" mapstructure:"seed"`
	StartDate   string      `json:"start_date" mapstructure:"start_date"`
	EndDate     string      `json:"end_date" mapstructure:"end_date"`
	Counts      Counts      `json:"counts" mapstructure:"counts"`
	Database    Database    `json:"database" mapstructure:"database"`
	Consolidate Consolidate `json:"consolidate" mapstructure:"consolidate"`
}

type Counts struct {
	Hotels              int `json:"hotels" mapstructure:"hotels"`
	Guests              int `json:"guests" mapstructure:"guests"`
	Jobs                int `json:"jobs" mapstructure:"jobs"`
	RoomsPerHotel       int `json:"rooms_per_hotel" mapstructure:"rooms_per_hotel"`
	ServicesPerHotel    int `json:"services_per_hotel" mapstructure:"services_per_hotel"`
	DepartmentsPerHotel int `json:"departments_per_hotel" mapstructure:"departments_per_hotel"`
	EmployeesPerHotel   int `json:"employees_per_hotel" mapstructure:"employees_per_hotel"`
	Bookings            int `json:"bookings" mapstructure:"bookings"`
	BookingDetails      int `json:"booking_details" mapstructure:"booking_details"`
	GuestServices       int `json:"guest_services" mapstructure:"guest_services"`
}

type Database struct {
	URLEnv string `json:"url_env" mapstructure:"url_env"`
	// Driver overrides the dialect's database/sql driver, e.g. "postgres" for lib/pq.
	Driver    string `json:"driver,omitempty" mapstructure:"driver"`
	BatchSize int    `json:"batch_size" mapstructure:"batch_size"`
}

type Consolidate struct {
	Output    string   `json:"output" mapstructure:"output"`
	SkipDirs  []string `json:"skip_dirs" mapstructure:"skip_dirs"`
	SkipFiles []string `json:"skip_files" mapstructure:"skip_files"`
}

// Load reads the process-wide viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	defaults := seeder.DefaultPlan()

	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.Output == "" {
		cfg.Output = "3_insert_data.sql"
	}
	if cfg.Dialect == "" {
		cfg.Dialect = export.Oracle
	}
	if cfg.Faker == "" {
		cfg.Faker = faker.Gofakeit
	}
	if cfg.StartDate == "" {
		cfg.StartDate = defaults.Start.Format(time.DateOnly)
	}
	if cfg.EndDate == "" {
		cfg.EndDate = defaults.End.Format(time.DateOnly)
	}

	fill := func(n *int, def int) {
		if *n == 0 {
			*n = def
		}
	}
	fill(&cfg.Counts.Hotels, defaults.Hotels)
	fill(&cfg.Counts.Guests, defaults.Guests)
	fill(&cfg.Counts.Jobs, defaults.Jobs)
	fill(&cfg.Counts.RoomsPerHotel, defaults.RoomsPerHotel)
	fill(&cfg.Counts.ServicesPerHotel, defaults.ServicesPerHotel)
	fill(&cfg.Counts.DepartmentsPerHotel, defaults.DepartmentsPerHotel)
	fill(&cfg.Counts.EmployeesPerHotel, defaults.EmployeesPerHotel)
	fill(&cfg.Counts.Bookings, defaults.Bookings)
	// Zero detail rows is a valid request, so only unset keys take the default.
	if !v.IsSet("counts.booking_details") {
		cfg.Counts.BookingDetails = defaults.BookingDetails
	}
	if !v.IsSet("counts.guest_services") {
		cfg.Counts.GuestServices = defaults.GuestServices
	}

	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.Database.BatchSize == 0 {
		cfg.Database.BatchSize = 100
	}

	if cfg.Consolidate.Output == "" {
		cfg.Consolidate.Output = "consolidated_code.md"
	}
	if cfg.Consolidate.SkipDirs == nil {
		cfg.Consolidate.SkipDirs = consolidate.DefaultSkipDirs
	}
	if cfg.Consolidate.SkipFiles == nil {
		cfg.Consolidate.SkipFiles = consolidate.DefaultSkipFiles
	}

	return &cfg, nil
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) Validate() error {
	dialect, err := export.LookupDialect(c.Dialect)
	if err != nil {
		return err
	}
	if c.Database.Driver != "" {
		if _, err := database.DriverFor(dialect, c.Database.Driver); err != nil {
			return err
		}
	}
	if _, err := faker.New(c.Faker, 1); err != nil {
		return err
	}
	if c.Output == "" {
		return fmt.Errorf("output cannot be empty")
	}
	if c.Database.BatchSize < 1 {
		return fmt.Errorf("database.batch_size must be positive, got %d", c.Database.BatchSize)
	}
	_, err = c.Plan()
	return err
}

// Plan converts the configured counts and dates into a validated seeder.Plan.
func (c *Config) Plan() (seeder.Plan, error) {
	start, err := time.Parse(time.DateOnly, c.StartDate)
	if err != nil {
		return seeder.Plan{}, fmt.Errorf("invalid start_date %q: %w", c.StartDate, err)
	}
	end, err := time.Parse(time.DateOnly, c.EndDate)
	if err != nil {
		return seeder.Plan{}, fmt.Errorf("invalid end_date %q: %w", c.EndDate, err)
	}

	plan := seeder.Plan{
		Hotels:              c.Counts.Hotels,
		Guests:              c.Counts.Guests,
		Jobs:                c.Counts.Jobs,
		RoomsPerHotel:       c.Counts.RoomsPerHotel,
		ServicesPerHotel:    c.Counts.ServicesPerHotel,
		DepartmentsPerHotel: c.Counts.DepartmentsPerHotel,
		EmployeesPerHotel:   c.Counts.EmployeesPerHotel,
		Bookings:            c.Counts.Bookings,
		BookingDetails:      c.Counts.BookingDetails,
		GuestServices:       c.Counts.GuestServices,
		Start:               start,
		End:                 end,
	}
	if err := plan.Validate(); err != nil {
		return seeder.Plan{}, err
	}
	return plan, nil
}
