package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/hotelgen/internal/seeder"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type TableCount struct {
	Table string `yaml:"table"`
	Rows  int    `yaml:"rows"`
}

// Manifest records how a data file was produced so it can be regenerated.
type Manifest struct {
	RunID       string       `yaml:"run_id"`
	GeneratedAt time.Time    `yaml:"generated_at"`
	Seed        int64        `yaml:"seed"`
	Dialect     string       `yaml:"dialect"`
	Faker       string       `yaml:"faker"`
	Output      string       `yaml:"output,omitempty"`
	StartDate   string       `yaml:"start_date"`
	EndDate     string       `yaml:"end_date"`
	Tables      []TableCount `yaml:"tables"`
	TotalRows   int          `yaml:"total_rows"`
	Duration    string       `yaml:"duration"`
}

func NewManifest(plan seeder.Plan, summary *seeder.Summary, seed int64, dialect, fakerName, output string) *Manifest {
	m := &Manifest{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Seed:        seed,
		Dialect:     dialect,
		Faker:       fakerName,
		Output:      output,
		StartDate:   plan.Start.Format(time.DateOnly),
		EndDate:     plan.End.Format(time.DateOnly),
		TotalRows:   summary.Total(),
		Duration:    summary.Duration.Round(time.Millisecond).String(),
	}
	for _, table := range summary.Order {
		m.Tables = append(m.Tables, TableCount{Table: table, Rows: summary.Counts[table]})
	}
	return m
}

func (m *Manifest) Write(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// CheckCounts reports every table whose recorded row count differs from
// counts. A replay with different counts would not reproduce the run.
func (m *Manifest) CheckCounts(counts map[string]int) error {
	recorded := make(map[string]int, len(m.Tables))
	for _, tc := range m.Tables {
		recorded[tc.Table] = tc.Rows
	}

	var diffs []string
	for _, e := range seeder.Entities {
		got, ok := recorded[e.Table]
		want := counts[e.Table]
		switch {
		case !ok:
			diffs = append(diffs, fmt.Sprintf("%s missing from manifest", e.Table))
		case got != want:
			diffs = append(diffs, fmt.Sprintf("%s: manifest %d, config %d", e.Table, got, want))
		}
	}
	if len(diffs) > 0 {
		return fmt.Errorf("row counts differ from run %s: %s", m.RunID, strings.Join(diffs, "; "))
	}
	return nil
}
