package cmd

import (
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/hotelgen/internal/export"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/faker"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/seeder"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var replayManifest string

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Write a SQL insert script for the hotel schema",
	Long: `Generate every table in dependency order and write the INSERT statements
to a single script. The file only appears once the whole script is written.

Pass --replay with a manifest from an earlier run to reuse its seed, faker,
dialect and date range.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]string{
			"output":   "output",
			"dialect":  "dialect",
			"seed":     "seed",
			"faker":    "faker",
			"manifest": "manifest",
		})
		if err != nil {
			return err
		}

		var replay *export.Manifest
		if replayManifest != "" {
			replay, err = export.ReadManifest(replayManifest)
			if err != nil {
				return err
			}
			cfg.Seed, cfg.Faker, cfg.Dialect = replay.Seed, replay.Faker, replay.Dialect
			cfg.StartDate, cfg.EndDate = replay.StartDate, replay.EndDate
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("manifest %s does not fit the current config: %w", replayManifest, err)
			}
		}

		plan, err := cfg.Plan()
		if err != nil {
			return err
		}
		if replay != nil {
			if err := replay.CheckCounts(plan.Counts()); err != nil {
				return fmt.Errorf("cannot replay %s: %w", replayManifest, err)
			}
			color.Cyan("🔁 Replaying run %s (seed %d)", replay.RunID, replay.Seed)
		}
		dialect, err := export.LookupDialect(cfg.Dialect)
		if err != nil {
			return err
		}

		seed := resolveSeed(cfg.Seed)
		provider, err := faker.New(cfg.Faker, seed)
		if err != nil {
			return err
		}
		gen, err := seeder.NewGenerator(plan, provider, seed)
		if err != nil {
			return err
		}

		total := 0
		for _, n := range plan.Counts() {
			total += n
		}
		color.Cyan("🏨 Generating %s rows for %s (seed %d)...", humanize.Comma(int64(total)), dialect.Title, seed)

		summary, err := export.GenerateFile(cmd.Context(), gen, dialect, cfg.Output)
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}

		printSummary(summary)
		color.Green("✅ Wrote %s", cfg.Output)

		if cfg.Manifest != "" {
			m := export.NewManifest(plan, summary, seed, dialect.Name, cfg.Faker, cfg.Output)
			if err := m.Write(cfg.Manifest); err != nil {
				return err
			}
			color.Green("📝 Manifest saved to %s", cfg.Manifest)
		}
		return nil
	},
}

func printSummary(summary *seeder.Summary) {
	fmt.Println()
	for i, table := range summary.Order {
		fmt.Printf("   (%2d) %-15s %12s\n", i+1, table, humanize.Comma(int64(summary.Counts[table])))
	}
	fmt.Printf("   %-20s %12s\n", "total", humanize.Comma(int64(summary.Total())))
	fmt.Printf("   %-20s %12s\n", "elapsed", summary.Duration.Round(time.Millisecond))
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("output", "o", "", "Output SQL file")
	generateCmd.Flags().StringP("dialect", "d", "", "SQL dialect (oracle, postgresql, mysql, sqlite)")
	generateCmd.Flags().Int64("seed", 0, "Random seed (0 picks one from the clock)")
	generateCmd.Flags().String("faker", "", "Fake value provider (gofakeit, basic)")
	generateCmd.Flags().String("manifest", "", "Write a YAML run manifest to this path")
	generateCmd.Flags().StringVar(&replayManifest, "replay", "", "Reuse seed, faker, dialect and dates from a manifest")
}
