package cmd

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/hotelgen/internal/database"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/export"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/faker"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/seeder"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	seedTruncate bool
	seedForce    bool
	seedSchema   string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load generated data straight into a database",
	Long: `Generate the hotel dataset and insert it into the database named by
DATABASE_URL (or the variable set in database.url_env). All rows go in one
transaction; any failure rolls everything back.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]string{
			"dialect":             "dialect",
			"seed":                "seed",
			"faker":               "faker",
			"database.batch_size": "batch",
			"database.driver":     "driver",
		})
		if err != nil {
			return err
		}

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}
		dialect, err := export.LookupDialect(cfg.Dialect)
		if err != nil {
			return err
		}
		plan, err := cfg.Plan()
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

		if seedTruncate {
			msg := fmt.Sprintf("⚠️  This deletes every row in all %d hotel tables. Continue?", len(seeder.Entities))
			if !utils.NewInputUtils().AskConfirmation(msg, seedForce) {
				color.Yellow("Seed cancelled")
				return nil
			}
		}

		ctx := cmd.Context()
		db, err := database.Open(ctx, dialect, dbURL, cfg.Database.Driver)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if seedSchema != "" {
			n, err := database.ApplySchemaFile(ctx, db, seedSchema)
			if err != nil {
				return err
			}
			color.Cyan("📐 Applied %d schema statements from %s", n, seedSchema)
		}

		color.Cyan("🌱 Seeding %s (seed %d)...", dialect.Title, seed)
		summary, err := database.NewLoader(db, dialect, cfg.Database.BatchSize).Load(ctx, gen, seedTruncate)
		if err != nil {
			return fmt.Errorf("seed failed, no rows were kept: %w", err)
		}

		printSummary(summary)
		color.Green("✅ Database seeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringP("dialect", "d", "", "Database dialect (postgresql, mysql, sqlite)")
	seedCmd.Flags().Int64("seed", 0, "Random seed (0 picks one from the clock)")
	seedCmd.Flags().String("faker", "", "Fake value provider (gofakeit, basic)")
	seedCmd.Flags().Int("batch", 0, "Rows per INSERT statement")
	seedCmd.Flags().String("driver", "", "database/sql driver override (postgres selects lib/pq)")
	seedCmd.Flags().BoolVar(&seedTruncate, "truncate", false, "Clear every table before seeding")
	seedCmd.Flags().StringVar(&seedSchema, "schema", "", "Apply this DDL script (e.g. db/schema/schema.sql) before seeding")
	seedCmd.Flags().BoolVarP(&seedForce, "force", "f", false, "Skip the truncate confirmation")
}
