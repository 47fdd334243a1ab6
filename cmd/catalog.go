package cmd

import (
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/hotelgen/internal/catalog"
	"github.com/Lumos-Labs-HQ/hotelgen/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the static reference data and table order",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		heading := color.New(color.FgCyan, color.Bold)

		heading.Println("📋 Jobs (job_id → title)")
		for i, title := range catalog.JobTitles {
			fmt.Printf("   %2d  %s\n", i+1, title)
		}

		fmt.Println()
		heading.Println("🏢 Departments (per hotel)")
		for _, name := range catalog.DepartmentNames {
			fmt.Printf("   • %s\n", name)
		}

		fmt.Println()
		heading.Println("🛎️  Services (per hotel)")
		for _, svc := range catalog.Services {
			fmt.Printf("   • %-24s %s\n", svc.Name, svc.Type)
		}

		fmt.Println()
		heading.Println("🛏️  Room types")
		for _, roomType := range catalog.RoomTypes {
			beds, fixed := catalog.BedCount(roomType)
			if fixed {
				fmt.Printf("   • %-8s %d bed(s)\n", roomType, beds)
			} else {
				fmt.Printf("   • %-8s 2-4 beds\n", roomType)
			}
		}

		fmt.Println()
		heading.Println("💳 Payment methods")
		fmt.Printf("   %s\n", strings.Join(catalog.PaymentMethods, ", "))

		fmt.Println()
		heading.Println("🔗 Insertion order")
		for i, e := range seeder.Entities {
			deps := "-"
			if len(e.Dependencies) > 0 {
				deps = strings.Join(e.Dependencies, ", ")
			}
			fmt.Printf("   %2d  %-14s ← %s\n", i+1, e.Table, deps)
		}
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
