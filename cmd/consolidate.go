package cmd

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/hotelgen/internal/consolidate"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	consolidateSkipDirs  []string
	consolidateSkipFiles []string
	consolidateVerbose   bool
)

var consolidateCmd = &cobra.Command{
	Use:   "consolidate [dir]",
	Short: "Bundle a directory tree into one Markdown file",
	Long: `Walk dir (default: current directory) and write every file into a single
Markdown document, one fenced block per file headed by its relative path.
Hidden entries are skipped along with consolidate.skip_dirs and
consolidate.skip_files from the config; --skip-dir and --skip-file add to them.
Patterns support doublestar globs such as "**/*.sql".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]string{"consolidate.output": "output"})
		if err != nil {
			return err
		}

		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		opts := consolidate.Options{
			Root:      root,
			Output:    cfg.Consolidate.Output,
			SkipDirs:  append(append([]string{}, cfg.Consolidate.SkipDirs...), consolidateSkipDirs...),
			SkipFiles: append(append([]string{}, cfg.Consolidate.SkipFiles...), consolidateSkipFiles...),
		}

		color.Cyan("📂 Scanning %s", root)
		result, err := consolidate.Run(opts)
		if err != nil {
			return fmt.Errorf("consolidation failed: %w", err)
		}

		if consolidateVerbose {
			for _, f := range result.Files {
				fmt.Printf("   + %s\n", f)
			}
			for _, f := range result.Skipped {
				color.Yellow("   - %s", f)
			}
		}

		if len(result.Files) == 0 {
			color.Yellow("⚠️  No files found under %s (after skips)", root)
		}
		color.Green("✅ Added %d files to %s", len(result.Files), opts.Output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(consolidateCmd)

	consolidateCmd.Flags().StringP("output", "o", "", "Markdown output file")
	consolidateCmd.Flags().StringSliceVar(&consolidateSkipDirs, "skip-dir", nil, "Extra directory name or glob to skip")
	consolidateCmd.Flags().StringSliceVar(&consolidateSkipFiles, "skip-file", nil, "Extra file name or glob to skip")
	consolidateCmd.Flags().BoolVar(&consolidateVerbose, "verbose", false, "List added and skipped files")
}
