package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lumos-Labs-HQ/hotelgen/internal/config"
	"github.com/Lumos-Labs-HQ/hotelgen/template"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	initDialect string
	initForce   bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file, schema DDL and .env for a new project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbType, err := template.ValidateDatabaseType(initDialect)
		if err != nil {
			return err
		}
		return initializeProject(dbType, initForce)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initDialect, "dialect", "d", "oracle", "Database type (oracle, postgresql, mysql, sqlite)")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing config and schema files")
}

func initializeProject(dbType template.DatabaseType, force bool) error {
	tmpl := template.NewProjectTemplate(dbType)

	directories := tmpl.GetDirectoryStructure()
	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	schemaPath := filepath.Join("db", "schema", "schema.sql")
	files := map[string]string{
		config.FileName: tmpl.GetConfig(),
		schemaPath:      tmpl.GetSchema(),
	}

	var skipped []string
	for filePath, content := range files {
		if _, err := os.Stat(filePath); err == nil && !force {
			skipped = append(skipped, filePath)
			continue
		}
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to create file %s: %w", filePath, err)
		}
	}

	if err := handleEnvFile(tmpl.GetEnvTemplate()); err != nil {
		return fmt.Errorf("failed to handle .env file: %w", err)
	}

	color.Green("✅ Initialized hotelgen project for %s", dbType)
	fmt.Println()
	fmt.Println("📁 Project structure created:")
	for _, dir := range directories {
		fmt.Printf("   %s/\n", dir)
	}
	for _, f := range skipped {
		color.Yellow("ℹ️  Skipped %s (already exists, use --force to overwrite)", f)
	}

	fmt.Println()
	fmt.Printf("🚀 Next steps:\n")
	fmt.Printf("   hotelgen seed --schema db/schema/schema.sql  # create tables and load data\n")
	fmt.Printf("   hotelgen generate --manifest run.yaml   # write the insert script\n")
	fmt.Printf("   hotelgen seed --truncate                # or load the database directly\n")
	return nil
}

// handleEnvFile creates .env or appends DATABASE_URL, keeping existing values.
func handleEnvFile(defaultEnvContent string) error {
	envPath := ".env"

	existingContent, err := os.ReadFile(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return os.WriteFile(envPath, []byte(defaultEnvContent), 0644)
		}
		return err
	}

	existingStr := string(existingContent)
	if strings.Contains(existingStr, "DATABASE_URL") {
		return nil
	}

	if len(existingStr) > 0 && !strings.HasSuffix(existingStr, "\n") {
		existingStr += "\n"
	}
	existingStr += "\n# Added by hotelgen\n" + defaultEnvContent

	return os.WriteFile(envPath, []byte(existingStr), 0644)
}
