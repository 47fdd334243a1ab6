package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lumos-Labs-HQ/hotelgen/internal/config"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.3.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════════════╗",
		"║   ██╗  ██╗ ██████╗ ████████╗███████╗██╗                      ║",
		"║   ██║  ██║██╔═══██╗╚══██╔══╝██╔════╝██║                      ║",
		"║   ███████║██║   ██║   ██║   █████╗  ██║         gen          ║",
		"║   ██╔══██║██║   ██║   ██║   ██╔══╝  ██║                      ║",
		"║   ██║  ██║╚██████╔╝   ██║   ███████╗███████╗                 ║",
		"║   ╚═╝  ╚═╝ ╚═════╝    ╚═╝   ╚══════╝╚══════╝                 ║",
		"║                                                              ║",
		"║      🏨 Synthetic hotel data for Oracle • Postgres • MySQL   ║",
		"╚══════════════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                        ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "hotelgen",
	Short: "Generate referentially consistent synthetic data for a hotel schema",
	Long: `
hotelgen produces insert scripts (or loads a live database) for a ten-table
hotel-management schema: hotels, guests, jobs, departments, rooms, services,
employees, bookings, booking details and guest services.

Every foreign key points at an existing row, emails are unique across guests,
employees and hotels, and composite keys never repeat.

Output dialects:
- Oracle (TO_DATE literals, PK trigger toggles)
- PostgreSQL
- MySQL
- SQLite`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("hotelgen version %s\n", Version)
			return
		}

		showBanner()
		fmt.Println()
		cmd.Help()
	},
}

// Execute runs the CLI; SIGINT and SIGTERM cancel the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("hotelgen.config")
	}

	viper.SetEnvPrefix("HOTELGEN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			color.Yellow("⚠️  Could not read config: %v", err)
		}
	}
}

// loadConfig binds flags (config key -> flag name) over the config file and
// validates the result. Flags are bound per command since several share a key.
func loadConfig(cmd *cobra.Command, bindings map[string]string) (*config.Config, error) {
	for key, name := range bindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			return nil, fmt.Errorf("unknown flag --%s", name)
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
