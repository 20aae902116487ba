// Package cmd implements the command-line interface for gosabda.
// It provides the root command and subcommands for serving and fetching
// the SABDA.org daily devotional.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joho/godotenv"
	"github.com/jonesrussell/gosabda/cmd/httpd"
	"github.com/jonesrussell/gosabda/cmd/scrape"
	"github.com/jonesrussell/gosabda/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	// rootCmd represents the root command for the gosabda CLI.
	rootCmd = &cobra.Command{
		Use:   "gosabda",
		Short: "SABDA.org daily devotional API",
		Long:  `Fetches the Santapan Harian daily devotional from SABDA.org and serves it as JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags early so --config and --debug apply before Viper reads
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ./config/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gosabda version %s\n", viper.GetString("app.version"))
		},
	})

	// Add subcommands
	rootCmd.AddCommand(httpd.Command())
	rootCmd.AddCommand(scrape.Command())
}

// initConfig initializes Viper and applies command-line overrides.
func initConfig() error {
	if err := config.InitializeViper(cfgFile); err != nil {
		return fmt.Errorf("failed to initialize viper: %w", err)
	}

	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}

	// The flag wins over config and environment
	if Debug || viper.GetBool("app.debug") {
		viper.Set("logging.level", "debug")
		Debug = true
	}

	return nil
}
