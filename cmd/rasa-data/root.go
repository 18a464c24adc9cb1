package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aryaman4/rasa/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "rasa-data",
	Short: "rasa-data inspects and serves a bot's training data",
	Long: `rasa-data assembles the configured training-data importers and exposes
the merged view of domain, stories, configuration and NLU examples.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "config.yml", "Training configuration file")
	rootCmd.PersistentFlags().String("domain", "", "Domain definition file")
	rootCmd.PersistentFlags().StringSlice("data", nil, "Training data files, directories or glob patterns")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// newLogger builds the command logger honoring the --debug flag.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

// importerPaths reads the shared path flags.
func importerPaths(cmd *cobra.Command) (configPath, domainPath string, dataPaths []string) {
	configPath, _ = cmd.Flags().GetString("config")
	domainPath, _ = cmd.Flags().GetString("domain")
	dataPaths, _ = cmd.Flags().GetStringSlice("data")
	return configPath, domainPath, dataPaths
}
