// Package commands implements the CLI commands for the taskdeck server.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acolombo/taskdeck/internal/logger"
	"github.com/acolombo/taskdeck/pkg/config"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "TaskDeck - task management service",
	Long: `TaskDeck is a task management service with JWT authentication and
per-user resource ownership. It serves a REST API backed by SQLite or
PostgreSQL.

Use "taskdeck [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/taskdeck/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(accountCmd)
}

// GetConfigFile returns the config file path from the global flag.
func GetConfigFile() string {
	return cfgFile
}

// PrintErr prints an error message to stderr.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}

// loadConfig loads configuration and initializes the structured logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, nil
}
