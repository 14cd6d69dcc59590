// Package cmd provides the CLI commands for focuswatch.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	serverURL  string
	jsonOutput bool
	localeFlag string
	plainMode  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "focuswatch",
	Short: "focuswatch - live focus tracking in your terminal",
	Long: `focuswatch shows where your attention is while a focus session runs,
and how your past sessions went, by polling a focus tracking service.

Run "focuswatch" with no arguments to open the dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runDashboard,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Focus service base URL (default: server.base_url from config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "Display language: en or ar")
	rootCmd.Flags().BoolVar(&plainMode, "plain", false, "Print updates line by line instead of the fullscreen dashboard")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("focuswatch\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(endCmd)
}
