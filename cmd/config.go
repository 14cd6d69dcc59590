package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xvierd/focuswatch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration in effect after the config file, FOCUSWATCH_*
environment variables and command-line flags are applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			data, err := json.MarshalIndent(app.config, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		printConfig(cmd.OutOrStdout(), app.configPath, app.config)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting in the config file",
	Example: `  focuswatch config set server.base_url http://192.168.1.20:5000
  focuswatch config set poll.interval 1s
  focuswatch config set notifications.sound true`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.Set(app.configPath, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s\n", args[0], args[1])
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the settable keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, k := range config.Keys() {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
}

func printConfig(w io.Writer, path string, cfg *config.Config) {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	timeout := "none"
	if cfg.Poll.RequestTimeout > 0 {
		timeout = cfg.Poll.RequestTimeout.String()
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Config file:     %s\n", path)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Server:          %s\n", cfg.Server.BaseURL)
	fmt.Fprintf(w, "  Poll interval:   %s\n", cfg.Poll.Interval)
	fmt.Fprintf(w, "  Request timeout: %s\n", timeout)
	fmt.Fprintf(w, "  Locale:          %s\n", cfg.Locale)
	fmt.Fprintf(w, "  Notifications:   %s (sound %s)\n", onOff(cfg.Notifications.Enabled), onOff(cfg.Notifications.Sound))
	fmt.Fprintf(w, "  Log:             %s (%s)\n", cfg.Log.File, cfg.Log.Level)
	fmt.Fprintf(w, "  Icons:           %s %s %s %s\n", cfg.Theme.IconCenter, cfg.Theme.IconLeft, cfg.Theme.IconRight, cfg.Theme.IconDefault)
	fmt.Fprintln(w)
	fmt.Fprintln(w, `  Change a value with "focuswatch config set <key> <value>".`)
}
