package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/driftware/ledgermcp/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "ledgermcp",
	Short: "ledgermcp serves XRP Ledger transaction tools to AI agents",
	Long:  `ledgermcp packages XRP Ledger transaction submission as MCP tools: payments, trust lines, account settings, offers, clawbacks, and a full token issuance workflow.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the networks YAML file (built-in catalog when empty)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
}

// newLogger builds the application logger from the --log-level flag.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return logging.New(l)
}
