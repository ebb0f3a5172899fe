// Package main is the entry point for the booster CLI: local pack generation,
// simulations, store seeding and the gRPC and HTTP servers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/booster-sim/cmd/booster/client"
	"github.com/KirkDiggler/booster-sim/internal/config"
)

var (
	envFiles      []string
	storeOverride string
	logLevel      string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "booster",
	Short: "Booster pack generator",
	Long:  `Generate 18-card booster packs from a card store, estimate bonus odds and serve packs over gRPC and HTTP.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// the gRPC client talks to a remote server and needs no local config
		if cmd.HasParent() && cmd.Parent() == client.ClientCmd {
			return nil
		}
		return loadConfig()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, ".env files to load before reading the environment (default .env)")
	rootCmd.PersistentFlags().StringVar(&storeOverride, "store", "", "card store: redis or sqlite (overrides BOOSTER_STORE)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides BOOSTER_LOG_LEVEL)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(scrubCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(client.ClientCmd)
}

func loadConfig() error {
	loaded, err := config.Load(envFiles...)
	if err != nil {
		return err
	}
	if storeOverride != "" {
		loaded.Store = storeOverride
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded
	return nil
}
