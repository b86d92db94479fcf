// Package main is the entry point for the One Million server, console game
// and client commands
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/onemillion/cmd/server/client"
	"github.com/KirkDiggler/onemillion/internal/config"
)

var (
	configPath string
	flagConfig = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "onemillion",
	Short: "One Million boss battle",
	Long:  `One Million is a turn based battle: a party of four against a boss with one million hit points.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	for _, cmd := range []*cobra.Command{serverCmd, playCmd, tuiCmd} {
		cmd.Flags().StringVar(&configPath, config.FlagConfig, "", "path to a YAML config file")
		flagConfig.RegisterFlags(cmd.Flags())
	}

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(client.ClientCmd)
}

// loadConfig reads the config file, applies the flags the user set and
// installs the default logger
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg.Merge(cmd.Flags(), flagConfig)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))
	return cfg, nil
}
