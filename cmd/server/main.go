package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/propertypinoy/website/internal/config"
	"github.com/propertypinoy/website/internal/logging"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "propertypinoy",
	Short:         "Property Pinoy website server and admin tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup()
		return config.Init(configFile)
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "optional config file (yaml, json, toml or env)")
	rootCmd.AddCommand(serveCmd, migrateCmd, createUserCmd, userTypesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
