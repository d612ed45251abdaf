// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholar-directory CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-directory/internal/secrets"
	"github.com/pdiddy/scholar-directory/pkg/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// log is the pipeline logger, configured in PersistentPreRunE once the
// logging flags have been parsed.
var log zerolog.Logger

// secretDefault returns fallback when set, otherwise the loaded secret
// value for key, otherwise "".
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the scholar-directory CLI.
var rootCmd = &cobra.Command{
	Use:   "scholar-directory",
	Short: "Maintain the canonical researcher directory",
	Long: `scholar-directory reconciles the canonical researcher directory from two
inputs: self-submitted profile forms exported from a spreadsheet, and a
bibliometric author lookup keyed by Google Scholar ID.

Each pipeline stage is a subcommand: submissions classifies exported form
rows into add/update candidates, merge folds candidates into the directory,
and enrich refreshes bibliometric fields from the external source. Stages
run sequentially against the same store, never concurrently.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		format, _ := cmd.Flags().GetString("log-format")
		log = logging.New(level, format)

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scholar-directory.yaml or ~/.config/scholar-directory/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: json (default: console on terminals)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholar-directory")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholar-directory"))
		}
	}

	viper.SetEnvPrefix("SCHOLAR_DIRECTORY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
