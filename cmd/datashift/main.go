// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the datashift CLI.
// Implements: CLI surface for convert, sample, batch, formats, serve, version.
// See DESIGN.md § cmd/datashift.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	dslog "github.com/pdiddy/datashift/internal/log"
	"github.com/pdiddy/datashift/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg holds settings resolved from datashift.yaml, the environment and defaults.
	cfg = types.DefaultConfig()

	logger = logrus.New()
)

// rootCmd is the base command for the datashift CLI.
var rootCmd = &cobra.Command{
	Use:   "datashift",
	Short: "Convert structured records between formats and schema versions",
	Long: `datashift converts record data between text formats (json, csv, ndjson,
keyvalue) and schema versions (v1, v2, v3). Every record passes through one
canonical model, so any format/version pair converts to any other.

Single inputs go through convert; directories and YAML manifests go through
batch; serve exposes the same operations over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := dslog.InitLogs(cfg.Log.Level)
		if err != nil {
			return err
		}
		logger = l
		if used := viper.ConfigFileUsed(); used != "" {
			logger.WithField("file", used).Debug("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./datashift.yaml or ~/.config/datashift/datashift.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	configure(viper.GetViper(), cfgFile)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
