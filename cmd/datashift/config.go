// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/datashift/pkg/types"
)

const envPrefix = "DATASHIFT"

// configure points v at the config file and the environment and registers
// the built-in defaults.
func configure(v *viper.Viper, cfgFile string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("datashift")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "datashift"))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := types.DefaultConfig()
	v.SetDefault("convert.input_format", string(d.Convert.InputFormat))
	v.SetDefault("convert.output_format", string(d.Convert.OutputFormat))
	v.SetDefault("convert.input_version", string(d.Convert.InputVersion))
	v.SetDefault("convert.output_version", string(d.Convert.OutputVersion))
	v.SetDefault("batch.workers", d.Batch.Workers)
	v.SetDefault("batch.overwrite", d.Batch.Overwrite)
	v.SetDefault("serve.addr", d.Serve.Addr)
	v.SetDefault("serve.max_body_bytes", d.Serve.MaxBodyBytes)
	v.SetDefault("log.level", d.Log.Level)
}

// loadConfig reads the config file if one is found and decodes the merged
// settings. A missing default config file is not an error.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
