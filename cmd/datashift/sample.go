// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/datashift/internal/convert"
	"github.com/pdiddy/datashift/pkg/types"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print the built-in sample records in a format and version",
	Long: `Sample renders the fixed two-record sample set in the requested format and
schema version. The output is stable and feeds straight back into convert.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		ver, _ := cmd.Flags().GetString("version")
		out, _ := cmd.Flags().GetString("out")

		if format == "" {
			format = string(cfg.Convert.OutputFormat)
		}
		if ver == "" {
			ver = string(cfg.Convert.OutputVersion)
		}

		text, err := convert.Sample(types.Format(format), types.Version(ver))
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), out, text)
	},
}

func init() {
	sampleCmd.Flags().String("format", "", "output format: json, csv, ndjson, keyvalue")
	sampleCmd.Flags().String("version", "", "schema version: v1, v2, v3")
	sampleCmd.Flags().StringP("out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(sampleCmd)
}
