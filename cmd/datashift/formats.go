// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/pdiddy/datashift/internal/codec"
	"github.com/pdiddy/datashift/pkg/types"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported formats and schema versions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "Formats:")
		for _, f := range codec.Default().Formats() {
			fmt.Fprintf(w, "  %-9s %s\n", f, codec.Extension(f))
		}
		versions := lo.Map(types.Versions, func(v types.Version, _ int) string { return string(v) })
		fmt.Fprintf(w, "Versions: %s\n", strings.Join(versions, ", "))
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
