// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/datashift/internal/convert"
	"github.com/pdiddy/datashift/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert one input between formats and schema versions",
	Long: `Convert parses the input (a file, or stdin when no file or "-" is given)
in the source format, maps every record from the source schema version to the
target version through the canonical model, and writes the result in the
target format.

Endpoints are written format/version, for example --from csv/v1 --to json/v3.
A bare format keeps the configured default version.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("from", "", "source endpoint format/version (default from config, json/v1)")
	convertCmd.Flags().String("to", "", "target endpoint format/version (default from config, json/v1)")
	convertCmd.Flags().StringP("out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	out, _ := cmd.Flags().GetString("out")

	src, err := types.ParseEndpoint(from, cfg.Convert.Source())
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	dst, err := types.ParseEndpoint(to, cfg.Convert.Target())
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	input, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	res, err := convert.Convert(convert.Options{
		InputText:     input,
		InputFormat:   src.Format,
		OutputFormat:  dst.Format,
		InputVersion:  src.Version,
		OutputVersion: dst.Version,
	})
	if err != nil {
		return err
	}

	if err := writeOutput(cmd.OutOrStdout(), out, res.OutputText); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"records": res.Stats.Records,
		"source":  res.Stats.Source,
		"target":  res.Stats.Target,
	}).Info("converted")
	return nil
}

// readInput returns the named file's contents, or stdin when no file or "-"
// is given.
func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

// writeOutput writes text to path exactly, or to stdout with a trailing
// newline when path is empty.
func writeOutput(stdout io.Writer, path, text string) error {
	if path == "" {
		if text == "" {
			return nil
		}
		_, err := fmt.Fprintln(stdout, text)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
