// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/datashift/internal/convert"
	"github.com/pdiddy/datashift/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert many files from a manifest or a directory",
	Long: `Batch converts a set of files in parallel. Jobs come from a YAML manifest
(--manifest) or from every recognized file in a directory (--in-dir with
--out-dir). Formats are detected from file extensions when not given.
Existing outputs are skipped unless --overwrite is set. The command exits
non-zero when any job fails.`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("manifest", "", "YAML job manifest")
	batchCmd.Flags().String("in-dir", "", "directory of input files")
	batchCmd.Flags().String("out-dir", "", "directory for output files (with --in-dir)")
	batchCmd.Flags().String("from-version", "", "schema version of the inputs in --in-dir (default from config)")
	batchCmd.Flags().String("to", "", "target endpoint format/version for --in-dir (default from config)")
	batchCmd.Flags().Int("workers", 0, "parallel conversions (default from config, 4)")
	batchCmd.Flags().Bool("overwrite", false, "replace existing output files")
	batchCmd.Flags().String("report", "", "write a YAML run report to this file")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	jobs, err := batchJobs(cmd)
	if err != nil {
		return err
	}

	opts := convert.BatchOptions{Workers: cfg.Batch.Workers, Overwrite: cfg.Batch.Overwrite}
	if n, _ := cmd.Flags().GetInt("workers"); n > 0 {
		opts.Workers = n
	}
	if cmd.Flags().Changed("overwrite") {
		opts.Overwrite, _ = cmd.Flags().GetBool("overwrite")
	}

	logger.WithFields(logrus.Fields{"jobs": len(jobs), "workers": opts.Workers}).Debug("starting batch")
	result, outcomes := convert.RunBatch(cmd.Context(), jobs, opts, cmd.OutOrStdout())

	if report, _ := cmd.Flags().GetString("report"); report != "" {
		if err := convert.WriteReport(report, result, outcomes); err != nil {
			return err
		}
		logger.WithField("file", report).Info("wrote batch report")
	}

	if result.HasFailures() {
		return fmt.Errorf("%d job(s) failed conversion", result.Failed)
	}
	return nil
}

// batchJobs builds the job list from --manifest or --in-dir.
func batchJobs(cmd *cobra.Command) ([]convert.Job, error) {
	manifest, _ := cmd.Flags().GetString("manifest")
	inDir, _ := cmd.Flags().GetString("in-dir")

	switch {
	case manifest != "" && inDir != "":
		return nil, fmt.Errorf("use either --manifest or --in-dir, not both")
	case manifest != "":
		m, err := convert.ReadManifest(manifest)
		if err != nil {
			return nil, err
		}
		return m.Resolve(filepath.Dir(manifest))
	case inDir != "":
		outDir, _ := cmd.Flags().GetString("out-dir")
		if outDir == "" {
			return nil, fmt.Errorf("--out-dir is required with --in-dir")
		}
		to, _ := cmd.Flags().GetString("to")
		target, err := types.ParseEndpoint(to, cfg.Convert.Target())
		if err != nil {
			return nil, fmt.Errorf("--to: %w", err)
		}
		fromVersion, _ := cmd.Flags().GetString("from-version")
		if fromVersion == "" {
			fromVersion = string(cfg.Convert.InputVersion)
		}
		return convert.JobsFromDir(inDir, outDir, types.Version(fromVersion), target)
	default:
		return nil, fmt.Errorf("provide --manifest or --in-dir")
	}
}
