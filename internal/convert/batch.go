// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/datashift/internal/codec"
	"github.com/pdiddy/datashift/pkg/types"
)

// Job converts one input file into one output file. Empty formats are
// detected from the file extensions.
type Job struct {
	Input         string        `json:"input" yaml:"input"`
	Output        string        `json:"output" yaml:"output"`
	InputFormat   types.Format  `json:"input_format,omitempty" yaml:"input_format,omitempty"`
	OutputFormat  types.Format  `json:"output_format,omitempty" yaml:"output_format,omitempty"`
	InputVersion  types.Version `json:"input_version,omitempty" yaml:"input_version,omitempty"`
	OutputVersion types.Version `json:"output_version,omitempty" yaml:"output_version,omitempty"`
}

// JobStatus is the outcome of one job.
type JobStatus string

const (
	JobConverted JobStatus = "converted"
	JobSkipped   JobStatus = "skipped"
	JobFailed    JobStatus = "failed"
)

// Outcome records what happened to a job.
type Outcome struct {
	Job    Job
	Status JobStatus
	Stats  Stats
	Err    error
}

// BatchOptions controls a batch run.
type BatchOptions struct {
	// Workers is the number of jobs run in parallel (minimum 1).
	Workers int
	// Overwrite replaces existing outputs instead of skipping them.
	Overwrite bool
}

// BatchResult holds the outcome counts of a batch run.
type BatchResult struct {
	Converted int `yaml:"converted"`
	Skipped   int `yaml:"skipped"`
	Failed    int `yaml:"failed"`
}

// Total returns the number of jobs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any job failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// withDetectedFormats fills empty formats from the file extensions.
func (j Job) withDetectedFormats() Job {
	if j.InputFormat == "" {
		j.InputFormat, _ = codec.FormatForExtension(filepath.Ext(j.Input))
	}
	if j.OutputFormat == "" {
		j.OutputFormat, _ = codec.FormatForExtension(filepath.Ext(j.Output))
	}
	return j
}

func (j Job) options(text string) Options {
	return Options{
		InputText:     text,
		InputFormat:   j.InputFormat,
		OutputFormat:  j.OutputFormat,
		InputVersion:  j.InputVersion,
		OutputVersion: j.OutputVersion,
	}
}

// ConvertFile runs a single job. An existing output is skipped unless
// overwrite is set.
func (c *Converter) ConvertFile(job Job, overwrite bool) Outcome {
	job = job.withDetectedFormats()
	out := Outcome{Job: job}

	if !overwrite {
		if _, err := os.Stat(job.Output); err == nil {
			out.Status = JobSkipped
			return out
		}
	}

	data, err := os.ReadFile(job.Input)
	if err != nil {
		out.Status, out.Err = JobFailed, fmt.Errorf("reading %s: %w", job.Input, err)
		return out
	}

	res, err := c.Convert(job.options(string(data)))
	if err != nil {
		out.Status, out.Err = JobFailed, err
		return out
	}

	if err := os.MkdirAll(filepath.Dir(job.Output), 0o755); err != nil {
		out.Status, out.Err = JobFailed, fmt.Errorf("creating %s: %w", filepath.Dir(job.Output), err)
		return out
	}
	if err := os.WriteFile(job.Output, []byte(res.OutputText), 0o644); err != nil {
		out.Status, out.Err = JobFailed, fmt.Errorf("writing %s: %w", job.Output, err)
		return out
	}

	out.Status, out.Stats = JobConverted, res.Stats
	return out
}

// RunBatch converts jobs with up to opts.Workers in parallel. A failing
// job does not stop the others; jobs not yet started when ctx is done fail
// with the context error. Status lines are written to w in job order,
// followed by a summary.
func (c *Converter) RunBatch(ctx context.Context, jobs []Job, opts BatchOptions, w io.Writer) (BatchResult, []Outcome) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	outcomes := make([]Outcome, len(jobs))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i] = Outcome{Job: job, Status: JobFailed, Err: err}
				return nil
			}
			outcomes[i] = c.ConvertFile(job, opts.Overwrite)
			return nil
		})
	}
	_ = g.Wait()

	var result BatchResult
	for _, o := range outcomes {
		switch o.Status {
		case JobConverted:
			result.Converted++
			fmt.Fprintf(w, "converted: %s -> %s (%d records)\n", o.Job.Input, o.Job.Output, o.Stats.Records)
		case JobSkipped:
			result.Skipped++
			fmt.Fprintf(w, "skipped: %s (already exists)\n", o.Job.Output)
		case JobFailed:
			result.Failed++
			fmt.Fprintf(w, "failed:  %s (%v)\n", o.Job.Input, o.Err)
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, outcomes
}

// RunBatch runs jobs with the default registry.
func RunBatch(ctx context.Context, jobs []Job, opts BatchOptions, w io.Writer) (BatchResult, []Outcome) {
	return defaultConverter.RunBatch(ctx, jobs, opts, w)
}

// JobsFromDir builds a job for every file in inDir with a recognized
// extension. Outputs go to outDir with the target format's extension.
func JobsFromDir(inDir, outDir string, inputVersion types.Version, target types.Endpoint) ([]Job, error) {
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", inDir, err)
	}

	var jobs []Job
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		format, ok := codec.FormatForExtension(filepath.Ext(name))
		if !ok {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		jobs = append(jobs, Job{
			Input:         filepath.Join(inDir, name),
			Output:        filepath.Join(outDir, base+codec.Extension(target.Format)),
			InputFormat:   format,
			OutputFormat:  target.Format,
			InputVersion:  inputVersion,
			OutputVersion: target.Version,
		})
	}
	return jobs, nil
}
