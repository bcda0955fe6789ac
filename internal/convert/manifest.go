// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/datashift/internal/codec"
	"github.com/pdiddy/datashift/pkg/types"
)

// Manifest is the on-disk description of a batch run. Job fields left
// empty take their value from Defaults.
type Manifest struct {
	Defaults ManifestDefaults `yaml:"defaults"`
	Jobs     []Job            `yaml:"jobs"`
}

// ManifestDefaults holds values applied to every job that leaves them unset.
type ManifestDefaults struct {
	InputFormat   types.Format  `yaml:"input_format,omitempty"`
	OutputFormat  types.Format  `yaml:"output_format,omitempty"`
	InputVersion  types.Version `yaml:"input_version,omitempty"`
	OutputVersion types.Version `yaml:"output_version,omitempty"`

	// OutputDir receives outputs of jobs that name no output file.
	OutputDir string `yaml:"output_dir,omitempty"`
}

// ReadManifest loads a manifest from a YAML file.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// Resolve applies defaults and makes relative paths relative to baseDir.
// A format a job leaves unset comes from its file extension when that is
// recognized, else from Defaults. A job without an input is an error.
func (m *Manifest) Resolve(baseDir string) ([]Job, error) {
	d := m.Defaults
	jobs := make([]Job, 0, len(m.Jobs))
	for i, j := range m.Jobs {
		if j.Input == "" {
			return nil, fmt.Errorf("job %d: missing input", i+1)
		}
		j.InputFormat = firstNonEmpty(j.InputFormat, extensionFormat(j.Input), d.InputFormat)
		j.OutputFormat = firstNonEmpty(j.OutputFormat, extensionFormat(j.Output), d.OutputFormat)
		j.InputVersion = firstNonEmpty(j.InputVersion, d.InputVersion, types.V1)
		j.OutputVersion = firstNonEmpty(j.OutputVersion, d.OutputVersion, j.InputVersion)

		if j.Output == "" {
			if d.OutputDir == "" || j.OutputFormat == "" {
				return nil, fmt.Errorf("job %d: missing output (set output or defaults.output_dir and an output format)", i+1)
			}
			base := strings.TrimSuffix(filepath.Base(j.Input), filepath.Ext(j.Input))
			j.Output = filepath.Join(d.OutputDir, base+codec.Extension(j.OutputFormat))
		}

		j.Input = resolvePath(baseDir, j.Input)
		j.Output = resolvePath(baseDir, j.Output)
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func firstNonEmpty[T ~string](vals ...T) T {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func extensionFormat(path string) types.Format {
	if path == "" {
		return ""
	}
	f, _ := codec.FormatForExtension(filepath.Ext(path))
	return f
}

func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	return filepath.Join(baseDir, p)
}

// Report is the YAML summary written after a batch run.
type Report struct {
	Summary   BatchResult   `yaml:"summary"`
	Jobs      []ReportEntry `yaml:"jobs"`
	Timestamp time.Time     `yaml:"timestamp"`
}

// ReportEntry is one job line of a Report.
type ReportEntry struct {
	Input   string    `yaml:"input"`
	Output  string    `yaml:"output"`
	Status  JobStatus `yaml:"status"`
	Records int       `yaml:"records,omitempty"`
	Source  string    `yaml:"source,omitempty"`
	Target  string    `yaml:"target,omitempty"`
	Error   string    `yaml:"error,omitempty"`
}

// WriteReport saves the batch outcome to a YAML file.
func WriteReport(path string, result BatchResult, outcomes []Outcome) error {
	r := Report{Summary: result, Timestamp: time.Now().UTC()}
	for _, o := range outcomes {
		e := ReportEntry{
			Input:   o.Job.Input,
			Output:  o.Job.Output,
			Status:  o.Status,
			Records: o.Stats.Records,
			Source:  o.Stats.Source,
			Target:  o.Stats.Target,
		}
		if o.Err != nil {
			e.Error = o.Err.Error()
		}
		r.Jobs = append(r.Jobs, e)
	}

	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
