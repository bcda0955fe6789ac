package types

// ConvertConfig holds the default endpoints used when a conversion request
// leaves a format or version unset.
type ConvertConfig struct {
	// InputFormat is the default input format (default "json").
	InputFormat Format `json:"input_format" yaml:"input_format" mapstructure:"input_format"`

	// OutputFormat is the default output format (default "json").
	OutputFormat Format `json:"output_format" yaml:"output_format" mapstructure:"output_format"`

	// InputVersion is the default input schema version (default "v1").
	InputVersion Version `json:"input_version" yaml:"input_version" mapstructure:"input_version"`

	// OutputVersion is the default output schema version (default "v1").
	OutputVersion Version `json:"output_version" yaml:"output_version" mapstructure:"output_version"`
}

// Source returns the default input endpoint.
func (c ConvertConfig) Source() Endpoint {
	return Endpoint{Format: c.InputFormat, Version: c.InputVersion}
}

// Target returns the default output endpoint.
func (c ConvertConfig) Target() Endpoint {
	return Endpoint{Format: c.OutputFormat, Version: c.OutputVersion}
}

// BatchConfig holds settings for batch conversion of many files.
type BatchConfig struct {
	// Workers is the number of files converted in parallel (default 4).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// Overwrite replaces existing output files instead of skipping them.
	Overwrite bool `json:"overwrite" yaml:"overwrite" mapstructure:"overwrite"`
}

// ServeConfig holds settings for the HTTP server.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// MaxBodyBytes caps request bodies (default 10 MiB).
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a logrus level name (default "info").
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// Config groups all settings loaded from datashift.yaml and the environment.
type Config struct {
	Convert ConvertConfig `json:"convert" yaml:"convert" mapstructure:"convert"`
	Batch   BatchConfig   `json:"batch" yaml:"batch" mapstructure:"batch"`
	Serve   ServeConfig   `json:"serve" yaml:"serve" mapstructure:"serve"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Convert: ConvertConfig{
			InputFormat:   FormatJSON,
			OutputFormat:  FormatJSON,
			InputVersion:  V1,
			OutputVersion: V1,
		},
		Batch: BatchConfig{Workers: 4},
		Serve: ServeConfig{Addr: ":8080", MaxBodyBytes: 10 << 20},
		Log:   LogConfig{Level: "info"},
	}
}
