// Package config loads the generator configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"observable-generator/internal/analyze"
	"observable-generator/internal/gen"
	"observable-generator/internal/plan"
)

// FileName is the configuration file looked up by the CLI.
const FileName = ".observable-generator.yaml"

// DefaultRuntimePackage is the import path of the runtime package.
const DefaultRuntimePackage = "observable-generator/observe"

// CurrentVersion is the configuration format version.
const CurrentVersion = "1"

// Config is the generator configuration.
type Config struct {
	Version             string   `yaml:"version"`
	RuntimePackage      string   `yaml:"runtime_package,omitempty"`
	FileSuffix          string   `yaml:"file_suffix,omitempty"`
	RequirePrefix       *bool    `yaml:"require_prefix,omitempty"`
	ReportSkippedFields *bool    `yaml:"report_skipped_fields,omitempty"`
	Workers             int      `yaml:"workers,omitempty"`
	WarningsAsErrors    bool     `yaml:"warnings_as_errors,omitempty"`
	BuildTags           []string `yaml:"build_tags,omitempty"`
	Tests               bool     `yaml:"tests,omitempty"`
	DebugDir            string   `yaml:"debug_dir,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var c Config
	applyDefaults(&c)

	return &c
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var c Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Apply defaults and normalize
	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = CurrentVersion
	}
	if c.RuntimePackage == "" {
		c.RuntimePackage = DefaultRuntimePackage
	}
	if c.FileSuffix == "" {
		c.FileSuffix = gen.DefaultSuffix
	}
	if c.RequirePrefix == nil {
		c.RequirePrefix = ptr(true)
	}
	if c.ReportSkippedFields == nil {
		c.ReportSkippedFields = ptr(true)
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []error

	if c.Version != CurrentVersion {
		errs = append(errs, fmt.Errorf("unsupported config version %q", c.Version))
	}
	if strings.TrimSpace(c.RuntimePackage) == "" {
		errs = append(errs, errors.New("runtime_package must not be empty"))
	}
	if !strings.HasSuffix(c.FileSuffix, ".go") || strings.HasSuffix(c.FileSuffix, "_test.go") {
		errs = append(errs, fmt.Errorf("file_suffix %q must end in .go and not in _test.go", c.FileSuffix))
	}
	if strings.ContainsAny(c.FileSuffix, `/\`) {
		errs = append(errs, fmt.Errorf("file_suffix %q must not contain a path separator", c.FileSuffix))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteFile writes a Config to the given path.
func WriteFile(c *Config, path string) error {
	data, err := Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// Find looks for FileName in dir and its parents. It returns "" when there is
// none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoaderConfig returns the loader settings for packages resolved from dir.
func (c *Config) LoaderConfig(dir string) analyze.LoaderConfig {
	return analyze.LoaderConfig{
		Dir:             dir,
		RuntimePath:     c.RuntimePackage,
		GeneratedSuffix: c.FileSuffix,
		BuildTags:       c.BuildTags,
		Tests:           c.Tests,
	}
}

// PlanConfig returns the planner settings.
func (c *Config) PlanConfig() plan.Config {
	pc := plan.DefaultConfig()
	pc.Workers = c.Workers
	pc.WarningsAsErrors = c.WarningsAsErrors

	if c.RequirePrefix != nil {
		pc.Naming.RequirePrefix = *c.RequirePrefix
	}
	if c.ReportSkippedFields != nil {
		pc.ReportSkipped = *c.ReportSkippedFields
	}

	return pc
}

// GeneratorConfig returns the generator settings.
func (c *Config) GeneratorConfig() gen.GeneratorConfig {
	gc := gen.DefaultGeneratorConfig()
	gc.Workers = c.Workers
	gc.DebugDir = c.DebugDir

	if c.FileSuffix != "" {
		gc.Suffix = c.FileSuffix
	}

	return gc
}

func ptr[T any](v T) *T {
	return &v
}
