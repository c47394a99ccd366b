// Package config loads numgen settings from a YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phobologic/numgen/internal/order"
	"github.com/phobologic/numgen/internal/render"
)

const (
	// DefaultPath is the config file read when no --config flag is given.
	DefaultPath = ".numgen.yaml"

	// DefaultOutputBase names the output file when none is configured. The
	// target's extension is appended.
	DefaultOutputBase = "numerics"
)

const fileHeader = "# numgen settings. NUMGEN_* variables and command-line flags override them.\n"

// Config holds every setting the generator reads.
type Config struct {
	// Input is a YAML file or a directory of YAML files.
	Input string `yaml:"input"`

	// Output is the generated file. Empty means DefaultOutputBase plus the
	// target's extension.
	Output string `yaml:"output,omitempty"`

	// Target selects the rendered language (csharp, go).
	Target string `yaml:"target"`

	// Order selects how numeric values compare (lexical, numeric).
	Order string `yaml:"order"`

	// Package is the package clause for the go target.
	Package string `yaml:"package"`

	// Only keeps numerics whose name starts with one of these prefixes.
	Only []string `yaml:"only,omitempty"`

	// Normalize applies Unicode NFC to documentation text.
	Normalize bool `yaml:"normalize"`

	// Check parses the rendered output before writing it.
	Check bool `yaml:"check"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Input:   "numerics.yaml",
		Target:  "csharp",
		Order:   order.ByLexical,
		Package: "numerics",
		Check:   true,
	}
}

// Load loads configuration from a YAML file over the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes c to path as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(fileHeader), data...), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("NUMGEN_INPUT"); v != "" {
		c.Input = v
	}
	if v := os.Getenv("NUMGEN_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("NUMGEN_TARGET"); v != "" {
		c.Target = v
	}
	if v := os.Getenv("NUMGEN_ORDER"); v != "" {
		c.Order = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return fmt.Errorf("input path not configured")
	}
	if _, err := render.Lookup(c.Target); err != nil {
		return err
	}
	if _, err := order.ForName(c.Order); err != nil {
		return err
	}
	for _, p := range c.Only {
		if p == "" {
			return fmt.Errorf("empty prefix in only")
		}
	}
	return nil
}

// Resolve fills in settings derived from others: an unset output is named
// after the target's file extension. Call it after Validate.
func (c *Config) Resolve() {
	if strings.TrimSpace(c.Output) != "" {
		return
	}
	if t, err := render.Lookup(c.Target); err == nil {
		c.Output = DefaultOutputBase + t.Extension
	}
}
