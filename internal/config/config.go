// Package config loads the optional HCL configuration file of xc2netlist.
//
// Example:
//
//	creator  = "my flow"
//	format   = "json"
//	validate = true
//
//	log {
//	  level  = "debug"
//	  format = "json"
//	}
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Output formats
const (
	FormatJSON  = "json"
	FormatKiCad = "kicad"
	FormatDOT   = "dot"
)

// Config holds the resolved settings for one run
type Config struct {
	Creator   string // netlist creator label; empty means the builder default
	Format    string
	Validate  bool
	LogLevel  string
	LogFormat string
}

// Default returns the settings used when no file or flag overrides them
func Default() Config {
	return Config{
		Format:    FormatJSON,
		Validate:  true,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// hclFile is the on-disk layout decoded by gohcl
type hclFile struct {
	Creator  string  `hcl:"creator,optional"`
	Format   string  `hcl:"format,optional"`
	Validate *bool   `hcl:"validate,optional"`
	Log      *hclLog `hcl:"log,block"`
}

type hclLog struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// Load reads the HCL file at path and applies it over Default()
func Load(path string) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes HCL source and applies it over Default()
func Parse(src []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("config: failed to parse %s: %w", filename, diags)
	}

	var raw hclFile
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("config: failed to decode %s: %w", filename, diags)
	}

	cfg := Default()
	if raw.Creator != "" {
		cfg.Creator = raw.Creator
	}
	if raw.Format != "" {
		cfg.Format = raw.Format
	}
	if raw.Validate != nil {
		cfg.Validate = *raw.Validate
	}
	if raw.Log != nil {
		if raw.Log.Level != "" {
			cfg.LogLevel = raw.Log.Level
		}
		if raw.Log.Format != "" {
			cfg.LogFormat = raw.Log.Format
		}
	}

	if err := cfg.Check(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", filename, err)
	}
	return cfg, nil
}

// Check rejects unknown output formats
func (c Config) Check() error {
	switch c.Format {
	case FormatJSON, FormatKiCad, FormatDOT:
		return nil
	}
	return fmt.Errorf("unknown output format %q", c.Format)
}
