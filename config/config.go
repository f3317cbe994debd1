// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/choria-io/fisk"
	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"

	iu "github.com/choria-io/swan/internal/util"
	"github.com/choria-io/swan/model"
)

const (
	schemaURL = "https://choria.io/schemas/swan/v1/config.json"

	DefaultTool        = "dotnet"
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"
	DefaultNatsSubject = "swan.events"

	// SystemConfigFile is used when no user configuration exists
	SystemConfigFile = "/etc/swan/swan.yaml"
)

//go:embed schema.json
var schemaJSON []byte

// Config is the swan configuration file
type Config struct {
	// Tool is the external package manager command line, for example "dotnet --nologo"
	Tool string `yaml:"tool" json:"tool"`

	// Timeout is the maximum time any external command may run (e.g. "10m", "1h").
	// Empty waits forever.
	Timeout         string `yaml:"timeout" json:"timeout"`
	timeoutDuration time.Duration

	// Environment is a list of KEY=VALUE pairs added to the environment of the tool
	Environment []string `yaml:"environment" json:"environment"`

	// WorkingDirectory is where the tool runs, defaults to the current directory
	WorkingDirectory string `yaml:"working_directory" json:"working_directory"`

	// LogLevel is the log level to use
	// Valid values: debug, info, warn, error
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogFormat is either text or json
	LogFormat string `yaml:"log_format" json:"log_format"`

	// HistoryDirectory stores a JSON file per command when set
	HistoryDirectory string `yaml:"history_directory" json:"history_directory"`

	// NatsContext publishes command events using this NATS context when set
	NatsContext string `yaml:"nats_context" json:"nats_context"`

	// NatsSubject is the subject prefix events are published to, the verb is appended
	NatsSubject string `yaml:"nats_subject" json:"nats_subject"`

	// MetricsFile receives Prometheus metrics in the node exporter textfile format when set
	MetricsFile string `yaml:"metrics_file" json:"metrics_file"`

	source string
}

// Defaults is the configuration used when no file is found
func Defaults() *Config {
	return &Config{
		Tool:        DefaultTool,
		Environment: []string{},
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		NatsSubject: DefaultNatsSubject,
	}
}

// UserConfigFile is the per user configuration file
func UserConfigFile() string {
	return filepath.Join(xdg.ConfigHome, "swan", "swan.yaml")
}

// Locate finds the configuration file to use, explicit wins over the user and system files.
// An empty result means no configuration file exists.
func Locate(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if xdg.ConfigHome != "" {
		user := UserConfigFile()
		if iu.FileExists(user) {
			return user
		}
	}

	if iu.FileExists(SystemConfigFile) {
		return SystemConfigFile
	}

	return ""
}

// Load reads the configuration from path, an empty path searches the default locations.
// Defaults are returned when no configuration file exists unless path was given explicitly.
func Load(path string) (*Config, error) {
	file := Locate(path)
	if file == "" {
		return Defaults(), nil
	}

	c, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	cfg, err := ParseConfig(c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	cfg.source = file

	return cfg, nil
}

// ParseConfig parses and validates YAML configuration
func ParseConfig(c []byte) (*Config, error) {
	cfg := Defaults()

	if len(bytes.TrimSpace(c)) == 0 {
		return cfg, nil
	}

	err := Validate(c)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(c, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidConfig, err)
	}

	if cfg.Timeout != "" {
		cfg.timeoutDuration, err = fisk.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("%w: timeout: %w", model.ErrInvalidConfig, err)
		}
	}

	if cfg.Tool == "" {
		cfg.Tool = DefaultTool
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.NatsSubject == "" {
		cfg.NatsSubject = DefaultNatsSubject
	}

	return cfg, nil
}

// Validate checks YAML configuration against the configuration schema
func Validate(c []byte) error {
	j, err := yaml.YAMLToJSON(c)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrInvalidConfig, err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(j))
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrInvalidConfig, err)
	}

	schema, err := compileSchema()
	if err != nil {
		return err
	}

	err = schema.Validate(inst)
	if err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("%w: %s", model.ErrInvalidConfig, ve.Error())
		}

		return fmt.Errorf("%w: %w", model.ErrInvalidConfig, err)
	}

	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	err = compiler.AddResource(schemaURL, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration schema: %w", err)
	}

	return compiler.Compile(schemaURL)
}

// TimeoutDuration is the parsed Timeout, 0 means no timeout
func (c *Config) TimeoutDuration() time.Duration {
	return c.timeoutDuration
}

// SetTimeout parses and sets the timeout, used to apply command line overrides
func (c *Config) SetTimeout(timeout string) error {
	d, err := fisk.ParseDuration(timeout)
	if err != nil {
		return fmt.Errorf("%w: timeout: %w", model.ErrInvalidConfig, err)
	}

	c.Timeout = timeout
	c.timeoutDuration = d

	return nil
}

// Source is the file the configuration was loaded from, empty when defaults are used
func (c *Config) Source() string {
	return c.source
}
