package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-nb2md/internal/fileutil"
	"github.com/alnah/go-nb2md/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
)

// userConfigSubdir is the directory under os.UserConfigDir searched for
// named configs.
const userConfigSubdir = "go-nb2md"

// Defaults matching the conventional project layout: notebooks/ converted
// into docs/notebooks/.
const (
	DefaultNotebooksDir = "notebooks"
	DefaultDocsDir      = "docs"
	DefaultOutputFolder = "notebooks"
)

// Config holds all configuration for a conversion run.
type Config struct {
	Notebooks NotebooksConfig `yaml:"notebooks"`
	Docs      DocsConfig      `yaml:"docs"`
	Workers   int             `yaml:"workers"` // 0 = auto
	Titles    TitlesConfig    `yaml:"titles"`
	Assets    AssetsConfig    `yaml:"assets"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// NotebooksConfig defines where notebooks are read from.
type NotebooksConfig struct {
	Dir string `yaml:"dir"`
}

// DocsConfig defines where Markdown is written.
type DocsConfig struct {
	Dir          string `yaml:"dir"`
	OutputFolder string `yaml:"outputFolder"` // single folder created under Dir
}

// TitlesConfig controls front matter title derivation.
type TitlesConfig struct {
	ReplaceAllUnderscores bool `yaml:"replaceAllUnderscores"`
}

// AssetsConfig controls relative asset reference handling.
type AssetsConfig struct {
	RewritePaths bool `yaml:"rewritePaths"`
}

// MetricsConfig controls metrics export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // empty = disabled
}

// LoggingConfig controls the CLI's slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// OutputDir returns the directory Markdown files are written to.
func (c *Config) OutputDir() string {
	return filepath.Join(c.Docs.Dir, c.Docs.OutputFolder)
}

// Validate checks field values. Directory existence is not checked here:
// a missing notebooks directory is a valid, empty run.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Notebooks.Dir) == "" {
		return fmt.Errorf("%w: notebooks.dir is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Docs.Dir) == "" {
		return fmt.Errorf("%w: docs.dir is required", ErrInvalidConfig)
	}
	if err := validateOutputFolder(c.Docs.OutputFolder); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q (want debug, info, warn or error)", ErrInvalidConfig, c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: logging.format %q (want text or json)", ErrInvalidConfig, c.Logging.Format)
	}

	return nil
}

// validateOutputFolder requires a single path element, since only the last
// level of the output directory is ever created.
func validateOutputFolder(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: docs.outputFolder is required", ErrInvalidConfig)
	case name == "." || name == "..":
		return fmt.Errorf("%w: docs.outputFolder %q must name a folder", ErrInvalidConfig, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: docs.outputFolder %q must be a single folder name", ErrInvalidConfig, name)
	}
	return nil
}

// DefaultConfig returns the conventional layout with every option off.
func DefaultConfig() *Config {
	return &Config{
		Notebooks: NotebooksConfig{Dir: DefaultNotebooksDir},
		Docs:      DocsConfig{Dir: DefaultDocsDir, OutputFolder: DefaultOutputFolder},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in SearchPaths.
// Fields the file omits or leaves empty take their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills fields left empty with their DefaultConfig values.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Notebooks.Dir == "" {
		c.Notebooks.Dir = def.Notebooks.Dir
	}
	if c.Docs.Dir == "" {
		c.Docs.Dir = def.Docs.Dir
	}
	if c.Docs.OutputFolder == "" {
		c.Docs.OutputFolder = def.Docs.OutputFolder
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = def.Logging.Format
	}
}

// SearchPaths lists the files tried for a config name, in order:
// current directory, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, userConfigSubdir, name+ext))
		}
	}

	return paths
}

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
