// Package config loads linediff's configuration from a cascade of sources, lowest to highest priority:
//   - built-in defaults
//   - the user config file, ~/.linediff/config.yaml
//   - the nearest .linediff/config.yaml found by walking up from the working directory
//   - LINEDIFF_* environment variables
//
// Command-line flags are applied on top by the caller. Missing or empty files are skipped; a file that exists but cannot be parsed, or that has unknown keys,
// is an error.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codalotl/linediff/internal/diff"
)

// Output formats.
const (
	FormatPretty     = "pretty"
	FormatUnified    = "unified"
	FormatSideBySide = "side-by-side"
	FormatJSON       = "json"
	FormatYAML       = "yaml"
	FormatStats      = "stats"
	FormatMarkdown   = "markdown"
	FormatHTML       = "html"
)

const defaultConcurrency = 4

// Formats lists every accepted Format value.
var Formats = []string{FormatPretty, FormatUnified, FormatSideBySide, FormatJSON, FormatYAML, FormatStats, FormatMarkdown, FormatHTML}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is linediff's effective configuration.
type Config struct {
	Format string `yaml:"format" json:"format"`

	// Context is the number of unchanged lines shown around changes. Negative shows everything.
	Context int `yaml:"context" json:"context"`

	Color     string `yaml:"color" json:"color"`
	Algorithm string `yaml:"algorithm" json:"algorithm"`

	// MaxLines rejects inputs with more lines than this. 0 means no limit.
	MaxLines int `yaml:"maxLines" json:"maxLines"`

	// Width is the terminal width for side-by-side output. 0 means detect.
	Width int `yaml:"width" json:"width"`

	// Concurrency bounds how many file pairs are diffed at once when comparing directories.
	Concurrency int `yaml:"concurrency" json:"concurrency"`

	// Sources lists the files that contributed, lowest priority first.
	Sources []string `yaml:"-" json:"sources,omitempty"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Format:      FormatPretty,
		Context:     3,
		Color:       ColorAuto,
		Algorithm:   diff.AlgorithmLCS.String(),
		Concurrency: defaultConcurrency,
	}
}

// UserFile is the user config path relative to the home directory.
const UserFile = ".linediff/config.yaml"

// ProjectFile is the project config path searched for upward from the working directory.
const ProjectFile = ".linediff/config.yaml"

// Load builds the configuration for a process whose working directory is dir.
func Load(dir string) (Config, error) {
	cfg := Default()

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		if err := applyFile(&cfg, filepath.Join(home, UserFile)); err != nil {
			return Config{}, err
		}
	}

	if p := nearestFile(dir, ProjectFile); p != "" && !slices.Contains(cfg.Sources, p) {
		if err := applyFile(&cfg, p); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyFile overlays the keys present in the YAML file at path onto cfg. Missing and empty files are skipped.
func applyFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load configuration: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("load configuration: %s: %w", path, err)
	}
	cfg.Sources = append(cfg.Sources, path)
	return nil
}

// nearestFile searches dir and its ancestors for relName and returns the first regular file found, or "".
func nearestFile(dir, relName string) string {
	if dir == "" {
		return ""
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		p := filepath.Join(abs, relName)
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return p
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return ""
		}
		abs = parent
	}
}

// Environment variables read by Load.
const (
	EnvFormat      = "LINEDIFF_FORMAT"
	EnvContext     = "LINEDIFF_CONTEXT"
	EnvColor       = "LINEDIFF_COLOR"
	EnvAlgorithm   = "LINEDIFF_ALGORITHM"
	EnvMaxLines    = "LINEDIFF_MAX_LINES"
	EnvWidth       = "LINEDIFF_WIDTH"
	EnvConcurrency = "LINEDIFF_CONCURRENCY"
)

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(name string, dst *int) error {
		v, ok := lookup(name)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("load configuration: %s: invalid integer %q", name, v)
		}
		*dst = n
		return nil
	}

	str(EnvFormat, &cfg.Format)
	str(EnvColor, &cfg.Color)
	str(EnvAlgorithm, &cfg.Algorithm)
	for name, dst := range map[string]*int{
		EnvContext:     &cfg.Context,
		EnvMaxLines:    &cfg.MaxLines,
		EnvWidth:       &cfg.Width,
		EnvConcurrency: &cfg.Concurrency,
	} {
		if err := num(name, dst); err != nil {
			return err
		}
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("invalid configuration: format must be one of %s (got %q)", strings.Join(Formats, ", "), c.Format)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid configuration: color must be auto, always or never (got %q)", c.Color)
	}
	if _, err := diff.ParseAlgorithm(c.Algorithm); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.MaxLines < 0 {
		return fmt.Errorf("invalid configuration: maxLines must be >= 0 (got %d)", c.MaxLines)
	}
	if c.Width < 0 {
		return fmt.Errorf("invalid configuration: width must be >= 0 (got %d)", c.Width)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("invalid configuration: concurrency must be > 0 (got %d)", c.Concurrency)
	}
	return nil
}

// DiffOptions converts c to diff.Options. c must be valid.
func (c Config) DiffOptions() diff.Options {
	alg, _ := diff.ParseAlgorithm(c.Algorithm)
	return diff.Options{Algorithm: alg, MaxLines: c.MaxLines}
}

// WriteJSON writes c as indented JSON.
func WriteJSON(w io.Writer, c Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(c)
}
