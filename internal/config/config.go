// Package config loads the mdtoc configuration from an optional YAML file and
// the process environment.
package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/d-kuro/mdtoc/internal/errors"
)

const (
	// DefaultConfigFile is read from the working directory when no --config is given.
	DefaultConfigFile = ".mdtoc.yaml"

	DefaultPattern    = "*.md"
	DefaultHeader     = "./readme.header.md"
	DefaultFooter     = "./readme.footer.md"
	DefaultOutput     = "./readme.md"
	DefaultDateLayout = "1/2/2006"
	DefaultLogLevel   = "info"
)

// Environment variables consulted by LoadWithEnv. Environment values win over
// values from the config file.
const (
	EnvRoot             = "MARKDOWN_ROOT"
	EnvNpmRoot          = "npm_package_config_markdownRoot"
	EnvLogLevel         = "LOG_LEVEL"
	EnvStripFrontMatter = "MDTOC_STRIP_FRONT_MATTER"
)

// Config is the explicit configuration handed to the generator.
type Config struct {
	// Root is the directory scanned for Markdown files.
	Root string `yaml:"root"`
	// Pattern is matched against file base names.
	Pattern string `yaml:"pattern"`

	Header string `yaml:"header"`
	Footer string `yaml:"footer"`
	Output string `yaml:"output"`

	// DateLayout is a time.Format layout for the last-modified column.
	DateLayout string `yaml:"date_layout"`

	// StripFrontMatter removes a leading front matter block before the
	// title heading is searched.
	StripFrontMatter bool `yaml:"strip_front_matter"`

	LogLevel string `yaml:"log_level"`

	// AllowedPaths limits the directories serve requests may read or write.
	// Empty means any directory that is not blocked.
	AllowedPaths []string `yaml:"allowed_paths"`
	// BlockedPaths extends the built-in list of refused system directories.
	BlockedPaths []string `yaml:"blocked_paths"`
}

// Default returns a Config populated with the fixed layout defaults. Root is
// left empty because it has no sensible default.
func Default() *Config {
	return &Config{
		Pattern:    DefaultPattern,
		Header:     DefaultHeader,
		Footer:     DefaultFooter,
		Output:     DefaultOutput,
		DateLayout: DefaultDateLayout,
		LogLevel:   DefaultLogLevel,
	}
}

// Load reads configuration from path (or DefaultConfigFile when path is
// empty) and the process environment.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.Getenv)
}

// LoadWithEnv is Load with an injectable environment lookup.
func LoadWithEnv(path string, getenv func(string) string) (*Config, error) {
	cfg, err := ReadWithEnv(path, getenv)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ReadWithEnv merges defaults, the config file and the environment without
// requiring a root. Callers that take the root per request use this and
// ValidateLayout.
func ReadWithEnv(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	if err := cfg.loadFile(path, explicit); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}

	cfg.Root = NormalizeRoot(cfg.Root)

	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return errors.ConfigurationWithCause(fmt.Sprintf("read config file %s", path), err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.ConfigurationWithCause(fmt.Sprintf("parse config file %s", path), err)
	}

	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if root := getenv(EnvRoot); root != "" {
		c.Root = root
	} else if root := getenv(EnvNpmRoot); root != "" {
		c.Root = root
	}

	if level := getenv(EnvLogLevel); level != "" {
		c.LogLevel = level
	}

	if raw := getenv(EnvStripFrontMatter); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.ConfigurationWithCause(fmt.Sprintf("invalid %s value %q", EnvStripFrontMatter, raw), err)
		}
		c.StripFrontMatter = v
	}

	return nil
}

// Validate checks that every field needed by the generator is usable.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.Configuration(fmt.Sprintf("markdown root is not set; export %s or set root in %s", EnvRoot, DefaultConfigFile))
	}

	return c.ValidateLayout()
}

// ValidateLayout checks every field except Root.
func (c *Config) ValidateLayout() error {
	if c.Pattern == "" {
		return errors.Configuration("pattern cannot be empty")
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil {
		return errors.ConfigurationWithCause(fmt.Sprintf("invalid pattern %q", c.Pattern), err)
	}

	if c.Header == "" || c.Footer == "" || c.Output == "" {
		return errors.Configuration("header, footer and output paths are required")
	}

	if strings.TrimSpace(c.DateLayout) == "" {
		return errors.Configuration("date_layout cannot be empty")
	}

	return nil
}

// NormalizeRoot drops trailing separators so listed paths do not contain a
// doubled separator. A root made only of separators stays the filesystem root.
func NormalizeRoot(root string) string {
	if root == "" {
		return ""
	}
	trimmed := strings.TrimRight(root, string(filepath.Separator))
	if trimmed == "" {
		return string(filepath.Separator)
	}
	return trimmed
}
