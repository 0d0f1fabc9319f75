package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-assetpath/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrFieldRequired   = errors.New("required field is empty")
	ErrDuplicateEntry  = errors.New("duplicate entry")
)

// Field length limits.
const (
	MaxNameLength       = 64   // Mount name, a single path segment
	MaxPathLength       = 1024 // Directories, specifiers and output locations
	MaxImportPathLength = 256  // Go import path
	MaxTitleLength      = 200  // Page title
	MaxPrefixLength     = 256  // Site prefix
	MaxDateLength       = 50   // "auto", "auto:YYYY-MM-DD" or a literal date
	MaxAddrLength       = 256  // host:port
	MaxRuleTagLength    = 32   // Element tag in asset rules
	MaxRuleAttrLength   = 64   // Attribute name in asset rules
)

// Defaults.
const (
	DefaultConfigName = "assetpath"
	DefaultOutputDir  = "public"
	DefaultManifest   = "assets.json"
	DefaultServeAddr  = "127.0.0.1:8080"
	DefaultGenerated  = "auto"

	// ManifestDisabled as site.manifest turns the manifest off.
	ManifestDisabled = "-"

	userConfigDirName = "go-assetpath"
)

// Config holds the site configuration.
type Config struct {
	Site   SiteConfig    `yaml:"site"`
	Mounts []MountConfig `yaml:"mounts"`
	Pages  []PageConfig  `yaml:"pages"`
	Assets AssetsConfig  `yaml:"assets"`
	Serve  ServeConfig   `yaml:"serve"`

	// BaseDir is the directory of the loaded config file. Relative mount
	// and output directories are resolved against it.
	BaseDir string `yaml:"-"`
}

// SiteConfig defines site-wide output options.
type SiteConfig struct {
	Prefix      string   `yaml:"prefix"`      // Deployment path assets are addressed from (empty = page-relative)
	OutputDir   string   `yaml:"outputDir"`   // Where pages are written (default: "public")
	Manifest    string   `yaml:"manifest"`    // Asset manifest file under outputDir ("-" = none)
	Generated   string   `yaml:"generated"`   // Manifest date: "auto", "auto:FORMAT" or literal
	Stylesheets []string `yaml:"stylesheets"` // Specifiers linked from every page head
}

// MountConfig mounts a directory as an asset package.
type MountConfig struct {
	Name       string `yaml:"name"`                 // Package name used in "name:path" specifiers
	ImportPath string `yaml:"importPath,omitempty"` // Go import path of the components it holds
	Dir        string `yaml:"dir"`                  // Directory on disk
}

// PageConfig describes one output page.
type PageConfig struct {
	Output   string `yaml:"output"`            // Location relative to outputDir
	Template string `yaml:"template"`          // HTML template specifier
	Content  string `yaml:"content,omitempty"` // Markdown content specifier
	Origin   string `yaml:"origin,omitempty"`  // Origin for relative specifiers (default: template directory)
	Title    string `yaml:"title,omitempty"`
}

// AssetsConfig extends the element/attribute pairs treated as asset references.
type AssetsConfig struct {
	Rules map[string][]string `yaml:"rules"` // e.g. img: [src]
}

// ServeConfig defines development server options.
type ServeConfig struct {
	Addr string `yaml:"addr"` // Listen address (default: "127.0.0.1:8080")
}

// Validate checks required fields, uniqueness and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("site.prefix", c.Site.Prefix, MaxPrefixLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.outputDir", c.Site.OutputDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.manifest", c.Site.Manifest, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.generated", c.Site.Generated, MaxDateLength); err != nil {
		return err
	}
	for i, s := range c.Site.Stylesheets {
		field := fmt.Sprintf("site.stylesheets[%d]", i)
		if err := validateRequired(field, s); err != nil {
			return err
		}
		if err := validateFieldLength(field, s, MaxPathLength); err != nil {
			return err
		}
	}

	names := make(map[string]bool, len(c.Mounts))
	for i, m := range c.Mounts {
		if err := m.validate(i); err != nil {
			return err
		}
		if names[m.Name] {
			return fmt.Errorf("%w: mounts[%d].name %q", ErrDuplicateEntry, i, m.Name)
		}
		names[m.Name] = true
	}

	outputs := make(map[string]bool, len(c.Pages))
	for i, p := range c.Pages {
		if err := p.validate(i); err != nil {
			return err
		}
		if outputs[p.Output] {
			return fmt.Errorf("%w: pages[%d].output %q", ErrDuplicateEntry, i, p.Output)
		}
		outputs[p.Output] = true
	}

	for tag, attrs := range c.Assets.Rules {
		if err := validateRequired("assets.rules", tag); err != nil {
			return err
		}
		if err := validateFieldLength("assets.rules."+tag, tag, MaxRuleTagLength); err != nil {
			return err
		}
		for _, a := range attrs {
			if err := validateRequired("assets.rules."+tag, a); err != nil {
				return err
			}
			if err := validateFieldLength("assets.rules."+tag, a, MaxRuleAttrLength); err != nil {
				return err
			}
		}
	}

	return validateFieldLength("serve.addr", c.Serve.Addr, MaxAddrLength)
}

func (m MountConfig) validate(i int) error {
	prefix := fmt.Sprintf("mounts[%d]", i)
	if err := validateRequired(prefix+".name", m.Name); err != nil {
		return err
	}
	if err := validateFieldLength(prefix+".name", m.Name, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength(prefix+".importPath", m.ImportPath, MaxImportPathLength); err != nil {
		return err
	}
	if err := validateRequired(prefix+".dir", m.Dir); err != nil {
		return err
	}
	return validateFieldLength(prefix+".dir", m.Dir, MaxPathLength)
}

func (p PageConfig) validate(i int) error {
	prefix := fmt.Sprintf("pages[%d]", i)
	for _, f := range []struct {
		name     string
		value    string
		max      int
		required bool
	}{
		{name: "output", value: p.Output, max: MaxPathLength, required: true},
		{name: "template", value: p.Template, max: MaxPathLength, required: true},
		{name: "content", value: p.Content, max: MaxPathLength},
		{name: "origin", value: p.Origin, max: MaxImportPathLength},
		{name: "title", value: p.Title, max: MaxTitleLength},
	} {
		if f.required {
			if err := validateRequired(prefix+"."+f.name, f.value); err != nil {
				return err
			}
		}
		if err := validateFieldLength(prefix+"."+f.name, f.value, f.max); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", ErrFieldRequired, fieldName)
	}
	return nil
}

// DefaultConfig returns a configuration with no mounts or pages.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			OutputDir: DefaultOutputDir,
			Manifest:  DefaultManifest,
			Generated: DefaultGenerated,
		},
		Serve: ServeConfig{Addr: DefaultServeAddr},
	}
}

// applyDefaults fills unset fields from DefaultConfig.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Site.OutputDir == "" {
		c.Site.OutputDir = def.Site.OutputDir
	}
	if c.Site.Manifest == "" {
		c.Site.Manifest = def.Site.Manifest
	}
	if c.Site.Generated == "" {
		c.Site.Generated = def.Site.Generated
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = def.Serve.Addr
	}
}

// ManifestEnabled reports whether an asset manifest should be written.
func (c *Config) ManifestEnabled() bool {
	return c.Site.Manifest != "" && c.Site.Manifest != ManifestDisabled
}

// ResolvePath resolves p against BaseDir unless p is absolute.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
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

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	if abs, err := filepath.Abs(filepath.Dir(configPath)); err == nil {
		cfg.BaseDir = abs
	}
	return cfg, nil
}

// Parse decodes, defaults and validates configuration data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigParse, yamlutil.Describe(err))
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// SearchPaths lists the locations tried for a config name, in order.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-assetpath/
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, userConfigDirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
