package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validConfig = `site:
  prefix: mysite
  stylesheets:
    - assetpath:static/reset.css
mounts:
  - name: mysite
    importPath: example.com/mysite
    dir: ./site
pages:
  - output: mysite/index.html
    template: mysite:templates/base.html
    content: ../content/index.md
    title: Home
assets:
  rules:
    img: [src]
`

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Site.OutputDir != DefaultOutputDir {
		t.Errorf("Site.OutputDir = %q, want %q", cfg.Site.OutputDir, DefaultOutputDir)
	}
	if cfg.Site.Manifest != DefaultManifest {
		t.Errorf("Site.Manifest = %q, want %q", cfg.Site.Manifest, DefaultManifest)
	}
	if cfg.Site.Prefix != "" {
		t.Errorf("Site.Prefix = %q, want empty", cfg.Site.Prefix)
	}
	if cfg.Serve.Addr != DefaultServeAddr {
		t.Errorf("Serve.Addr = %q, want %q", cfg.Serve.Addr, DefaultServeAddr)
	}
	if len(cfg.Mounts) != 0 || len(cfg.Pages) != 0 {
		t.Error("DefaultConfig() has mounts or pages")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q does not name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Mounts = []MountConfig{{Name: "mysite", Dir: "./site"}}
		cfg.Pages = []PageConfig{{Output: "index.html", Template: "mysite:base.html"}}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "mount without name", mutate: func(c *Config) { c.Mounts[0].Name = "" }, wantErr: ErrFieldRequired},
		{name: "mount without dir", mutate: func(c *Config) { c.Mounts[0].Dir = " " }, wantErr: ErrFieldRequired},
		{name: "mount name too long", mutate: func(c *Config) { c.Mounts[0].Name = strings.Repeat("a", MaxNameLength+1) }, wantErr: ErrFieldTooLong},
		{
			name:    "duplicate mount",
			mutate:  func(c *Config) { c.Mounts = append(c.Mounts, MountConfig{Name: "mysite", Dir: "./other"}) },
			wantErr: ErrDuplicateEntry,
		},
		{name: "page without output", mutate: func(c *Config) { c.Pages[0].Output = "" }, wantErr: ErrFieldRequired},
		{name: "page without template", mutate: func(c *Config) { c.Pages[0].Template = "" }, wantErr: ErrFieldRequired},
		{name: "page title too long", mutate: func(c *Config) { c.Pages[0].Title = strings.Repeat("t", MaxTitleLength+1) }, wantErr: ErrFieldTooLong},
		{
			name:    "duplicate output",
			mutate:  func(c *Config) { c.Pages = append(c.Pages, PageConfig{Output: "index.html", Template: "x:y.html"}) },
			wantErr: ErrDuplicateEntry,
		},
		{name: "empty stylesheet", mutate: func(c *Config) { c.Site.Stylesheets = []string{""} }, wantErr: ErrFieldRequired},
		{name: "prefix too long", mutate: func(c *Config) { c.Site.Prefix = strings.Repeat("p", MaxPrefixLength+1) }, wantErr: ErrFieldTooLong},
		{name: "generated too long", mutate: func(c *Config) { c.Site.Generated = strings.Repeat("d", MaxDateLength+1) }, wantErr: ErrFieldTooLong},
		{name: "empty rule attribute", mutate: func(c *Config) { c.Assets.Rules = map[string][]string{"img": {""}} }, wantErr: ErrFieldRequired},
		{name: "addr too long", mutate: func(c *Config) { c.Serve.Addr = strings.Repeat("a", MaxAddrLength+1) }, wantErr: ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(validConfig))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Site.Prefix != "mysite" {
		t.Errorf("Site.Prefix = %q, want %q", cfg.Site.Prefix, "mysite")
	}
	if cfg.Site.OutputDir != DefaultOutputDir {
		t.Errorf("Site.OutputDir = %q, want default %q", cfg.Site.OutputDir, DefaultOutputDir)
	}
	if cfg.Site.Generated != DefaultGenerated {
		t.Errorf("Site.Generated = %q, want default %q", cfg.Site.Generated, DefaultGenerated)
	}
	if len(cfg.Site.Stylesheets) != 1 || cfg.Site.Stylesheets[0] != "assetpath:static/reset.css" {
		t.Errorf("Site.Stylesheets = %v", cfg.Site.Stylesheets)
	}
	if len(cfg.Mounts) != 1 || cfg.Mounts[0].ImportPath != "example.com/mysite" {
		t.Errorf("Mounts = %+v", cfg.Mounts)
	}
	if len(cfg.Pages) != 1 || cfg.Pages[0].Content != "../content/index.md" || cfg.Pages[0].Title != "Home" {
		t.Errorf("Pages = %+v", cfg.Pages)
	}
	if got := cfg.Assets.Rules["img"]; len(got) != 1 || got[0] != "src" {
		t.Errorf("Assets.Rules[img] = %v, want [src]", got)
	}
	if !cfg.ManifestEnabled() {
		t.Error("ManifestEnabled() = false, want true")
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "empty", data: "", wantErr: ErrConfigParse},
		{name: "invalid YAML", data: "site: [unclosed", wantErr: ErrConfigParse},
		{name: "unknown field", data: "site:\n  prefx: typo\n", wantErr: ErrConfigParse},
		{name: "invalid mount", data: "mounts:\n  - name: mysite\n", wantErr: ErrFieldRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Parse([]byte(tt.data)); !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ManifestEnabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Site.Manifest = ManifestDisabled
	if cfg.ManifestEnabled() {
		t.Error("ManifestEnabled() = true for disabled manifest")
	}
}

func TestConfig_ResolvePath(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	cfg := &Config{BaseDir: base}

	if got := cfg.ResolvePath("site"); got != filepath.Join(base, "site") {
		t.Errorf("ResolvePath(site) = %q", got)
	}
	abs := filepath.Join(base, "abs")
	if got := cfg.ResolvePath(abs); got != abs {
		t.Errorf("ResolvePath(abs) = %q, want %q", got, abs)
	}
	if got := (&Config{}).ResolvePath("site"); got != "site" {
		t.Errorf("ResolvePath() without base = %q, want %q", got, "site")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		configPath := filepath.Join(dir, "site.yaml")
		if err := os.WriteFile(configPath, []byte(validConfig), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Site.Prefix != "mysite" {
			t.Errorf("Site.Prefix = %q, want %q", cfg.Site.Prefix, "mysite")
		}
		wantBase, _ := filepath.Abs(dir)
		if cfg.BaseDir != wantBase {
			t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, wantBase)
		}
		if got := cfg.ResolvePath(cfg.Mounts[0].Dir); got != filepath.Join(wantBase, "site") {
			t.Errorf("ResolvePath(mount dir) = %q", got)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown name returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("assetpath-test-no-such-config")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
		if err != nil && !strings.Contains(err.Error(), "assetpath-test-no-such-config.yaml") {
			t.Errorf("error %q does not list tried paths", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse with path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		configPath := filepath.Join(dir, "invalid.yaml")
		if err := os.WriteFile(configPath, []byte("site: [unclosed"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
		if err != nil && !strings.Contains(err.Error(), configPath) {
			t.Errorf("error %q does not name the file", err)
		}
	})
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "assetpath", want: false},
		{input: "./site.yaml", want: true},
		{input: "site.yml", want: true},
		{input: `configs\site`, want: true},
	}

	for _, tt := range tests {
		if got := isFilePath(tt.input); got != tt.want {
			t.Errorf("isFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("site")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() returned %d paths, want at least 2", len(paths))
	}
	if paths[0] != "site.yaml" || paths[1] != "site.yml" {
		t.Errorf("SearchPaths() local entries = %v, want site.yaml then site.yml", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, userConfigDirName) {
			t.Errorf("user path %q does not contain %q", p, userConfigDirName)
		}
	}
}
