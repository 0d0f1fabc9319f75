package main

import (
	"fmt"

	"github.com/alnah/go-assetpath/internal/config"
	"github.com/alnah/go-assetpath/internal/fileutil"
	"github.com/alnah/go-assetpath/internal/resource"
	"github.com/alnah/go-assetpath/internal/yamlutil"
)

const starterHeader = `# assetpath site configuration.
# Specifiers: "name:path" starts at a mounted package root, anything else is
# relative to the page origin (default: the template's directory).
`

// starterConfig returns the config written by "assetpath init".
func starterConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Site.Stylesheets = []string{resource.BuiltinName + ":static/reset.css"}
	cfg.Mounts = []config.MountConfig{
		{Name: "site", Dir: "./site"},
	}
	cfg.Pages = []config.PageConfig{
		{
			Output:   "index.html",
			Template: "site:templates/base.html",
			Content:  "site:content/index.md",
			Title:    "Home",
		},
	}
	cfg.Assets.Rules = map[string][]string{
		"img":    {"src"},
		"source": {"src"},
	}
	return cfg
}

// renderStarterConfig encodes the starter config and checks it loads back.
func renderStarterConfig() ([]byte, error) {
	body, err := yamlutil.Marshal(starterConfig())
	if err != nil {
		return nil, err
	}
	if _, err := config.Parse(body); err != nil {
		return nil, fmt.Errorf("starter config: %w", err)
	}
	return append([]byte(starterHeader), body...), nil
}

// runInit writes a starter config file.
func runInit(args []string, env *Environment) error {
	flags, positional, err := parseInitFlags(args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: %v", ErrUnexpectedArgs, positional)
	}

	path := flags.output
	if path == "" {
		path = config.DefaultConfigName + ".yaml"
	}
	if fileutil.FileExists(path) && !flags.force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}

	data, err := renderStarterConfig()
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(env.Stdout, "Created %s\n", path)
	return nil
}
