package main

import (
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-assetpath/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags override the site section of the config.
type siteFlags struct {
	prefix    string
	outputDir string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common   commonFlags
	site     siteFlags
	manifest string
	workers  int
}

// checkFlags holds all flags for the check command.
type checkFlags struct {
	common  commonFlags
	site    siteFlags
	workers int
	json    bool
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common commonFlags
	addr   string
}

// initFlags holds all flags for the init command.
type initFlags struct {
	output string
	force  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show resolution details and timing")
}

// addSiteFlags adds site override flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVarP(&f.prefix, "prefix", "p", "", "site prefix for rendered asset paths")
	fs.StringVarP(&f.outputDir, "output", "o", "", "output directory")
}

// newBuildFlagSet registers build flags. Shared with completion.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	fs.StringVarP(&f.manifest, "manifest", "m", "", "asset manifest file under the output directory (\"-\" = none)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel page builders (0 = auto)")
	return fs
}

// newCheckFlagSet registers check flags. Shared with completion.
func newCheckFlagSet(f *checkFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel page checks (0 = auto)")
	fs.BoolVar(&f.json, "json", false, "machine-readable output")
	return fs
}

// newServeFlagSet registers serve flags. Shared with completion.
func newServeFlagSet(f *serveFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (host:port)")
	return fs
}

// newInitFlagSet registers init flags. Shared with completion.
func newInitFlagSet(f *initFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "config file to write (default: assetpath.yaml)")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing file")
	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(f)
	fs.Usage = func() { printBuildUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCheckFlags parses check command flags and returns positional args.
func parseCheckFlags(args []string) (*checkFlags, []string, error) {
	f := &checkFlags{}
	fs := newCheckFlagSet(f)
	fs.Usage = func() { printCheckUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := newServeFlagSet(f)
	fs.Usage = func() { printServeUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseInitFlags parses init command flags and returns positional args.
func parseInitFlags(args []string) (*initFlags, []string, error) {
	f := &initFlags{}
	fs := newInitFlagSet(f)
	fs.Usage = func() { printInitUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// applySiteFlags merges site flags into cfg. Flags win over env and file.
func applySiteFlags(f siteFlags, cfg *config.Config) {
	if f.prefix != "" {
		cfg.Site.Prefix = f.prefix
	}
	if f.outputDir != "" {
		cfg.Site.OutputDir = f.outputDir
	}
}
