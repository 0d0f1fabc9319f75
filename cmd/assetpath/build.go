package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alnah/go-assetpath"
	"github.com/alnah/go-assetpath/internal/dateutil"
	"github.com/alnah/go-assetpath/internal/fileutil"
)

// Manifest lists every asset the built pages reference, keyed by the
// destination an external copier must write it to, relative to the output
// directory.
type Manifest struct {
	Generated string            `json:"generated,omitempty"`
	Prefix    string            `json:"prefix,omitempty"`
	Packages  map[string]string `json:"packages"` // Mount name -> directory on disk
	Assets    map[string]string `json:"assets"`   // Destination -> source location
}

// runBuild renders every configured page and writes the asset manifest.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: %v", ErrUnexpectedArgs, positional)
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	warnUnknownEnvVars(env.Stderr)
	setMaxProcs(logger)

	envCfg := loadEnvConfig()
	cfg, err := loadSiteConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applySiteFlags(flags.site, cfg)
	if flags.manifest != "" {
		cfg.Site.Manifest = flags.manifest
	}

	// Resolve the manifest date once for the whole build
	generated, err := dateutil.Resolve(cfg.Site.Generated, env.Now())
	if err != nil {
		return fmt.Errorf("site.generated: %w", err)
	}

	s, err := newSite(cfg, logger)
	if err != nil {
		return err
	}

	outputDir := s.outputDir()
	if err := fileutil.EnsureDir(outputDir); err != nil {
		return s.annotate(fmt.Errorf("output directory: %w", err))
	}

	workers := resolvePoolSize(flags.workers, envCfg.Workers)
	logger.Debug("building site", "pages", len(s.pages), "workers", workers, "output", outputDir, "prefix", cfg.Site.Prefix)

	strategy := s.strategy()
	results := buildBatch(ctx, s.builder, s.pages, outputDir, strategy, workers)
	failed := printBuildResults(results, flags.common.quiet, flags.common.verbose, env)

	if cfg.ManifestEnabled() {
		path, err := writeManifest(outputDir, cfg.Site.Manifest, newManifest(s, strategy.CollectedAssets(), generated))
		if err != nil {
			return err
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Wrote %s (%d assets)\n", path, strategy.CollectedAssets().Len())
		}
	}

	if failed > 0 {
		first := firstError(results)
		return s.annotate(fmt.Errorf("%d of %d pages failed: %w", failed, len(results), first))
	}
	return nil
}

// newManifest snapshots the collected assets.
func newManifest(s *site, set *assetpath.AssetSet, generated string) Manifest {
	m := Manifest{
		Generated: generated,
		Prefix:    s.cfg.Site.Prefix,
		Packages:  make(map[string]string, len(s.cfg.Mounts)),
		Assets:    make(map[string]string, set.Len()),
	}
	for _, mount := range s.cfg.Mounts {
		m.Packages[mount.Name] = s.cfg.ResolvePath(mount.Dir)
	}
	set.Each(func(ref assetpath.AssetReference) bool {
		m.Assets[ref.Destination] = ref.Source.Location()
		return true
	})
	return m
}

// writeManifest writes m as indented JSON under outputDir.
func writeManifest(outputDir, name string, m Manifest) (string, error) {
	path, err := fileutil.JoinWithin(outputDir, name)
	if err != nil {
		return "", fmt.Errorf("site.manifest: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteManifest, err)
	}
	data = append(data, '\n')

	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrWriteManifest, path, err)
	}
	return path, nil
}

// printBuildResults outputs page results and returns the failure count.
func printBuildResults(results []PageResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Output, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.Output, r.Path, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.Path)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// firstError returns the error of the first failed page, in page order.
func firstError(results []PageResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
