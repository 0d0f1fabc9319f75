package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-assetpath"
	"github.com/alnah/go-assetpath/internal/pipeline"
)

// checkResult is the machine-readable outcome of a check run.
type checkResult struct {
	Status string   `json:"status"` // "ok" or "error"
	Pages  int      `json:"pages"`
	Assets []string `json:"assets"` // Destinations collected before stopping
	Error  string   `json:"error,omitempty"`
}

// runCheck resolves and renders every page without writing output and stops
// at the first failure.
func runCheck(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCheckFlags(args)
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

	s, err := newSite(cfg, logger)
	if err != nil {
		return err
	}

	strategy := s.strategy()
	checkErr := s.annotate(checkPages(ctx, s.builder, s.pages, strategy, resolvePoolSize(flags.workers, envCfg.Workers)))

	result := checkResult{
		Status: "ok",
		Pages:  len(s.pages),
		Assets: destinations(strategy.CollectedAssets()),
	}
	if checkErr != nil {
		result.Status = "error"
		result.Error = checkErr.Error()
	}

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else if checkErr == nil && !flags.common.quiet {
		printCheckResult(env.Stdout, result)
	}

	return checkErr
}

// checkPages rewrites and renders pages concurrently. The first failure
// cancels the remaining pages.
func checkPages(ctx context.Context, b *pipeline.Builder, pages []pipeline.Page, strategy assetpath.Strategy, workers int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, p := range pages {
		g.Go(func() error {
			tree, err := b.Resolve(ctx, p)
			if err != nil {
				return err
			}
			if _, err := assetpath.Render(tree, p.Output, strategy); err != nil {
				return fmt.Errorf("page %s: %w", p.Output, err)
			}
			return nil
		})
	}

	return g.Wait()
}

func destinations(set *assetpath.AssetSet) []string {
	out := make([]string, 0, set.Len())
	set.Each(func(ref assetpath.AssetReference) bool {
		out = append(out, ref.Destination)
		return true
	})
	return out
}

func printCheckResult(w io.Writer, r checkResult) {
	fmt.Fprintf(w, "%d pages OK, %d assets referenced\n", r.Pages, len(r.Assets))
	for _, d := range r.Assets {
		fmt.Fprintf(w, "  %s\n", d)
	}
}
