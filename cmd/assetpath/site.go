package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/alnah/go-assetpath"
	"github.com/alnah/go-assetpath/internal/config"
	"github.com/alnah/go-assetpath/internal/fileutil"
	"github.com/alnah/go-assetpath/internal/hints"
	"github.com/alnah/go-assetpath/internal/pipeline"
)

// Sentinel errors for CLI operations.
var (
	ErrNoPages            = errors.New("config defines no pages")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrUnexpectedArgs     = errors.New("unexpected arguments")
	ErrWritePage          = errors.New("failed to write page")
	ErrWriteManifest      = errors.New("failed to write asset manifest")
	ErrConfigExists       = errors.New("config file already exists")
)

// maxWorkers caps explicit worker counts.
const maxWorkers = 64

// site is a loaded config wired to a resolver and page builder.
type site struct {
	cfg      *config.Config
	registry *assetpath.Registry
	builder  *pipeline.Builder
	pages    []pipeline.Page
	logger   *slog.Logger
}

// loadSiteConfig loads the config named by the flag, ASSETPATH_CONFIG or the
// default name, then applies env overrides.
func loadSiteConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}
	if name == "" {
		name = config.DefaultConfigName
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && filepath.Base(name) == name && filepath.Ext(name) == "" {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// newSite mounts the configured packages and prepares every page.
func newSite(cfg *config.Config, logger *slog.Logger) (*site, error) {
	if len(cfg.Pages) == 0 {
		return nil, ErrNoPages
	}

	registry := assetpath.NewRegistry()
	for _, m := range cfg.Mounts {
		dir := cfg.ResolvePath(m.Dir)
		if err := registry.MountDir(m.Name, m.ImportPath, dir); err != nil {
			return nil, fmt.Errorf("mounting %q: %w", m.Name, err)
		}
		logger.Debug("mounted package", "name", m.Name, "importPath", m.ImportPath, "dir", dir)
	}

	opts := []assetpath.ResolverOption{assetpath.WithLogger(logger)}
	for tag, attrs := range cfg.Assets.Rules {
		opts = append(opts, assetpath.WithAssetAttr(tag, attrs...))
	}
	resolver := assetpath.NewResolver(registry, opts...)

	builder := pipeline.NewBuilder(resolver,
		pipeline.WithStylesheets(cfg.Site.Stylesheets...),
		pipeline.WithLogger(logger),
	)

	pages := make([]pipeline.Page, 0, len(cfg.Pages))
	for _, p := range cfg.Pages {
		pages = append(pages, pipeline.Page{
			Output:   p.Output,
			Template: p.Template,
			Content:  p.Content,
			Origin:   p.Origin,
			Title:    p.Title,
		})
	}

	return &site{
		cfg:      cfg,
		registry: registry,
		builder:  builder,
		pages:    pages,
		logger:   logger,
	}, nil
}

// outputDir returns the absolute-or-config-relative output directory.
func (s *site) outputDir() string {
	return s.cfg.ResolvePath(s.cfg.Site.OutputDir)
}

// strategy returns a fresh strategy carrying the site prefix.
func (s *site) strategy() *assetpath.RelativePathStrategy {
	return assetpath.NewRelativePathStrategy(assetpath.WithSitePrefix(s.cfg.Site.Prefix))
}

// annotate appends an actionable hint to err when one applies.
func (s *site) annotate(err error) error {
	if err == nil {
		return nil
	}

	var hint string
	switch {
	case errors.Is(err, assetpath.ErrUnresolvablePackage):
		hint = hints.ForUnresolvablePackage(s.registry.Packages())
	case errors.Is(err, assetpath.ErrMissingOrigin):
		hint = hints.ForMissingOrigin()
	case errors.Is(err, assetpath.ErrAssetNotFound):
		hint = hints.ForAssetNotFound()
	case errors.Is(err, assetpath.ErrIncompatiblePaths), errors.Is(err, fileutil.ErrOutsideRoot):
		hint = hints.ForIncompatiblePaths()
	case errors.Is(err, pipeline.ErrNoContentSlot):
		hint = hints.ForNoContentSlot()
	case errors.Is(err, fileutil.ErrNotADirectory):
		hint = hints.ForOutputDirectory()
	}

	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// validateWorkers rejects negative or excessive worker counts.
func validateWorkers(n int) error {
	if n < 0 || n > maxWorkers {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}
