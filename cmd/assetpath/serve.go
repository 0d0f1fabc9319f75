package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alnah/go-assetpath"
	"github.com/alnah/go-assetpath/internal/hints"
	"github.com/alnah/go-assetpath/internal/pipeline"
)

// shutdownTimeout bounds how long in-flight requests may drain.
const shutdownTimeout = 5 * time.Second

// devServer renders pages on request and serves the assets they reference.
// Pages render without the site prefix so that the server root stands for
// the output directory.
type devServer struct {
	builder  PageBuilder
	pages    map[string]pipeline.Page
	strategy *assetpath.RelativePathStrategy
	logger   *slog.Logger
}

// newDevServer indexes pages by output location.
func newDevServer(b PageBuilder, pages []pipeline.Page, logger *slog.Logger) *devServer {
	byOutput := make(map[string]pipeline.Page, len(pages))
	for _, p := range pages {
		byOutput[path.Clean(p.Output)] = p
	}
	return &devServer{
		builder:  b,
		pages:    byOutput,
		strategy: assetpath.NewRelativePathStrategy(),
		logger:   logger,
	}
}

// routes returns the chi router for the server.
func (d *devServer) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(d.logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/*", d.serve)
	return r
}

// warm renders every page once so assets are known before the first
// page request. Failures are logged; the page handler reports them again.
func (d *devServer) warm(ctx context.Context) {
	for output, p := range d.pages {
		if _, err := d.builder.Build(ctx, p, d.strategy); err != nil {
			d.logger.Warn("page does not render", "page", output, "err", err)
		}
	}
}

func (d *devServer) serve(w http.ResponseWriter, r *http.Request) {
	loc := chi.URLParam(r, "*")
	if loc == "" || strings.HasSuffix(loc, "/") {
		loc += "index.html"
	}
	loc = path.Clean(loc)

	if p, ok := d.pages[loc]; ok {
		d.servePage(w, r, p)
		return
	}
	if ref, ok := d.strategy.CollectedAssets().Get(loc); ok {
		d.serveAsset(w, r, loc, ref.Source)
		return
	}
	http.NotFound(w, r)
}

func (d *devServer) servePage(w http.ResponseWriter, r *http.Request, p pipeline.Page) {
	html, err := d.builder.Build(r.Context(), p, d.strategy)
	if err != nil {
		d.logger.Error("page failed", "page", p.Output, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(html)
}

func (d *devServer) serveAsset(w http.ResponseWriter, r *http.Request, loc string, h assetpath.Handle) {
	data, err := h.ReadBytes()
	if err != nil {
		d.logger.Error("asset read failed", "asset", h.Location(), "err", err)
		status := http.StatusInternalServerError
		if errors.Is(err, assetpath.ErrAssetNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	http.ServeContent(w, r, loc, time.Time{}, bytes.NewReader(data))
}

// requestLogger logs one debug record per request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).Round(time.Microsecond),
			)
		})
	}
}

// runServe starts the development server and blocks until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: %v", ErrUnexpectedArgs, positional)
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	warnUnknownEnvVars(env.Stderr)
	setMaxProcs(logger)

	cfg, err := loadSiteConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	if flags.addr != "" {
		cfg.Serve.Addr = flags.addr
	}

	s, err := newSite(cfg, logger)
	if err != nil {
		return err
	}

	d := newDevServer(s.builder, s.pages, logger)
	d.warm(ctx)

	ln, err := net.Listen("tcp", cfg.Serve.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w%s", cfg.Serve.Addr, err, hints.ForServeListen(err.Error()))
	}

	srv := &http.Server{
		Handler:           d.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("serving", "addr", "http://"+ln.Addr().String(), "pages", len(s.pages))

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
