package main

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/alnah/go-assetpath"
	"github.com/alnah/go-assetpath/internal/fileutil"
	"github.com/alnah/go-assetpath/internal/pipeline"
)

// PageBuilder renders one page for its output location.
type PageBuilder interface {
	Build(ctx context.Context, p pipeline.Page, strategy assetpath.Strategy) ([]byte, error)
}

// Compile-time interface implementation check.
var _ PageBuilder = (*pipeline.Builder)(nil)

// PageResult holds the outcome of a single page build.
type PageResult struct {
	Output   string // Location relative to the output directory
	Path     string // File written on disk
	Err      error
	Duration time.Duration
}

// buildBatch renders pages concurrently and writes them under outputDir.
// All workers share strategy so its collected set covers the whole site.
// Results keep the order of pages.
func buildBatch(ctx context.Context, b PageBuilder, pages []pipeline.Page, outputDir string, strategy assetpath.Strategy, workers int) []PageResult {
	if len(pages) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(pages) {
		concurrency = len(pages)
	}

	results := make([]PageResult, len(pages))
	var wg sync.WaitGroup
	jobs := make(chan int, len(pages))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = PageResult{
						Output: pages[idx].Output,
						Err:    ctx.Err(),
					}
					continue
				}
				results[idx] = buildPage(ctx, b, pages[idx], outputDir, strategy)
			}
		}()
	}

	for i := range pages {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// buildPage renders a single page and writes it atomically.
func buildPage(ctx context.Context, b PageBuilder, p pipeline.Page, outputDir string, strategy assetpath.Strategy) PageResult {
	start := time.Now()
	result := PageResult{Output: p.Output}

	dest, err := fileutil.JoinWithin(outputDir, p.Output)
	if err != nil {
		result.Err = fmt.Errorf("page %s: %w", p.Output, err)
		result.Duration = time.Since(start)
		return result
	}
	result.Path = dest

	html, err := b.Build(ctx, p, strategy)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if err := fileutil.WriteFileAtomic(dest, html); err != nil {
		result.Err = fmt.Errorf("%w: %s: %w", ErrWritePage, dest, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Duration = time.Since(start)
	return result
}

// resolvePoolSize determines the number of page builders.
// Priority: explicit flag > env > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers, envWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if envWorkers > 0 {
		return envWorkers
	}

	// Rendering is CPU-bound; GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0)

	// Minimum 1, maximum 16
	if n < 1 {
		return 1
	}
	if n > 16 {
		return 16
	}
	return n
}

// ResultSummary holds the count of succeeded and failed pages.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed pages.
func countResults(results []PageResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}
