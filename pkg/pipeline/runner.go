package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bleviet/ipcraft/pkg/amap"
	"github.com/bleviet/ipcraft/pkg/amap/layout"
	"github.com/bleviet/ipcraft/pkg/cache"
	"github.com/bleviet/ipcraft/pkg/document"
	"github.com/bleviet/ipcraft/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete load → validate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	doc, err := r.Load(ctx, opts.Path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)

	m, ok := doc.Map(opts.MapIndex)
	if !ok {
		return nil, fmt.Errorf("document has no memory map at index %d", opts.MapIndex)
	}
	result.Stats.BlockCount = len(m.Blocks)
	for _, blk := range m.Blocks {
		result.Stats.RegisterCount += len(blk.Registers)
	}

	data, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	result.DocHash = cache.Hash(data)

	r.Logger.Info("loaded document",
		"path", opts.Path,
		"blocks", result.Stats.BlockCount,
		"registers", result.Stats.RegisterCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Validate
	validateStart := time.Now()
	result.Violations = Validate(ctx, m)
	result.Stats.ValidateTime = time.Since(validateStart)

	if len(result.Violations) > 0 {
		r.Logger.Warn("layout violations found", "count", len(result.Violations))
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, m, result.DocHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads and decodes a document, emitting observability events.
func (r *Runner) Load(ctx context.Context, path string) (*document.Document, error) {
	observability.Pipeline().OnLoadStart(ctx, path)
	start := time.Now()

	doc, err := document.Load(path)

	blocks := 0
	if doc != nil {
		for _, m := range doc.Maps {
			blocks += len(m.Blocks)
		}
	}
	observability.Pipeline().OnLoadComplete(ctx, path, blocks, time.Since(start), err)
	return doc, err
}

// Validate collects layout violations for every level of the map.
func Validate(ctx context.Context, m amap.MemoryMap) []error {
	observability.Pipeline().OnLayoutStart(ctx, "validate", len(m.Blocks))
	start := time.Now()

	var violations []error
	violations = append(violations, layout.Violations(layout.Blocks, m.Blocks, "block", "byte")...)
	for _, blk := range m.Blocks {
		violations = append(violations, layout.Violations(layout.Registers, blk.Registers, "register", "byte")...)
		for _, reg := range blk.Registers {
			violations = append(violations, layout.RegisterViolations(reg)...)
		}
	}

	observability.Pipeline().OnLayoutComplete(ctx, "validate", time.Since(start), nil)
	return violations
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, m amap.MemoryMap, docHash string, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	r.applyLogger(&opts)

	// Try to get all formats from cache (unless refresh requested).
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		allCached := true
		for _, format := range opts.Formats {
			key := cache.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	// Render all formats.
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := renderArtifacts(ctx, m, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format.
	for format, data := range rendered {
		key := cache.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, m amap.MemoryMap, docHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, m, docHash, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
