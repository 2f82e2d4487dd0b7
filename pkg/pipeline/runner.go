package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/graphport/graphport/pkg/cache"
	apperrors "github.com/graphport/graphport/pkg/errors"
	"github.com/graphport/graphport/pkg/graph"
	"github.com/graphport/graphport/pkg/observability"
	"github.com/graphport/graphport/pkg/registry"
)

// Runner executes the pipeline against a plugin registry with artifact
// caching.
//
// The Runner is stateless except for the registry, cache, and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Registry *registry.Registry
	Cache    cache.Cache
	Logger   *log.Logger
}

// NewRunner creates a runner over the given registry.
// If c is nil, a NullCache is used (caching disabled).
// If logger is nil, the default logger is used.
func NewRunner(reg *registry.Registry, c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Registry: reg,
		Cache:    c,
		Logger:   logger,
	}
}

// Execute runs the complete parse → render pipeline. With an empty
// visualizer key it stops after ingestion and returns the parse-only
// result.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	g, err := r.Parse(ctx, runID, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	// Compute graph hash for cache keys and diagnostics
	if data, err := graph.MarshalGraph(g); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	r.Logger.Info("parsed graph",
		"run", runID,
		"source", opts.Source,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.ParseTime.Round(time.Millisecond))

	if opts.Visualizer == "" {
		return result, nil
	}

	// Stage 2: Render
	renderStart := time.Now()
	artifact, hit, err := r.render(ctx, runID, result.GraphHash, g, opts)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered artifact",
		"run", runID,
		"visualizer", opts.Visualizer,
		"bytes", len(artifact),
		"cached", hit,
		"duration", result.Stats.RenderTime.Round(time.Millisecond))

	return result, nil
}

// Parse resolves the data source and ingests the graph. The context is
// checked before the (synchronous) plugin call so cancelled runs fail fast.
func (r *Runner) Parse(ctx context.Context, runID string, opts Options) (*graph.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(runID, opts.Source)
	start := time.Now()

	src, ok := r.Registry.NewDataSource(opts.Source, opts.SourceOpts)
	if !ok {
		err := apperrors.New(apperrors.ErrCodeNotFound, "no usable data source %q", opts.Source)
		hooks.OnParseComplete(runID, opts.Source, 0, time.Since(start), err)
		return nil, err
	}

	g, err := src.Parse(opts.SourceOpts)
	if err != nil {
		hooks.OnParseComplete(runID, opts.Source, 0, time.Since(start), err)
		return nil, wrapPluginErr(err, "parse with %q", opts.Source)
	}

	hooks.OnParseComplete(runID, opts.Source, g.NodeCount(), time.Since(start), nil)
	return g, nil
}

// render resolves the visualizer and produces the artifact, serving a
// cached copy when the same graph was already rendered by the same
// visualizer.
func (r *Runner) render(ctx context.Context, runID, graphHash string, g *graph.Graph, opts Options) (string, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(runID, opts.Visualizer)
	start := time.Now()

	cacheKey := cache.ArtifactKey(graphHash, opts.Visualizer)
	if !opts.NoCache && graphHash != "" {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit("artifact")
			hooks.OnRenderComplete(runID, opts.Visualizer, len(data), time.Since(start), nil)
			return string(data), true, nil
		}
		observability.Cache().OnCacheMiss("artifact")
	}

	viz, ok := r.Registry.NewVisualizer(opts.Visualizer, opts.VizOpts)
	if !ok {
		err := apperrors.New(apperrors.ErrCodeNotFound, "no usable visualizer %q", opts.Visualizer)
		hooks.OnRenderComplete(runID, opts.Visualizer, 0, time.Since(start), err)
		return "", false, err
	}

	artifact, err := viz.Render(g)
	if err != nil {
		hooks.OnRenderComplete(runID, opts.Visualizer, 0, time.Since(start), err)
		return "", false, wrapPluginErr(err, "render with %q", opts.Visualizer)
	}

	if !opts.NoCache && graphHash != "" {
		if err := r.Cache.Set(ctx, cacheKey, []byte(artifact), cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet("artifact", len(artifact))
		}
	}

	hooks.OnRenderComplete(runID, opts.Visualizer, len(artifact), time.Since(start), nil)
	return artifact, false, nil
}

// wrapPluginErr wraps a plugin failure, preserving its error code when it
// has one. Plain errors from misbehaving plugins file under INTERNAL_ERROR
// so the wrapped error always carries a non-empty code.
func wrapPluginErr(err error, format string, args ...any) error {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	return apperrors.Wrap(code, err, format, args...)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
