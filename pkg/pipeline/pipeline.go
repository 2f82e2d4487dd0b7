// Package pipeline provides the parse → render pipeline over registered
// plugins.
//
// The pipeline resolves a data source and a visualizer from the plugin
// registry by qualified key, ingests the graph, and renders the artifact,
// with content-addressed caching of rendered output. Centralizing this flow
// keeps the CLI subcommands thin and gives every entry point identical
// behavior.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(reg, c, logger)
//	opts := pipeline.Options{
//	    Source:     "jsonsource.Source",
//	    SourceOpts: plugin.Options{"path": "graph.json"},
//	    Visualizer: "dotviz.Visualizer",
//	}
//	result, err := runner.Execute(ctx, opts)
package pipeline

import (
	"time"

	apperrors "github.com/graphport/graphport/pkg/errors"
	"github.com/graphport/graphport/pkg/graph"
	"github.com/graphport/graphport/pkg/plugin"
)

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Source is the qualified registry key of the data source.
	Source string `json:"source"`

	// SourceOpts are passed to the data source's Parse call. Constructor
	// options are the same map; bundled plugins take no constructor state.
	SourceOpts plugin.Options `json:"source_opts,omitempty"`

	// Visualizer is the qualified registry key of the visualizer. Empty
	// means parse-only: Execute stops after ingestion.
	Visualizer string `json:"visualizer,omitempty"`

	// VizOpts are passed to the visualizer constructor.
	VizOpts plugin.Options `json:"viz_opts,omitempty"`

	// NoCache disables artifact caching for this run.
	NoCache bool `json:"no_cache,omitempty"`
}

// Validate checks required fields. Source is always required; the
// visualizer key, when present, must be well-formed.
func (o *Options) Validate() error {
	if err := apperrors.ValidateRegistryKey(o.Source); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "source key")
	}
	if o.Visualizer != "" {
		if err := apperrors.ValidateRegistryKey(o.Visualizer); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "visualizer key")
		}
	}
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the ingested graph.
	Graph *graph.Graph

	// GraphHash is the content hash of the graph's canonical JSON.
	GraphHash string

	// Artifact is the rendered output. Empty for parse-only runs.
	Artifact string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the artifact came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	ParseTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether the artifact came from cache
}
