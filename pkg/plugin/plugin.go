// Package plugin defines the capability contracts every graphport plugin
// satisfies.
//
// Two capabilities exist: [DataSource] turns external data into a
// [graph.Graph], and [Visualizer] turns a graph into a renderable string.
// A type satisfies a capability purely by implementing its methods; a single
// type may satisfy both. Plugins are matched against these interfaces by the
// registry when their factories are activated during discovery.
package plugin

import (
	"github.com/graphport/graphport/pkg/graph"
)

// DataSource produces a graph from arbitrary parse options.
//
// Parse receives a free-form option set — the contract does not fix option
// names beyond that. A JSON source might accept "path", "directed", and
// "encoding"; other sources define their own. Malformed input fails with an
// ingestion-specific error, never a partially built graph.
type DataSource interface {
	// Parse ingests external data described by opts and returns the
	// resulting graph.
	Parse(opts Options) (*graph.Graph, error)

	// Name returns the stable, non-empty identifier of the data source,
	// used for diagnostics.
	Name() string
}

// Visualizer renders a graph into a string artifact.
//
// Render is a pure function of the graph: no I/O side effects. The returned
// string is opaque markup (SVG, DOT, HTML, ...) that the platform passes
// through uninterpreted.
type Visualizer interface {
	// Render produces the visual representation of g.
	Render(g *graph.Graph) (string, error)

	// Name returns the stable, non-empty identifier of the visualizer,
	// used for diagnostics.
	Name() string
}
