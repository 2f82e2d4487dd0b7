// Package dotviz provides the bundled Graphviz DOT visualizer plugin.
//
// Render emits DOT markup for the graph; [RenderSVG] converts that markup
// to SVG with Graphviz for callers that want a displayable artifact.
package dotviz

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/graphport/graphport/pkg/graph"
	"github.com/graphport/graphport/pkg/plugin"
	"github.com/graphport/graphport/pkg/registry"
)

// ModuleName is the plugin package name used in registry keys.
const ModuleName = "dotviz"

// PluginName is the stable identifier returned by [Visualizer.Name].
const PluginName = "dot_visualizer"

// OptDetailed enables attribute listings in node labels.
const OptDetailed = "detailed"

// Visualizer renders graphs as Graphviz DOT markup.
type Visualizer struct {
	detailed bool
}

// New constructs the visualizer. The "detailed" option includes every node
// attribute in its label; by default only the display label is shown.
func New(opts plugin.Options) (*Visualizer, error) {
	detailed, err := opts.Bool(OptDetailed, false)
	if err != nil {
		return nil, err
	}
	return &Visualizer{detailed: detailed}, nil
}

// Name returns the stable plugin identifier.
func (v *Visualizer) Name() string { return PluginName }

// Render converts the graph to DOT format. Directed graphs become digraphs
// with arrow edges; undirected graphs use plain edges. Output is a pure
// function of the graph: nodes and edges are emitted sorted by ID.
func (v *Visualizer) Render(g *graph.Graph) (string, error) {
	keyword, op := "graph", "--"
	if g.Directed() {
		keyword, op = "digraph", "->"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", keyword)
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	nodes := g.Nodes()
	slices.SortFunc(nodes, func(a, b *graph.Node) int { return strings.Compare(a.ID, b.ID) })
	for _, n := range nodes {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, v.label(n))
	}

	buf.WriteString("\n")
	edges := g.Edges()
	slices.SortFunc(edges, func(a, b *graph.Edge) int { return strings.Compare(a.ID, b.ID) })
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q %s %q;\n", e.Source, op, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// label builds the node label: the "label" or "name" attribute when present,
// otherwise the ID; detailed mode appends every attribute sorted by key.
func (v *Visualizer) label(n *graph.Node) string {
	display := n.ID
	if s, ok := n.Attrs["label"].(string); ok && s != "" {
		display = s
	} else if s, ok := n.Attrs["name"].(string); ok && s != "" {
		display = s
	}

	if !v.detailed || len(n.Attrs) == 0 {
		return display
	}

	parts := make([]string, 0, len(n.Attrs))
	for _, k := range slices.Sorted(maps.Keys(n.Attrs)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Attrs[k]))
	}
	return display + "\n" + strings.Join(parts, "\n")
}

func init() {
	registry.Register(registry.Factory{
		Module:    ModuleName,
		Type:      "Visualizer",
		Prototype: &Visualizer{},
		New: func(opts plugin.Options) (any, error) {
			return New(opts)
		},
	})
}
