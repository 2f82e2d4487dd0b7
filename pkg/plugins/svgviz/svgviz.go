// Package svgviz provides the bundled grid-layout SVG visualizer plugin.
//
// Nodes are placed on a fixed grid as labeled circles, edges are drawn as
// straight lines between their endpoints, and the whole artifact is an
// HTML fragment with inline CSS that can be embedded directly in a page.
package svgviz

import (
	"fmt"
	"html"
	"strings"

	"github.com/graphport/graphport/pkg/graph"
	"github.com/graphport/graphport/pkg/plugin"
	"github.com/graphport/graphport/pkg/registry"
)

// ModuleName is the plugin package name used in registry keys.
const ModuleName = "svgviz"

// PluginName is the stable identifier returned by [Visualizer.Name].
const PluginName = "simple_visualizer"

// Layout constants. The grid wraps after gridCols nodes and every node
// occupies a nodeSpacing square; the canvas never shrinks below the
// minimum dimensions so small graphs stay readable.
const (
	gridCols       = 5
	nodeSpacing    = 200
	margin         = 100
	nodeRadius     = 25
	minWidth       = 800
	minHeight      = 600
	maxLabelLength = 15
)

// Visualizer renders graphs as a self-contained HTML/SVG fragment.
type Visualizer struct{}

// New constructs the visualizer. It accepts no constructor options.
func New(opts plugin.Options) (*Visualizer, error) {
	return &Visualizer{}, nil
}

// Name returns the stable plugin identifier.
func (v *Visualizer) Name() string { return PluginName }

// Render produces the HTML fragment: an inline stylesheet followed by an
// SVG with edges drawn first so nodes sit on top. Output is a pure
// function of the graph; nodes keep their insertion order on the grid.
func (v *Visualizer) Render(g *graph.Graph) (string, error) {
	var b strings.Builder
	b.WriteString(styles)

	width, height := dimensions(g)
	positions := nodePositions(g)

	b.WriteString(`<div class="graph-container">` + "\n")
	fmt.Fprintf(&b, `<svg class="graph-svg" viewBox="0 0 %d %d" preserveAspectRatio="xMidYMid meet">`+"\n", width, height)

	for _, e := range g.Edges() {
		writeEdge(&b, e, positions)
	}
	for _, n := range g.Nodes() {
		p := positions[n.ID]
		writeNode(&b, n, p[0], p[1])
	}

	b.WriteString("</svg>\n</div>")
	return b.String(), nil
}

// dimensions sizes the canvas from the node count, clamped to the minimums.
func dimensions(g *graph.Graph) (int, int) {
	rows := (g.NodeCount() + gridCols - 1) / gridCols

	width := max(minWidth, margin*2+gridCols*nodeSpacing)
	height := max(minHeight, margin*2+rows*nodeSpacing)
	return width, height
}

// nodePositions lays nodes out row-major on the grid in insertion order.
func nodePositions(g *graph.Graph) map[string][2]int {
	positions := make(map[string][2]int, g.NodeCount())
	for i, n := range g.Nodes() {
		x := margin + (i%gridCols)*nodeSpacing
		y := margin + (i/gridCols)*nodeSpacing
		positions[n.ID] = [2]int{x, y}
	}
	return positions
}

func writeNode(b *strings.Builder, n *graph.Node, x, y int) {
	fmt.Fprintf(b, `<g class="node" data-node-id="%s">`+"\n", html.EscapeString(n.ID))
	fmt.Fprintf(b, `  <circle class="node-circle" cx="%d" cy="%d" r="%d" />`+"\n", x, y, nodeRadius)
	fmt.Fprintf(b, `  <text class="node-label" x="%d" y="%d">%s</text>`+"\n", x, y, html.EscapeString(nodeLabel(n)))
	b.WriteString("</g>\n")
}

func writeEdge(b *strings.Builder, e *graph.Edge, positions map[string][2]int) {
	src, ok := positions[e.Source]
	if !ok {
		return
	}
	dst, ok := positions[e.Target]
	if !ok {
		return
	}

	midX := (src[0] + dst[0]) / 2
	midY := (src[1] + dst[1]) / 2
	label, _ := e.Attrs["type"].(string)

	fmt.Fprintf(b, `<g class="edge" data-edge-id="%s">`+"\n", html.EscapeString(e.ID))
	fmt.Fprintf(b, `  <line class="edge-line" x1="%d" y1="%d" x2="%d" y2="%d" />`+"\n", src[0], src[1], dst[0], dst[1])
	fmt.Fprintf(b, `  <text class="edge-label" x="%d" y="%d">%s</text>`+"\n", midX, midY, html.EscapeString(label))
	b.WriteString("</g>\n")
}

// nodeLabel prefers the "name" attribute over the ID and truncates long
// labels with an ellipsis so they fit inside the circle. Truncation counts
// runes, not bytes, so multi-byte labels are never cut mid-character.
func nodeLabel(n *graph.Node) string {
	label := n.ID
	if s, ok := n.Attrs["name"].(string); ok && s != "" {
		label = s
	}
	if runes := []rune(label); len(runes) > maxLabelLength {
		label = string(runes[:maxLabelLength-3]) + "..."
	}
	return label
}

const styles = `<style>
.graph-container {
  width: 100%;
  height: 600px;
  border: 1px solid #ccc;
  background-color: #f9f9f9;
  overflow: auto;
  position: relative;
}
.graph-svg {
  width: 100%;
  height: 100%;
  min-width: 800px;
  min-height: 600px;
}
.node-circle {
  fill: #4CAF50;
  stroke: #333;
  stroke-width: 2;
  transition: fill 0.3s;
}
.node-circle:hover {
  fill: #45a049;
  cursor: pointer;
}
.node-label {
  fill: white;
  font-family: Arial, sans-serif;
  font-size: 12px;
  text-anchor: middle;
  dominant-baseline: middle;
  pointer-events: none;
}
.edge-line {
  stroke: #999;
  stroke-width: 2;
  stroke-linecap: round;
}
.edge-label {
  fill: #666;
  font-family: Arial, sans-serif;
  font-size: 10px;
  text-anchor: middle;
  paint-order: stroke;
  stroke: white;
  stroke-width: 2px;
  stroke-linecap: round;
  stroke-linejoin: round;
}
</style>
`

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
