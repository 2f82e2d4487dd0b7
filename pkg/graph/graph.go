package graph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrInvalidEdgeID is returned by [Graph.AddEdge] when the edge ID is
	// empty. All edges must have non-empty identifiers.
	ErrInvalidEdgeID = errors.New("edge ID must not be empty")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the Source
	// node does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the Target
	// node does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Attrs stores arbitrary key-value pairs attached to a node or an edge.
// Attribute maps are never nil after insertion - they are automatically
// initialized to empty maps when needed.
type Attrs map[string]any

// Clone returns a shallow copy of the attribute map, or nil for a nil map.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Node represents a vertex in the graph. The ID is unique within a Graph;
// inserting a second node with the same ID replaces the first.
//
// The zero value is not usable - ID must be set before adding to a Graph.
type Node struct {
	ID    string // Unique identifier
	Attrs Attrs  // Arbitrary key-value attributes (never nil after AddNode)
}

// Edge represents a connection between two nodes, directed when the owning
// graph is directed. Source and Target reference node IDs that must exist
// in the graph at insertion time.
type Edge struct {
	ID     string // Unique identifier
	Source string // Source node ID
	Target string // Target node ID
	Attrs  Attrs  // Arbitrary key-value attributes (never nil after AddEdge)
}

// Graph is a collection of uniquely identified nodes and edges. The directed
// flag is fixed at construction. A Graph exclusively owns its node and edge
// collections; entities are never shared across Graph instances.
//
// The zero value is not usable - use [New] to create a valid Graph.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	directed  bool
	nodes     map[string]*Node
	edges     map[string]*Edge
	nodeOrder []string
	edgeOrder []string
}

// New creates an empty graph. The directed flag is immutable afterwards.
func New(directed bool) *Graph {
	return &Graph{
		directed: directed,
		nodes:    make(map[string]*Node),
		edges:    make(map[string]*Edge),
	}
}

// Directed reports whether the graph was constructed as directed.
func (g *Graph) Directed() bool { return g.directed }

// AddNode inserts a node into the graph. Returns ErrInvalidNodeID if the
// node ID is empty. Inserting under an existing ID overwrites the previous
// node (last-write-wins) and keeps its original insertion position.
// The node's Attrs field is initialized to an empty map if nil.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if n.Attrs == nil {
		n.Attrs = Attrs{}
	}
	if _, exists := g.nodes[n.ID]; !exists {
		g.nodeOrder = append(g.nodeOrder, n.ID)
	}
	g.nodes[n.ID] = &n
	return nil
}

// AddEdge inserts an edge into the graph. Returns ErrInvalidEdgeID if the
// edge ID is empty, ErrUnknownSourceNode if the Source node doesn't exist,
// or ErrUnknownTargetNode if the Target node doesn't exist. On failure the
// edge set is unchanged. Inserting under an existing ID overwrites the
// previous edge (last-write-wins). The edge's Attrs field is initialized
// to an empty map if nil.
func (g *Graph) AddEdge(e Edge) error {
	if e.ID == "" {
		return ErrInvalidEdgeID
	}
	if _, ok := g.nodes[e.Source]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.Target]; !ok {
		return ErrUnknownTargetNode
	}
	if e.Attrs == nil {
		e.Attrs = Attrs{}
	}
	if _, exists := g.edges[e.ID]; !exists {
		g.edgeOrder = append(g.edgeOrder, e.ID)
	}
	g.edges[e.ID] = &e
	return nil
}

// Node returns the node with the given ID and true, or nil and false if not
// found. A miss is not an error. The returned pointer refers to the actual
// node in the graph, so attribute modifications affect the graph.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Edge returns the edge with the given ID and true, or nil and false if not
// found.
func (g *Graph) Edge(id string) (*Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

// Nodes returns a snapshot of all nodes in insertion order.
// The slice is freshly allocated; the node pointers are shared with the graph.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns a snapshot of all edges in insertion order.
// The slice is freshly allocated; the edge pointers are shared with the graph.
func (g *Graph) Edges() []*Edge {
	edges := make([]*Edge, 0, len(g.edgeOrder))
	for _, id := range g.edgeOrder {
		edges = append(edges, g.edges[id])
	}
	return edges
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// NodeIDs returns all node IDs in insertion order.
func (g *Graph) NodeIDs() []string { return slices.Clone(g.nodeOrder) }
