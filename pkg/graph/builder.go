package graph

import (
	apperrors "github.com/graphport/graphport/pkg/errors"
)

// nodeSpec is a staged node insertion.
type nodeSpec struct {
	id    string
	attrs Attrs
}

// edgeSpec is a staged edge insertion.
type edgeSpec struct {
	id     string
	source string
	target string
	attrs  Attrs
}

// Builder accumulates node and edge specifications and defers edge-endpoint
// validation until [Builder.Build]. This lets callers stage edges before the
// nodes they reference, which is the natural order when reading external data.
//
// Duplicate staged ids overwrite silently, keeping the original staging
// position. Staged state is not cleared after building, so calling Build
// again yields an equivalent graph.
//
// Builder is not safe for concurrent use.
type Builder struct {
	directed  bool
	nodes     map[string]nodeSpec
	edges     map[string]edgeSpec
	nodeOrder []string
	edgeOrder []string
}

// NewBuilder creates a builder for a graph with the given directedness.
func NewBuilder(directed bool) *Builder {
	return &Builder{
		directed: directed,
		nodes:    make(map[string]nodeSpec),
		edges:    make(map[string]edgeSpec),
	}
}

// AddNode stages a node specification and returns the builder for chaining.
// No validation happens at staging time.
func (b *Builder) AddNode(id string, attrs Attrs) *Builder {
	if _, exists := b.nodes[id]; !exists {
		b.nodeOrder = append(b.nodeOrder, id)
	}
	b.nodes[id] = nodeSpec{id: id, attrs: attrs.Clone()}
	return b
}

// AddEdge stages an edge specification and returns the builder for chaining.
// Endpoint existence is not checked until Build.
func (b *Builder) AddEdge(id, source, target string, attrs Attrs) *Builder {
	if _, exists := b.edges[id]; !exists {
		b.edgeOrder = append(b.edgeOrder, id)
	}
	b.edges[id] = edgeSpec{id: id, source: source, target: target, attrs: attrs.Clone()}
	return b
}

// NodeCount returns the number of staged nodes.
func (b *Builder) NodeCount() int { return len(b.nodes) }

// EdgeCount returns the number of staged edges.
func (b *Builder) EdgeCount() int { return len(b.edges) }

// Build replays the staged insertions — nodes first, then edges — into a
// fresh Graph. The first staged entry that fails validation aborts the build
// with an INVALID_GRAPH error naming the offending node or edge; the error
// wraps the underlying sentinel (e.g. [ErrUnknownTargetNode]) for errors.Is
// checks.
func (b *Builder) Build() (*Graph, error) {
	g := New(b.directed)

	for _, id := range b.nodeOrder {
		spec := b.nodes[id]
		if err := g.AddNode(Node{ID: spec.id, Attrs: spec.attrs.Clone()}); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidGraph, err, "add node %q", spec.id)
		}
	}

	for _, id := range b.edgeOrder {
		spec := b.edges[id]
		e := Edge{ID: spec.id, Source: spec.source, Target: spec.target, Attrs: spec.attrs.Clone()}
		if err := g.AddEdge(e); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidGraph, err, "add edge %q", spec.id)
		}
	}

	return g, nil
}
