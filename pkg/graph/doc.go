// Package graph provides the in-memory graph model shared by every plugin.
//
// # Overview
//
// Graphport separates graph ingestion from graph presentation: data source
// plugins produce a [Graph], visualizer plugins consume one. This package is
// the contract surface between the two — a directed-or-undirected collection
// of uniquely identified nodes and edges, each carrying a free-form attribute
// map.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [Graph.AddNode], and edges with
// [Graph.AddEdge]. Edges may only connect existing nodes:
//
//	g := graph.New(true)
//	g.AddNode(graph.Node{ID: "n1", Attrs: graph.Attrs{"name": "A"}})
//	g.AddNode(graph.Node{ID: "n2", Attrs: graph.Attrs{"name": "B"}})
//	g.AddEdge(graph.Edge{ID: "e1", Source: "n1", Target: "n2"})
//
// Inserting a node or edge under an id that already exists overwrites the
// previous entry (last-write-wins); it is never an error.
//
// # Builder
//
// [Builder] stages node and edge specifications without validating edge
// endpoints, then replays them — nodes first, then edges — into a fresh
// Graph at [Builder.Build] time. Staging an edge whose endpoint was never
// staged only fails at build:
//
//	g, err := graph.NewBuilder(true).
//		AddNode("n1", nil).
//		AddNode("n2", nil).
//		AddEdge("e1", "n1", "n2", graph.Attrs{"type": "LINK"}).
//		Build()
//
// A Builder is reusable: staged state is kept after Build, so building again
// yields an equivalent graph.
//
// # Wire Format
//
// [MarshalGraph] and [UnmarshalGraph] implement the node-link JSON exchange
// shape consumed and produced by data source plugins:
//
//	{
//	  "nodes": [{"id": "n1", "name": "A"}],
//	  "edges": [{"id": "e1", "source": "n1", "target": "n2", "type": "LINK"}]
//	}
//
// Every key other than id (and source/target for edges) round-trips through
// the entity's attribute map.
//
// # Concurrency
//
// Graph and Builder instances are not safe for concurrent use. Callers must
// synchronize access if multiple goroutines mutate the same instance.
package graph
