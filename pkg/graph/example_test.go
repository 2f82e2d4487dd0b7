package graph_test

import (
	"fmt"

	"github.com/graphport/graphport/pkg/graph"
)

func ExampleGraph_basic() {
	// Create a small directed graph: n1 → n2
	g := graph.New(true)
	_ = g.AddNode(graph.Node{ID: "n1", Attrs: graph.Attrs{"name": "A"}})
	_ = g.AddNode(graph.Node{ID: "n2", Attrs: graph.Attrs{"name": "B"}})
	_ = g.AddEdge(graph.Edge{ID: "e1", Source: "n1", Target: "n2"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	// Output:
	// Nodes: 2
	// Edges: 1
}

func ExampleBuilder() {
	// Edges can be staged before the nodes they reference;
	// validation only happens at Build.
	g, err := graph.NewBuilder(true).
		AddEdge("e1", "n1", "n2", graph.Attrs{"type": "LINK"}).
		AddNode("n1", nil).
		AddNode("n2", nil).
		Build()
	if err != nil {
		fmt.Println("build failed:", err)
		return
	}

	e, _ := g.Edge("e1")
	fmt.Println("Edge type:", e.Attrs["type"])
	// Output:
	// Edge type: LINK
}
