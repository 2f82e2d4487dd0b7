package graph

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/graphport/graphport/pkg/errors"
)

func TestUnmarshalGraph(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNodes int
		wantEdges int
		wantCode  apperrors.Code
		check     func(t *testing.T, g *Graph)
	}{
		{
			name:  "Valid",
			input: `{"nodes":[{"id":"n1","name":"A"},{"id":"n2","name":"B"}],"edges":[{"id":"e1","source":"n1","target":"n2","type":"LINK"}]}`,

			wantNodes: 2,
			wantEdges: 1,
			check: func(t *testing.T, g *Graph) {
				n, ok := g.Node("n1")
				if !ok {
					t.Fatal("node n1 not found")
				}
				if n.Attrs["name"] != "A" {
					t.Errorf("n1 name = %v, want A", n.Attrs["name"])
				}
				e, ok := g.Edge("e1")
				if !ok {
					t.Fatal("edge e1 not found")
				}
				if e.Attrs["type"] != "LINK" {
					t.Errorf("e1 type = %v, want LINK", e.Attrs["type"])
				}
				if _, reserved := e.Attrs["source"]; reserved {
					t.Error("source must not be copied into attributes")
				}
			},
		},
		{
			name:      "Empty",
			input:     `{"nodes":[],"edges":[]}`,
			wantNodes: 0,
			wantEdges: 0,
		},
		{
			name:     "MalformedJSON",
			input:    `{"nodes":`,
			wantCode: apperrors.ErrCodeInvalidInput,
		},
		{
			name:     "NodeWithoutID",
			input:    `{"nodes":[{"name":"A"}],"edges":[]}`,
			wantCode: apperrors.ErrCodeInvalidInput,
		},
		{
			name:     "EdgeWithoutTarget",
			input:    `{"nodes":[{"id":"n1"}],"edges":[{"id":"e1","source":"n1"}]}`,
			wantCode: apperrors.ErrCodeInvalidInput,
		},
		{
			name:     "EdgeToMissingNode",
			input:    `{"nodes":[{"id":"n1"}],"edges":[{"id":"e2","source":"n1","target":"missing"}]}`,
			wantCode: apperrors.ErrCodeInvalidGraph,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := UnmarshalGraph([]byte(tt.input), true)
			if tt.wantCode != "" {
				if err == nil {
					t.Fatal("expected error")
				}
				if got := apperrors.GetCode(err); got != tt.wantCode {
					t.Fatalf("code = %v, want %v (err: %v)", got, tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalGraph: %v", err)
			}
			if got := g.NodeCount(); got != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", got, tt.wantNodes)
			}
			if got := g.EdgeCount(); got != tt.wantEdges {
				t.Errorf("edges = %d, want %d", got, tt.wantEdges)
			}
			if tt.check != nil {
				tt.check(t, g)
			}
		})
	}
}

func TestUnmarshalGraphNamesOffendingEdge(t *testing.T) {
	input := `{"nodes":[{"id":"n1"}],"edges":[{"id":"e2","source":"n1","target":"missing"}]}`
	_, err := UnmarshalGraph([]byte(input), true)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `"e2"`) {
		t.Errorf("error %q does not identify edge e2", err)
	}
}

func TestMarshalGraphRoundTrip(t *testing.T) {
	g := New(true)
	g.AddNode(Node{ID: "b", Attrs: Attrs{"weight": 2.0}})
	g.AddNode(Node{ID: "a", Attrs: Attrs{"label": "first"}})
	g.AddEdge(Edge{ID: "e1", Source: "a", Target: "b", Attrs: Attrs{"type": "LINK"}})

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}

	// Output is sorted by ID for determinism.
	var doc struct {
		Nodes []map[string]any `json:"nodes"`
		Edges []map[string]any `json:"edges"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if doc.Nodes[0]["id"] != "a" || doc.Nodes[1]["id"] != "b" {
		t.Errorf("nodes not sorted by id: %v", doc.Nodes)
	}

	back, err := UnmarshalGraph(data, true)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if back.NodeCount() != 2 || back.EdgeCount() != 1 {
		t.Errorf("round trip = %d/%d nodes/edges, want 2/1", back.NodeCount(), back.EdgeCount())
	}
	n, _ := back.Node("a")
	if n.Attrs["label"] != "first" {
		t.Errorf("label = %v, want first", n.Attrs["label"])
	}
}

func TestReadGraphFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.json")
	content := `{"nodes":[{"id":"n1"}],"edges":[]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	g, err := ReadGraphFile(path, false)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if g.Directed() {
		t.Error("graph should be undirected")
	}
	if g.NodeCount() != 1 {
		t.Errorf("nodes = %d, want 1", g.NodeCount())
	}

	_, err = ReadGraphFile(filepath.Join(dir, "nope.json"), false)
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("missing file code = %v, want FILE_NOT_FOUND", apperrors.GetCode(err))
	}
}

func TestWriteGraphFile(t *testing.T) {
	g := New(true)
	g.AddNode(Node{ID: "x"})

	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}

	back, err := ReadGraphFile(path, true)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if back.NodeCount() != 1 {
		t.Errorf("nodes = %d, want 1", back.NodeCount())
	}
}
