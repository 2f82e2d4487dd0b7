package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	apperrors "github.com/graphport/graphport/pkg/errors"
)

// Reserved wire-format keys. Every other key round-trips through the
// entity's attribute map.
const (
	keyID     = "id"
	keySource = "source"
	keyTarget = "target"
)

// document is the node-link wire shape exchanged with data source plugins.
type document struct {
	Nodes []map[string]any `json:"nodes"`
	Edges []map[string]any `json:"edges"`
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a Graph to JSON bytes in the node-link exchange
// format. Nodes and edges are sorted by ID for deterministic output.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a Graph as JSON to an io.Writer.
// Use MarshalGraph for in-memory serialization or WriteGraphFile for files.
func WriteGraph(g *Graph, w io.Writer) error {
	out := document{
		Nodes: make([]map[string]any, 0, g.NodeCount()),
		Edges: make([]map[string]any, 0, g.EdgeCount()),
	}

	nodes := g.Nodes()
	slices.SortFunc(nodes, func(a, b *Node) int {
		return compareIDs(a.ID, b.ID)
	})
	for _, n := range nodes {
		entry := map[string]any{keyID: n.ID}
		for k, v := range n.Attrs {
			entry[k] = v
		}
		out.Nodes = append(out.Nodes, entry)
	}

	edges := g.Edges()
	slices.SortFunc(edges, func(a, b *Edge) int {
		return compareIDs(a.ID, b.ID)
	})
	for _, e := range edges {
		entry := map[string]any{keyID: e.ID, keySource: e.Source, keyTarget: e.Target}
		for k, v := range e.Attrs {
			entry[k] = v
		}
		out.Edges = append(out.Edges, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes a Graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// UnmarshalGraph decodes node-link JSON bytes into a validated Graph with
// the given directedness. Returns an INVALID_INPUT error for malformed
// entries (missing or non-string id/source/target) and an INVALID_GRAPH
// error for edges referencing nodes that don't exist.
func UnmarshalGraph(data []byte, directed bool) (*Graph, error) {
	return ReadGraph(bytes.NewReader(data), directed)
}

// ReadGraph decodes node-link JSON from an io.Reader into a validated Graph.
func ReadGraph(r io.Reader, directed bool) (*Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode graph JSON")
	}

	b := NewBuilder(directed)

	for i, raw := range doc.Nodes {
		id, err := stringKey(raw, keyID)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "node %d", i)
		}
		b.AddNode(id, attrsExcept(raw, keyID))
	}

	for i, raw := range doc.Edges {
		id, err := stringKey(raw, keyID)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "edge %d", i)
		}
		source, err := stringKey(raw, keySource)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "edge %q", id)
		}
		target, err := stringKey(raw, keyTarget)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "edge %q", id)
		}
		b.AddEdge(id, source, target, attrsExcept(raw, keyID, keySource, keyTarget))
	}

	return b.Build()
}

// ReadGraphFile reads a JSON file and returns the decoded Graph.
func ReadGraphFile(path string, directed bool) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "graph file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f, directed)
}

// =============================================================================
// Internal Helpers
// =============================================================================

func stringKey(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok {
		return "", fmt.Errorf("missing %q field", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%q must be a non-empty string", key)
	}
	return s, nil
}

func attrsExcept(raw map[string]any, reserved ...string) Attrs {
	attrs := make(Attrs, len(raw))
	for k, v := range raw {
		if slices.Contains(reserved, k) {
			continue
		}
		attrs[k] = v
	}
	return attrs
}

func compareIDs(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
