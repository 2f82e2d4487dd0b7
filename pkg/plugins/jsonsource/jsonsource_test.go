package jsonsource

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/graphport/graphport/pkg/errors"
	"github.com/graphport/graphport/pkg/plugin"
)

func TestParse(t *testing.T) {
	valid := `{"nodes":[{"id":"n1","name":"A"},{"id":"n2","name":"B"}],"edges":[{"id":"e1","source":"n1","target":"n2","type":"LINK"}]}`

	tests := []struct {
		name      string
		opts      plugin.Options
		wantNodes int
		wantEdges int
		wantCode  apperrors.Code
	}{
		{
			name:      "InlineData",
			opts:      plugin.Options{OptData: valid},
			wantNodes: 2,
			wantEdges: 1,
		},
		{
			name:     "NoInput",
			opts:     plugin.Options{},
			wantCode: apperrors.ErrCodeInvalidInput,
		},
		{
			name:     "MalformedJSON",
			opts:     plugin.Options{OptData: `{"nodes":`},
			wantCode: apperrors.ErrCodeInvalidInput,
		},
		{
			name:     "EdgeToMissingNode",
			opts:     plugin.Options{OptData: `{"nodes":[{"id":"n1"}],"edges":[{"id":"e2","source":"n1","target":"missing"}]}`},
			wantCode: apperrors.ErrCodeInvalidGraph,
		},
		{
			name:     "MissingFile",
			opts:     plugin.Options{OptPath: "/nonexistent/graph.json"},
			wantCode: apperrors.ErrCodeFileNotFound,
		},
		{
			name:     "UnsupportedEncoding",
			opts:     plugin.Options{OptData: valid, OptEncoding: "latin-1"},
			wantCode: apperrors.ErrCodeUnsupported,
		},
		{
			name:      "EncodingAliasAccepted",
			opts:      plugin.Options{OptData: valid, OptEncoding: "UTF8"},
			wantNodes: 2,
			wantEdges: 1,
		},
	}

	src, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := src.Parse(tt.opts)
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
				t.Fatalf("Parse: %v", err)
			}
			if got := g.NodeCount(); got != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", got, tt.wantNodes)
			}
			if got := g.EdgeCount(); got != tt.wantEdges {
				t.Errorf("edges = %d, want %d", got, tt.wantEdges)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	content := `{"nodes":[{"id":"n1"},{"id":"n2"}],"edges":[{"id":"e1","source":"n1","target":"n2"}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	src, _ := New(nil)
	g, err := src.Parse(plugin.Options{OptPath: path, OptDirected: false})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.Directed() {
		t.Error("directed = true, want false")
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("graph = %d/%d nodes/edges, want 2/1", g.NodeCount(), g.EdgeCount())
	}
}

func TestName(t *testing.T) {
	src, _ := New(nil)
	if got := src.Name(); got != "json_source" {
		t.Errorf("Name() = %q, want json_source", got)
	}
}
