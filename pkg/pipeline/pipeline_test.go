package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/graphport/graphport/pkg/cache"
	apperrors "github.com/graphport/graphport/pkg/errors"
	"github.com/graphport/graphport/pkg/graph"
	"github.com/graphport/graphport/pkg/plugin"
	"github.com/graphport/graphport/pkg/registry"
)

type stubSource struct {
	err error
}

func (s *stubSource) Name() string { return "stub_source" }

func (s *stubSource) Parse(opts plugin.Options) (*graph.Graph, error) {
	if s.err != nil {
		return nil, s.err
	}
	return graph.NewBuilder(true).
		AddNode("n1", nil).
		AddNode("n2", nil).
		AddEdge("e1", "n1", "n2", nil).
		Build()
}

type stubViz struct {
	renders int
}

func (v *stubViz) Name() string { return "stub_viz" }

func (v *stubViz) Render(g *graph.Graph) (string, error) {
	v.renders++
	return "artifact", nil
}

// testRegistry builds a registry over a temp plugin root containing one
// marked package backed by a private catalog.
func testRegistry(t *testing.T, factories ...registry.Factory) *registry.Registry {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "stub")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	manifest := `package = "stub"` + "\n"
	if err := os.WriteFile(filepath.Join(dir, registry.MarkerFile), []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}

	catalog := registry.NewCatalog()
	for _, f := range factories {
		if err := catalog.Register(f); err != nil {
			t.Fatal(err)
		}
	}
	return registry.New(root, catalog, nil)
}

func sourceFactory(src *stubSource) registry.Factory {
	return registry.Factory{
		Module:    "stub",
		Type:      "Source",
		Prototype: &stubSource{},
		New:       func(plugin.Options) (any, error) { return src, nil },
	}
}

func vizFactory(viz *stubViz) registry.Factory {
	return registry.Factory{
		Module:    "stub",
		Type:      "Viz",
		Prototype: &stubViz{},
		New:       func(plugin.Options) (any, error) { return viz, nil },
	}
}

func TestExecute(t *testing.T) {
	viz := &stubViz{}
	reg := testRegistry(t, sourceFactory(&stubSource{}), vizFactory(viz))
	r := NewRunner(reg, nil, nil)

	result, err := r.Execute(context.Background(), Options{
		Source:     "stub.Source",
		Visualizer: "stub.Viz",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.NodeCount != 2 || result.Stats.EdgeCount != 1 {
		t.Errorf("stats = %d/%d nodes/edges, want 2/1", result.Stats.NodeCount, result.Stats.EdgeCount)
	}
	if result.Artifact != "artifact" {
		t.Errorf("artifact = %q, want %q", result.Artifact, "artifact")
	}
	if result.GraphHash == "" {
		t.Error("graph hash should be set")
	}
	if result.CacheInfo.RenderHit {
		t.Error("first render should not hit the cache")
	}
}

func TestExecuteParseOnly(t *testing.T) {
	reg := testRegistry(t, sourceFactory(&stubSource{}))
	r := NewRunner(reg, nil, nil)

	result, err := r.Execute(context.Background(), Options{Source: "stub.Source"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Artifact != "" {
		t.Errorf("parse-only run should produce no artifact, got %q", result.Artifact)
	}
	if result.Graph == nil || result.Graph.NodeCount() != 2 {
		t.Error("graph should be returned for parse-only runs")
	}
}

func TestExecuteArtifactCached(t *testing.T) {
	viz := &stubViz{}
	reg := testRegistry(t, sourceFactory(&stubSource{}), vizFactory(viz))

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(reg, c, nil)
	defer r.Close()

	opts := Options{Source: "stub.Source", Visualizer: "stub.Viz"}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	if first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the cache")
	}
	if viz.renders != 1 {
		t.Errorf("visualizer ran %d times, want 1", viz.renders)
	}
	if second.Artifact != first.Artifact {
		t.Error("cached artifact must match the rendered one")
	}
}

func TestExecuteNoCache(t *testing.T) {
	viz := &stubViz{}
	reg := testRegistry(t, sourceFactory(&stubSource{}), vizFactory(viz))

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(reg, c, nil)
	defer r.Close()

	opts := Options{Source: "stub.Source", Visualizer: "stub.Viz", NoCache: true}
	for i := 0; i < 2; i++ {
		if _, err := r.Execute(context.Background(), opts); err != nil {
			t.Fatal(err)
		}
	}
	if viz.renders != 2 {
		t.Errorf("visualizer ran %d times with caching disabled, want 2", viz.renders)
	}
}

func TestExecuteErrors(t *testing.T) {
	parseErr := apperrors.New(apperrors.ErrCodeInvalidInput, "bad input")

	tests := []struct {
		name     string
		reg      *registry.Registry
		opts     Options
		wantCode apperrors.Code
	}{
		{
			name:     "InvalidSourceKey",
			reg:      testRegistry(t),
			opts:     Options{Source: ""},
			wantCode: apperrors.ErrCodeInvalidInput,
		},
		{
			name:     "UnknownSource",
			reg:      testRegistry(t),
			opts:     Options{Source: "stub.Missing"},
			wantCode: apperrors.ErrCodeNotFound,
		},
		{
			name:     "UnknownVisualizer",
			reg:      testRegistry(t, sourceFactory(&stubSource{})),
			opts:     Options{Source: "stub.Source", Visualizer: "stub.Missing"},
			wantCode: apperrors.ErrCodeNotFound,
		},
		{
			name:     "ParseFailure",
			reg:      testRegistry(t, sourceFactory(&stubSource{err: parseErr})),
			opts:     Options{Source: "stub.Source"},
			wantCode: apperrors.ErrCodeInvalidInput,
		},
		{
			// A plugin returning a plain error must still surface a
			// non-empty code on the wrapped failure.
			name:     "ParsePlainError",
			reg:      testRegistry(t, sourceFactory(&stubSource{err: errors.New("disk wobble")})),
			opts:     Options{Source: "stub.Source"},
			wantCode: apperrors.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(tt.reg, nil, nil)
			_, err := r.Execute(context.Background(), tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperrors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %v, want %v (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestExecuteCancelledContext(t *testing.T) {
	reg := testRegistry(t, sourceFactory(&stubSource{}))
	r := NewRunner(reg, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Execute(ctx, Options{Source: "stub.Source"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
