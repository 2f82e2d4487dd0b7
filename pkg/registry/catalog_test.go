package registry

import (
	"testing"

	"github.com/graphport/graphport/pkg/plugin"
)

func TestCatalogRegister(t *testing.T) {
	tests := []struct {
		name    string
		factory Factory
		wantErr bool
	}{
		{
			name:    "Valid",
			factory: okFactory("mod", "Source", &fakeSource{}),
		},
		{
			name:    "MissingModule",
			factory: Factory{Type: "Source", Prototype: &fakeSource{}, New: func(plugin.Options) (any, error) { return nil, nil }},
			wantErr: true,
		},
		{
			name:    "MissingPrototype",
			factory: Factory{Module: "mod", Type: "Source", New: func(plugin.Options) (any, error) { return nil, nil }},
			wantErr: true,
		},
		{
			name:    "MissingConstructor",
			factory: Factory{Module: "mod", Type: "Source", Prototype: &fakeSource{}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := NewCatalog()
			err := cat.Register(tt.factory)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Register: %v", err)
			}
			if cat.Len() != 1 {
				t.Errorf("Len = %d, want 1", cat.Len())
			}
		})
	}
}

func TestCatalogForModule(t *testing.T) {
	cat := NewCatalog()
	cat.Register(okFactory("a", "One", &fakeSource{}))
	cat.Register(okFactory("b", "Two", &fakeSource{}))
	cat.Register(okFactory("a", "Three", &fakeViz{}))

	got := cat.ForModule("a")
	if len(got) != 2 {
		t.Fatalf("ForModule(a) = %d factories, want 2", len(got))
	}
	// Registration order is preserved.
	if got[0].Type != "One" || got[1].Type != "Three" {
		t.Errorf("ForModule(a) order = %s, %s; want One, Three", got[0].Type, got[1].Type)
	}

	if got := cat.ForModule("missing"); len(got) != 0 {
		t.Errorf("ForModule(missing) = %d factories, want 0", len(got))
	}
}

func TestFactoryKey(t *testing.T) {
	f := okFactory("jsonsource", "Source", &fakeSource{})
	if got := f.Key(); got != "jsonsource.Source" {
		t.Errorf("Key() = %q, want jsonsource.Source", got)
	}
}
