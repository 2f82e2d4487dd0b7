package plugin

import (
	"testing"

	apperrors "github.com/graphport/graphport/pkg/errors"
)

func TestOptionsString(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		key     string
		def     string
		want    string
		wantErr bool
	}{
		{name: "Present", opts: Options{"path": "a.json"}, key: "path", want: "a.json"},
		{name: "AbsentUsesDefault", opts: Options{}, key: "path", def: "fallback", want: "fallback"},
		{name: "NilOptions", opts: nil, key: "path", def: "d", want: "d"},
		{name: "CoercesNumber", opts: Options{"n": 42}, key: "n", want: "42"},
		{name: "Uncoercible", opts: Options{"m": map[string]any{}}, key: "m", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.opts.String(tt.key, tt.def)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !apperrors.Is(err, apperrors.ErrCodeInvalidOption) {
					t.Errorf("code = %v, want INVALID_OPTION", apperrors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("String: %v", err)
			}
			if got != tt.want {
				t.Errorf("String(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestOptionsBool(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		key     string
		def     bool
		want    bool
		wantErr bool
	}{
		{name: "True", opts: Options{"directed": true}, key: "directed", want: true},
		{name: "StringTrue", opts: Options{"directed": "true"}, key: "directed", want: true},
		{name: "AbsentUsesDefault", opts: Options{}, key: "directed", def: true, want: true},
		{name: "Uncoercible", opts: Options{"directed": "maybe"}, key: "directed", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.opts.Bool(tt.key, tt.def)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Bool: %v", err)
			}
			if got != tt.want {
				t.Errorf("Bool(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestOptionsClone(t *testing.T) {
	orig := Options{"a": 1}
	clone := orig.Clone()
	clone["a"] = 2
	if orig["a"] != 1 {
		t.Error("Clone must not share storage with the original")
	}
	if Options(nil).Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}
