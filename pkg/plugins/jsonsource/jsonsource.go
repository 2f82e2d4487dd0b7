// Package jsonsource provides the bundled JSON data source plugin.
//
// It ingests the node-link JSON exchange format — a "nodes" array and an
// "edges" array, where every key other than id (and source/target for
// edges) becomes an entity attribute — from a file or an in-memory string.
package jsonsource

import (
	"strings"

	apperrors "github.com/graphport/graphport/pkg/errors"
	"github.com/graphport/graphport/pkg/graph"
	"github.com/graphport/graphport/pkg/plugin"
	"github.com/graphport/graphport/pkg/registry"
)

// ModuleName is the plugin package name used in registry keys.
const ModuleName = "jsonsource"

// PluginName is the stable identifier returned by [Source.Name].
const PluginName = "json_source"

// Parse option keys recognized by [Source.Parse].
const (
	OptPath     = "path"     // path to a JSON file
	OptData     = "data"     // inline JSON string (takes precedence over path)
	OptDirected = "directed" // graph directedness, default true
	OptEncoding = "encoding" // input encoding, only UTF-8 is supported
)

// Source reads node-link JSON and produces a validated graph.
type Source struct{}

// New constructs the data source. It accepts no constructor options.
func New(opts plugin.Options) (*Source, error) {
	return &Source{}, nil
}

// Name returns the stable plugin identifier.
func (s *Source) Name() string { return PluginName }

// Parse ingests JSON graph data described by opts.
//
// Exactly one of the "data" or "path" options must be set. Malformed JSON
// and structurally invalid entries fail with INVALID_INPUT; edges whose
// endpoints don't exist fail with INVALID_GRAPH; a missing file fails with
// FILE_NOT_FOUND.
func (s *Source) Parse(opts plugin.Options) (*graph.Graph, error) {
	directed, err := opts.Bool(OptDirected, true)
	if err != nil {
		return nil, err
	}
	if err := checkEncoding(opts); err != nil {
		return nil, err
	}

	if data, err := opts.String(OptData, ""); err != nil {
		return nil, err
	} else if data != "" {
		return graph.UnmarshalGraph([]byte(data), directed)
	}

	path, err := opts.String(OptPath, "")
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "either %q or %q option is required", OptPath, OptData)
	}
	return graph.ReadGraphFile(path, directed)
}

// checkEncoding validates the optional encoding option. JSON input is
// always decoded as UTF-8; anything else is unsupported.
func checkEncoding(opts plugin.Options) error {
	enc, err := opts.String(OptEncoding, "utf-8")
	if err != nil {
		return err
	}
	switch strings.ToLower(enc) {
	case "utf-8", "utf8":
		return nil
	default:
		return apperrors.New(apperrors.ErrCodeUnsupported, "unsupported encoding %q", enc)
	}
}

func init() {
	registry.Register(registry.Factory{
		Module:    ModuleName,
		Type:      "Source",
		Prototype: &Source{},
		New: func(opts plugin.Options) (any, error) {
			return New(opts)
		},
	})
}
