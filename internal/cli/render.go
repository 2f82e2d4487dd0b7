package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/graphport/graphport/pkg/pipeline"
	"github.com/graphport/graphport/pkg/plugin"
	"github.com/graphport/graphport/pkg/plugins/dotviz"
	"github.com/graphport/graphport/pkg/plugins/jsonsource"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	source      string   // qualified data source key
	visualizer  string   // qualified visualizer key
	sourceFlags []string // key=value options passed to the source
	vizFlags    []string // key=value options passed to the visualizer
	undirected  bool     // build an undirected graph
	output      string   // output file path (stdout if empty)
	svg         bool     // post-process DOT output into SVG
	noCache     bool     // disable artifact caching
	cacheDir    string   // override the XDG cache directory
}

// newRenderCmd creates the render command, which runs the full
// parse → render pipeline and writes the artifact.
func newRenderCmd(pluginRoot *string) *cobra.Command {
	opts := renderOpts{
		source:     jsonsource.ModuleName + ".Source",
		visualizer: dotviz.ModuleName + ".Visualizer",
	}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a graph through a visualizer plugin",
		Long: `Run the full pipeline: ingest a graph through a data source plugin and
render it through a visualizer plugin.

Examples:
  graphport render graph.json
  graphport render graph.json --visualizer svgviz.Visualizer -o graph.html
  graphport render graph.json --viz-opt detailed=true --svg -o graph.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			sourceOpts, err := parseOptFlags(opts.sourceFlags)
			if err != nil {
				return err
			}
			if sourceOpts == nil {
				sourceOpts = plugin.Options{}
			}
			sourceOpts["path"] = args[0]
			sourceOpts["directed"] = !opts.undirected

			vizOpts, err := parseOptFlags(opts.vizFlags)
			if err != nil {
				return err
			}

			runner := newRunner(cmd.Context(), *pluginRoot, opts.noCache, opts.cacheDir)
			defer runner.Close()

			result, err := runner.Execute(cmd.Context(), pipeline.Options{
				Source:     opts.source,
				SourceOpts: sourceOpts,
				Visualizer: opts.visualizer,
				VizOpts:    vizOpts,
				NoCache:    opts.noCache,
			})
			if err != nil {
				printError("Render failed: %v", err)
				return err
			}

			artifact := []byte(result.Artifact)
			if opts.svg && strings.HasPrefix(opts.visualizer, dotviz.ModuleName+".") {
				artifact, err = dotviz.RenderSVG(result.Artifact)
				if err != nil {
					return err
				}
			}
			if err := writeOutput(opts.output, artifact); err != nil {
				return err
			}

			prog.done("Rendered artifact")
			if opts.output != "" {
				printSuccess("Rendered via %s", opts.visualizer)
				printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
				printFile(opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.source, "source", "s", opts.source, "qualified data source key")
	cmd.Flags().StringVarP(&opts.visualizer, "visualizer", "V", opts.visualizer, "qualified visualizer key")
	cmd.Flags().StringArrayVar(&opts.sourceFlags, "opt", nil, "source option as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.vizFlags, "viz-opt", nil, "visualizer option as key=value (repeatable)")
	cmd.Flags().BoolVar(&opts.undirected, "undirected", false, "treat the graph as undirected")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.svg, "svg", false, "convert DOT output to SVG with Graphviz")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "artifact cache directory (default: XDG cache)")

	return cmd
}
