package cli

import (
	"github.com/spf13/cobra"

	"github.com/graphport/graphport/pkg/graph"
	"github.com/graphport/graphport/pkg/pipeline"
	"github.com/graphport/graphport/pkg/plugin"
	"github.com/graphport/graphport/pkg/plugins/jsonsource"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	source     string   // qualified data source key
	optFlags   []string // key=value options passed to the source
	undirected bool     // build an undirected graph
	output     string   // output file path (stdout if empty)
}

// newParseCmd creates the parse command. It runs a data source plugin
// against the given input file and emits the canonical JSON graph.
func newParseCmd(pluginRoot *string) *cobra.Command {
	opts := parseOpts{source: jsonsource.ModuleName + ".Source"}

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Ingest a graph through a data source plugin",
		Long: `Ingest a graph through a data source plugin and emit canonical JSON.

Examples:
  graphport parse graph.json
  graphport parse graph.json --undirected -o out.json
  graphport parse data.csv --source csvsource.Source --opt delimiter=";"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			sourceOpts, err := parseOptFlags(opts.optFlags)
			if err != nil {
				return err
			}
			if sourceOpts == nil {
				sourceOpts = plugin.Options{}
			}
			sourceOpts["path"] = args[0]
			sourceOpts["directed"] = !opts.undirected

			runner := newRunner(cmd.Context(), *pluginRoot, true, "")
			defer runner.Close()

			result, err := runner.Execute(cmd.Context(), pipeline.Options{
				Source:     opts.source,
				SourceOpts: sourceOpts,
			})
			if err != nil {
				printError("Parse failed: %v", err)
				return err
			}

			data, err := graph.MarshalGraph(result.Graph)
			if err != nil {
				return err
			}
			if err := writeOutput(opts.output, data); err != nil {
				return err
			}

			prog.done("Parsed graph")
			// Keep stdout clean when it carries the JSON itself.
			if opts.output != "" {
				printSuccess("Ingested via %s", opts.source)
				printStats(result.Stats.NodeCount, result.Stats.EdgeCount, false)
				printFile(opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.source, "source", "s", opts.source, "qualified data source key")
	cmd.Flags().StringArrayVar(&opts.optFlags, "opt", nil, "source option as key=value (repeatable)")
	cmd.Flags().BoolVar(&opts.undirected, "undirected", false, "treat the graph as undirected")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}
