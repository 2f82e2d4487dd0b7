package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graphport/graphport/pkg/registry"
)

// newPluginsCmd creates the plugins command, which triggers discovery and
// lists every registered data source and visualizer.
func newPluginsCmd(pluginRoot *string) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List discovered data sources and visualizers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := newRegistry(cmd.Context(), *pluginRoot)
			summary := reg.Summary()

			fmt.Println(StyleTitle.Render("Data sources") + StyleDim.Render(fmt.Sprintf(" (%d)", summary.DataSourceCount())))
			printEntries(summary.DataSources)

			fmt.Println()
			fmt.Println(StyleTitle.Render("Visualizers") + StyleDim.Render(fmt.Sprintf(" (%d)", summary.VisualizerCount())))
			printEntries(summary.Visualizers)

			return nil
		},
	}
}

func printEntries(entries []registry.Entry) {
	if len(entries) == 0 {
		fmt.Println("  " + StyleDim.Render("none"))
		return
	}
	for _, e := range entries {
		printKeyValue(e.Module, e.Key)
	}
}
